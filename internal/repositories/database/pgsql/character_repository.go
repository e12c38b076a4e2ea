package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	"github.com/veloxrp/econ_backend/internal/core/domain"
	portsrepo "github.com/veloxrp/econ_backend/internal/core/ports/repositories"
)

type PgxCharacterRepository struct {
	BaseRepository
}

func newPgxCharacterRepository(pool *pgxpool.Pool) portsrepo.CharacterRepository {
	return &PgxCharacterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CharacterRepository = (*PgxCharacterRepository)(nil)

// FindCharacterByID retrieves a character by its durable id.
func (r *PgxCharacterRepository) FindCharacterByID(ctx context.Context, characterID int64) (*domain.Character, error) {
	var char domain.Character
	err := r.Pool.QueryRow(ctx,
		`SELECT char_id, name FROM characters WHERE char_id = $1`,
		characterID,
	).Scan(&char.CharacterID, &char.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to find character %d: %w", characterID, err)
	}
	return &char, nil
}

// FindCharacterBySession resolves a live session identifier to its character.
func (r *PgxCharacterRepository) FindCharacterBySession(ctx context.Context, sessionID string) (*domain.Character, error) {
	var char domain.Character
	err := r.Pool.QueryRow(ctx,
		`SELECT char_id, name FROM characters WHERE session_id = $1`,
		sessionID,
	).Scan(&char.CharacterID, &char.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to resolve session to character: %w", err)
	}
	return &char, nil
}
