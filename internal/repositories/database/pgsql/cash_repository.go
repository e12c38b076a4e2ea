package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
)

// PgxCashRepository keeps the on-hand cash holding on the character row.
// It implements the CashInventory collaborator port; deployments backed by a
// separate inventory service swap this out at wiring time.
type PgxCashRepository struct {
	BaseRepository
}

func newPgxCashRepository(pool *pgxpool.Pool) portssvc.CashInventory {
	return &PgxCashRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portssvc.CashInventory = (*PgxCashRepository)(nil)

// Count returns the character's current cash holding.
func (r *PgxCashRepository) Count(ctx context.Context, characterID int64) (int64, error) {
	var cash int64
	err := r.Pool.QueryRow(ctx, `SELECT cash FROM characters WHERE char_id = $1`, characterID).Scan(&cash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrCharacterNotFound
		}
		return 0, fmt.Errorf("failed to read cash of character %d: %w", characterID, err)
	}
	return cash, nil
}

// TryAdd credits cash to the character.
func (r *PgxCashRepository) TryAdd(ctx context.Context, characterID, amount int64) (bool, error) {
	ct, err := r.Pool.Exec(ctx,
		`UPDATE characters SET cash = cash + $1 WHERE char_id = $2`,
		amount, characterID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add cash to character %d: %w", characterID, err)
	}
	return ct.RowsAffected() == 1, nil
}

// TryRemove debits cash, conditioned in the statement on the holding covering
// the amount. Zero affected rows means insufficient cash and no effect.
func (r *PgxCashRepository) TryRemove(ctx context.Context, characterID, amount int64) (bool, error) {
	ct, err := r.Pool.Exec(ctx,
		`UPDATE characters SET cash = cash - $1 WHERE char_id = $2 AND cash - $1 >= 0`,
		amount, characterID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove cash from character %d: %w", characterID, err)
	}
	return ct.RowsAffected() == 1, nil
}
