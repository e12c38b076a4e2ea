package repositories

import (
	"context"

	"github.com/veloxrp/econ_backend/internal/core/domain"
)

// CharacterRepository reads durable character records.
type CharacterRepository interface {
	// FindCharacterByID retrieves a character by its durable id.
	FindCharacterByID(ctx context.Context, characterID int64) (*domain.Character, error)

	// FindCharacterBySession resolves a live session identifier to a character.
	FindCharacterBySession(ctx context.Context, sessionID string) (*domain.Character, error)
}
