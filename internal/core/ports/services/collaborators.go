package services

import (
	"context"

	"github.com/veloxrp/econ_backend/internal/core/domain"
)

// CharacterResolver resolves a live session identifier to a durable character.
// Returns apperrors.ErrCharacterNotFound when the session is unknown.
type CharacterResolver interface {
	ResolveCharacter(ctx context.Context, sessionID string) (*domain.Character, error)
}

// ActionAuthorizer is the access-control decision function. Policy semantics
// live behind this port; the services only consume the boolean outcome.
type ActionAuthorizer interface {
	CanPerformAction(ctx context.Context, character *domain.Character, accountID int64, role domain.AccountRole, action domain.AccountAction) (bool, error)
}

// CashInventory is the external cash-holding resource: the fungible money item
// a character carries on hand. It is not part of the relational store, so its
// mutations report success as booleans rather than row counts.
type CashInventory interface {
	// Count returns how much cash the character currently holds.
	Count(ctx context.Context, characterID int64) (int64, error)

	// TryAdd credits cash to the character, reporting whether it applied.
	TryAdd(ctx context.Context, characterID, amount int64) (bool, error)

	// TryRemove debits cash from the character, failing without effect when the
	// holding cannot cover the amount.
	TryRemove(ctx context.Context, characterID, amount int64) (bool, error)
}
