package services

import (
	"context"

	"github.com/veloxrp/econ_backend/internal/dto"
)

// EconomySvcFacade exposes the user-facing balance operations. Every method
// either fully applies (nil error) or has no effect, surfacing one of the
// apperrors sentinels: ErrCharacterNotFound, ErrAccountNotFound, ErrNoAccess,
// ErrInsufficientFunds, ErrValidation or ErrTransactionFailed.
type EconomySvcFacade interface {
	// Deposit moves cash from the acting character's on-hand holding into an account.
	Deposit(ctx context.Context, sessionID string, req dto.DepositRequest) error

	// Withdraw moves funds from an account into the character's cash holding.
	// Overdraft is never permitted: the debit fails closed.
	Withdraw(ctx context.Context, sessionID string, req dto.WithdrawRequest) error

	// Transfer moves funds between two accounts as two atomic legs.
	Transfer(ctx context.Context, sessionID string, req dto.TransferRequest) error

	// TransferDirect is the legacy single-record transfer path.
	//
	// Deprecated: retained for callers that depend on the combined-record shape;
	// use Transfer.
	TransferDirect(ctx context.Context, sessionID string, req dto.TransferRequest) error
}
