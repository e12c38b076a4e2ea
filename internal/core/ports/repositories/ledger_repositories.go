package repositories

import (
	"context"

	"github.com/veloxrp/econ_backend/internal/core/domain"
)

// LedgerRepository is the balance transaction engine: every method that mutates
// a balance pairs the mutation with exactly one transaction record inside a
// single database transaction, and any failure (including an affected-row-count
// mismatch) rolls the whole unit back.
type LedgerRepository interface {
	// GetBalance reads the current balance. Returns apperrors.ErrAccountNotFound
	// when the account row is absent; a zero balance is a distinct, valid result.
	GetBalance(ctx context.Context, accountID int64) (int64, error)

	// AdjustBalance applies one leg: a credit, or a debit conditioned on
	// balance sufficiency unless overdraft is allowed.
	AdjustBalance(ctx context.Context, adj domain.BalanceAdjustment) error

	// Transfer moves funds between two accounts as two legs (a conditional
	// debit and a credit) committed together or not at all.
	Transfer(ctx context.Context, transfer domain.AccountTransfer) error

	// TransferDirect is the legacy single-record variant. It records balance
	// snapshots taken before the transaction opened, so it can lose updates
	// under concurrent writers to the destination account.
	//
	// Deprecated: use Transfer, which re-reads and conditions each leg against
	// the current row.
	TransferDirect(ctx context.Context, transfer domain.AccountTransfer, allowOverdraft bool) error

	// CreditWithFunding credits the account and then runs fund, the external
	// cash-side debit, between the balance update and the record insert. fund
	// executes on its own connection and commits independently; a false return
	// rolls the balance credit back, but a record-insert or commit failure
	// after fund succeeded leaves the cash already taken while the balance
	// rolls back. Callers needing stronger coupling must reconcile out of band.
	CreditWithFunding(ctx context.Context, adj domain.BalanceAdjustment, fund func() bool) error

	// DebitWithPayout debits the account (conditionally, unless overdraft is
	// allowed) and then runs payout, the external cash-side credit. The same
	// coupling caveat as CreditWithFunding applies: payout commits on its own,
	// so a failure after it succeeded leaves the cash paid out while the
	// account debit rolls back.
	DebitWithPayout(ctx context.Context, adj domain.BalanceAdjustment, payout func() bool) error

	// FindTransactionsByAccount lists records touching the account, newest first.
	FindTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransactionRecord, error)
}
