package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	"github.com/veloxrp/econ_backend/internal/core/domain"
	portsrepo "github.com/veloxrp/econ_backend/internal/core/ports/repositories"
	"github.com/veloxrp/econ_backend/internal/platform/locales"
)

const (
	getBalanceSQL          = `SELECT balance FROM accounts WHERE id = $1`
	getBalanceForUpdateSQL = getBalanceSQL + ` FOR UPDATE`

	addBalanceSQL    = `UPDATE accounts SET balance = balance + $1 WHERE id = $2`
	removeBalanceSQL = `UPDATE accounts SET balance = balance - $1 WHERE id = $2`
	// The overdraft guard lives in the statement itself: the store evaluates the
	// condition atomically at write time. Splitting this into a read followed by
	// a write reintroduces the race it exists to prevent.
	safeRemoveBalanceSQL = removeBalanceSQL + ` AND balance - $1 >= 0`

	insertTransactionSQL = `
		INSERT INTO account_transactions (actor_id, from_id, to_id, amount, message, note, from_balance, to_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
)

// PgxLedgerRepository is the balance transaction engine on PostgreSQL.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// GetBalance reads the current balance outside any transaction.
func (r *PgxLedgerRepository) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	var balance int64
	err := r.Pool.QueryRow(ctx, getBalanceSQL, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to read balance of account %d: %w", accountID, err)
	}
	return balance, nil
}

// lockBalance reads the balance under a row lock, pinning the pre-mutation
// value the record snapshot is computed from. Holding the lock is what makes
// that snapshot equal the post-update value without a second round trip.
func lockBalance(ctx context.Context, tx pgx.Tx, accountID int64) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx, getBalanceForUpdateSQL, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to lock balance of account %d: %w", accountID, err)
	}
	return balance, nil
}

// applyLeg mutates one account's balance and inserts its transaction record
// within tx. The caller owns commit/rollback. Debit legs are conditioned on
// sufficiency unless overdraft is allowed; a zero-row update surfaces as
// ErrInsufficientFunds and an insert affecting anything but one row as
// ErrTransactionFailed, both of which must abort the enclosing transaction.
func (r *PgxLedgerRepository) applyLeg(ctx context.Context, tx pgx.Tx, adj domain.BalanceAdjustment) error {
	if adj.Amount <= 0 {
		return fmt.Errorf("%w: leg amount must be positive, got %d", apperrors.ErrValidation, adj.Amount)
	}

	before, err := lockBalance(ctx, tx, adj.AccountID)
	if err != nil {
		return err
	}

	var (
		after       int64
		fromID      *int64
		toID        *int64
		fromBalance *int64
		toBalance   *int64
	)

	switch adj.Direction {
	case domain.DirectionAdd:
		ct, err := tx.Exec(ctx, addBalanceSQL, adj.Amount, adj.AccountID)
		if err != nil {
			return fmt.Errorf("failed to credit account %d: %w", adj.AccountID, err)
		}
		if ct.RowsAffected() != 1 {
			return apperrors.ErrTransactionFailed
		}
		after = before + adj.Amount
		toID = &adj.AccountID
		toBalance = &after
	case domain.DirectionRemove:
		stmt := safeRemoveBalanceSQL
		if adj.AllowOverdraft {
			stmt = removeBalanceSQL
		}
		ct, err := tx.Exec(ctx, stmt, adj.Amount, adj.AccountID)
		if err != nil {
			return fmt.Errorf("failed to debit account %d: %w", adj.AccountID, err)
		}
		if ct.RowsAffected() == 0 {
			return apperrors.ErrInsufficientFunds
		}
		after = before - adj.Amount
		fromID = &adj.AccountID
		fromBalance = &after
	default:
		return fmt.Errorf("%w: unknown adjust direction %q", apperrors.ErrValidation, adj.Direction)
	}

	ct, err := tx.Exec(ctx, insertTransactionSQL,
		adj.ActorID,
		fromID,
		toID,
		domain.SignedAmount(adj.Direction, adj.Amount),
		locales.Or(adj.Message, locales.KindTransfer),
		adj.Note,
		fromBalance,
		toBalance,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction record for account %d: %w", adj.AccountID, err)
	}
	if ct.RowsAffected() != 1 {
		return apperrors.ErrTransactionFailed
	}

	return nil
}

// AdjustBalance applies a single leg as its own transaction.
func (r *PgxLedgerRepository) AdjustBalance(ctx context.Context, adj domain.BalanceAdjustment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.applyLeg(ctx, tx, adj); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// Transfer composes a conditional debit leg and a credit leg inside one
// transaction. Both legs commit together or neither does. A lock conflict
// between concurrent opposing transfers surfaces as a store error and rolls
// back; it is never a silently lost update.
func (r *PgxLedgerRepository) Transfer(ctx context.Context, transfer domain.AccountTransfer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	message := locales.Or(transfer.Message, locales.KindTransfer)

	legs := []domain.BalanceAdjustment{
		{
			AccountID: transfer.FromAccountID,
			Amount:    transfer.Amount,
			Direction: domain.DirectionRemove,
			ActorID:   transfer.ActorID,
			Message:   message,
			Note:      transfer.Note,
		},
		{
			AccountID: transfer.ToAccountID,
			Amount:    transfer.Amount,
			Direction: domain.DirectionAdd,
			ActorID:   transfer.ActorID,
			Message:   message,
			Note:      transfer.Note,
		},
	}
	for _, leg := range legs {
		if err := r.applyLeg(ctx, tx, leg); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// TransferDirect moves funds with a single combined record carrying both
// post-balances, computed from snapshots read before the transaction opened.
//
// Deprecated: the snapshot can go stale if the destination balance changes
// between the read and the commit; Transfer re-conditions each leg instead.
func (r *PgxLedgerRepository) TransferDirect(ctx context.Context, transfer domain.AccountTransfer, allowOverdraft bool) error {
	fromBalance, err := r.GetBalance(ctx, transfer.FromAccountID)
	if err != nil {
		return err
	}
	toBalance, err := r.GetBalance(ctx, transfer.ToAccountID)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	stmt := safeRemoveBalanceSQL
	if allowOverdraft {
		stmt = removeBalanceSQL
	}
	ct, err := tx.Exec(ctx, stmt, transfer.Amount, transfer.FromAccountID)
	if err != nil {
		return fmt.Errorf("failed to debit account %d: %w", transfer.FromAccountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrInsufficientFunds
	}

	ct, err = tx.Exec(ctx, addBalanceSQL, transfer.Amount, transfer.ToAccountID)
	if err != nil {
		return fmt.Errorf("failed to credit account %d: %w", transfer.ToAccountID, err)
	}
	if ct.RowsAffected() != 1 {
		return apperrors.ErrTransactionFailed
	}

	fromAfter := fromBalance - transfer.Amount
	toAfter := toBalance + transfer.Amount
	ct, err = tx.Exec(ctx, insertTransactionSQL,
		transfer.ActorID,
		transfer.FromAccountID,
		transfer.ToAccountID,
		transfer.Amount,
		locales.Or(transfer.Message, locales.KindTransfer),
		transfer.Note,
		fromAfter,
		toAfter,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer record: %w", err)
	}
	if ct.RowsAffected() != 1 {
		return apperrors.ErrTransactionFailed
	}

	if err := r.Commit(ctx, tx); err != nil {
		slog.ErrorContext(ctx, "Failed to commit direct transfer",
			slog.Int64("from_account", transfer.FromAccountID),
			slog.Int64("to_account", transfer.ToAccountID),
			slog.Int64("amount", transfer.Amount),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// CreditWithFunding credits the account, then runs the external cash-side
// debit before the record insert. The ordering matters: the balance increment
// is attempted and its row count checked first, and a cash-side failure after
// a successful increment rolls the increment back too. The reverse does not
// hold: fund runs on its own connection and commits immediately, so a record
// insert or commit failure after fund succeeded keeps the cash taken while
// this transaction rolls back.
func (r *PgxLedgerRepository) CreditWithFunding(ctx context.Context, adj domain.BalanceAdjustment, fund func() bool) error {
	if adj.Amount <= 0 {
		return fmt.Errorf("%w: credit amount must be positive, got %d", apperrors.ErrValidation, adj.Amount)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	before, err := lockBalance(ctx, tx, adj.AccountID)
	if err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, addBalanceSQL, adj.Amount, adj.AccountID)
	if err != nil {
		return fmt.Errorf("failed to credit account %d: %w", adj.AccountID, err)
	}
	if ct.RowsAffected() != 1 {
		return apperrors.ErrTransactionFailed
	}

	if !fund() {
		return apperrors.ErrTransactionFailed
	}

	after := before + adj.Amount
	ct, err = tx.Exec(ctx, insertTransactionSQL,
		adj.ActorID,
		nil,
		adj.AccountID,
		domain.SignedAmount(domain.DirectionAdd, adj.Amount),
		locales.Or(adj.Message, locales.KindDeposit),
		adj.Note,
		nil,
		after,
	)
	if err != nil {
		return fmt.Errorf("failed to insert deposit record for account %d: %w", adj.AccountID, err)
	}
	if ct.RowsAffected() != 1 {
		return apperrors.ErrTransactionFailed
	}

	return r.Commit(ctx, tx)
}

// DebitWithPayout debits the account conditionally, then runs the external
// cash-side credit before the record insert. A payout failure rolls the debit
// back; a failure after payout succeeded leaves the cash paid out while the
// debit rolls back, since payout commits independently.
func (r *PgxLedgerRepository) DebitWithPayout(ctx context.Context, adj domain.BalanceAdjustment, payout func() bool) error {
	if adj.Amount <= 0 {
		return fmt.Errorf("%w: debit amount must be positive, got %d", apperrors.ErrValidation, adj.Amount)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	before, err := lockBalance(ctx, tx, adj.AccountID)
	if err != nil {
		return err
	}

	stmt := safeRemoveBalanceSQL
	if adj.AllowOverdraft {
		stmt = removeBalanceSQL
	}
	ct, err := tx.Exec(ctx, stmt, adj.Amount, adj.AccountID)
	if err != nil {
		return fmt.Errorf("failed to debit account %d: %w", adj.AccountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrInsufficientFunds
	}

	if !payout() {
		return apperrors.ErrTransactionFailed
	}

	after := before - adj.Amount
	ct, err = tx.Exec(ctx, insertTransactionSQL,
		adj.ActorID,
		adj.AccountID,
		nil,
		domain.SignedAmount(domain.DirectionRemove, adj.Amount),
		locales.Or(adj.Message, locales.KindWithdraw),
		adj.Note,
		after,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to insert withdrawal record for account %d: %w", adj.AccountID, err)
	}
	if ct.RowsAffected() != 1 {
		return apperrors.ErrTransactionFailed
	}

	return r.Commit(ctx, tx)
}

// FindTransactionsByAccount lists records where the account is either side,
// newest first.
func (r *PgxLedgerRepository) FindTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransactionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, actor_id, from_id, to_id, amount, message, note, from_balance, to_balance, created_at
		FROM account_transactions
		WHERE from_id = $1 OR to_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	records := []domain.TransactionRecord{}
	for rows.Next() {
		var rec domain.TransactionRecord
		err := rows.Scan(
			&rec.RecordID,
			&rec.ActorID,
			&rec.FromAccountID,
			&rec.ToAccountID,
			&rec.Amount,
			&rec.Message,
			&rec.Note,
			&rec.FromBalance,
			&rec.ToBalance,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for account %d: %w", accountID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for account %d: %w", accountID, err)
	}

	return records, nil
}
