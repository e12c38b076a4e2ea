package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	"github.com/veloxrp/econ_backend/internal/core/domain"
	portsrepo "github.com/veloxrp/econ_backend/internal/core/ports/repositories"
	"github.com/veloxrp/econ_backend/internal/utils/accountid"
)

const accountColumns = `id, label, owner, group_name, type, is_default, balance`

// maxIDAttempts bounds the collision re-draw loop. The probability of ten
// consecutive collisions is negligible unless a single month's bucket is
// nearly full.
const maxIDAttempts = 10

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.Label,
		&acc.OwnerID,
		&acc.Group,
		&acc.Type,
		&acc.IsDefault,
		&acc.Balance,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// generateAccountID draws candidate ids until one is free, checking inside the
// transaction that will perform the insert. The check carries no row lock, so
// the unique primary key remains the real guarantee; this loop only keeps
// constraint violations rare.
func generateAccountID(ctx context.Context, tx pgx.Tx) (int64, error) {
	now := time.Now()
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate := accountid.Random(now)

		var one int
		err := tx.QueryRow(ctx, `SELECT 1 FROM accounts WHERE id = $1`, candidate).Scan(&one)
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to check account id availability: %w", err)
		}
	}
	return 0, fmt.Errorf("exhausted %d account id candidates", maxIDAttempts)
}

// CreateAccount inserts the account and, for character-owned accounts, the
// creator's owner grant, all in one transaction with the id generation.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account domain.NewAccount) (int64, error) {
	if (account.OwnerID == nil) == (account.Group == nil) {
		return 0, fmt.Errorf("%w: exactly one of owner and group must be set", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	accountID, err := generateAccountID(ctx, tx)
	if err != nil {
		return 0, err
	}

	accType := domain.AccountPersonal
	if account.Shared {
		accType = domain.AccountShared
	}

	ct, err := tx.Exec(ctx, `
		INSERT INTO accounts (id, label, owner, group_name, type, is_default, balance)
		VALUES ($1, $2, $3, $4, $5, $6, 0);`,
		accountID,
		account.Label,
		account.OwnerID,
		account.Group,
		accType,
		account.IsDefault,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Lost the id race to a concurrent creation; the pre-check is best effort.
			return 0, fmt.Errorf("%w: account id %d", apperrors.ErrDuplicate, accountID)
		}
		return 0, fmt.Errorf("failed to insert account %d: %w", accountID, err)
	}
	if ct.RowsAffected() != 1 {
		return 0, apperrors.ErrTransactionFailed
	}

	if account.OwnerID != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO accounts_access (account_id, char_id, role)
			VALUES ($1, $2, $3);`,
			accountID, *account.OwnerID, domain.RoleOwner,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert owner grant for account %d: %w", accountID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return accountID, nil
}

// DeactivateAccount soft-deletes: the row, its grants and its transaction
// history all remain.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID int64) error {
	ct, err := r.Pool.Exec(ctx, `UPDATE accounts SET type = $1 WHERE id = $2;`, domain.AccountInactive, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %d: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// FindAccountByID retrieves an account by its id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountsByOwner retrieves all accounts bound to a character.
func (r *PgxAccountRepository) FindAccountsByOwner(ctx context.Context, characterID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner = $1;`
	rows, err := r.Pool.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for owner %d: %w", characterID, err)
	}
	return collectAccounts(rows)
}

// FindAccountsByGroup retrieves all accounts bound to an organization.
func (r *PgxAccountRepository) FindAccountsByGroup(ctx context.Context, group string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE group_name = $1;`
	rows, err := r.Pool.Query(ctx, query, group)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for group %s: %w", group, err)
	}
	return collectAccounts(rows)
}

// FindDefaultAccountByOwner retrieves the character's default account.
func (r *PgxAccountRepository) FindDefaultAccountByOwner(ctx context.Context, characterID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner = $1 AND is_default = TRUE;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, characterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find default account for owner %d: %w", characterID, err)
	}
	return acc, nil
}

// FindDefaultAccountByGroup retrieves the organization's default account.
func (r *PgxAccountRepository) FindDefaultAccountByGroup(ctx context.Context, group string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE group_name = $1 AND is_default = TRUE;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, group))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find default account for group %s: %w", group, err)
	}
	return acc, nil
}

// FindAccountsForCharacter retrieves every account the character holds a grant
// on, joined with the granted role.
func (r *PgxAccountRepository) FindAccountsForCharacter(ctx context.Context, characterID int64) ([]domain.AccountWithRole, error) {
	query := `
		SELECT a.id, a.label, a.owner, a.group_name, a.type, a.is_default, a.balance, ac.role
		FROM accounts_access ac
		LEFT JOIN accounts a ON a.id = ac.account_id
		WHERE ac.char_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for character %d: %w", characterID, err)
	}
	defer rows.Close()

	accounts := []domain.AccountWithRole{}
	for rows.Next() {
		var acc domain.AccountWithRole
		err := rows.Scan(
			&acc.AccountID,
			&acc.Label,
			&acc.OwnerID,
			&acc.Group,
			&acc.Type,
			&acc.IsDefault,
			&acc.Balance,
			&acc.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for character %d: %w", characterID, err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for character %d: %w", characterID, err)
	}

	return accounts, nil
}

// IsAccountIDAvailable reports whether no account currently holds the id.
func (r *PgxAccountRepository) IsAccountIDAvailable(ctx context.Context, accountID int64) (bool, error) {
	var one int
	err := r.Pool.QueryRow(ctx, `SELECT 1 FROM accounts WHERE id = $1`, accountID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check account id %d: %w", accountID, err)
	}
	return false, nil
}

// FindAccountRole returns the role a character holds on an account. No grant
// means the empty role, not an error.
func (r *PgxAccountRepository) FindAccountRole(ctx context.Context, accountID, characterID int64) (domain.AccountRole, error) {
	var role domain.AccountRole
	err := r.Pool.QueryRow(ctx,
		`SELECT role FROM accounts_access WHERE account_id = $1 AND char_id = $2`,
		accountID, characterID,
	).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find role on account %d for character %d: %w", accountID, characterID, err)
	}
	return role, nil
}

// UpdateAccountAccess deletes the grant when role is empty, otherwise upserts it.
func (r *PgxAccountRepository) UpdateAccountAccess(ctx context.Context, accountID, characterID int64, role domain.AccountRole) error {
	if role == "" {
		_, err := r.Pool.Exec(ctx,
			`DELETE FROM accounts_access WHERE account_id = $1 AND char_id = $2;`,
			accountID, characterID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete grant on account %d for character %d: %w", accountID, characterID, err)
		}
		return nil
	}

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO accounts_access (account_id, char_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, char_id) DO UPDATE SET role = EXCLUDED.role;`,
		accountID, characterID, role,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert grant on account %d for character %d: %w", accountID, characterID, err)
	}
	return nil
}
