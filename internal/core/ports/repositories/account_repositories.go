package repositories

import (
	"context"

	"github.com/veloxrp/econ_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountsByOwner retrieves all accounts bound to a character.
	FindAccountsByOwner(ctx context.Context, characterID int64) ([]domain.Account, error)

	// FindAccountsByGroup retrieves all accounts bound to an organization.
	FindAccountsByGroup(ctx context.Context, group string) ([]domain.Account, error)

	// FindDefaultAccountByOwner retrieves the account flagged as default for a character.
	FindDefaultAccountByOwner(ctx context.Context, characterID int64) (*domain.Account, error)

	// FindDefaultAccountByGroup retrieves the account flagged as default for an organization.
	FindDefaultAccountByGroup(ctx context.Context, group string) (*domain.Account, error)

	// FindAccountsForCharacter retrieves every account the character holds an
	// access grant on, joined with the granted role.
	FindAccountsForCharacter(ctx context.Context, characterID int64) ([]domain.AccountWithRole, error)

	// IsAccountIDAvailable reports whether no account currently holds the id.
	IsAccountIDAvailable(ctx context.Context, accountID int64) (bool, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// CreateAccount generates an id, inserts the account row and, for
	// character-owned accounts, the creator's owner grant, all in one
	// transaction. Returns the new account id.
	CreateAccount(ctx context.Context, account domain.NewAccount) (int64, error)

	// DeactivateAccount soft-deletes an account. Rows, grants and history remain.
	DeactivateAccount(ctx context.Context, accountID int64) error
}

// AccountAccessRepository manages role grants on accounts.
type AccountAccessRepository interface {
	// FindAccountRole returns the role a character holds on an account, or the
	// empty role when no grant exists. Absence is a normal outcome, not an error.
	FindAccountRole(ctx context.Context, accountID, characterID int64) (domain.AccountRole, error)

	// UpdateAccountAccess upserts the grant for the pair, or deletes it when
	// role is empty.
	UpdateAccountAccess(ctx context.Context, accountID, characterID int64, role domain.AccountRole) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountAccessRepository
}
