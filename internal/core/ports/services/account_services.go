package services

import (
	"context"

	"github.com/veloxrp/econ_backend/internal/core/domain"
	"github.com/veloxrp/econ_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccountsByOwner retrieves all accounts bound to a character.
	ListAccountsByOwner(ctx context.Context, characterID int64) ([]domain.Account, error)

	// ListAccountsByGroup retrieves all accounts bound to an organization.
	ListAccountsByGroup(ctx context.Context, group string) ([]domain.Account, error)

	// ListAccountsForCharacter retrieves every account the character can access,
	// with the granted role.
	ListAccountsForCharacter(ctx context.Context, characterID int64) ([]domain.AccountWithRole, error)

	// GetDefaultAccountByOwner retrieves the character's default account.
	GetDefaultAccountByOwner(ctx context.Context, characterID int64) (*domain.Account, error)

	// GetAccountRole returns the role a character holds on an account, empty
	// when no grant exists.
	GetAccountRole(ctx context.Context, accountID, characterID int64) (domain.AccountRole, error)

	// ListTransactions lists the account's transaction history, newest first.
	ListTransactions(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransactionRecord, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount creates a new account and returns it.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, accountID int64) error

	// SetAccountAccess upserts or removes a role grant. A nil role removes the grant.
	SetAccountAccess(ctx context.Context, accountID, characterID int64, role *domain.AccountRole) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
