package services

import (
	"context"
	"fmt"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	"github.com/veloxrp/econ_backend/internal/core/domain"
	portsrepo "github.com/veloxrp/econ_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
	"github.com/veloxrp/econ_backend/internal/dto"
	"github.com/veloxrp/econ_backend/internal/middleware"
)

// accountService provides account CRUD and access-grant management.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account and returns it.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if (req.OwnerID == nil) == (req.Group == nil) {
		return nil, fmt.Errorf("%w: exactly one of ownerID and group must be set", apperrors.ErrValidation)
	}

	accountID, err := s.accountRepo.CreateAccount(ctx, domain.NewAccount{
		Label:     req.Label,
		OwnerID:   req.OwnerID,
		Group:     req.Group,
		Shared:    req.Shared,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Account created", "account_id", accountID, "label", req.Label)
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccountsByOwner retrieves all accounts bound to a character.
func (s *accountService) ListAccountsByOwner(ctx context.Context, characterID int64) ([]domain.Account, error) {
	return s.accountRepo.FindAccountsByOwner(ctx, characterID)
}

// ListAccountsByGroup retrieves all accounts bound to an organization.
func (s *accountService) ListAccountsByGroup(ctx context.Context, group string) ([]domain.Account, error) {
	return s.accountRepo.FindAccountsByGroup(ctx, group)
}

// ListAccountsForCharacter retrieves every account the character can access.
func (s *accountService) ListAccountsForCharacter(ctx context.Context, characterID int64) ([]domain.AccountWithRole, error) {
	return s.accountRepo.FindAccountsForCharacter(ctx, characterID)
}

// GetDefaultAccountByOwner retrieves the character's default account.
func (s *accountService) GetDefaultAccountByOwner(ctx context.Context, characterID int64) (*domain.Account, error) {
	return s.accountRepo.FindDefaultAccountByOwner(ctx, characterID)
}

// GetAccountRole returns the role a character holds on an account.
func (s *accountService) GetAccountRole(ctx context.Context, accountID, characterID int64) (domain.AccountRole, error) {
	return s.accountRepo.FindAccountRole(ctx, accountID, characterID)
}

// ListTransactions lists the account's transaction history, newest first.
func (s *accountService) ListTransactions(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransactionRecord, error) {
	// Existence check so an empty history and an unknown account stay distinct.
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindTransactionsByAccount(ctx, accountID, limit, offset)
}

// DeactivateAccount soft-deletes an account.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, accountID); err != nil {
		return err
	}
	logger.Info("Account deactivated", "account_id", accountID)
	return nil
}

// SetAccountAccess upserts or removes a role grant. A nil role removes the grant.
func (s *accountService) SetAccountAccess(ctx context.Context, accountID, characterID int64, role *domain.AccountRole) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	var grant domain.AccountRole
	if role != nil {
		grant = *role
	}
	return s.accountRepo.UpdateAccountAccess(ctx, accountID, characterID, grant)
}
