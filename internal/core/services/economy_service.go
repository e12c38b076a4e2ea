package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	"github.com/veloxrp/econ_backend/internal/core/domain"
	portsrepo "github.com/veloxrp/econ_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
	"github.com/veloxrp/econ_backend/internal/dto"
	"github.com/veloxrp/econ_backend/internal/middleware"
	"github.com/veloxrp/econ_backend/internal/platform/locales"
)

// economyService orchestrates the user-facing balance operations: it resolves
// the acting character, checks authorization and external resources, then
// delegates the atomic mutation to the ledger engine. All preconditions run
// before any transactional work; every failure leaves the store unchanged.
type economyService struct {
	accountRepo portsrepo.AccountAccessRepository
	ledgerRepo  portsrepo.LedgerRepository
	characters  portssvc.CharacterResolver
	authorizer  portssvc.ActionAuthorizer
	cash        portssvc.CashInventory
}

// NewEconomyService creates a new economy service.
func NewEconomyService(
	accountRepo portsrepo.AccountAccessRepository,
	ledgerRepo portsrepo.LedgerRepository,
	characters portssvc.CharacterResolver,
	authorizer portssvc.ActionAuthorizer,
	cash portssvc.CashInventory,
) portssvc.EconomySvcFacade {
	return &economyService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		characters:  characters,
		authorizer:  authorizer,
		cash:        cash,
	}
}

var _ portssvc.EconomySvcFacade = (*economyService)(nil)

// authorize resolves the character's role on the account and consults the
// policy collaborator. Denial surfaces as ErrNoAccess before any mutation.
func (s *economyService) authorize(ctx context.Context, char *domain.Character, accountID int64, action domain.AccountAction) error {
	role, err := s.accountRepo.FindAccountRole(ctx, accountID, char.CharacterID)
	if err != nil {
		return err
	}
	allowed, err := s.authorizer.CanPerformAction(ctx, char, accountID, role, action)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ErrNoAccess
	}
	return nil
}

// Deposit moves cash from the character's on-hand holding into the account.
func (s *economyService) Deposit(ctx context.Context, sessionID string, req dto.DepositRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount <= 0 {
		return fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	char, err := s.characters.ResolveCharacter(ctx, sessionID)
	if err != nil {
		return err
	}

	// Cheap resource check first, before any transactional work. The cash
	// holding is re-checked atomically by TryRemove inside the engine scope.
	held, err := s.cash.Count(ctx, char.CharacterID)
	if err != nil {
		return err
	}
	if req.Amount > held {
		return apperrors.ErrInsufficientFunds
	}

	if _, err := s.ledgerRepo.GetBalance(ctx, req.AccountID); err != nil {
		return err
	}

	if err := s.authorize(ctx, char, req.AccountID, domain.ActionDeposit); err != nil {
		return err
	}

	err = s.ledgerRepo.CreditWithFunding(ctx, domain.BalanceAdjustment{
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Direction: domain.DirectionAdd,
		ActorID:   &char.CharacterID,
		Message:   locales.Or(req.Message, locales.KindDeposit),
		Note:      req.Note,
	}, func() bool {
		ok, removeErr := s.cash.TryRemove(ctx, char.CharacterID, req.Amount)
		if removeErr != nil {
			logger.Error("Cash removal failed during deposit",
				slog.Int64("character_id", char.CharacterID),
				slog.String("error", removeErr.Error()))
			return false
		}
		return ok
	})
	if err != nil {
		logger.Warn("Deposit failed",
			slog.Int64("account_id", req.AccountID),
			slog.Int64("amount", req.Amount),
			slog.String("error", err.Error()))
		return err
	}

	logger.Info("Deposit applied",
		slog.Int64("account_id", req.AccountID),
		slog.Int64("character_id", char.CharacterID),
		slog.Int64("amount", req.Amount))
	return nil
}

// Withdraw moves account funds out to the character's cash holding. The debit
// fails closed when the balance cannot cover the amount.
func (s *economyService) Withdraw(ctx context.Context, sessionID string, req dto.WithdrawRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount <= 0 {
		return fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}

	char, err := s.characters.ResolveCharacter(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, char, req.AccountID, domain.ActionWithdraw); err != nil {
		return err
	}

	if _, err := s.ledgerRepo.GetBalance(ctx, req.AccountID); err != nil {
		return err
	}

	err = s.ledgerRepo.DebitWithPayout(ctx, domain.BalanceAdjustment{
		AccountID:      req.AccountID,
		Amount:         req.Amount,
		Direction:      domain.DirectionRemove,
		AllowOverdraft: false,
		ActorID:        &char.CharacterID,
		Message:        locales.Or(req.Message, locales.KindWithdraw),
		Note:           req.Note,
	}, func() bool {
		ok, addErr := s.cash.TryAdd(ctx, char.CharacterID, req.Amount)
		if addErr != nil {
			logger.Error("Cash payout failed during withdrawal",
				slog.Int64("character_id", char.CharacterID),
				slog.String("error", addErr.Error()))
			return false
		}
		return ok
	})
	if err != nil {
		logger.Warn("Withdrawal failed",
			slog.Int64("account_id", req.AccountID),
			slog.Int64("amount", req.Amount),
			slog.String("error", err.Error()))
		return err
	}

	logger.Info("Withdrawal applied",
		slog.Int64("account_id", req.AccountID),
		slog.Int64("character_id", char.CharacterID),
		slog.Int64("amount", req.Amount))
	return nil
}

// Transfer moves funds between two accounts as two atomic legs.
func (s *economyService) Transfer(ctx context.Context, sessionID string, req dto.TransferRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	char, err := s.characters.ResolveCharacter(ctx, sessionID)
	if err != nil {
		return err
	}

	transfer, err := domain.NewAccountTransfer(
		req.FromAccountID, req.ToAccountID, req.Amount,
		&char.CharacterID, req.Message, req.Note,
	)
	if err != nil {
		return err
	}

	// Moving funds out of the source account is a withdrawal as far as policy
	// is concerned.
	if err := s.authorize(ctx, char, req.FromAccountID, domain.ActionWithdraw); err != nil {
		return err
	}

	if err := s.ledgerRepo.Transfer(ctx, transfer); err != nil {
		logger.Warn("Transfer failed",
			slog.Int64("from_account", req.FromAccountID),
			slog.Int64("to_account", req.ToAccountID),
			slog.Int64("amount", req.Amount),
			slog.String("error", err.Error()))
		return err
	}

	logger.Info("Transfer applied",
		slog.Int64("from_account", req.FromAccountID),
		slog.Int64("to_account", req.ToAccountID),
		slog.Int64("amount", req.Amount))
	return nil
}

// TransferDirect is the legacy single-record transfer path.
//
// Deprecated: use Transfer.
func (s *economyService) TransferDirect(ctx context.Context, sessionID string, req dto.TransferRequest) error {
	char, err := s.characters.ResolveCharacter(ctx, sessionID)
	if err != nil {
		return err
	}

	transfer, err := domain.NewAccountTransfer(
		req.FromAccountID, req.ToAccountID, req.Amount,
		&char.CharacterID, req.Message, req.Note,
	)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, char, req.FromAccountID, domain.ActionWithdraw); err != nil {
		return err
	}

	return s.ledgerRepo.TransferDirect(ctx, transfer, false)
}
