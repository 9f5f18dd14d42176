package service

import (
	"context"
	"fmt"
	"time"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/id"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateAccountRequest) (*model.Account, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Account, error)
	Get(ctx context.Context, userID uuid.UUID, accountID uint) (*model.Account, error)
	RecordTransaction(ctx context.Context, userID uuid.UUID, accountID uint, req dto.BalanceTransactionRequest) (*dto.BalanceTransactionResult, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, accountID uint) ([]model.BalanceTransaction, error)
}

type accountService struct {
	log             *logger.Logger
	inmemoryCache   cache.Cache
	accountRepo     repository.AccountRepository
	transactionRepo repository.BalanceTransactionRepository
	uow             repository.UnitOfWork
	now             func() time.Time
}

func NewAccountService(
	log *logger.Logger,
	inmemoryCache cache.Cache,
	accountRepo repository.AccountRepository,
	transactionRepo repository.BalanceTransactionRepository,
	uow repository.UnitOfWork,
) AccountService {
	return &accountService{
		log:             log,
		inmemoryCache:   inmemoryCache,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		uow:             uow,
		now:             nowUTC,
	}
}

func (s *accountService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateAccountRequest) (*model.Account, error) {
	if req.InitialDeposit <= 0 {
		return nil, ErrInvalidAmount
	}
	account := &model.Account{
		UserID:         userID,
		Name:           req.Name,
		Type:           req.Type,
		InitialDeposit: req.InitialDeposit,
		CurrentBalance: req.InitialDeposit,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	s.log.InfoContext(ctx, "Account created", logger.UintField("account_id", account.ID))
	return account, nil
}

func (s *accountService) List(ctx context.Context, userID uuid.UUID) ([]model.Account, error) {
	return s.accountRepo.ListByUser(ctx, userID)
}

func (s *accountService) Get(ctx context.Context, userID uuid.UUID, accountID uint) (*model.Account, error) {
	return ownedAccount(ctx, s.accountRepo, userID, accountID)
}

// RecordTransaction applies a manual balance change and writes its audit row
// in the same database transaction.
func (s *accountService) RecordTransaction(ctx context.Context, userID uuid.UUID, accountID uint, req dto.BalanceTransactionRequest) (*dto.BalanceTransactionResult, error) {
	if _, err := ownedAccount(ctx, s.accountRepo, userID, accountID); err != nil {
		return nil, err
	}

	var result dto.BalanceTransactionResult
	err := s.uow.Run(ctx, func(opts ...utils.DBOption) error {
		account, err := s.accountRepo.GetByID(ctx, accountID, append(opts, utils.WithForUpdate())...)
		if err != nil {
			return notFound(err)
		}

		after, err := applyBalanceChange(account.CurrentBalance, req.Type, req.Amount)
		if err != nil {
			return err
		}

		txn := &model.BalanceTransaction{
			ID:            id.New(),
			AccountID:     account.ID,
			Type:          req.Type,
			Amount:        req.Amount,
			BalanceBefore: account.CurrentBalance,
			BalanceAfter:  after,
			Notes:         req.Notes,
			Date:          s.now(),
		}
		if err := s.transactionRepo.Create(ctx, txn, opts...); err != nil {
			return fmt.Errorf("failed to create balance transaction: %w", err)
		}
		if err := s.accountRepo.UpdateBalance(ctx, account.ID, after, opts...); err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}

		account.CurrentBalance = after
		result = dto.BalanceTransactionResult{Account: account, Transaction: txn}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAnalytics(s.inmemoryCache, accountID)
	s.log.InfoContext(ctx, "Balance transaction recorded",
		logger.UintField("account_id", accountID),
		logger.StringField("type", string(req.Type)),
		logger.FloatField("balance_after", result.Transaction.BalanceAfter),
	)
	return &result, nil
}

func (s *accountService) ListTransactions(ctx context.Context, userID uuid.UUID, accountID uint) ([]model.BalanceTransaction, error) {
	if _, err := ownedAccount(ctx, s.accountRepo, userID, accountID); err != nil {
		return nil, err
	}
	return s.transactionRepo.ListByAccount(ctx, accountID, 0)
}

// applyBalanceChange returns the balance after a manual transaction.
// Adjustments replace the balance outright.
func applyBalanceChange(before float64, typ model.BalanceTransactionType, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	b := decimal.NewFromFloat(before)
	a := decimal.NewFromFloat(amount)

	switch typ {
	case model.BalanceDeposit:
		return b.Add(a).InexactFloat64(), nil
	case model.BalanceWithdrawal:
		if a.GreaterThan(b) {
			return 0, ErrInsufficientBalance
		}
		return b.Sub(a).InexactFloat64(), nil
	case model.BalanceAdjustment:
		return a.InexactFloat64(), nil
	default:
		return 0, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, typ)
	}
}

func ownedAccount(ctx context.Context, repo repository.AccountRepository, userID uuid.UUID, accountID uint) (*model.Account, error) {
	account, err := repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, notFound(err)
	}
	if account.UserID != userID {
		return nil, ErrForbidden
	}
	return account, nil
}
