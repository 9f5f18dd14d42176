package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"trading-journal/config"
	"trading-journal/internal/analytics"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

const defaultSnapshotLimit = 90

type AnalyticsService interface {
	GetAccountReport(ctx context.Context, userID uuid.UUID, accountID uint, timeRange string) (*analytics.Report, error)
	Calculate(ctx context.Context, req dto.CalculateRequest) (*analytics.Report, error)
	CaptureSnapshots(ctx context.Context) (int, error)
	ListSnapshots(ctx context.Context, userID uuid.UUID, accountID uint) ([]model.PerformanceSnapshot, error)
}

type analyticsService struct {
	cfg           *config.Config
	log           *logger.Logger
	inmemoryCache cache.Cache
	accountRepo   repository.AccountRepository
	tradeRepo     repository.TradeRepository
	snapshotRepo  repository.SnapshotRepository
	now           func() time.Time
}

func NewAnalyticsService(
	cfg *config.Config,
	log *logger.Logger,
	inmemoryCache cache.Cache,
	accountRepo repository.AccountRepository,
	tradeRepo repository.TradeRepository,
	snapshotRepo repository.SnapshotRepository,
) AnalyticsService {
	return &analyticsService{
		cfg:           cfg,
		log:           log,
		inmemoryCache: inmemoryCache,
		accountRepo:   accountRepo,
		tradeRepo:     tradeRepo,
		snapshotRepo:  snapshotRepo,
		now:           nowUTC,
	}
}

// GetAccountReport computes the dashboard metrics for one account. Reports are
// cached per account and range until the account's trades or balance change.
func (s *analyticsService) GetAccountReport(ctx context.Context, userID uuid.UUID, accountID uint, timeRange string) (*analytics.Report, error) {
	window, err := s.parseWindow(timeRange)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(common.KEY_ANALYTICS_REPORT, accountID, window)
	if report, found := cache.GetAs[*analytics.Report](s.inmemoryCache, key); found {
		// ownership still has to be checked on a cache hit
		if _, err := ownedAccount(ctx, s.accountRepo, userID, accountID); err != nil {
			return nil, err
		}
		return report, nil
	}

	var (
		account *model.Account
		trades  []model.Trade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		account, err = s.accountRepo.GetByID(gctx, accountID)
		return notFound(err)
	})
	g.Go(func() error {
		var err error
		trades, err = s.tradeRepo.ListByAccount(gctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load account data: %w", err)
	}
	if account.UserID != userID {
		return nil, ErrForbidden
	}

	report := s.compute(ctx, account, trades, window)
	s.inmemoryCache.Set(key, report, cache.DefaultExpiration)
	return report, nil
}

// Calculate runs the metrics over a caller-supplied snapshot without touching storage.
func (s *analyticsService) Calculate(ctx context.Context, req dto.CalculateRequest) (*analytics.Report, error) {
	window, err := s.parseWindow(req.Range)
	if err != nil {
		return nil, err
	}
	createdAt, err := analytics.ParseDate(req.Account.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: account created_at: %v", ErrInvalidInput, err)
	}
	if req.Account.InitialDeposit <= 0 {
		return nil, fmt.Errorf("%w: initial deposit must be positive", ErrInvalidAmount)
	}

	report := analytics.Compute(analytics.Input{
		Account: analytics.Account{
			InitialDeposit: req.Account.InitialDeposit,
			CurrentBalance: req.Account.CurrentBalance,
			CreatedAt:      createdAt,
		},
		Trades: req.Trades,
		Window: window,
		Now:    s.now(),
	})
	s.logRejections(ctx, report.Rejected)
	return &report, nil
}

// CaptureSnapshots stores the all-time report of every account. Accounts are
// processed concurrently up to the scheduler's concurrency limit; a failing
// account is logged and skipped.
func (s *analyticsService) CaptureSnapshots(ctx context.Context) (int, error) {
	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	results := make([]bool, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.Scheduler.MaxConcurrency > 0 {
		g.SetLimit(s.cfg.Scheduler.MaxConcurrency)
	}
	for i := range accounts {
		account := accounts[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if err := s.captureSnapshot(gctx, &account); err != nil {
				s.log.ErrorContext(gctx, "Failed to capture performance snapshot",
					logger.ErrorField(err),
					logger.UintField("account_id", account.ID),
				)
				return nil
			}
			results[i] = true
			return nil
		})
	}
	err = g.Wait()

	captured := 0
	for _, ok := range results {
		if ok {
			captured++
		}
	}
	s.log.InfoContext(ctx, "Performance snapshots captured",
		logger.IntField("accounts", len(accounts)),
		logger.IntField("captured", captured),
	)
	return captured, err
}

func (s *analyticsService) captureSnapshot(ctx context.Context, account *model.Account) error {
	trades, err := s.tradeRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("failed to list trades: %w", err)
	}

	report := s.compute(ctx, account, trades, analytics.WindowAll)
	metrics, err := json.Marshal(dto.NewMetricsResponse(*report))
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}

	return s.snapshotRepo.Create(ctx, &model.PerformanceSnapshot{
		AccountID:  account.ID,
		Range:      string(analytics.WindowAll),
		Metrics:    datatypes.JSON(metrics),
		CapturedAt: report.GeneratedAt,
	})
}

func (s *analyticsService) ListSnapshots(ctx context.Context, userID uuid.UUID, accountID uint) ([]model.PerformanceSnapshot, error) {
	if _, err := ownedAccount(ctx, s.accountRepo, userID, accountID); err != nil {
		return nil, err
	}
	return s.snapshotRepo.ListByAccount(ctx, accountID, defaultSnapshotLimit)
}

func (s *analyticsService) compute(ctx context.Context, account *model.Account, trades []model.Trade, window analytics.Window) *analytics.Report {
	report := analytics.Compute(analytics.Input{
		Account: toAnalyticsAccount(account),
		Trades:  toRawTrades(trades),
		Window:  window,
		Now:     s.now(),
	})
	s.logRejections(ctx, report.Rejected)
	return &report
}

func (s *analyticsService) parseWindow(timeRange string) (analytics.Window, error) {
	if timeRange == "" {
		timeRange = s.cfg.Analytics.DefaultRange
	}
	window, err := analytics.ParseWindow(timeRange)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return window, nil
}

func (s *analyticsService) logRejections(ctx context.Context, rejected []analytics.Rejection) {
	for _, r := range rejected {
		s.log.WarnContext(ctx, "Trade excluded from metrics",
			logger.StringField("trade_id", r.TradeID),
			logger.StringField("reason", r.Reason),
		)
	}
}

func invalidateAnalytics(c cache.Cache, accountID uint) {
	c.DeletePrefix(fmt.Sprintf(common.KEY_ANALYTICS_ACCOUNT, accountID))
}

func toAnalyticsAccount(a *model.Account) analytics.Account {
	return analytics.Account{
		ID:             strconv.FormatUint(uint64(a.ID), 10),
		InitialDeposit: a.InitialDeposit,
		CurrentBalance: a.CurrentBalance,
		CreatedAt:      a.CreatedAt,
	}
}

func toRawTrades(trades []model.Trade) []analytics.RawTrade {
	raw := make([]analytics.RawTrade, 0, len(trades))
	for _, t := range trades {
		raw = append(raw, analytics.RawTrade{
			ID:               t.ID,
			AccountID:        strconv.FormatUint(uint64(t.AccountID), 10),
			Symbol:           t.Symbol.Symbol,
			Action:           string(t.Action),
			Quantity:         utils.ToPointer(t.Quantity),
			EntryPrice:       utils.ToPointer(t.EntryPrice),
			ExitPrice:        t.ExitPrice,
			TakeProfitAmount: t.TakeProfitAmount,
			StopLossAmount:   t.StopLossAmount,
			Date:             t.TradeDate.Format(analytics.DateLayout),
			Status:           string(t.Status),
			ProfitLoss:       t.ProfitLoss,
			Notes:            t.Notes,
			RiskRewardRatio:  t.RiskRewardRatio,
		})
	}
	return raw
}
