package service

import (
	"context"
	"fmt"
	"time"

	"trading-journal/config"
	"trading-journal/internal/analytics"
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

type TradeService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateTradeRequest) (*model.Trade, error)
	Update(ctx context.Context, userID uuid.UUID, tradeID string, req dto.UpdateTradeRequest) (*model.Trade, error)
	Close(ctx context.Context, userID uuid.UUID, tradeID string, req dto.CloseTradeRequest) (*model.Trade, error)
	List(ctx context.Context, userID uuid.UUID, param dto.ListTradesParam) (*dto.PageResult[model.Trade], error)
}

type tradeService struct {
	cfg           *config.Config
	log           *logger.Logger
	inmemoryCache cache.Cache
	accountRepo   repository.AccountRepository
	tradeRepo     repository.TradeRepository
	symbolRepo    repository.SymbolRepository
	ruleRepo      repository.RuleRepository
	uow           repository.UnitOfWork
	now           func() time.Time
}

func NewTradeService(
	cfg *config.Config,
	log *logger.Logger,
	inmemoryCache cache.Cache,
	accountRepo repository.AccountRepository,
	tradeRepo repository.TradeRepository,
	symbolRepo repository.SymbolRepository,
	ruleRepo repository.RuleRepository,
	uow repository.UnitOfWork,
) TradeService {
	return &tradeService{
		cfg:           cfg,
		log:           log,
		inmemoryCache: inmemoryCache,
		accountRepo:   accountRepo,
		tradeRepo:     tradeRepo,
		symbolRepo:    symbolRepo,
		ruleRepo:      ruleRepo,
		uow:           uow,
		now:           nowUTC,
	}
}

// Create journals a new open trade together with its rule checklist.
func (s *tradeService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateTradeRequest) (*model.Trade, error) {
	if _, err := ownedAccount(ctx, s.accountRepo, userID, req.AccountID); err != nil {
		return nil, err
	}
	if _, err := s.symbolRepo.GetByID(ctx, req.SymbolID); err != nil {
		return nil, fmt.Errorf("symbol %d: %w", req.SymbolID, notFound(err))
	}

	tradeDate, err := time.Parse(analytics.DateLayout, req.TradeDate)
	if err != nil {
		return nil, fmt.Errorf("%w: trade date %q", ErrInvalidInput, req.TradeDate)
	}

	ruleIDs := uniqueStrings(req.RuleIDs)
	if len(ruleIDs) > 0 {
		usable, err := s.ruleRepo.CountUsable(ctx, userID, ruleIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to check rules: %w", err)
		}
		if usable != int64(len(ruleIDs)) {
			return nil, fmt.Errorf("rule: %w", ErrNotFound)
		}
	}

	trade := &model.Trade{
		ID:               id.New(),
		UserID:           userID,
		AccountID:        req.AccountID,
		SymbolID:         req.SymbolID,
		Action:           model.TradeAction(req.Action),
		ActionType:       model.TradeActionType(req.ActionType),
		Quantity:         req.Quantity,
		EntryPrice:       req.EntryPrice,
		TakeProfitAmount: req.TakeProfitAmount,
		StopLossAmount:   req.StopLossAmount,
		TradeDate:        tradeDate,
		Status:           model.TradeStatusOpen,
		Notes:            req.Notes,
		Emotion:          req.Emotion,
		RiskRewardRatio:  req.RiskRewardRatio,
	}

	err = s.uow.Run(ctx, func(opts ...utils.DBOption) error {
		if err := s.tradeRepo.Create(ctx, trade, opts...); err != nil {
			return fmt.Errorf("failed to create trade: %w", err)
		}
		if err := s.tradeRepo.AttachRules(ctx, trade.ID, ruleIDs, opts...); err != nil {
			return fmt.Errorf("failed to link trade rules: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAnalytics(s.inmemoryCache, trade.AccountID)
	s.log.InfoContext(ctx, "Trade created",
		logger.StringField("trade_id", trade.ID),
		logger.UintField("account_id", trade.AccountID),
		logger.IntField("rules", len(ruleIDs)),
	)
	return s.tradeRepo.GetByID(ctx, trade.ID)
}

// Update edits the plan of an open trade. The row is locked for the edit and
// the write only lands while the trade is still open.
func (s *tradeService) Update(ctx context.Context, userID uuid.UUID, tradeID string, req dto.UpdateTradeRequest) (*model.Trade, error) {
	var updated *model.Trade
	err := s.uow.Run(ctx, func(opts ...utils.DBOption) error {
		trade, err := s.tradeRepo.GetByID(ctx, tradeID, append(opts, utils.WithForUpdate())...)
		if err != nil {
			return notFound(err)
		}
		if trade.UserID != userID {
			return ErrNotFound
		}
		if trade.IsClosed() {
			return ErrTradeAlreadyClosed
		}

		if req.Quantity != nil {
			trade.Quantity = *req.Quantity
		}
		if req.TakeProfitAmount != nil {
			trade.TakeProfitAmount = req.TakeProfitAmount
		}
		if req.StopLossAmount != nil {
			trade.StopLossAmount = req.StopLossAmount
		}
		if req.Notes != nil {
			trade.Notes = *req.Notes
		}
		if req.RiskRewardRatio != nil {
			trade.RiskRewardRatio = *req.RiskRewardRatio
		}

		rows, err := s.tradeRepo.UpdatePlan(ctx, trade, opts...)
		if err != nil {
			return fmt.Errorf("failed to update trade: %w", err)
		}
		if rows == 0 {
			return ErrTradeAlreadyClosed
		}
		updated = trade
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAnalytics(s.inmemoryCache, updated.AccountID)
	return updated, nil
}

// Close realizes an open trade. A trade can only be closed once. The result is
// derived from the exit price unless the caller states it.
func (s *tradeService) Close(ctx context.Context, userID uuid.UUID, tradeID string, req dto.CloseTradeRequest) (*model.Trade, error) {
	if req.ExitPrice <= 0 {
		return nil, fmt.Errorf("%w: exit price must be positive", ErrInvalidInput)
	}

	var closed *model.Trade
	err := s.uow.Run(ctx, func(opts ...utils.DBOption) error {
		trade, err := s.tradeRepo.GetByID(ctx, tradeID, append(opts, utils.WithForUpdate())...)
		if err != nil {
			return notFound(err)
		}
		if trade.UserID != userID {
			return ErrNotFound
		}
		if trade.IsClosed() {
			return ErrTradeAlreadyClosed
		}

		profitLoss := realizedProfitLoss(trade.Action, trade.EntryPrice, req.ExitPrice, trade.Quantity)
		if req.ProfitLoss != nil {
			profitLoss = *req.ProfitLoss
		}
		closedAt := s.now()

		trade.ExitPrice = utils.ToPointer(req.ExitPrice)
		trade.ProfitLoss = utils.ToPointer(profitLoss)
		trade.Status = model.TradeStatusClosed
		trade.ClosedAt = &closedAt

		if err := s.tradeRepo.Update(ctx, trade, opts...); err != nil {
			return fmt.Errorf("failed to close trade: %w", err)
		}
		closed = trade
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAnalytics(s.inmemoryCache, closed.AccountID)
	s.log.InfoContext(ctx, "Trade closed",
		logger.StringField("trade_id", closed.ID),
		logger.FloatField("profit_loss", *closed.ProfitLoss),
	)
	return closed, nil
}

func (s *tradeService) List(ctx context.Context, userID uuid.UUID, param dto.ListTradesParam) (*dto.PageResult[model.Trade], error) {
	if _, err := ownedAccount(ctx, s.accountRepo, userID, param.AccountID); err != nil {
		return nil, err
	}

	page := utils.NewPage(param.Page, param.PageSize, s.cfg.Analytics.PageSize, s.cfg.Analytics.MaxPageSize)
	param.Page, param.PageSize = page.Number, page.Size

	trades, total, err := s.tradeRepo.List(ctx, param)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	if trades == nil {
		trades = []model.Trade{}
	}

	return &dto.PageResult[model.Trade]{
		Items:      trades,
		Page:       page.Number,
		PageSize:   page.Size,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}, nil
}

// realizedProfitLoss is (exit - entry) x quantity for a long position and the
// reverse for a short one.
func realizedProfitLoss(action model.TradeAction, entry, exit, quantity float64) float64 {
	move := decimal.NewFromFloat(exit).Sub(decimal.NewFromFloat(entry))
	if action == model.TradeActionSell {
		move = move.Neg()
	}
	return move.Mul(decimal.NewFromFloat(quantity)).InexactFloat64()
}

func uniqueStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
