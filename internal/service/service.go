package service

import (
	"time"

	"trading-journal/config"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/logger"
)

type Service struct {
	AccountService   AccountService
	TradeService     TradeService
	SymbolService    SymbolService
	RuleService      RuleService
	AnalyticsService AnalyticsService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	analyticsService := NewAnalyticsService(cfg, log, inmemoryCache, repo.AccountRepo, repo.TradeRepo, repo.SnapshotRepo)
	return &Service{
		AccountService:   NewAccountService(log, inmemoryCache, repo.AccountRepo, repo.BalanceTransactionRepo, repo.UnitOfWork),
		TradeService:     NewTradeService(cfg, log, inmemoryCache, repo.AccountRepo, repo.TradeRepo, repo.SymbolRepo, repo.RuleRepo, repo.UnitOfWork),
		SymbolService:    NewSymbolService(log, repo.SymbolRepo),
		RuleService:      NewRuleService(log, repo.RuleRepo),
		AnalyticsService: analyticsService,
		SchedulerService: NewSchedulerService(cfg, log, analyticsService),
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
