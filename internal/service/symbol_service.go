package service

import (
	"context"
	"fmt"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"
)

type SymbolService interface {
	List(ctx context.Context, param dto.GetSymbolsParam) ([]model.Symbol, error)
	Seed(ctx context.Context) (int64, error)
}

type symbolService struct {
	log        *logger.Logger
	symbolRepo repository.SymbolRepository
}

func NewSymbolService(log *logger.Logger, symbolRepo repository.SymbolRepository) SymbolService {
	return &symbolService{
		log:        log,
		symbolRepo: symbolRepo,
	}
}

func (s *symbolService) List(ctx context.Context, param dto.GetSymbolsParam) ([]model.Symbol, error) {
	if param.Type != "" && !validSymbolType(param.Type) {
		return nil, fmt.Errorf("%w: symbol type %q", ErrInvalidInput, param.Type)
	}
	return s.symbolRepo.List(ctx, param)
}

// Seed inserts the default catalog. Symbols already present are left untouched.
func (s *symbolService) Seed(ctx context.Context) (int64, error) {
	catalog := DefaultSymbols()
	added, err := s.symbolRepo.Seed(ctx, catalog)
	if err != nil {
		return 0, fmt.Errorf("failed to seed symbols: %w", err)
	}
	s.log.InfoContext(ctx, "Symbol catalog seeded",
		logger.IntField("catalog", len(catalog)),
		logger.IntField("added", int(added)),
	)
	return added, nil
}

func validSymbolType(t model.SymbolType) bool {
	switch t {
	case model.SymbolTypeForex, model.SymbolTypeStocks, model.SymbolTypeCrypto, model.SymbolTypeFutures, model.SymbolTypeIndices:
		return true
	}
	return false
}

// DefaultSymbols is the catalog installed by the seed command.
func DefaultSymbols() []model.Symbol {
	entries := []struct {
		symbol, name string
		kind         model.SymbolType
	}{
		{"EURUSD", "Euro / US Dollar", model.SymbolTypeForex},
		{"GBPUSD", "British Pound / US Dollar", model.SymbolTypeForex},
		{"USDJPY", "US Dollar / Japanese Yen", model.SymbolTypeForex},
		{"USDCHF", "US Dollar / Swiss Franc", model.SymbolTypeForex},
		{"USDCAD", "US Dollar / Canadian Dollar", model.SymbolTypeForex},
		{"AUDUSD", "Australian Dollar / US Dollar", model.SymbolTypeForex},
		{"NZDUSD", "New Zealand Dollar / US Dollar", model.SymbolTypeForex},
		{"EURJPY", "Euro / Japanese Yen", model.SymbolTypeForex},
		{"GBPJPY", "British Pound / Japanese Yen", model.SymbolTypeForex},
		{"EURGBP", "Euro / British Pound", model.SymbolTypeForex},
		{"US500", "S&P 500 Index", model.SymbolTypeIndices},
		{"US100", "NASDAQ 100 Index", model.SymbolTypeIndices},
		{"US30", "Dow Jones 30 Index", model.SymbolTypeIndices},
		{"GER40", "Germany 40 (DAX)", model.SymbolTypeIndices},
		{"UK100", "FTSE 100", model.SymbolTypeIndices},
		{"JPN225", "Nikkei 225", model.SymbolTypeIndices},
		{"HK50", "Hang Seng Index", model.SymbolTypeIndices},
		{"BTCUSD", "Bitcoin / US Dollar", model.SymbolTypeCrypto},
		{"ETHUSD", "Ethereum / US Dollar", model.SymbolTypeCrypto},
		{"SOLUSD", "Solana / US Dollar", model.SymbolTypeCrypto},
		{"XRPUSD", "XRP / US Dollar", model.SymbolTypeCrypto},
		{"BNBUSD", "BNB / US Dollar", model.SymbolTypeCrypto},
		{"ES", "E-mini S&P 500 (CME)", model.SymbolTypeFutures},
		{"NQ", "E-mini Nasdaq 100 (CME)", model.SymbolTypeFutures},
		{"YM", "E-mini Dow (CBOT)", model.SymbolTypeFutures},
		{"RTY", "E-mini Russell 2000 (CME)", model.SymbolTypeFutures},
		{"CL", "Crude Oil WTI (NYMEX)", model.SymbolTypeFutures},
		{"GC", "Gold (COMEX)", model.SymbolTypeFutures},
		{"SI", "Silver (COMEX)", model.SymbolTypeFutures},
		{"AAPL", "Apple Inc.", model.SymbolTypeStocks},
		{"MSFT", "Microsoft Corporation", model.SymbolTypeStocks},
		{"AMZN", "Amazon.com, Inc.", model.SymbolTypeStocks},
		{"GOOGL", "Alphabet Inc. (Class A)", model.SymbolTypeStocks},
		{"META", "Meta Platforms, Inc.", model.SymbolTypeStocks},
		{"TSLA", "Tesla, Inc.", model.SymbolTypeStocks},
		{"NVDA", "NVIDIA Corporation", model.SymbolTypeStocks},
		{"AVGO", "Broadcom Inc.", model.SymbolTypeStocks},
		{"AMD", "Advanced Micro Devices, Inc.", model.SymbolTypeStocks},
		{"INTC", "Intel Corporation", model.SymbolTypeStocks},
	}

	symbols := make([]model.Symbol, 0, len(entries))
	for _, e := range entries {
		symbols = append(symbols, model.Symbol{Symbol: e.symbol, Name: e.name, Type: e.kind, IsActive: true})
	}
	return symbols
}
