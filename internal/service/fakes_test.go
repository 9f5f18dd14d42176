package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ownerID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	strangerID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	fixedNow   = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.Scheduler{MaxConcurrency: 2, TimeoutDuration: time.Minute},
		Analytics: config.Analytics{DefaultRange: "all", PageSize: 10, MaxPageSize: 50},
	}
}

func testCache() cache.Cache {
	return cache.NewCache(time.Minute, time.Minute)
}

type fakeUnitOfWork struct {
	runs int
}

func (u *fakeUnitOfWork) Run(_ context.Context, fn func(opts ...utils.DBOption) error) error {
	u.runs++
	return fn()
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uint]*model.Account
	nextID   uint
}

func newFakeAccountRepo(accounts ...model.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{accounts: map[uint]*model.Account{}}
	for i := range accounts {
		a := accounts[i]
		r.accounts[a.ID] = &a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *fakeAccountRepo) Create(_ context.Context, account *model.Account, _ ...utils.DBOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	account.ID = r.nextID
	account.CreatedAt = fixedNow
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id uint, _ ...utils.DBOption) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Account
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAccountRepo) ListAll(_ context.Context) ([]model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Account
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAccountRepo) UpdateBalance(_ context.Context, id uint, balance float64, _ ...utils.DBOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.CurrentBalance = balance
	return nil
}

type fakeBalanceTransactionRepo struct {
	txns []model.BalanceTransaction
}

func (r *fakeBalanceTransactionRepo) Create(_ context.Context, txn *model.BalanceTransaction, _ ...utils.DBOption) error {
	r.txns = append(r.txns, *txn)
	return nil
}

func (r *fakeBalanceTransactionRepo) ListByAccount(_ context.Context, accountID uint, _ int) ([]model.BalanceTransaction, error) {
	var out []model.BalanceTransaction
	for i := len(r.txns) - 1; i >= 0; i-- {
		if r.txns[i].AccountID == accountID {
			out = append(out, r.txns[i])
		}
	}
	return out, nil
}

type fakeTradeRepo struct {
	mu         sync.Mutex
	trades     map[string]*model.Trade
	order      []string
	links      map[string][]string
	failFor    map[uint]error
	listCalls  int
	attachFail error
	// afterGet runs once a read has been copied out, standing in for a
	// concurrent writer.
	afterGet func(id string)
}

func newFakeTradeRepo(trades ...model.Trade) *fakeTradeRepo {
	r := &fakeTradeRepo{trades: map[string]*model.Trade{}, links: map[string][]string{}, failFor: map[uint]error{}}
	for i := range trades {
		t := trades[i]
		r.trades[t.ID] = &t
		r.order = append(r.order, t.ID)
	}
	return r
}

func (r *fakeTradeRepo) Create(_ context.Context, trade *model.Trade, _ ...utils.DBOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *trade
	r.trades[trade.ID] = &cp
	r.order = append(r.order, trade.ID)
	return nil
}

func (r *fakeTradeRepo) AttachRules(_ context.Context, tradeID string, ruleIDs []string, _ ...utils.DBOption) error {
	if r.attachFail != nil {
		return r.attachFail
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[tradeID] = append(r.links[tradeID], ruleIDs...)
	return nil
}

func (r *fakeTradeRepo) GetByID(_ context.Context, id string, _ ...utils.DBOption) (*model.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	if r.afterGet != nil {
		r.afterGet(id)
	}
	return &cp, nil
}

func (r *fakeTradeRepo) Update(_ context.Context, trade *model.Trade, _ ...utils.DBOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *trade
	r.trades[trade.ID] = &cp
	return nil
}

func (r *fakeTradeRepo) UpdatePlan(_ context.Context, trade *model.Trade, _ ...utils.DBOption) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.trades[trade.ID]
	if !ok || stored.Status != model.TradeStatusOpen {
		return 0, nil
	}
	stored.Quantity = trade.Quantity
	stored.TakeProfitAmount = trade.TakeProfitAmount
	stored.StopLossAmount = trade.StopLossAmount
	stored.Notes = trade.Notes
	stored.RiskRewardRatio = trade.RiskRewardRatio
	return 1, nil
}

func (r *fakeTradeRepo) List(_ context.Context, param dto.ListTradesParam) ([]model.Trade, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Trade
	for i := len(r.order) - 1; i >= 0; i-- {
		if t := r.trades[r.order[i]]; t.AccountID == param.AccountID {
			all = append(all, *t)
		}
	}
	page := utils.Page{Number: param.Page, Size: param.PageSize}
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *fakeTradeRepo) ListByAccount(_ context.Context, accountID uint) ([]model.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if err := r.failFor[accountID]; err != nil {
		return nil, err
	}
	var out []model.Trade
	for _, id := range r.order {
		if t := r.trades[id]; t.AccountID == accountID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeSymbolRepo struct {
	symbols map[uint]model.Symbol
}

func (r *fakeSymbolRepo) List(_ context.Context, param dto.GetSymbolsParam) ([]model.Symbol, error) {
	var out []model.Symbol
	for _, s := range r.symbols {
		if param.Type == "" || s.Type == param.Type {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSymbolRepo) GetByID(_ context.Context, id uint) (*model.Symbol, error) {
	s, ok := r.symbols[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *fakeSymbolRepo) Seed(_ context.Context, symbols []model.Symbol) (int64, error) {
	return int64(len(symbols)), nil
}

type fakeRuleRepo struct {
	rules map[string]*model.Rule
}

func (r *fakeRuleRepo) ListForUser(_ context.Context, userID uuid.UUID, activeOnly bool) ([]model.Rule, error) {
	var out []model.Rule
	for _, rule := range r.rules {
		if (rule.IsSystem || (rule.UserID != nil && *rule.UserID == userID)) && (!activeOnly || rule.IsActive) {
			out = append(out, *rule)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) GetByID(_ context.Context, id string) (*model.Rule, error) {
	rule, ok := r.rules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rule
	return &cp, nil
}

func (r *fakeRuleRepo) Create(_ context.Context, rule *model.Rule) error {
	cp := *rule
	r.rules[rule.ID] = &cp
	return nil
}

func (r *fakeRuleRepo) SetActive(_ context.Context, id string, active bool) error {
	r.rules[id].IsActive = active
	return nil
}

func (r *fakeRuleRepo) CountUsable(ctx context.Context, userID uuid.UUID, ids []string) (int64, error) {
	visible, _ := r.ListForUser(ctx, userID, true)
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var n int64
	for _, rule := range visible {
		if want[rule.ID] {
			n++
		}
	}
	return n, nil
}

type fakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots []model.PerformanceSnapshot
}

func (r *fakeSnapshotRepo) Create(_ context.Context, snapshot *model.PerformanceSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, *snapshot)
	return nil
}

func (r *fakeSnapshotRepo) ListByAccount(_ context.Context, accountID uint, _ int) ([]model.PerformanceSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PerformanceSnapshot
	for _, s := range r.snapshots {
		if s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}

var errBoom = errors.New("boom")

func testAccount(id uint, owner uuid.UUID) model.Account {
	return model.Account{
		ID:             id,
		UserID:         owner,
		Name:           "main",
		Type:           model.AccountTypeForex,
		InitialDeposit: 10000,
		CurrentBalance: 10000,
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testClosedTrade(id string, accountID uint, date string, pnl float64) model.Trade {
	d, _ := time.Parse("2006-01-02", date)
	return model.Trade{
		ID:         id,
		UserID:     ownerID,
		AccountID:  accountID,
		SymbolID:   1,
		Symbol:     model.Symbol{ID: 1, Symbol: "EURUSD"},
		Action:     model.TradeActionBuy,
		ActionType: model.ActionTypeMarket,
		Quantity:   1,
		EntryPrice: 100,
		ExitPrice:  utils.ToPointer(100 + pnl),
		TradeDate:  d,
		Status:     model.TradeStatusClosed,
		ProfitLoss: utils.ToPointer(pnl),
	}
}
