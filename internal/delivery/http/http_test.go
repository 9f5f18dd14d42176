package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trading-journal/config"
	"trading-journal/internal/analytics"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/service"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret"

var testUser = uuid.MustParse("33333333-3333-3333-3333-333333333333")

type fakeAnalyticsService struct {
	report    *analytics.Report
	err       error
	gotRange  string
	gotUser   uuid.UUID
	calculate dto.CalculateRequest
}

func (f *fakeAnalyticsService) GetAccountReport(_ context.Context, userID uuid.UUID, _ uint, timeRange string) (*analytics.Report, error) {
	f.gotUser, f.gotRange = userID, timeRange
	return f.report, f.err
}

func (f *fakeAnalyticsService) Calculate(_ context.Context, req dto.CalculateRequest) (*analytics.Report, error) {
	f.calculate = req
	return f.report, f.err
}

func (f *fakeAnalyticsService) CaptureSnapshots(context.Context) (int, error) {
	return 0, nil
}

func (f *fakeAnalyticsService) ListSnapshots(context.Context, uuid.UUID, uint) ([]model.PerformanceSnapshot, error) {
	return nil, f.err
}

type fakeTradeService struct {
	err error
}

func (f *fakeTradeService) Create(_ context.Context, userID uuid.UUID, req dto.CreateTradeRequest) (*model.Trade, error) {
	return &model.Trade{ID: "new", UserID: userID, AccountID: req.AccountID}, f.err
}

func (f *fakeTradeService) Update(_ context.Context, _ uuid.UUID, tradeID string, _ dto.UpdateTradeRequest) (*model.Trade, error) {
	return &model.Trade{ID: tradeID}, f.err
}

func (f *fakeTradeService) Close(_ context.Context, _ uuid.UUID, tradeID string, _ dto.CloseTradeRequest) (*model.Trade, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Trade{ID: tradeID, Status: model.TradeStatusClosed}, nil
}

func (f *fakeTradeService) List(_ context.Context, _ uuid.UUID, param dto.ListTradesParam) (*dto.PageResult[model.Trade], error) {
	return &dto.PageResult[model.Trade]{Items: []model.Trade{}, Page: param.Page, PageSize: param.PageSize}, f.err
}

type fakeAccountService struct {
	err error
}

func (f *fakeAccountService) Create(_ context.Context, userID uuid.UUID, req dto.CreateAccountRequest) (*model.Account, error) {
	return &model.Account{ID: 1, UserID: userID, Name: req.Name, InitialDeposit: req.InitialDeposit, CurrentBalance: req.InitialDeposit}, f.err
}

func (f *fakeAccountService) List(context.Context, uuid.UUID) ([]model.Account, error) {
	return []model.Account{}, f.err
}

func (f *fakeAccountService) Get(_ context.Context, userID uuid.UUID, accountID uint) (*model.Account, error) {
	return &model.Account{ID: accountID, UserID: userID}, f.err
}

func (f *fakeAccountService) RecordTransaction(context.Context, uuid.UUID, uint, dto.BalanceTransactionRequest) (*dto.BalanceTransactionResult, error) {
	return nil, f.err
}

func (f *fakeAccountService) ListTransactions(context.Context, uuid.UUID, uint) ([]model.BalanceTransaction, error) {
	return nil, f.err
}

type fakeRuleService struct {
	err error
}

func (f *fakeRuleService) List(context.Context, uuid.UUID, bool) ([]model.Rule, error) {
	return []model.Rule{}, f.err
}

func (f *fakeRuleService) Create(_ context.Context, userID uuid.UUID, req dto.CreateRuleRequest) (*model.Rule, error) {
	return &model.Rule{ID: "new", UserID: &userID, Title: req.Title, IsActive: true}, f.err
}

func (f *fakeRuleService) Toggle(_ context.Context, _ uuid.UUID, ruleID string) (*model.Rule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Rule{ID: ruleID}, nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

type testServer struct {
	echo      *echo.Echo
	analytics *fakeAnalyticsService
	trades    *fakeTradeService
	accounts  *fakeAccountService
	rules     *fakeRuleService
	token     string
}

func newTestServer(t *testing.T, health HealthChecker) *testServer {
	t.Helper()
	ts := &testServer{
		echo:      echo.New(),
		analytics: &fakeAnalyticsService{},
		trades:    &fakeTradeService{},
		accounts:  &fakeAccountService{},
		rules:     &fakeRuleService{},
	}
	svc := &service.Service{
		AccountService:   ts.accounts,
		TradeService:     ts.trades,
		RuleService:      ts.rules,
		AnalyticsService: ts.analytics,
	}
	log := logger.NewNop()
	auth := middleware.NewAuthMiddleware(middleware.NewTokenVerifier(config.Auth{JWTSecret: testSecret}), log)
	NewHttpAPIHandler(ts.echo, goValidator.New(), svc, log, RouteMiddlewares{Auth: auth}, health).SetupRoutes()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: testUser.String()}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	ts.token = token
	return ts
}

func (ts *testServer) do(method, path, body string, authenticated bool) (*httptest.ResponseRecorder, dto.BaseResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authenticated {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+ts.token)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)

	var resp dto.BaseResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestHealth(t *testing.T) {
	rec, _ := newTestServer(t, fakePinger{}).do(http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := newTestServer(t, fakePinger{err: assert.AnError}).do(http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func sampleReport() *analytics.Report {
	return &analytics.Report{
		Window:      analytics.Window30D,
		GeneratedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalTrades: 3,
		Summary: analytics.Summary{
			ClosedTrades:    3,
			WinningTrades:   2,
			LosingTrades:    1,
			TotalProfitLoss: 123.456,
			WinRate:         200.0 / 3,
		},
		EquityCurve: []analytics.EquityPoint{
			{Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Balance: 10123.456, TradeDelta: 123.456},
		},
	}
}

func TestGetAccountAnalytics(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.analytics.report = sampleReport()

	rec, _ := ts.do(http.MethodGet, "/api/v1/accounts/1/analytics?range=30d", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/v1/accounts/1/analytics?range=30d", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "30d", ts.analytics.gotRange)
	assert.Equal(t, testUser, ts.analytics.gotUser)

	var body struct {
		Data dto.MetricsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 66.67, body.Data.WinRate)
	assert.Equal(t, 123.46, body.Data.TotalProfitLoss)
	require.Len(t, body.Data.EquityCurve, 1)
	assert.Equal(t, "2025-02-01", body.Data.EquityCurve[0].Date)
	assert.Equal(t, 10123.46, body.Data.EquityCurve[0].Balance)

	rec, _ = ts.do(http.MethodGet, "/api/v1/accounts/abc/analytics", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: service.ErrNotFound, want: http.StatusNotFound},
		{name: "forbidden", err: service.ErrForbidden, want: http.StatusForbidden},
		{name: "invalid range", err: service.ErrInvalidRange, want: http.StatusBadRequest},
		{name: "already closed", err: service.ErrTradeAlreadyClosed, want: http.StatusConflict},
		{name: "system rule", err: service.ErrRuleNotEditable, want: http.StatusConflict},
		{name: "insufficient balance", err: service.ErrInsufficientBalance, want: http.StatusUnprocessableEntity},
		{name: "unexpected", err: assert.AnError, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.analytics.err = tt.err

			rec, resp := ts.do(http.MethodGet, "/api/v1/accounts/1/analytics", "", true)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want, resp.Code)
			if tt.want == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", resp.Message)
			}
		})
	}
}

func TestCloseTrade(t *testing.T) {
	ts := newTestServer(t, nil)

	rec, _ := ts.do(http.MethodPost, "/api/v1/trades/t1/close", `{"exit_price": 1.25}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(http.MethodPost, "/api/v1/trades/t1/close", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.trades.err = service.ErrTradeAlreadyClosed
	rec, resp := ts.do(http.MethodPost, "/api/v1/trades/t1/close", `{"exit_price": 1.25}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.ErrTradeAlreadyClosed.Error(), resp.Message)
}

func TestToggleRule(t *testing.T) {
	ts := newTestServer(t, nil)

	rec, _ := ts.do(http.MethodPatch, "/api/v1/rules/mine/toggle", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	ts.rules.err = service.ErrRuleNotEditable
	rec, resp := ts.do(http.MethodPatch, "/api/v1/rules/sys/toggle", "", true)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.ErrRuleNotEditable.Error(), resp.Message)

	ts.rules.err = service.ErrForbidden
	rec, _ = ts.do(http.MethodPatch, "/api/v1/rules/other/toggle", "", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateTradeValidation(t *testing.T) {
	ts := newTestServer(t, nil)

	valid := `{"account_id":1,"symbol_id":2,"action":"sell","action_type":"limit","quantity":1,"entry_price":10,
		"trade_date":"2025-02-03","risk_reward_ratio":"1:2","rule_ids":["r1"]}`
	rec, _ := ts.do(http.MethodPost, "/api/v1/trades", valid, true)
	assert.Equal(t, http.StatusCreated, rec.Code)

	invalid := []string{
		`{"account_id":1,"symbol_id":2,"action":"hold","action_type":"limit","quantity":1,"entry_price":10,"trade_date":"2025-02-03"}`,
		`{"account_id":1,"symbol_id":2,"action":"buy","action_type":"limit","quantity":0,"entry_price":10,"trade_date":"2025-02-03"}`,
		`{"account_id":1,"symbol_id":2,"action":"buy","action_type":"limit","quantity":1,"entry_price":10,"trade_date":"03/02/2025"}`,
		`{"account_id":1,"symbol_id":2,"action":"buy","action_type":"limit","quantity":1,"entry_price":10,"trade_date":"2025-02-03","risk_reward_ratio":"2:1"}`,
		`not json`,
	}
	for _, body := range invalid {
		rec, _ := ts.do(http.MethodPost, "/api/v1/trades", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCalculateAnalytics(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.analytics.report = sampleReport()

	body := `{"range":"all","account":{"initial_deposit":10000,"current_balance":10000,"created_at":"2025-01-01"},
		"trades":[{"id":"a","symbol":"EURUSD","action":"buy","quantity":1,"entry_price":1.1,"date":"2025-01-02","status":"open"}]}`
	rec, _ := ts.do(http.MethodPost, "/api/v1/analytics/calculate", body, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ts.analytics.calculate.Trades, 1)
	assert.Equal(t, 1.1, *ts.analytics.calculate.Trades[0].EntryPrice)

	rec, _ = ts.do(http.MethodPost, "/api/v1/analytics/calculate", `{"account":{"initial_deposit":0,"created_at":"2025-01-01"}}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTradesPagination(t *testing.T) {
	ts := newTestServer(t, nil)

	rec, _ := ts.do(http.MethodGet, "/api/v1/accounts/1/trades?page=2&page_size=5", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data dto.PageResult[model.Trade] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Page)
	assert.Equal(t, 5, body.Data.PageSize)

	rec, _ = ts.do(http.MethodGet, "/api/v1/accounts/1/trades?page=two", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
