package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/retailboard/backend/internal/application/analytics"
	reportapp "github.com/retailboard/backend/internal/application/report"
	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/domain/org"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===================== fakes =====================

type fakeDailyRepo struct {
	byID map[string]report.DailyReport
}

func newFakeDailyRepo() *fakeDailyRepo {
	return &fakeDailyRepo{byID: make(map[string]report.DailyReport)}
}

func (f *fakeDailyRepo) Create(_ context.Context, r *report.DailyReport) error {
	f.byID[r.ID.String()] = *r
	return nil
}

func (f *fakeDailyRepo) Update(_ context.Context, r *report.DailyReport) error {
	if _, ok := f.byID[r.ID.String()]; !ok {
		return shared.ErrNotFound
	}
	f.byID[r.ID.String()] = *r
	return nil
}

func (f *fakeDailyRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeDailyRepo) FindByID(_ context.Context, id string) (*report.DailyReport, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &r, nil
}

func (f *fakeDailyRepo) FindAll(_ context.Context) ([]report.DailyReport, error) {
	out := make([]report.DailyReport, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeDailyRepo) FindByPeriod(_ context.Context, year, month int) ([]report.DailyReport, error) {
	var out []report.DailyReport
	for _, r := range f.byID {
		if r.Date.InPeriod(year, month) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDailyRepo) FindByStoreAndPeriod(_ context.Context, storeName string, year, month int) ([]report.DailyReport, error) {
	var out []report.DailyReport
	for _, r := range f.byID {
		if r.StoreName == storeName && r.Date.InPeriod(year, month) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTherapistRepo struct {
	byID map[string]report.TherapistDailyReport
}

func newFakeTherapistRepo() *fakeTherapistRepo {
	return &fakeTherapistRepo{byID: make(map[string]report.TherapistDailyReport)}
}

func (f *fakeTherapistRepo) Create(_ context.Context, r *report.TherapistDailyReport) error {
	f.byID[r.ID.String()] = *r
	return nil
}

func (f *fakeTherapistRepo) Update(_ context.Context, r *report.TherapistDailyReport) error {
	if _, ok := f.byID[r.ID.String()]; !ok {
		return shared.ErrNotFound
	}
	f.byID[r.ID.String()] = *r
	return nil
}

func (f *fakeTherapistRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTherapistRepo) FindByID(_ context.Context, id string) (*report.TherapistDailyReport, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &r, nil
}

func (f *fakeTherapistRepo) FindAll(_ context.Context) ([]report.TherapistDailyReport, error) {
	out := make([]report.TherapistDailyReport, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeTherapistRepo) FindByPeriod(_ context.Context, year, month int) ([]report.TherapistDailyReport, error) {
	var out []report.TherapistDailyReport
	for _, r := range f.byID {
		if r.Date.InPeriod(year, month) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeBudgetRepo struct {
	byKey map[string]budget.Target
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{byKey: make(map[string]budget.Target)}
}

func (f *fakeBudgetRepo) Upsert(_ context.Context, t *budget.Target) error {
	f.byKey[t.Key()] = *t
	return nil
}

func (f *fakeBudgetRepo) FindByPeriod(_ context.Context, year, month int) ([]budget.Target, error) {
	var out []budget.Target
	for _, t := range f.byKey {
		if t.Year == year && t.Month == month {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) FindByYear(_ context.Context, year int) ([]budget.Target, error) {
	var out []budget.Target
	for _, t := range f.byKey {
		if t.Year == year {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) IndexForYear(ctx context.Context, year int) (budget.Index, error) {
	targets, _ := f.FindByYear(ctx, year)
	return budget.NewIndex(targets), nil
}

type fakeOrgRepo struct {
	regions map[string][]string
}

func (f *fakeOrgRepo) GetHierarchy(_ context.Context) (org.Hierarchy, error) {
	return org.NewHierarchy(f.regions), nil
}

func (f *fakeOrgRepo) SaveRegion(_ context.Context, manager string, stores []string) error {
	f.regions[manager] = stores
	return nil
}

func (f *fakeOrgRepo) MoveStore(_ context.Context, shortName, toManager string) error {
	for manager, stores := range f.regions {
		for i, s := range stores {
			if s == shortName {
				f.regions[manager] = append(stores[:i], stores[i+1:]...)
				f.regions[toManager] = append(f.regions[toManager], shortName)
				return nil
			}
		}
	}
	return shared.ErrUnknownStore
}

// ===================== harness =====================

type testEnv struct {
	router    *gin.Engine
	daily     *fakeDailyRepo
	therapist *fakeTherapistRepo
	budgets   *fakeBudgetRepo
	orgs      *fakeOrgRepo
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		daily:     newFakeDailyRepo(),
		therapist: newFakeTherapistRepo(),
		budgets:   newFakeBudgetRepo(),
		orgs: &fakeOrgRepo{regions: map[string][]string{
			"Alice": {"台中", "台南"},
			"Bob":   {"板橋"},
		}},
	}

	logger := zap.NewNop()
	analyticsService := analyticsapp.NewService(env.daily, env.therapist, env.budgets, env.orgs, nil, logger)

	engine := gin.New()
	api := engine.Group("/api/v1")

	NewDailyReportHandler(reportapp.NewDailyReportService(env.daily, analyticsService, logger)).RegisterRoutes(api)
	NewTherapistReportHandler(reportapp.NewTherapistReportService(env.therapist, logger)).RegisterRoutes(api)
	NewBudgetHandler(reportapp.NewBudgetService(env.budgets, analyticsService, logger)).RegisterRoutes(api)
	NewOrgHandler(reportapp.NewOrgService(env.orgs, analyticsService, logger)).RegisterRoutes(api)
	NewAnalyticsHandler(analyticsService, "CYJ").RegisterRoutes(api)
	NewSystemHandler(nil).RegisterRoutes(api)

	env.router = engine
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ===================== daily reports =====================

func TestDailyReportSubmit(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reports/daily", map[string]any{
		"date":       "114/02/05",
		"store_name": "CYJ台中店",
		"cash":       "1,234,567",
		"refund":     500,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "2025/02/05", data["date"])
	assert.Equal(t, "CYJ台中店", data["store_name"])
	assert.Equal(t, "1234567", data["cash"])
	assert.Equal(t, "1234067", data["net_cash"])
}

func TestDailyReportSubmitInvalidDate(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reports/daily", map[string]any{
		"date":       "2025-02-30",
		"store_name": "CYJ台中店",
		"cash":       1000,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "ERR_VALIDATION_FORMAT", errInfo["code"])
}

func TestDailyReportSubmitMissingStore(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reports/daily", map[string]any{
		"date": "2025/02/05",
		"cash": 1000,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDailyReportGetNotFound(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/reports/daily/5f8c1f6e-11d6-47a8-9f13-0a2ddc3f1a20", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])
}

func TestDailyReportGetMalformedID(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/reports/daily/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDailyReportUpdateAndList(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reports/daily", map[string]any{
		"date":       "2025/02/05",
		"store_name": "CYJ台中店",
		"cash":       2000,
		"refund":     300,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["data"].(map[string]any)["id"].(string)

	w = env.do(t, http.MethodPut, "/api/v1/reports/daily/"+id, map[string]any{
		"cash":   5000,
		"refund": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "5000", data["net_cash"])
	// Identity fields survive the rewrite of the figures.
	assert.Equal(t, "2025/02/05", data["date"])

	w = env.do(t, http.MethodGet, "/api/v1/reports/daily?year=2025&month=2&store=CYJ台中店", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["data"].([]any)
	assert.Len(t, list, 1)

	w = env.do(t, http.MethodGet, "/api/v1/reports/daily?year=2025&month=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["data"])
}

func TestDailyReportDelete(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reports/daily", map[string]any{
		"date":       "2025/02/05",
		"store_name": "CYJ台中店",
		"cash":       100,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["data"].(map[string]any)["id"].(string)

	w = env.do(t, http.MethodDelete, "/api/v1/reports/daily/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/reports/daily/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ===================== therapist reports =====================

func TestTherapistReportSubmitDerivesTotal(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reports/therapists", map[string]any{
		"therapist_id":         "T001",
		"therapist_name":       "小美",
		"store_name":           "CYJ台中店",
		"date":                 "114/02/05",
		"new_customer_revenue": "3,000",
		"old_customer_revenue": 2000,
		"return_revenue":       500,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "4500", data["total_revenue"])
	assert.Equal(t, "2025/02/05", data["date"])
}

// ===================== budgets =====================

func TestBudgetSetAndList(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/budgets", map[string]any{
		"store_name":  "CYJ台中店",
		"year":        2025,
		"month":       2,
		"cash_target": "100,000",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "100000", data["cash_target"])

	// Writing the same key again replaces the previous target.
	w = env.do(t, http.MethodPut, "/api/v1/budgets", map[string]any{
		"store_name":  "CYJ台中店",
		"year":        2025,
		"month":       2,
		"cash_target": 120000,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/budgets?year=2025&month=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "120000", list[0].(map[string]any)["cash_target"])
}

func TestBudgetBatchRejectsInvalidEntry(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/budgets/batch", map[string]any{
		"targets": []map[string]any{
			{"store_name": "CYJ台中店", "year": 2025, "month": 2, "cash_target": 1000},
			{"store_name": "CYJ台南店", "year": 2025, "month": 13, "cash_target": 1000},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.budgets.byKey, "nothing is written when any entry fails validation")
}

// ===================== org =====================

func TestOrgHierarchyAndMove(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/org/regions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	regions := decodeBody(t, w)["data"].([]any)
	// Two configured managers plus the always-present unassigned bucket,
	// which sorts last.
	require.Len(t, regions, 3)
	last := regions[2].(map[string]any)
	assert.Equal(t, org.Unassigned, last["manager"])

	w = env.do(t, http.MethodPost, "/api/v1/org/stores/move", map[string]any{
		"short_name": "台中",
		"to_manager": "Bob",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, env.orgs.regions["Bob"], "台中")
}

func TestOrgMoveUnknownStore(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/org/stores/move", map[string]any{
		"short_name": "不存在",
		"to_manager": "Bob",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "ERR_BUSINESS_RULE", errInfo["code"])
	// The dry-run validation happens before the write, so rosters are intact.
	assert.Len(t, env.orgs.regions["Bob"], 1)
}

// ===================== analytics =====================

func TestStoreDashboardDefaultsBrand(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reports/daily", map[string]any{
		"date":       "2025/02/05",
		"store_name": "CYJ台中店",
		"cash":       10000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/analytics/stores?year=2025&month=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "CYJ", data["brand_prefix"])
	assert.Equal(t, float64(2025), data["year"])
	assert.Equal(t, float64(2), data["month"])
}

func TestStoreDashboardRequiresPeriod(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/analytics/stores", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDailySubmissionAudit(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/reports/daily", map[string]any{
		"date":       "2025/02/05",
		"store_name": "CYJ台中店",
		"cash":       10000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/analytics/audits/daily?date=2025/02/05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Len(t, data["submitted"], 1)
	assert.Len(t, data["missing"], 2)
}

func TestDailySubmissionAuditBadDate(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/analytics/audits/daily?date=banana", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "ERR_VALIDATION_FORMAT", errInfo["code"])
}

// ===================== system =====================

func TestSystemPing(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/system/ping", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "pong", data["message"])
}

func TestSystemHealthWithoutDatabase(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/system/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
}
