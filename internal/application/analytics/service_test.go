package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/domain/org"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDailyRepo struct {
	reports  []report.DailyReport
	err      error
	findAlls int
}

func (f *fakeDailyRepo) Create(ctx context.Context, r *report.DailyReport) error { return nil }
func (f *fakeDailyRepo) Update(ctx context.Context, r *report.DailyReport) error { return nil }
func (f *fakeDailyRepo) Delete(ctx context.Context, id string) error             { return nil }
func (f *fakeDailyRepo) FindByID(ctx context.Context, id string) (*report.DailyReport, error) {
	return nil, nil
}
func (f *fakeDailyRepo) FindAll(ctx context.Context) ([]report.DailyReport, error) {
	f.findAlls++
	return f.reports, f.err
}
func (f *fakeDailyRepo) FindByPeriod(ctx context.Context, year, month int) ([]report.DailyReport, error) {
	return f.reports, f.err
}
func (f *fakeDailyRepo) FindByStoreAndPeriod(ctx context.Context, storeName string, year, month int) ([]report.DailyReport, error) {
	return f.reports, f.err
}

type fakeTherapistRepo struct {
	reports []report.TherapistDailyReport
}

func (f *fakeTherapistRepo) Create(ctx context.Context, r *report.TherapistDailyReport) error {
	return nil
}
func (f *fakeTherapistRepo) Update(ctx context.Context, r *report.TherapistDailyReport) error {
	return nil
}
func (f *fakeTherapistRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeTherapistRepo) FindByID(ctx context.Context, id string) (*report.TherapistDailyReport, error) {
	return nil, nil
}
func (f *fakeTherapistRepo) FindAll(ctx context.Context) ([]report.TherapistDailyReport, error) {
	return f.reports, nil
}
func (f *fakeTherapistRepo) FindByPeriod(ctx context.Context, year, month int) ([]report.TherapistDailyReport, error) {
	return f.reports, nil
}

type fakeBudgetRepo struct {
	targets []budget.Target
}

func (f *fakeBudgetRepo) Upsert(ctx context.Context, t *budget.Target) error { return nil }
func (f *fakeBudgetRepo) FindByPeriod(ctx context.Context, year, month int) ([]budget.Target, error) {
	return f.targets, nil
}
func (f *fakeBudgetRepo) FindByYear(ctx context.Context, year int) ([]budget.Target, error) {
	return f.targets, nil
}
func (f *fakeBudgetRepo) IndexForYear(ctx context.Context, year int) (budget.Index, error) {
	return budget.NewIndex(f.targets), nil
}

type fakeOrgRepo struct {
	hierarchy org.Hierarchy
	err       error
}

func (f *fakeOrgRepo) GetHierarchy(ctx context.Context) (org.Hierarchy, error) {
	return f.hierarchy, f.err
}
func (f *fakeOrgRepo) SaveRegion(ctx context.Context, manager string, stores []string) error {
	return nil
}
func (f *fakeOrgRepo) MoveStore(ctx context.Context, shortName, toManager string) error { return nil }

type fakeSnapshotCache struct {
	entries      map[string]*StoreAggregation
	invalidated  int
	setFailures  bool
	lastSnapshot *StoreAggregation
}

func newFakeSnapshotCache() *fakeSnapshotCache {
	return &fakeSnapshotCache{entries: map[string]*StoreAggregation{}}
}

func (f *fakeSnapshotCache) Get(ctx context.Context, key string) (*StoreAggregation, bool, error) {
	s, ok := f.entries[key]
	return s, ok, nil
}

func (f *fakeSnapshotCache) Set(ctx context.Context, key string, snapshot *StoreAggregation) error {
	if f.setFailures {
		return errors.New("cache unavailable")
	}
	f.entries[key] = snapshot
	f.lastSnapshot = snapshot
	return nil
}

func (f *fakeSnapshotCache) InvalidatePeriod(ctx context.Context, year, month int) error {
	f.invalidated++
	for k := range f.entries {
		delete(f.entries, k)
	}
	return nil
}

func (f *fakeSnapshotCache) InvalidateAll(ctx context.Context) error {
	f.invalidated++
	for k := range f.entries {
		delete(f.entries, k)
	}
	return nil
}

func newTestService(daily *fakeDailyRepo, cache SnapshotCache) *Service {
	return NewService(
		daily,
		&fakeTherapistRepo{},
		&fakeBudgetRepo{targets: []budget.Target{
			{StoreName: "CYJ板橋店", Year: 2025, Month: 2, CashTarget: decimal.NewFromInt(100000)},
		}},
		&fakeOrgRepo{hierarchy: testHierarchy()},
		cache,
		zap.NewNop(),
	)
}

func TestService_StoreDashboard_CachesSnapshot(t *testing.T) {
	daily := &fakeDailyRepo{reports: []report.DailyReport{
		dailyReport(t, "2025-02-01", "CYJ板橋店", 10000, 0),
	}}
	cache := newFakeSnapshotCache()
	svc := newTestService(daily, cache)
	ctx := context.Background()

	first, err := svc.StoreDashboard(ctx, "CYJ", 2025, 2)
	require.NoError(t, err)
	assert.True(t, first.HasData)
	assert.Equal(t, 1, daily.findAlls)

	// Second call is served from the cache without touching the repo.
	second, err := svc.StoreDashboard(ctx, "CYJ", 2025, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, daily.findAlls)
}

func TestService_StoreDashboard_NilCacheRecomputes(t *testing.T) {
	daily := &fakeDailyRepo{}
	svc := newTestService(daily, nil)
	ctx := context.Background()

	_, err := svc.StoreDashboard(ctx, "CYJ", 2025, 2)
	require.NoError(t, err)
	_, err = svc.StoreDashboard(ctx, "CYJ", 2025, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, daily.findAlls)
}

func TestService_StoreDashboard_CacheWriteFailureIsNotFatal(t *testing.T) {
	daily := &fakeDailyRepo{}
	cache := newFakeSnapshotCache()
	cache.setFailures = true
	svc := newTestService(daily, cache)

	result, err := svc.StoreDashboard(context.Background(), "CYJ", 2025, 2)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestService_StoreDashboard_RepositoryErrorPropagates(t *testing.T) {
	daily := &fakeDailyRepo{err: errors.New("connection refused")}
	svc := newTestService(daily, nil)

	_, err := svc.StoreDashboard(context.Background(), "CYJ", 2025, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load daily reports")
}

func TestService_InvalidatePeriodForcesRecompute(t *testing.T) {
	daily := &fakeDailyRepo{}
	cache := newFakeSnapshotCache()
	svc := newTestService(daily, cache)
	ctx := context.Background()

	_, err := svc.StoreDashboard(ctx, "CYJ", 2025, 2)
	require.NoError(t, err)

	svc.InvalidatePeriod(ctx, 2025, 2)
	assert.Equal(t, 1, cache.invalidated)

	_, err = svc.StoreDashboard(ctx, "CYJ", 2025, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, daily.findAlls)
}

func TestService_TherapistDashboard(t *testing.T) {
	therapists := &fakeTherapistRepo{reports: []report.TherapistDailyReport{
		{
			TherapistID:        "T01",
			TherapistName:      "小美",
			Date:               date(t, "2025-02-01"),
			NewCustomerRevenue: decimal.NewFromInt(500),
			TotalRevenue:       decimal.NewFromInt(500),
		},
	}}
	svc := NewService(&fakeDailyRepo{}, therapists, &fakeBudgetRepo{}, &fakeOrgRepo{hierarchy: testHierarchy()}, nil, zap.NewNop())

	result, err := svc.TherapistDashboard(context.Background(), 2025, 2)
	require.NoError(t, err)
	require.Len(t, result.Rankings, 1)
	assert.Equal(t, 1, result.Rankings[0].Rank)
}

func TestService_Audits(t *testing.T) {
	daily := &fakeDailyRepo{reports: []report.DailyReport{
		dailyReport(t, "2025-02-05", "CYJ板橋店", 1000, 0),
	}}
	svc := newTestService(daily, nil)
	ctx := context.Background()

	submission, err := svc.DailySubmissionAudit(ctx, "CYJ", date(t, "2025-02-05"))
	require.NoError(t, err)
	assert.Len(t, submission.Submitted, 1)
	assert.Len(t, submission.Missing, 2)

	targets, err := svc.TargetSettingAudit(ctx, "CYJ", 2025, 2)
	require.NoError(t, err)
	assert.Len(t, targets.Submitted, 1)
	assert.Len(t, targets.Missing, 2)
}
