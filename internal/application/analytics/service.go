package analytics

import (
	"context"
	"fmt"

	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/domain/org"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// SnapshotCache stores computed StoreAggregation snapshots. The engine is
// cheap enough to re-run, so the cache is purely read-through: a miss or a
// cache failure falls back to a fresh computation.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*StoreAggregation, bool, error)
	Set(ctx context.Context, key string, snapshot *StoreAggregation) error
	InvalidatePeriod(ctx context.Context, year, month int) error
	InvalidateAll(ctx context.Context) error
}

// SnapshotKey builds the cache key for one brand and period.
func SnapshotKey(brandPrefix string, year, month int) string {
	return fmt.Sprintf("analytics:%s:%d:%d", brandPrefix, year, month)
}

// Service orchestrates the pure aggregation engines: it loads the
// collections from their repositories, runs the engines, and fronts the
// store dashboard with the snapshot cache.
type Service struct {
	dailyRepo     report.DailyReportRepository
	therapistRepo report.TherapistReportRepository
	budgetRepo    budget.Repository
	orgRepo       org.Repository
	cache         SnapshotCache
	stores        *StoreAggregator
	therapists    *TherapistAggregator
	audits        *AuditEngine
	logger        *zap.Logger
}

// NewService creates a new analytics service. cache may be nil, in which
// case every call recomputes.
func NewService(
	dailyRepo report.DailyReportRepository,
	therapistRepo report.TherapistReportRepository,
	budgetRepo budget.Repository,
	orgRepo org.Repository,
	cache SnapshotCache,
	logger *zap.Logger,
) *Service {
	return &Service{
		dailyRepo:     dailyRepo,
		therapistRepo: therapistRepo,
		budgetRepo:    budgetRepo,
		orgRepo:       orgRepo,
		cache:         cache,
		stores:        NewStoreAggregator(),
		therapists:    NewTherapistAggregator(),
		audits:        NewAuditEngine(),
		logger:        logger,
	}
}

// StoreDashboard returns the full store aggregation for a brand and
// period, from cache when available.
func (s *Service) StoreDashboard(ctx context.Context, brandPrefix string, year, month int) (*StoreAggregation, error) {
	key := SnapshotKey(brandPrefix, year, month)
	if s.cache != nil {
		snapshot, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Snapshot cache read failed, recomputing",
				zap.String("key", key), zap.Error(err))
		} else if ok {
			return snapshot, nil
		}
	}

	reports, err := s.dailyRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load daily reports: %w", err)
	}
	hierarchy, err := s.orgRepo.GetHierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load org hierarchy: %w", err)
	}
	index, err := s.budgetRepo.IndexForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load budget index: %w", err)
	}

	result, err := s.stores.Aggregate(reports, hierarchy, index, brandPrefix, year, month)
	if err != nil {
		return nil, err
	}

	if result.SkippedRecords > 0 {
		s.logger.Warn("Aggregation skipped malformed records",
			zap.String("brand", brandPrefix),
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Int("skipped", result.SkippedRecords),
		)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			s.logger.Warn("Snapshot cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

// TherapistDashboard returns the therapist rankings for a period.
func (s *Service) TherapistDashboard(ctx context.Context, year, month int) (*TherapistAggregation, error) {
	reports, err := s.therapistRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load therapist reports: %w", err)
	}

	result, err := s.therapists.Aggregate(reports, year, month)
	if err != nil {
		return nil, err
	}
	if result.SkippedRecords > 0 {
		s.logger.Warn("Therapist aggregation skipped malformed records",
			zap.Int("year", year), zap.Int("month", month),
			zap.Int("skipped", result.SkippedRecords))
	}
	return result, nil
}

// DailySubmissionAudit reports which configured stores have not submitted
// for the given date.
func (s *Service) DailySubmissionAudit(ctx context.Context, brandPrefix string, date valueobject.ReportDate) (*AuditResult, error) {
	reports, err := s.dailyRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load daily reports: %w", err)
	}
	hierarchy, err := s.orgRepo.GetHierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load org hierarchy: %w", err)
	}
	return s.audits.DailySubmission(reports, hierarchy, brandPrefix, date)
}

// TargetSettingAudit reports which configured stores have no effective
// budget target for the period.
func (s *Service) TargetSettingAudit(ctx context.Context, brandPrefix string, year, month int) (*AuditResult, error) {
	targets, err := s.budgetRepo.FindByPeriod(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("load budget targets: %w", err)
	}
	hierarchy, err := s.orgRepo.GetHierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load org hierarchy: %w", err)
	}
	return s.audits.TargetSetting(targets, hierarchy, brandPrefix, year, month)
}

// InvalidatePeriod drops cached snapshots for a period across all brands.
// Report and budget writes call this for every period they touch.
func (s *Service) InvalidatePeriod(ctx context.Context, year, month int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePeriod(ctx, year, month); err != nil {
		s.logger.Warn("Snapshot invalidation failed",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
	}
}

// InvalidateAll drops every cached snapshot. Hierarchy changes call this,
// since a store move reshapes every period's regional rollup.
func (s *Service) InvalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("Snapshot invalidation failed", zap.Error(err))
	}
}
