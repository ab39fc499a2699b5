package report

import (
	"context"

	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// SnapshotInvalidator drops cached analytics snapshots after writes.
// Implemented by the analytics service; nil disables invalidation.
type SnapshotInvalidator interface {
	InvalidatePeriod(ctx context.Context, year, month int)
	InvalidateAll(ctx context.Context)
}

// DailyReportService handles store daily report submissions.
type DailyReportService struct {
	repo        report.DailyReportRepository
	invalidator SnapshotInvalidator
	logger      *zap.Logger
}

// NewDailyReportService creates a new DailyReportService.
func NewDailyReportService(repo report.DailyReportRepository, invalidator SnapshotInvalidator, logger *zap.Logger) *DailyReportService {
	return &DailyReportService{repo: repo, invalidator: invalidator, logger: logger}
}

// Submit records one store's figures for one day.
func (s *DailyReportService) Submit(ctx context.Context, req SubmitDailyReportRequest) (*DailyReportResponse, error) {
	date, err := valueobject.ParseReportDate(req.Date)
	if err != nil {
		return nil, shared.ErrInvalidReportDate
	}

	r := &report.DailyReport{
		BaseEntity:          shared.NewBaseEntity(),
		Date:                date,
		StoreName:           req.StoreName,
		Cash:                valueobject.AmountFromAny(req.Cash),
		Refund:              valueobject.AmountFromAny(req.Refund),
		Accrual:             valueobject.AmountFromAny(req.Accrual),
		OperationalAccrual:  valueobject.AmountFromAny(req.OperationalAccrual),
		SkincareSales:       valueobject.AmountFromAny(req.SkincareSales),
		SkincareRefund:      valueobject.AmountFromAny(req.SkincareRefund),
		Traffic:             valueobject.CountFromAny(req.Traffic),
		NewCustomers:        valueobject.CountFromAny(req.NewCustomers),
		NewCustomerSales:    valueobject.AmountFromAny(req.NewCustomerSales),
		NewCustomerClosings: valueobject.CountFromAny(req.NewCustomerClosings),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("Daily report submitted",
		zap.String("store", r.StoreName),
		zap.String("date", r.Date.Display()),
	)
	s.invalidate(ctx, r.Date)
	return ToDailyReportResponse(r), nil
}

// Update replaces the figures of an existing report. Date and store are
// immutable; resubmission for a different day is a new report.
func (s *DailyReportService) Update(ctx context.Context, id string, req UpdateDailyReportRequest) (*DailyReportResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Cash = valueobject.AmountFromAny(req.Cash)
	r.Refund = valueobject.AmountFromAny(req.Refund)
	r.Accrual = valueobject.AmountFromAny(req.Accrual)
	r.OperationalAccrual = valueobject.AmountFromAny(req.OperationalAccrual)
	r.SkincareSales = valueobject.AmountFromAny(req.SkincareSales)
	r.SkincareRefund = valueobject.AmountFromAny(req.SkincareRefund)
	r.Traffic = valueobject.CountFromAny(req.Traffic)
	r.NewCustomers = valueobject.CountFromAny(req.NewCustomers)
	r.NewCustomerSales = valueobject.AmountFromAny(req.NewCustomerSales)
	r.NewCustomerClosings = valueobject.CountFromAny(req.NewCustomerClosings)
	r.Touch()

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.invalidate(ctx, r.Date)
	return ToDailyReportResponse(r), nil
}

// Delete removes a report.
func (s *DailyReportService) Delete(ctx context.Context, id string) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, r.Date)
	return nil
}

// GetByID retrieves one report.
func (s *DailyReportService) GetByID(ctx context.Context, id string) (*DailyReportResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDailyReportResponse(r), nil
}

// ListByPeriod returns the reports of one month, optionally narrowed to a
// single store full name.
func (s *DailyReportService) ListByPeriod(ctx context.Context, storeName string, year, month int) ([]DailyReportResponse, error) {
	var (
		reports []report.DailyReport
		err     error
	)
	if storeName != "" {
		reports, err = s.repo.FindByStoreAndPeriod(ctx, storeName, year, month)
	} else {
		reports, err = s.repo.FindByPeriod(ctx, year, month)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]DailyReportResponse, len(reports))
	for i := range reports {
		responses[i] = *ToDailyReportResponse(&reports[i])
	}
	return responses, nil
}

// invalidate drops the snapshots of every month in the report's year: the
// yearly rollup inside each later month's snapshot includes this report.
func (s *DailyReportService) invalidate(ctx context.Context, date valueobject.ReportDate) {
	if s.invalidator == nil {
		return
	}
	for month := 1; month <= 12; month++ {
		s.invalidator.InvalidatePeriod(ctx, date.Year(), month)
	}
}
