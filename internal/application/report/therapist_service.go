package report

import (
	"context"

	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// TherapistReportService handles therapist daily report submissions.
type TherapistReportService struct {
	repo   report.TherapistReportRepository
	logger *zap.Logger
}

// NewTherapistReportService creates a new TherapistReportService.
func NewTherapistReportService(repo report.TherapistReportRepository, logger *zap.Logger) *TherapistReportService {
	return &TherapistReportService{repo: repo, logger: logger}
}

// Submit records one therapist's figures for one day. The stored total is
// always derived from the components, never taken from the caller.
func (s *TherapistReportService) Submit(ctx context.Context, req SubmitTherapistReportRequest) (*TherapistReportResponse, error) {
	date, err := valueobject.ParseReportDate(req.Date)
	if err != nil {
		return nil, shared.ErrInvalidReportDate
	}

	r := &report.TherapistDailyReport{
		BaseEntity:          shared.NewBaseEntity(),
		TherapistID:         req.TherapistID,
		TherapistName:       req.TherapistName,
		StoreName:           req.StoreName,
		Date:                date,
		NewCustomerRevenue:  valueobject.AmountFromAny(req.NewCustomerRevenue),
		OldCustomerRevenue:  valueobject.AmountFromAny(req.OldCustomerRevenue),
		ReturnRevenue:       valueobject.AmountFromAny(req.ReturnRevenue),
		NewCustomerCount:    valueobject.CountFromAny(req.NewCustomerCount),
		OldCustomerCount:    valueobject.CountFromAny(req.OldCustomerCount),
		NewCustomerClosings: valueobject.CountFromAny(req.NewCustomerClosings),
	}
	r.RecalculateTotal()

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("Therapist report submitted",
		zap.String("therapist", r.TherapistID),
		zap.String("date", r.Date.Display()),
	)
	return ToTherapistReportResponse(r), nil
}

// Update replaces the figures of an existing report and re-derives the
// total from the new components.
func (s *TherapistReportService) Update(ctx context.Context, id string, req UpdateTherapistReportRequest) (*TherapistReportResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.NewCustomerRevenue = valueobject.AmountFromAny(req.NewCustomerRevenue)
	r.OldCustomerRevenue = valueobject.AmountFromAny(req.OldCustomerRevenue)
	r.ReturnRevenue = valueobject.AmountFromAny(req.ReturnRevenue)
	r.NewCustomerCount = valueobject.CountFromAny(req.NewCustomerCount)
	r.OldCustomerCount = valueobject.CountFromAny(req.OldCustomerCount)
	r.NewCustomerClosings = valueobject.CountFromAny(req.NewCustomerClosings)
	r.RecalculateTotal()
	r.Touch()

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return ToTherapistReportResponse(r), nil
}

// Delete removes a report.
func (s *TherapistReportService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GetByID retrieves one report.
func (s *TherapistReportService) GetByID(ctx context.Context, id string) (*TherapistReportResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTherapistReportResponse(r), nil
}

// ListByPeriod returns the therapist reports of one month.
func (s *TherapistReportService) ListByPeriod(ctx context.Context, year, month int) ([]TherapistReportResponse, error) {
	reports, err := s.repo.FindByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}

	responses := make([]TherapistReportResponse, len(reports))
	for i := range reports {
		responses[i] = *ToTherapistReportResponse(&reports[i])
	}
	return responses, nil
}
