package report

import (
	"context"

	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TherapistDailyReport is one staff member's performance record for one
// calendar day.
type TherapistDailyReport struct {
	shared.BaseEntity
	TherapistID         string                 `json:"therapist_id"`
	TherapistName       string                 `json:"therapist_name"`
	StoreName           string                 `json:"store_name"`
	Date                valueobject.ReportDate `json:"date"`
	NewCustomerRevenue  decimal.Decimal        `json:"new_customer_revenue"`
	OldCustomerRevenue  decimal.Decimal        `json:"old_customer_revenue"`
	ReturnRevenue       decimal.Decimal        `json:"return_revenue"`
	TotalRevenue        decimal.Decimal        `json:"total_revenue"`
	NewCustomerCount    int                    `json:"new_customer_count"`
	OldCustomerCount    int                    `json:"old_customer_count"`
	NewCustomerClosings int                    `json:"new_customer_closings"`
}

// RecalculateTotal re-derives the stored total from its components:
// newCustomerRevenue + oldCustomerRevenue - returnRevenue. Called whenever
// any of the three inputs changes; the stored field is never trusted over
// the formula at edit time.
func (r *TherapistDailyReport) RecalculateTotal() {
	r.TotalRevenue = r.NewCustomerRevenue.Add(r.OldCustomerRevenue).Sub(r.ReturnRevenue)
}

// Validate checks structural validity of a submission.
func (r *TherapistDailyReport) Validate() error {
	if r.TherapistID == "" || r.TherapistName == "" {
		return shared.ErrInvalidInput
	}
	if r.Date.IsZero() {
		return shared.ErrInvalidReportDate
	}
	if r.NewCustomerCount < 0 || r.OldCustomerCount < 0 || r.NewCustomerClosings < 0 {
		return shared.ErrInvalidInput
	}
	return nil
}

// TherapistReportRepository persists therapist daily reports.
type TherapistReportRepository interface {
	Create(ctx context.Context, report *TherapistDailyReport) error
	Update(ctx context.Context, report *TherapistDailyReport) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*TherapistDailyReport, error)
	FindAll(ctx context.Context) ([]TherapistDailyReport, error)
	FindByPeriod(ctx context.Context, year, month int) ([]TherapistDailyReport, error)
}
