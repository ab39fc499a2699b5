package report

import (
	"context"

	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DailyReport is one store's submission for one calendar day.
// Cash and refund are entered as non-negative figures; net cash may still
// go negative when refunds exceed same-day cash, which is surfaced rather
// than rejected.
type DailyReport struct {
	shared.BaseEntity
	Date                valueobject.ReportDate `json:"date"`
	StoreName           string                 `json:"store_name"`
	Cash                decimal.Decimal        `json:"cash"`
	Refund              decimal.Decimal        `json:"refund"`
	Accrual             decimal.Decimal        `json:"accrual"`
	OperationalAccrual  decimal.Decimal        `json:"operational_accrual"`
	SkincareSales       decimal.Decimal        `json:"skincare_sales"`
	SkincareRefund      decimal.Decimal        `json:"skincare_refund"`
	Traffic             int                    `json:"traffic"`
	NewCustomers        int                    `json:"new_customers"`
	NewCustomerSales    decimal.Decimal        `json:"new_customer_sales"`
	NewCustomerClosings int                    `json:"new_customer_closings"`
}

// Validate checks structural validity of a submission.
func (r *DailyReport) Validate() error {
	if r.Date.IsZero() {
		return shared.ErrInvalidReportDate
	}
	if r.StoreName == "" {
		return shared.ErrInvalidInput
	}
	if r.Cash.IsNegative() || r.Refund.IsNegative() {
		return shared.ErrInvalidInput
	}
	if r.Traffic < 0 || r.NewCustomers < 0 || r.NewCustomerClosings < 0 {
		return shared.ErrInvalidInput
	}
	return nil
}

// NetCash returns cash net of same-day refunds. May be negative.
func (r *DailyReport) NetCash() decimal.Decimal {
	return r.Cash.Sub(r.Refund)
}

// NetSkincare returns skincare sales net of skincare refunds.
func (r *DailyReport) NetSkincare() decimal.Decimal {
	return r.SkincareSales.Sub(r.SkincareRefund)
}

// DailyReportRepository persists store daily reports.
type DailyReportRepository interface {
	Create(ctx context.Context, report *DailyReport) error
	Update(ctx context.Context, report *DailyReport) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*DailyReport, error)

	// FindAll returns every known report. The aggregation engine performs
	// its own year/month filtering over the full collection.
	FindAll(ctx context.Context) ([]DailyReport, error)

	// FindByPeriod returns reports whose canonical date falls in the given
	// year and month, for list views.
	FindByPeriod(ctx context.Context, year, month int) ([]DailyReport, error)

	// FindByStoreAndPeriod narrows FindByPeriod to one store full name.
	FindByStoreAndPeriod(ctx context.Context, storeName string, year, month int) ([]DailyReport, error)
}
