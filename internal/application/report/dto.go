package report

import (
	"time"

	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// SubmitDailyReportRequest carries one store's daily submission. Amount
// fields are deliberately untyped: upstream sources deliver numbers,
// formatted strings ("1,234,567"), or nothing at all, and ingestion
// coerces rather than rejects.
type SubmitDailyReportRequest struct {
	Date                string `json:"date" binding:"required"`
	StoreName           string `json:"store_name" binding:"required"`
	Cash                any    `json:"cash"`
	Refund              any    `json:"refund"`
	Accrual             any    `json:"accrual"`
	OperationalAccrual  any    `json:"operational_accrual"`
	SkincareSales       any    `json:"skincare_sales"`
	SkincareRefund      any    `json:"skincare_refund"`
	Traffic             any    `json:"traffic"`
	NewCustomers        any    `json:"new_customers"`
	NewCustomerSales    any    `json:"new_customer_sales"`
	NewCustomerClosings any    `json:"new_customer_closings"`
}

// UpdateDailyReportRequest mirrors the submit shape; the date and store
// name stay immutable once submitted.
type UpdateDailyReportRequest struct {
	Cash                any `json:"cash"`
	Refund              any `json:"refund"`
	Accrual             any `json:"accrual"`
	OperationalAccrual  any `json:"operational_accrual"`
	SkincareSales       any `json:"skincare_sales"`
	SkincareRefund      any `json:"skincare_refund"`
	Traffic             any `json:"traffic"`
	NewCustomers        any `json:"new_customers"`
	NewCustomerSales    any `json:"new_customer_sales"`
	NewCustomerClosings any `json:"new_customer_closings"`
}

// DailyReportResponse represents a daily report in API responses.
type DailyReportResponse struct {
	ID                  string          `json:"id"`
	Date                string          `json:"date"`
	StoreName           string          `json:"store_name"`
	Cash                decimal.Decimal `json:"cash"`
	Refund              decimal.Decimal `json:"refund"`
	NetCash             decimal.Decimal `json:"net_cash"`
	Accrual             decimal.Decimal `json:"accrual"`
	OperationalAccrual  decimal.Decimal `json:"operational_accrual"`
	SkincareSales       decimal.Decimal `json:"skincare_sales"`
	SkincareRefund      decimal.Decimal `json:"skincare_refund"`
	Traffic             int             `json:"traffic"`
	NewCustomers        int             `json:"new_customers"`
	NewCustomerSales    decimal.Decimal `json:"new_customer_sales"`
	NewCustomerClosings int             `json:"new_customer_closings"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ToDailyReportResponse converts a domain report to its API shape.
func ToDailyReportResponse(r *report.DailyReport) *DailyReportResponse {
	return &DailyReportResponse{
		ID:                  r.ID.String(),
		Date:                r.Date.Display(),
		StoreName:           r.StoreName,
		Cash:                r.Cash,
		Refund:              r.Refund,
		NetCash:             r.NetCash(),
		Accrual:             r.Accrual,
		OperationalAccrual:  r.OperationalAccrual,
		SkincareSales:       r.SkincareSales,
		SkincareRefund:      r.SkincareRefund,
		Traffic:             r.Traffic,
		NewCustomers:        r.NewCustomers,
		NewCustomerSales:    r.NewCustomerSales,
		NewCustomerClosings: r.NewCustomerClosings,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// SubmitTherapistReportRequest carries one therapist's daily submission.
// The total is never accepted from the caller; it is always re-derived
// from the three revenue components.
type SubmitTherapistReportRequest struct {
	TherapistID         string `json:"therapist_id" binding:"required"`
	TherapistName       string `json:"therapist_name" binding:"required"`
	StoreName           string `json:"store_name"`
	Date                string `json:"date" binding:"required"`
	NewCustomerRevenue  any    `json:"new_customer_revenue"`
	OldCustomerRevenue  any    `json:"old_customer_revenue"`
	ReturnRevenue       any    `json:"return_revenue"`
	NewCustomerCount    any    `json:"new_customer_count"`
	OldCustomerCount    any    `json:"old_customer_count"`
	NewCustomerClosings any    `json:"new_customer_closings"`
}

// UpdateTherapistReportRequest mirrors the submit shape minus identity.
type UpdateTherapistReportRequest struct {
	NewCustomerRevenue  any `json:"new_customer_revenue"`
	OldCustomerRevenue  any `json:"old_customer_revenue"`
	ReturnRevenue       any `json:"return_revenue"`
	NewCustomerCount    any `json:"new_customer_count"`
	OldCustomerCount    any `json:"old_customer_count"`
	NewCustomerClosings any `json:"new_customer_closings"`
}

// TherapistReportResponse represents a therapist report in API responses.
type TherapistReportResponse struct {
	ID                  string          `json:"id"`
	TherapistID         string          `json:"therapist_id"`
	TherapistName       string          `json:"therapist_name"`
	StoreName           string          `json:"store_name"`
	Date                string          `json:"date"`
	NewCustomerRevenue  decimal.Decimal `json:"new_customer_revenue"`
	OldCustomerRevenue  decimal.Decimal `json:"old_customer_revenue"`
	ReturnRevenue       decimal.Decimal `json:"return_revenue"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	NewCustomerCount    int             `json:"new_customer_count"`
	OldCustomerCount    int             `json:"old_customer_count"`
	NewCustomerClosings int             `json:"new_customer_closings"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ToTherapistReportResponse converts a domain report to its API shape.
func ToTherapistReportResponse(r *report.TherapistDailyReport) *TherapistReportResponse {
	return &TherapistReportResponse{
		ID:                  r.ID.String(),
		TherapistID:         r.TherapistID,
		TherapistName:       r.TherapistName,
		StoreName:           r.StoreName,
		Date:                r.Date.Display(),
		NewCustomerRevenue:  r.NewCustomerRevenue,
		OldCustomerRevenue:  r.OldCustomerRevenue,
		ReturnRevenue:       r.ReturnRevenue,
		TotalRevenue:        r.TotalRevenue,
		NewCustomerCount:    r.NewCustomerCount,
		OldCustomerCount:    r.OldCustomerCount,
		NewCustomerClosings: r.NewCustomerClosings,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// SetBudgetTargetRequest sets one store's monthly goals.
type SetBudgetTargetRequest struct {
	StoreName     string `json:"store_name" binding:"required"`
	Year          int    `json:"year" binding:"required,min=1"`
	Month         int    `json:"month" binding:"required,min=1,max=12"`
	CashTarget    any    `json:"cash_target"`
	AccrualTarget any    `json:"accrual_target"`
}

// BudgetTargetResponse represents a budget target in API responses.
type BudgetTargetResponse struct {
	StoreName     string          `json:"store_name"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	CashTarget    decimal.Decimal `json:"cash_target"`
	AccrualTarget decimal.Decimal `json:"accrual_target"`
}

// ToBudgetTargetResponse converts a domain target to its API shape.
func ToBudgetTargetResponse(t *budget.Target) *BudgetTargetResponse {
	return &BudgetTargetResponse{
		StoreName:     t.StoreName,
		Year:          t.Year,
		Month:         t.Month,
		CashTarget:    t.CashTarget,
		AccrualTarget: t.AccrualTarget,
	}
}

// SaveRegionRequest replaces one manager's store list.
type SaveRegionRequest struct {
	Manager string   `json:"manager" binding:"required"`
	Stores  []string `json:"stores"`
}

// MoveStoreRequest reassigns a store to another manager.
type MoveStoreRequest struct {
	ShortName string `json:"short_name" binding:"required"`
	ToManager string `json:"to_manager" binding:"required"`
}

// RegionResponse is one manager's slice of the hierarchy.
type RegionResponse struct {
	Manager string   `json:"manager"`
	Stores  []string `json:"stores"`
}
