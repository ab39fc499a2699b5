package analytics

import (
	"github.com/shopspring/decimal"
)

// StoreStat is the per-store monthly rollup.
type StoreStat struct {
	StoreName           string          `json:"store_name"`
	ShortName           string          `json:"short_name"`
	Manager             string          `json:"manager"`
	Cash                decimal.Decimal `json:"cash"`
	Accrual             decimal.Decimal `json:"accrual"`
	OperationalAccrual  decimal.Decimal `json:"operational_accrual"`
	SkincareSales       decimal.Decimal `json:"skincare_sales"`
	Traffic             int             `json:"traffic"`
	NewCustomers        int             `json:"new_customers"`
	NewCustomerSales    decimal.Decimal `json:"new_customer_sales"`
	NewCustomerClosings int             `json:"new_customer_closings"`
	CashBudget          decimal.Decimal `json:"cash_budget"`
	AccrualBudget       decimal.Decimal `json:"accrual_budget"`
	Projection          decimal.Decimal `json:"projection"`
	Achievement         decimal.Decimal `json:"achievement"`
	TrafficASP          decimal.Decimal `json:"traffic_asp"`
	NewCustomerASP      decimal.Decimal `json:"new_customer_asp"`
}

// RegionalStat is the per-manager rollup of the stores in one region.
type RegionalStat struct {
	Manager      string          `json:"manager"`
	StoreCount   int             `json:"store_count"`
	Cash         decimal.Decimal `json:"cash"`
	Accrual      decimal.Decimal `json:"accrual"`
	Traffic      int             `json:"traffic"`
	NewCustomers int             `json:"new_customers"`
	CashBudget   decimal.Decimal `json:"cash_budget"`
	Projection   decimal.Decimal `json:"projection"`
	Achievement  decimal.Decimal `json:"achievement"`
}

// GrandTotal is the brand-wide elementwise sum across the full store list.
type GrandTotal struct {
	Cash                decimal.Decimal `json:"cash"`
	Accrual             decimal.Decimal `json:"accrual"`
	OperationalAccrual  decimal.Decimal `json:"operational_accrual"`
	SkincareSales       decimal.Decimal `json:"skincare_sales"`
	Traffic             int             `json:"traffic"`
	NewCustomers        int             `json:"new_customers"`
	NewCustomerSales    decimal.Decimal `json:"new_customer_sales"`
	NewCustomerClosings int             `json:"new_customer_closings"`
	CashBudget          decimal.Decimal `json:"cash_budget"`
	AccrualBudget       decimal.Decimal `json:"accrual_budget"`
	Projection          decimal.Decimal `json:"projection"`
	Achievement         decimal.Decimal `json:"achievement"`
}

// DailyTotal is one point of the monthly time series.
type DailyTotal struct {
	Date    string          `json:"date"` // display form YYYY/MM/DD
	Day     int             `json:"day"`
	Cash    decimal.Decimal `json:"cash"`
	Traffic int             `json:"traffic"`
}

// YearlyStats is the year-to-date rollup, independent of the month filter.
type YearlyStats struct {
	Cash        decimal.Decimal `json:"cash"`
	Accrual     decimal.Decimal `json:"accrual"`
	CashBudget  decimal.Decimal `json:"cash_budget"`
	Achievement decimal.Decimal `json:"achievement"`
}

// StoreAggregation is the full derived result for one brand and period.
// It is reconstructed from raw records on every call and safe to cache or
// discard; it never aliases its inputs.
type StoreAggregation struct {
	BrandPrefix   string         `json:"brand_prefix"`
	Year          int            `json:"year"`
	Month         int            `json:"month"`
	LatestDate    string         `json:"latest_date"`
	DaysPassed    int            `json:"days_passed"`
	DaysInMonth   int            `json:"days_in_month"`
	RemainingDays int            `json:"remaining_days"`
	Stores        []StoreStat    `json:"stores"`
	Regions       []RegionalStat `json:"regions"`
	GrandTotal    GrandTotal     `json:"grand_total"`
	DailyTotals   []DailyTotal   `json:"daily_totals"`
	Yearly        YearlyStats    `json:"yearly"`

	// HasData distinguishes "no records in the period" from "records
	// present but numerically zero".
	HasData bool `json:"has_data"`
	// SkippedRecords counts records excluded for missing dates or store
	// names, so data-quality problems stay observable.
	SkippedRecords int `json:"skipped_records"`
}

// Therapist ranking statuses.
const (
	StatusTop    = "TOP"
	StatusDanger = "DANGER"
	StatusNormal = "NORMAL"
)

// TherapistStat is the per-therapist monthly rollup and ranking entry.
type TherapistStat struct {
	TherapistID         string          `json:"therapist_id"`
	TherapistName       string          `json:"therapist_name"`
	StoreName           string          `json:"store_name"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	NewCustomerRevenue  decimal.Decimal `json:"new_customer_revenue"`
	OldCustomerRevenue  decimal.Decimal `json:"old_customer_revenue"`
	ReturnRevenue       decimal.Decimal `json:"return_revenue"`
	NewCustomerCount    int             `json:"new_customer_count"`
	OldCustomerCount    int             `json:"old_customer_count"`
	NewCustomerClosings int             `json:"new_customer_closings"`
	NewRevenueShare     decimal.Decimal `json:"new_revenue_share"`
	OldRevenueShare     decimal.Decimal `json:"old_revenue_share"`
	ClosingRate         decimal.Decimal `json:"closing_rate"`
	AvgNewCustomerSpend decimal.Decimal `json:"avg_new_customer_spend"`
	AvgOldCustomerSpend decimal.Decimal `json:"avg_old_customer_spend"`
	Rank                int             `json:"rank"`
	Status              string          `json:"status"`
	GapToNext           decimal.Decimal `json:"gap_to_next"`
}

// TherapistGrandTotal sums the ranked therapists' figures.
type TherapistGrandTotal struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	NewCustomerRevenue  decimal.Decimal `json:"new_customer_revenue"`
	OldCustomerRevenue  decimal.Decimal `json:"old_customer_revenue"`
	ReturnRevenue       decimal.Decimal `json:"return_revenue"`
	NewCustomerCount    int             `json:"new_customer_count"`
	OldCustomerCount    int             `json:"old_customer_count"`
	NewCustomerClosings int             `json:"new_customer_closings"`
}

// TherapistAggregation is the full therapist ranking result for a period.
type TherapistAggregation struct {
	Year           int                 `json:"year"`
	Month          int                 `json:"month"`
	Rankings       []TherapistStat     `json:"rankings"`
	GrandTotal     TherapistGrandTotal `json:"grand_total"`
	HasData        bool                `json:"has_data"`
	SkippedRecords int                 `json:"skipped_records"`
}

// AuditResult is the shared shape of both completeness checks.
type AuditResult struct {
	Submitted        []string            `json:"submitted"`
	Missing          []string            `json:"missing"`
	MissingByManager map[string][]string `json:"missing_by_manager"`
	ConfiguredStores int                 `json:"configured_stores"`
}
