package analytics

import (
	"sort"

	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/domain/org"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// StoreAggregator turns raw daily reports, the org hierarchy, and the
// budget index into the per-store/per-region/brand rollups shown on the
// dashboards. It is a pure computation: it owns no state, performs no I/O,
// and never mutates its inputs, so repeated calls with identical inputs
// yield identical results.
type StoreAggregator struct{}

// NewStoreAggregator creates a new store aggregator.
func NewStoreAggregator() *StoreAggregator {
	return &StoreAggregator{}
}

// Aggregate computes the full dashboard result for one brand and period.
// The reports slice is the complete known collection across all time; the
// aggregator performs the year and month filtering itself so monthly and
// year-to-date views stay consistent. Records with a zero date or an empty
// store name are excluded and counted in SkippedRecords.
//
// Structural absence of the hierarchy or budget index is a hard error;
// silently producing an all-zero report would mask a broken caller.
func (a *StoreAggregator) Aggregate(
	reports []report.DailyReport,
	hierarchy org.Hierarchy,
	budgets budget.Index,
	brandPrefix string,
	year, month int,
) (*StoreAggregation, error) {
	if hierarchy.IsZero() {
		return nil, shared.ErrMissingHierarchy
	}
	if budgets.IsZero() {
		return nil, shared.ErrMissingBudgets
	}
	if month < 1 || month > 12 || year <= 0 {
		return nil, shared.ErrInvalidPeriod
	}

	result := &StoreAggregation{
		BrandPrefix: brandPrefix,
		Year:        year,
		Month:       month,
		DaysInMonth: valueobject.DaysInMonth(year, month),
	}

	var yearly, monthly []report.DailyReport
	for i := range reports {
		r := reports[i]
		if r.Date.IsZero() || r.StoreName == "" {
			result.SkippedRecords++
			continue
		}
		if !r.Date.InYear(year) {
			continue
		}
		yearly = append(yearly, r)
		if r.Date.Month() == month {
			monthly = append(monthly, r)
		}
	}

	result.HasData = len(monthly) > 0
	result.LatestDate, result.DaysPassed = latestDateOf(monthly)
	result.RemainingDays = result.DaysInMonth - result.DaysPassed

	result.Stores = a.storeStats(monthly, hierarchy, budgets, brandPrefix, year, month, result.DaysPassed, result.DaysInMonth)
	result.Regions = a.regionalStats(result.Stores, hierarchy)
	result.GrandTotal = a.grandTotal(result.Stores)
	result.DailyTotals = a.dailyTotals(monthly)
	result.Yearly = a.yearlyStats(yearly, hierarchy, budgets, brandPrefix, year)

	return result, nil
}

// latestDateOf finds the maximum normalized date in the working set.
// Empty sets report the no-data sentinel and a single elapsed day so the
// projection denominator stays sane.
func latestDateOf(monthly []report.DailyReport) (string, int) {
	if len(monthly) == 0 {
		return valueobject.EmptyDateSentinel, 1
	}
	latest := monthly[0].Date
	for _, r := range monthly[1:] {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest.Display(), latest.Day()
}

func (a *StoreAggregator) storeStats(
	monthly []report.DailyReport,
	hierarchy org.Hierarchy,
	budgets budget.Index,
	brandPrefix string,
	year, month, daysPassed, daysInMonth int,
) []StoreStat {
	refs := hierarchy.AllStores()
	stats := make([]StoreStat, 0, len(refs))

	// Every configured store gets a row, reports or not.
	for _, ref := range refs {
		fullName := org.FullStoreName(brandPrefix, ref.ShortName)
		stat := StoreStat{
			StoreName: fullName,
			ShortName: ref.ShortName,
			Manager:   ref.Manager,
		}

		for i := range monthly {
			r := monthly[i]
			if !org.MatchesStore(r.StoreName, brandPrefix, ref.ShortName) {
				continue
			}
			stat.Cash = stat.Cash.Add(r.NetCash())
			stat.Accrual = stat.Accrual.Add(r.Accrual)
			stat.OperationalAccrual = stat.OperationalAccrual.Add(r.OperationalAccrual)
			stat.SkincareSales = stat.SkincareSales.Add(r.NetSkincare())
			stat.Traffic += r.Traffic
			stat.NewCustomers += r.NewCustomers
			stat.NewCustomerSales = stat.NewCustomerSales.Add(r.NewCustomerSales)
			stat.NewCustomerClosings += r.NewCustomerClosings
		}

		// An absent budget is a zero target here; only the target audit
		// distinguishes "never configured" from an explicit zero.
		stat.CashBudget = budgets.CashTarget(fullName, year, month)
		stat.AccrualBudget = budgets.AccrualTarget(fullName, year, month)

		stat.Projection = valueobject.Projection(stat.Cash, daysPassed, daysInMonth)
		stat.Achievement = valueobject.Percent(stat.Cash, stat.CashBudget)
		stat.TrafficASP = valueobject.RoundedDivByCount(stat.OperationalAccrual, stat.Traffic)
		stat.NewCustomerASP = valueobject.RoundedDivByCount(stat.NewCustomerSales, stat.NewCustomers)

		stats = append(stats, stat)
	}
	return stats
}

func (a *StoreAggregator) regionalStats(stores []StoreStat, hierarchy org.Hierarchy) []RegionalStat {
	byManager := make(map[string]*RegionalStat)
	var ordered []RegionalStat

	for _, manager := range hierarchy.Managers() {
		if len(hierarchy.Stores(manager)) == 0 {
			continue
		}
		byManager[manager] = &RegionalStat{Manager: manager}
	}

	for i := range stores {
		s := stores[i]
		rs, ok := byManager[s.Manager]
		if !ok {
			continue
		}
		rs.StoreCount++
		rs.Cash = rs.Cash.Add(s.Cash)
		rs.Accrual = rs.Accrual.Add(s.Accrual)
		rs.Traffic += s.Traffic
		rs.NewCustomers += s.NewCustomers
		rs.CashBudget = rs.CashBudget.Add(s.CashBudget)
		rs.Projection = rs.Projection.Add(s.Projection)
	}

	for _, manager := range hierarchy.Managers() {
		rs, ok := byManager[manager]
		if !ok {
			continue
		}
		rs.Achievement = valueobject.Percent(rs.Cash, rs.CashBudget)
		ordered = append(ordered, *rs)
	}
	return ordered
}

func (a *StoreAggregator) grandTotal(stores []StoreStat) GrandTotal {
	var gt GrandTotal
	for i := range stores {
		s := stores[i]
		gt.Cash = gt.Cash.Add(s.Cash)
		gt.Accrual = gt.Accrual.Add(s.Accrual)
		gt.OperationalAccrual = gt.OperationalAccrual.Add(s.OperationalAccrual)
		gt.SkincareSales = gt.SkincareSales.Add(s.SkincareSales)
		gt.Traffic += s.Traffic
		gt.NewCustomers += s.NewCustomers
		gt.NewCustomerSales = gt.NewCustomerSales.Add(s.NewCustomerSales)
		gt.NewCustomerClosings += s.NewCustomerClosings
		gt.CashBudget = gt.CashBudget.Add(s.CashBudget)
		gt.AccrualBudget = gt.AccrualBudget.Add(s.AccrualBudget)
		gt.Projection = gt.Projection.Add(s.Projection)
	}
	gt.Achievement = valueobject.Percent(gt.Cash, gt.CashBudget)
	return gt
}

// dailyTotals sums net cash and traffic per distinct normalized date in
// the monthly working set, sorted ascending by day of month.
func (a *StoreAggregator) dailyTotals(monthly []report.DailyReport) []DailyTotal {
	byDay := make(map[int]*DailyTotal)
	for i := range monthly {
		r := monthly[i]
		day := r.Date.Day()
		dt, ok := byDay[day]
		if !ok {
			dt = &DailyTotal{Date: r.Date.Display(), Day: day}
			byDay[day] = dt
		}
		dt.Cash = dt.Cash.Add(r.NetCash())
		dt.Traffic += r.Traffic
	}

	totals := make([]DailyTotal, 0, len(byDay))
	for _, dt := range byDay {
		totals = append(totals, *dt)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Day < totals[j].Day })
	return totals
}

// yearlyStats sums the full-year subset and compares it against the
// twelve-month budget sum across the configured store list.
func (a *StoreAggregator) yearlyStats(
	yearly []report.DailyReport,
	hierarchy org.Hierarchy,
	budgets budget.Index,
	brandPrefix string,
	year int,
) YearlyStats {
	ys := YearlyStats{Cash: decimal.Zero, Accrual: decimal.Zero, CashBudget: decimal.Zero}
	for i := range yearly {
		ys.Cash = ys.Cash.Add(yearly[i].NetCash())
		ys.Accrual = ys.Accrual.Add(yearly[i].Accrual)
	}
	for _, ref := range hierarchy.AllStores() {
		fullName := org.FullStoreName(brandPrefix, ref.ShortName)
		ys.CashBudget = ys.CashBudget.Add(budgets.YearlyCashTarget(fullName, year))
	}
	ys.Achievement = valueobject.Percent(ys.Cash, ys.CashBudget)
	return ys
}
