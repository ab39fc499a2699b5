package analytics

import (
	"sort"

	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ranking status thresholds.
const (
	topRankCount    = 3
	dangerRankCount = 10
)

// TherapistAggregator rolls per-staff daily reports up into monthly
// rankings. Like StoreAggregator it is pure and stateless.
type TherapistAggregator struct{}

// NewTherapistAggregator creates a new therapist aggregator.
func NewTherapistAggregator() *TherapistAggregator {
	return &TherapistAggregator{}
}

// Aggregate groups the period's records by therapist, derives the ratio
// metrics, and ranks by total revenue. Ties keep their input order (the
// sort is stable); callers must not rely on a specific tie order.
func (a *TherapistAggregator) Aggregate(
	reports []report.TherapistDailyReport,
	year, month int,
) (*TherapistAggregation, error) {
	if month < 1 || month > 12 || year <= 0 {
		return nil, shared.ErrInvalidPeriod
	}

	result := &TherapistAggregation{Year: year, Month: month}

	order := make([]string, 0)
	byID := make(map[string]*TherapistStat)

	for i := range reports {
		r := reports[i]
		if r.TherapistID == "" || r.Date.IsZero() {
			result.SkippedRecords++
			continue
		}
		if !r.Date.InPeriod(year, month) {
			continue
		}

		stat, ok := byID[r.TherapistID]
		if !ok {
			stat = &TherapistStat{
				TherapistID:   r.TherapistID,
				TherapistName: r.TherapistName,
				StoreName:     r.StoreName,
			}
			byID[r.TherapistID] = stat
			order = append(order, r.TherapistID)
		}

		stat.TotalRevenue = stat.TotalRevenue.Add(r.TotalRevenue)
		stat.NewCustomerRevenue = stat.NewCustomerRevenue.Add(r.NewCustomerRevenue)
		stat.OldCustomerRevenue = stat.OldCustomerRevenue.Add(r.OldCustomerRevenue)
		stat.ReturnRevenue = stat.ReturnRevenue.Add(r.ReturnRevenue)
		stat.NewCustomerCount += r.NewCustomerCount
		stat.OldCustomerCount += r.OldCustomerCount
		stat.NewCustomerClosings += r.NewCustomerClosings
	}

	result.HasData = len(order) > 0

	rankings := make([]TherapistStat, 0, len(order))
	for _, id := range order {
		stat := byID[id]
		a.deriveRatios(stat)
		rankings = append(rankings, *stat)

		result.GrandTotal.TotalRevenue = result.GrandTotal.TotalRevenue.Add(stat.TotalRevenue)
		result.GrandTotal.NewCustomerRevenue = result.GrandTotal.NewCustomerRevenue.Add(stat.NewCustomerRevenue)
		result.GrandTotal.OldCustomerRevenue = result.GrandTotal.OldCustomerRevenue.Add(stat.OldCustomerRevenue)
		result.GrandTotal.ReturnRevenue = result.GrandTotal.ReturnRevenue.Add(stat.ReturnRevenue)
		result.GrandTotal.NewCustomerCount += stat.NewCustomerCount
		result.GrandTotal.OldCustomerCount += stat.OldCustomerCount
		result.GrandTotal.NewCustomerClosings += stat.NewCustomerClosings
	}

	// Stable: equal revenues keep input order.
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalRevenue.GreaterThan(rankings[j].TotalRevenue)
	})

	for i := range rankings {
		rankings[i].Rank = i + 1
		rankings[i].Status = rankStatus(i+1, len(rankings))
		if i == 0 {
			rankings[i].GapToNext = decimal.Zero
		} else {
			rankings[i].GapToNext = rankings[i-1].TotalRevenue.Sub(rankings[i].TotalRevenue)
		}
	}

	result.Rankings = rankings
	return result, nil
}

// deriveRatios fills the percentage and average-spend fields. Every
// denominator is guarded so zero activity yields a flat 0, never NaN.
func (a *TherapistAggregator) deriveRatios(stat *TherapistStat) {
	stat.NewRevenueShare = wholePercent(stat.NewCustomerRevenue, stat.TotalRevenue)
	stat.OldRevenueShare = wholePercent(stat.OldCustomerRevenue, stat.TotalRevenue)
	stat.ClosingRate = wholePercent(
		decimal.NewFromInt(int64(stat.NewCustomerClosings)),
		decimal.NewFromInt(int64(stat.NewCustomerCount)),
	)
	stat.AvgNewCustomerSpend = avgSpend(stat.NewCustomerRevenue, stat.NewCustomerCount)
	stat.AvgOldCustomerSpend = avgSpend(stat.OldCustomerRevenue, stat.OldCustomerCount)
}

func rankStatus(rank, total int) string {
	if rank <= topRankCount {
		return StatusTop
	}
	if rank > total-dangerRankCount {
		return StatusDanger
	}
	return StatusNormal
}

// wholePercent is numerator/denominator as a whole-number percentage with
// a zero-denominator guard.
func wholePercent(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Mul(decimal.NewFromInt(100)).DivRound(denominator, 0)
}

func avgSpend(revenue decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(int64(count)), 0)
}
