package analytics

import (
	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/domain/org"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
)

// AuditEngine runs the completeness checks: which configured stores have
// submitted for a date, and which have monthly targets set. Both checks
// are set differences between "expected" (the org hierarchy) and
// "observed" (reports or budget rows), grouped by region.
type AuditEngine struct{}

// NewAuditEngine creates a new audit engine.
func NewAuditEngine() *AuditEngine {
	return &AuditEngine{}
}

// DailySubmission checks which configured stores have at least one report
// on exactly the given normalized date. Store names on reports may be full
// prefixed names or bare short names.
func (e *AuditEngine) DailySubmission(
	reports []report.DailyReport,
	hierarchy org.Hierarchy,
	brandPrefix string,
	date valueobject.ReportDate,
) (*AuditResult, error) {
	if hierarchy.IsZero() {
		return nil, shared.ErrMissingHierarchy
	}
	if date.IsZero() {
		return nil, shared.ErrInvalidReportDate
	}

	return e.audit(hierarchy, brandPrefix, func(ref org.StoreRef) bool {
		for i := range reports {
			if !reports[i].Date.Equal(date) {
				continue
			}
			if org.MatchesStore(reports[i].StoreName, brandPrefix, ref.ShortName) {
				return true
			}
		}
		return false
	}), nil
}

// TargetSetting checks which configured stores have a budget row for the
// period with at least one nonzero goal. A row with both goals zero counts
// as missing: the store was touched but never actually targeted.
func (e *AuditEngine) TargetSetting(
	targets []budget.Target,
	hierarchy org.Hierarchy,
	brandPrefix string,
	year, month int,
) (*AuditResult, error) {
	if hierarchy.IsZero() {
		return nil, shared.ErrMissingHierarchy
	}
	if month < 1 || month > 12 || year <= 0 {
		return nil, shared.ErrInvalidPeriod
	}

	return e.audit(hierarchy, brandPrefix, func(ref org.StoreRef) bool {
		for i := range targets {
			t := targets[i]
			if t.Year != year || t.Month != month {
				continue
			}
			if org.MatchesStore(t.StoreName, brandPrefix, ref.ShortName) {
				return t.IsSet()
			}
		}
		return false
	}), nil
}

func (e *AuditEngine) audit(hierarchy org.Hierarchy, brandPrefix string, observed func(org.StoreRef) bool) *AuditResult {
	result := &AuditResult{
		Submitted:        []string{},
		Missing:          []string{},
		MissingByManager: make(map[string][]string),
	}

	for _, ref := range hierarchy.AllStores() {
		result.ConfiguredStores++
		fullName := org.FullStoreName(brandPrefix, ref.ShortName)
		if observed(ref) {
			result.Submitted = append(result.Submitted, fullName)
			continue
		}
		result.Missing = append(result.Missing, fullName)
		result.MissingByManager[ref.Manager] = append(result.MissingByManager[ref.Manager], fullName)
	}
	return result
}
