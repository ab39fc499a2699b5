package analytics

import (
	"testing"

	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/domain/org"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditHierarchy() org.Hierarchy {
	return org.NewHierarchy(map[string][]string{
		"王經理": {"板橋", "中山", "天母"},
		"李經理": {"台中", "高雄"},
	})
}

func TestAuditEngine_DailySubmission(t *testing.T) {
	engine := NewAuditEngine()
	target := date(t, "2025-02-05")

	reports := []report.DailyReport{
		dailyReport(t, "2025-02-05", "CYJ板橋店", 100, 0),
		dailyReport(t, "114/02/05", "中山", 200, 0), // ROC date, short name
		dailyReport(t, "2025-02-05", "CYJ台中店", 300, 0),
		dailyReport(t, "2025-02-04", "CYJ天母店", 400, 0), // wrong day
	}

	result, err := engine.DailySubmission(reports, auditHierarchy(), "CYJ", target)
	require.NoError(t, err)

	assert.Equal(t, 5, result.ConfiguredStores)
	assert.Len(t, result.Submitted, 3)
	assert.Len(t, result.Missing, 2)

	// Submitted and missing together cover the configured set exactly.
	all := append(append([]string{}, result.Submitted...), result.Missing...)
	assert.ElementsMatch(t, []string{"CYJ板橋店", "CYJ中山店", "CYJ天母店", "CYJ台中店", "CYJ高雄店"}, all)

	assert.ElementsMatch(t, []string{"CYJ天母店"}, result.MissingByManager["王經理"])
	assert.ElementsMatch(t, []string{"CYJ高雄店"}, result.MissingByManager["李經理"])
}

func TestAuditEngine_TargetSetting(t *testing.T) {
	engine := NewAuditEngine()

	targets := []budget.Target{
		{StoreName: "CYJ板橋店", Year: 2025, Month: 2, CashTarget: decimal.NewFromInt(100000)},
		{StoreName: "中山", Year: 2025, Month: 2, AccrualTarget: decimal.NewFromInt(50000)}, // short name
		{StoreName: "CYJ天母店", Year: 2025, Month: 2},                                       // row exists, both zero
		{StoreName: "CYJ台中店", Year: 2025, Month: 1, CashTarget: decimal.NewFromInt(1)},    // wrong month
	}

	result, err := engine.TargetSetting(targets, auditHierarchy(), "CYJ", 2025, 2)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"CYJ板橋店", "CYJ中山店"}, result.Submitted)
	// Zero-zero rows count as missing even though the row exists.
	assert.Contains(t, result.Missing, "CYJ天母店")
	assert.Contains(t, result.Missing, "CYJ台中店")
	assert.Contains(t, result.Missing, "CYJ高雄店")
}

func TestAuditEngine_StructuralErrors(t *testing.T) {
	engine := NewAuditEngine()

	_, err := engine.DailySubmission(nil, org.Hierarchy{}, "CYJ", date(t, "2025-02-05"))
	assert.Error(t, err)

	_, err = engine.TargetSetting(nil, auditHierarchy(), "CYJ", 2025, 0)
	assert.Error(t, err)
}
