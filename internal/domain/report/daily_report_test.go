package report

import (
	"testing"

	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) valueobject.ReportDate {
	t.Helper()
	d, err := valueobject.ParseReportDate(s)
	require.NoError(t, err)
	return d
}

func TestDailyReport_Validate(t *testing.T) {
	valid := DailyReport{
		Date:      mustDate(t, "2025-02-01"),
		StoreName: "CYJ板橋店",
		Cash:      decimal.NewFromInt(10000),
	}
	require.NoError(t, valid.Validate())

	t.Run("rejects missing date", func(t *testing.T) {
		r := valid
		r.Date = valueobject.ReportDate{}
		assert.Error(t, r.Validate())
	})

	t.Run("rejects missing store name", func(t *testing.T) {
		r := valid
		r.StoreName = ""
		assert.Error(t, r.Validate())
	})

	t.Run("rejects negative entered figures", func(t *testing.T) {
		r := valid
		r.Refund = decimal.NewFromInt(-1)
		assert.Error(t, r.Validate())
	})
}

func TestDailyReport_NetCash(t *testing.T) {
	r := DailyReport{
		Cash:   decimal.NewFromInt(5000),
		Refund: decimal.NewFromInt(8000),
	}
	// Refunds exceeding same-day cash surface as negative net, not an error.
	assert.True(t, r.NetCash().Equal(decimal.NewFromInt(-3000)))
}

func TestTherapistDailyReport_RecalculateTotal(t *testing.T) {
	r := TherapistDailyReport{
		NewCustomerRevenue: decimal.NewFromInt(30000),
		OldCustomerRevenue: decimal.NewFromInt(50000),
		ReturnRevenue:      decimal.NewFromInt(5000),
		TotalRevenue:       decimal.NewFromInt(999), // stale stored value
	}
	r.RecalculateTotal()
	assert.True(t, r.TotalRevenue.Equal(decimal.NewFromInt(75000)))
}
