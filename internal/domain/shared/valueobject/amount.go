package valueobject

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountFromAny coerces a loosely-typed numeric value into a decimal.
// Report submissions arrive with numbers, numeric strings (possibly with
// thousands separators), or missing fields; anything that does not look
// numeric coerces to zero. It never fails.
func AmountFromAny(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		return amountFromString(v.String())
	case string:
		return amountFromString(v)
	default:
		return decimal.Zero
	}
}

func amountFromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CountFromAny coerces a loosely-typed value into an integer count.
func CountFromAny(value any) int {
	return int(AmountFromAny(value).IntPart())
}

// Percent returns numerator/denominator as a percentage rounded to one
// decimal place, or zero when the denominator is zero.
func Percent(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Mul(decimal.NewFromInt(100)).DivRound(denominator, 1)
}

// RoundedDiv returns numerator/denominator rounded to the nearest whole
// number, or zero when the denominator is zero.
func RoundedDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.DivRound(denominator, 0)
}

// RoundedDivByCount divides an amount by an integer count with the same
// zero-denominator guard.
func RoundedDivByCount(numerator decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return numerator.DivRound(decimal.NewFromInt(int64(count)), 0)
}

// Projection extrapolates a month-to-date total to a full-month estimate:
// round(total / daysPassed * daysInMonth). Zero when no days have passed.
func Projection(total decimal.Decimal, daysPassed, daysInMonth int) decimal.Decimal {
	if daysPassed <= 0 {
		return decimal.Zero
	}
	return total.Mul(decimal.NewFromInt(int64(daysInMonth))).
		DivRound(decimal.NewFromInt(int64(daysPassed)), 0)
}
