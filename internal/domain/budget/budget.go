package budget

import (
	"context"
	"fmt"

	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Target holds the monthly cash/accrual goals for one store. A zero target
// is a valid, intentionally-set value; absence of a Target for a key means
// the month was never configured, which the target audit treats
// differently.
type Target struct {
	shared.BaseEntity
	StoreName     string          `json:"store_name"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	CashTarget    decimal.Decimal `json:"cash_target"`
	AccrualTarget decimal.Decimal `json:"accrual_target"`
}

// Validate checks structural validity of a target.
func (t *Target) Validate() error {
	if t.StoreName == "" {
		return shared.ErrInvalidInput
	}
	if t.Year <= 0 || t.Month < 1 || t.Month > 12 {
		return shared.ErrInvalidPeriod
	}
	return nil
}

// IsSet reports whether at least one of the two goals is nonzero. The
// target audit counts a store as configured only when this holds.
func (t *Target) IsSet() bool {
	return !t.CashTarget.IsZero() || !t.AccrualTarget.IsZero()
}

// Key returns the index key "storeFullName_year_month".
func (t *Target) Key() string {
	return Key(t.StoreName, t.Year, t.Month)
}

// Key builds the canonical index key for a store and period.
func Key(storeName string, year, month int) string {
	return fmt.Sprintf("%s_%d_%d", storeName, year, month)
}

// Index is the flat key→target mapping the aggregation engine consumes.
type Index struct {
	targets map[string]Target
}

// NewIndex builds an Index from a list of targets. Later duplicates of the
// same key win, matching last-write semantics of the store.
func NewIndex(targets []Target) Index {
	idx := Index{targets: make(map[string]Target, len(targets))}
	for _, t := range targets {
		idx.targets[t.Key()] = t
	}
	return idx
}

// IsZero reports whether the index was never constructed.
func (i Index) IsZero() bool {
	return i.targets == nil
}

// Lookup returns the target for a store and period. The boolean keeps
// "never configured" distinguishable from an explicit zero target.
func (i Index) Lookup(storeName string, year, month int) (Target, bool) {
	t, ok := i.targets[Key(storeName, year, month)]
	return t, ok
}

// CashTarget returns the cash goal for a store and period, zero when the
// period was never configured.
func (i Index) CashTarget(storeName string, year, month int) decimal.Decimal {
	t, ok := i.Lookup(storeName, year, month)
	if !ok {
		return decimal.Zero
	}
	return t.CashTarget
}

// AccrualTarget returns the accrual goal for a store and period, zero when
// the period was never configured.
func (i Index) AccrualTarget(storeName string, year, month int) decimal.Decimal {
	t, ok := i.Lookup(storeName, year, month)
	if !ok {
		return decimal.Zero
	}
	return t.AccrualTarget
}

// YearlyCashTarget sums the cash goals across all twelve months of a year
// for one store.
func (i Index) YearlyCashTarget(storeName string, year int) decimal.Decimal {
	total := decimal.Zero
	for month := 1; month <= 12; month++ {
		total = total.Add(i.CashTarget(storeName, year, month))
	}
	return total
}

// Repository loads and persists budget targets.
type Repository interface {
	Upsert(ctx context.Context, target *Target) error
	FindByPeriod(ctx context.Context, year, month int) ([]Target, error)
	FindByYear(ctx context.Context, year int) ([]Target, error)
	IndexForYear(ctx context.Context, year int) (Index, error)
}
