package models

import (
	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/shopspring/decimal"
)

// BudgetTargetModel is the persistence model for monthly store targets.
// One row per store and period; upserts replace the previous goals.
type BudgetTargetModel struct {
	BaseModel
	StoreName     string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_budget_targets_store_period,priority:1"`
	Year          int             `gorm:"not null;uniqueIndex:idx_budget_targets_store_period,priority:2"`
	Month         int             `gorm:"not null;uniqueIndex:idx_budget_targets_store_period,priority:3"`
	CashTarget    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AccrualTarget decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (BudgetTargetModel) TableName() string {
	return "budget_targets"
}

// ToDomain converts the persistence model to a domain Target.
func (m *BudgetTargetModel) ToDomain() *budget.Target {
	return &budget.Target{
		BaseEntity:    m.BaseModel.ToDomain(),
		StoreName:     m.StoreName,
		Year:          m.Year,
		Month:         m.Month,
		CashTarget:    m.CashTarget,
		AccrualTarget: m.AccrualTarget,
	}
}

// FromDomain populates the persistence model from a domain Target.
func (m *BudgetTargetModel) FromDomain(t *budget.Target) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.StoreName = t.StoreName
	m.Year = t.Year
	m.Month = t.Month
	m.CashTarget = t.CashTarget
	m.AccrualTarget = t.AccrualTarget
}
