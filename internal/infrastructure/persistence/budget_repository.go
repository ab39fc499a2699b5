package persistence

import (
	"context"

	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBudgetRepository implements budget.Repository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// Upsert creates or replaces the target for one store and period. Later
// writes win over earlier ones for the same key.
func (r *GormBudgetRepository) Upsert(ctx context.Context, target *budget.Target) error {
	var model models.BudgetTargetModel
	model.FromDomain(target)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_name"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cash_target", "accrual_target", "updated_at",
		}),
	}).Create(&model).Error
}

// FindByPeriod returns every store's target for one month
func (r *GormBudgetRepository) FindByPeriod(ctx context.Context, year, month int) ([]budget.Target, error) {
	var rows []models.BudgetTargetModel
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Order("store_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBudgetTargets(rows), nil
}

// FindByYear returns every target of one year
func (r *GormBudgetRepository) FindByYear(ctx context.Context, year int) ([]budget.Target, error) {
	var rows []models.BudgetTargetModel
	if err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Order("store_name ASC, month ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBudgetTargets(rows), nil
}

// IndexForYear loads one year's targets as the lookup index the
// aggregation engine consumes.
func (r *GormBudgetRepository) IndexForYear(ctx context.Context, year int) (budget.Index, error) {
	targets, err := r.FindByYear(ctx, year)
	if err != nil {
		return budget.Index{}, err
	}
	return budget.NewIndex(targets), nil
}

func toBudgetTargets(rows []models.BudgetTargetModel) []budget.Target {
	targets := make([]budget.Target, len(rows))
	for i := range rows {
		targets[i] = *rows[i].ToDomain()
	}
	return targets
}

// Ensure GormBudgetRepository implements budget.Repository
var _ budget.Repository = (*GormBudgetRepository)(nil)
