package persistence

import (
	"context"
	"errors"

	"github.com/retailboard/backend/internal/domain/org"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrgRepository implements org.Repository using GORM
type GormOrgRepository struct {
	db *gorm.DB
}

// NewGormOrgRepository creates a new GormOrgRepository
func NewGormOrgRepository(db *gorm.DB) *GormOrgRepository {
	return &GormOrgRepository{db: db}
}

// GetHierarchy loads the full manager→stores mapping in stored order.
func (r *GormOrgRepository) GetHierarchy(ctx context.Context) (org.Hierarchy, error) {
	var rows []models.RegionAssignmentModel
	if err := r.db.WithContext(ctx).
		Order("manager ASC, position ASC").
		Find(&rows).Error; err != nil {
		return org.Hierarchy{}, err
	}

	regions := make(map[string][]string)
	for _, row := range rows {
		regions[row.Manager] = append(regions[row.Manager], row.StoreShortName)
	}
	return org.NewHierarchy(regions), nil
}

// SaveRegion replaces one manager's store list in a single transaction.
func (r *GormOrgRepository) SaveRegion(ctx context.Context, manager string, stores []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manager = ?", manager).
			Delete(&models.RegionAssignmentModel{}).Error; err != nil {
			return err
		}

		for i, short := range stores {
			row := models.RegionAssignmentModel{
				Manager:        manager,
				StoreShortName: short,
				Position:       i,
			}
			row.FromDomainBaseEntity(shared.NewBaseEntity())
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MoveStore reassigns a store to another manager, appending it at the end
// of the destination region.
func (r *GormOrgRepository) MoveStore(ctx context.Context, shortName, toManager string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.RegionAssignmentModel
		if err := tx.First(&row, "store_short_name = ?", shortName).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrUnknownStore
			}
			return err
		}

		if toManager != org.Unassigned {
			var count int64
			if err := tx.Model(&models.RegionAssignmentModel{}).
				Where("manager = ?", toManager).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrUnknownRegion
			}
		}

		var lastPos int
		if err := tx.Model(&models.RegionAssignmentModel{}).
			Where("manager = ?", toManager).
			Select("COALESCE(MAX(position), -1)").
			Scan(&lastPos).Error; err != nil {
			return err
		}

		return tx.Model(&row).
			Updates(map[string]any{"manager": toManager, "position": lastPos + 1}).Error
	})
}

// Ensure GormOrgRepository implements org.Repository
var _ org.Repository = (*GormOrgRepository)(nil)
