package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDailyReportRepository implements DailyReportRepository using GORM
type GormDailyReportRepository struct {
	db *gorm.DB
}

// NewGormDailyReportRepository creates a new GormDailyReportRepository
func NewGormDailyReportRepository(db *gorm.DB) *GormDailyReportRepository {
	return &GormDailyReportRepository{db: db}
}

// Create inserts a new daily report
func (r *GormDailyReportRepository) Create(ctx context.Context, rep *report.DailyReport) error {
	var model models.DailyReportModel
	model.FromDomain(rep)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update replaces an existing daily report
func (r *GormDailyReportRepository) Update(ctx context.Context, rep *report.DailyReport) error {
	var model models.DailyReportModel
	model.FromDomain(rep)

	// Save writes all fields, so explicit zeros survive the update.
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a daily report by ID
func (r *GormDailyReportRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return shared.ErrNotFound
	}

	result := r.db.WithContext(ctx).Delete(&models.DailyReportModel{}, "id = ?", uid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a daily report by its ID
func (r *GormDailyReportRepository) FindByID(ctx context.Context, id string) (*report.DailyReport, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	var model models.DailyReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every known report, oldest first
func (r *GormDailyReportRepository) FindAll(ctx context.Context) ([]report.DailyReport, error) {
	var rows []models.DailyReportModel
	if err := r.db.WithContext(ctx).Order("report_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDailyReports(rows), nil
}

// FindByPeriod returns reports whose date falls in the given year and month
func (r *GormDailyReportRepository) FindByPeriod(ctx context.Context, year, month int) ([]report.DailyReport, error) {
	start, end := periodBounds(year, month)

	var rows []models.DailyReportModel
	if err := r.db.WithContext(ctx).
		Where("report_date >= ? AND report_date < ?", start, end).
		Order("report_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDailyReports(rows), nil
}

// FindByStoreAndPeriod narrows FindByPeriod to one store full name
func (r *GormDailyReportRepository) FindByStoreAndPeriod(ctx context.Context, storeName string, year, month int) ([]report.DailyReport, error) {
	start, end := periodBounds(year, month)

	var rows []models.DailyReportModel
	if err := r.db.WithContext(ctx).
		Where("store_name = ? AND report_date >= ? AND report_date < ?", storeName, start, end).
		Order("report_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDailyReports(rows), nil
}

func toDailyReports(rows []models.DailyReportModel) []report.DailyReport {
	reports := make([]report.DailyReport, len(rows))
	for i := range rows {
		reports[i] = *rows[i].ToDomain()
	}
	return reports
}

// periodBounds returns the half-open [start, end) range of a month.
func periodBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Ensure GormDailyReportRepository implements DailyReportRepository
var _ report.DailyReportRepository = (*GormDailyReportRepository)(nil)
