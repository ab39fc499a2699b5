package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTherapistReportRepository implements TherapistReportRepository using GORM
type GormTherapistReportRepository struct {
	db *gorm.DB
}

// NewGormTherapistReportRepository creates a new GormTherapistReportRepository
func NewGormTherapistReportRepository(db *gorm.DB) *GormTherapistReportRepository {
	return &GormTherapistReportRepository{db: db}
}

// Create inserts a new therapist report
func (r *GormTherapistReportRepository) Create(ctx context.Context, rep *report.TherapistDailyReport) error {
	var model models.TherapistReportModel
	model.FromDomain(rep)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update replaces an existing therapist report
func (r *GormTherapistReportRepository) Update(ctx context.Context, rep *report.TherapistDailyReport) error {
	var model models.TherapistReportModel
	model.FromDomain(rep)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a therapist report by ID
func (r *GormTherapistReportRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return shared.ErrNotFound
	}

	result := r.db.WithContext(ctx).Delete(&models.TherapistReportModel{}, "id = ?", uid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a therapist report by its ID
func (r *GormTherapistReportRepository) FindByID(ctx context.Context, id string) (*report.TherapistDailyReport, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	var model models.TherapistReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every known therapist report, oldest first
func (r *GormTherapistReportRepository) FindAll(ctx context.Context) ([]report.TherapistDailyReport, error) {
	var rows []models.TherapistReportModel
	if err := r.db.WithContext(ctx).Order("report_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTherapistReports(rows), nil
}

// FindByPeriod returns reports whose date falls in the given year and month
func (r *GormTherapistReportRepository) FindByPeriod(ctx context.Context, year, month int) ([]report.TherapistDailyReport, error) {
	start, end := periodBounds(year, month)

	var rows []models.TherapistReportModel
	if err := r.db.WithContext(ctx).
		Where("report_date >= ? AND report_date < ?", start, end).
		Order("report_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTherapistReports(rows), nil
}

func toTherapistReports(rows []models.TherapistReportModel) []report.TherapistDailyReport {
	reports := make([]report.TherapistDailyReport, len(rows))
	for i := range rows {
		reports[i] = *rows[i].ToDomain()
	}
	return reports
}

// Ensure GormTherapistReportRepository implements TherapistReportRepository
var _ report.TherapistReportRepository = (*GormTherapistReportRepository)(nil)
