package models

import (
	"time"

	"github.com/retailboard/backend/internal/domain/report"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DailyReportModel is the persistence model for the DailyReport entity.
// The report date is stored as a calendar date; ROC-era input is converted
// to the western calendar before it reaches this layer.
type DailyReportModel struct {
	BaseModel
	ReportDate          time.Time       `gorm:"type:date;not null;index:idx_daily_reports_date;index:idx_daily_reports_store_date,priority:2"`
	StoreName           string          `gorm:"type:varchar(100);not null;index:idx_daily_reports_store_date,priority:1"`
	Cash                decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Refund              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Accrual             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OperationalAccrual  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SkincareSales       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SkincareRefund      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Traffic             int             `gorm:"not null;default:0"`
	NewCustomers        int             `gorm:"not null;default:0"`
	NewCustomerSales    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NewCustomerClosings int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DailyReportModel) TableName() string {
	return "daily_reports"
}

// ToDomain converts the persistence model to a domain DailyReport.
func (m *DailyReportModel) ToDomain() *report.DailyReport {
	return &report.DailyReport{
		BaseEntity:          m.BaseModel.ToDomain(),
		Date:                valueobject.NewReportDateFromTime(m.ReportDate),
		StoreName:           m.StoreName,
		Cash:                m.Cash,
		Refund:              m.Refund,
		Accrual:             m.Accrual,
		OperationalAccrual:  m.OperationalAccrual,
		SkincareSales:       m.SkincareSales,
		SkincareRefund:      m.SkincareRefund,
		Traffic:             m.Traffic,
		NewCustomers:        m.NewCustomers,
		NewCustomerSales:    m.NewCustomerSales,
		NewCustomerClosings: m.NewCustomerClosings,
	}
}

// FromDomain populates the persistence model from a domain DailyReport.
func (m *DailyReportModel) FromDomain(r *report.DailyReport) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ReportDate = r.Date.Time()
	m.StoreName = r.StoreName
	m.Cash = r.Cash
	m.Refund = r.Refund
	m.Accrual = r.Accrual
	m.OperationalAccrual = r.OperationalAccrual
	m.SkincareSales = r.SkincareSales
	m.SkincareRefund = r.SkincareRefund
	m.Traffic = r.Traffic
	m.NewCustomers = r.NewCustomers
	m.NewCustomerSales = r.NewCustomerSales
	m.NewCustomerClosings = r.NewCustomerClosings
}

// TherapistReportModel is the persistence model for TherapistDailyReport.
type TherapistReportModel struct {
	BaseModel
	TherapistID         string          `gorm:"type:varchar(50);not null;index:idx_therapist_reports_therapist_date,priority:1"`
	TherapistName       string          `gorm:"type:varchar(100);not null"`
	StoreName           string          `gorm:"type:varchar(100);index"`
	ReportDate          time.Time       `gorm:"type:date;not null;index:idx_therapist_reports_date;index:idx_therapist_reports_therapist_date,priority:2"`
	NewCustomerRevenue  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OldCustomerRevenue  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ReturnRevenue       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalRevenue        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NewCustomerCount    int             `gorm:"not null;default:0"`
	OldCustomerCount    int             `gorm:"not null;default:0"`
	NewCustomerClosings int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TherapistReportModel) TableName() string {
	return "therapist_daily_reports"
}

// ToDomain converts the persistence model to a domain TherapistDailyReport.
func (m *TherapistReportModel) ToDomain() *report.TherapistDailyReport {
	return &report.TherapistDailyReport{
		BaseEntity:          m.BaseModel.ToDomain(),
		TherapistID:         m.TherapistID,
		TherapistName:       m.TherapistName,
		StoreName:           m.StoreName,
		Date:                valueobject.NewReportDateFromTime(m.ReportDate),
		NewCustomerRevenue:  m.NewCustomerRevenue,
		OldCustomerRevenue:  m.OldCustomerRevenue,
		ReturnRevenue:       m.ReturnRevenue,
		TotalRevenue:        m.TotalRevenue,
		NewCustomerCount:    m.NewCustomerCount,
		OldCustomerCount:    m.OldCustomerCount,
		NewCustomerClosings: m.NewCustomerClosings,
	}
}

// FromDomain populates the persistence model from a domain report.
func (m *TherapistReportModel) FromDomain(r *report.TherapistDailyReport) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.TherapistID = r.TherapistID
	m.TherapistName = r.TherapistName
	m.StoreName = r.StoreName
	m.ReportDate = r.Date.Time()
	m.NewCustomerRevenue = r.NewCustomerRevenue
	m.OldCustomerRevenue = r.OldCustomerRevenue
	m.ReturnRevenue = r.ReturnRevenue
	m.TotalRevenue = r.TotalRevenue
	m.NewCustomerCount = r.NewCustomerCount
	m.OldCustomerCount = r.OldCustomerCount
	m.NewCustomerClosings = r.NewCustomerClosings
}
