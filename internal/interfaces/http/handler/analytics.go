package handler

import (
	"github.com/gin-gonic/gin"
	analyticsapp "github.com/retailboard/backend/internal/application/analytics"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"github.com/retailboard/backend/internal/interfaces/http/dto"
)

// AnalyticsHandler handles dashboard and audit API endpoints
type AnalyticsHandler struct {
	BaseHandler
	service      *analyticsapp.Service
	defaultBrand string
}

// NewAnalyticsHandler creates a new AnalyticsHandler. defaultBrand is
// used when a request does not name a brand prefix.
func NewAnalyticsHandler(service *analyticsapp.Service, defaultBrand string) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		defaultBrand: defaultBrand,
	}
}

// DashboardRequest filters a dashboard by brand and period
type DashboardRequest struct {
	Brand string `form:"brand"`
	Year  int    `form:"year" binding:"required,min=2000,max=2200"`
	Month int    `form:"month" binding:"required,min=1,max=12"`
}

// DailyAuditRequest names the day to check for missing submissions
type DailyAuditRequest struct {
	Brand string `form:"brand"`
	Date  string `form:"date" binding:"required"`
}

func (h *AnalyticsHandler) brandOrDefault(brand string) string {
	if brand == "" {
		return h.defaultBrand
	}
	return brand
}

// StoreDashboard returns per-store, per-region, and company-wide monthly
// and yearly figures with achievement and projection
func (h *AnalyticsHandler) StoreDashboard(c *gin.Context) {
	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.StoreDashboard(c.Request.Context(), h.brandOrDefault(req.Brand), req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// TherapistDashboard returns the ranked therapist performance board
func (h *AnalyticsHandler) TherapistDashboard(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.TherapistDashboard(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DailySubmissionAudit lists stores that have and have not submitted a
// report for one day
func (h *AnalyticsHandler) DailySubmissionAudit(c *gin.Context) {
	var req DailyAuditRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := valueobject.ParseReportDateString(req.Date)
	if err != nil {
		h.HandleError(c, shared.ErrInvalidReportDate)
		return
	}

	resp, err := h.service.DailySubmissionAudit(c.Request.Context(), h.brandOrDefault(req.Brand), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// TargetSettingAudit lists stores with and without a usable target for a
// month
func (h *AnalyticsHandler) TargetSettingAudit(c *gin.Context) {
	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.TargetSettingAudit(c.Request.Context(), h.brandOrDefault(req.Brand), req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/stores", h.StoreDashboard)
		analytics.GET("/therapists", h.TherapistDashboard)
		analytics.GET("/audits/daily", h.DailySubmissionAudit)
		analytics.GET("/audits/targets", h.TargetSettingAudit)
	}
}
