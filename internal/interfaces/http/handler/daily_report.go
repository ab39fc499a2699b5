package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/retailboard/backend/internal/application/report"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/interfaces/http/dto"
)

// DailyReportHandler handles store daily report API endpoints
type DailyReportHandler struct {
	BaseHandler
	service *reportapp.DailyReportService
}

// NewDailyReportHandler creates a new DailyReportHandler
func NewDailyReportHandler(service *reportapp.DailyReportService) *DailyReportHandler {
	return &DailyReportHandler{service: service}
}

// ListDailyReportsRequest defines the filter for daily report list queries
type ListDailyReportsRequest struct {
	Year  int    `form:"year" binding:"required,min=2000,max=2200"`
	Month int    `form:"month" binding:"required,min=1,max=12"`
	Store string `form:"store"`
}

// Submit creates a new store daily report
func (h *DailyReportHandler) Submit(c *gin.Context) {
	var req reportapp.SubmitDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one daily report by ID
func (h *DailyReportHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid report ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns daily reports for a period, optionally narrowed to one store
func (h *DailyReportHandler) List(c *gin.Context) {
	var req ListDailyReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.ListByPeriod(c.Request.Context(), req.Store, req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces the figures of an existing daily report. The report date
// and store name are fixed at submission time.
func (h *DailyReportHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid report ID")
		return
	}

	var req reportapp.UpdateDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a daily report
func (h *DailyReportHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		// Malformed IDs behave like missing rows so clients get one
		// consistent signal for "no such report".
		h.HandleError(c, shared.ErrNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers daily report routes
func (h *DailyReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports/daily")
	{
		reports.POST("", h.Submit)
		reports.GET("", h.List)
		reports.GET("/:id", h.Get)
		reports.PUT("/:id", h.Update)
		reports.DELETE("/:id", h.Delete)
	}
}
