package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/retailboard/backend/internal/application/report"
	"github.com/retailboard/backend/internal/interfaces/http/dto"
)

// TherapistReportHandler handles therapist daily report API endpoints
type TherapistReportHandler struct {
	BaseHandler
	service *reportapp.TherapistReportService
}

// NewTherapistReportHandler creates a new TherapistReportHandler
func NewTherapistReportHandler(service *reportapp.TherapistReportService) *TherapistReportHandler {
	return &TherapistReportHandler{service: service}
}

// Submit creates a new therapist daily report. The performance total is
// always derived server-side from the component amounts.
func (h *TherapistReportHandler) Submit(c *gin.Context) {
	var req reportapp.SubmitTherapistReportRequest
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

// Get returns one therapist report by ID
func (h *TherapistReportHandler) Get(c *gin.Context) {
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

// List returns therapist reports for a period
func (h *TherapistReportHandler) List(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.ListByPeriod(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces the component amounts of an existing therapist report
func (h *TherapistReportHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid report ID")
		return
	}

	var req reportapp.UpdateTherapistReportRequest
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

// Delete removes a therapist report
func (h *TherapistReportHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid report ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers therapist report routes
func (h *TherapistReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports/therapists")
	{
		reports.POST("", h.Submit)
		reports.GET("", h.List)
		reports.GET("/:id", h.Get)
		reports.PUT("/:id", h.Update)
		reports.DELETE("/:id", h.Delete)
	}
}
