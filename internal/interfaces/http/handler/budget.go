package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/retailboard/backend/internal/application/report"
)

// BudgetHandler handles monthly budget target API endpoints
type BudgetHandler struct {
	BaseHandler
	service *reportapp.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(service *reportapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// SetBudgetBatchRequest carries a batch of target upserts, typically one
// spreadsheet row per store
type SetBudgetBatchRequest struct {
	Targets []reportapp.SetBudgetTargetRequest `json:"targets" binding:"required,min=1,dive"`
}

// ListBudgetsRequest filters targets by year and optionally month
type ListBudgetsRequest struct {
	Year  int `form:"year" binding:"required,min=2000,max=2200"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// Set upserts one target. Writing the same store and period again
// replaces the previous values.
func (h *BudgetHandler) Set(c *gin.Context) {
	var req reportapp.SetBudgetTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Set(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetBatch upserts a batch of targets. The whole batch is validated
// before anything is written.
func (h *BudgetHandler) SetBatch(c *gin.Context) {
	var req SetBudgetBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.SetBatch(c.Request.Context(), req.Targets)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns targets for a year, or a single month when given
func (h *BudgetHandler) List(c *gin.Context) {
	var req ListBudgetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var (
		resp []reportapp.BudgetTargetResponse
		err  error
	)
	if req.Month > 0 {
		resp, err = h.service.ListByPeriod(c.Request.Context(), req.Year, req.Month)
	} else {
		resp, err = h.service.ListByYear(c.Request.Context(), req.Year)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers budget target routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.List)
		budgets.PUT("", h.Set)
		budgets.PUT("/batch", h.SetBatch)
	}
}
