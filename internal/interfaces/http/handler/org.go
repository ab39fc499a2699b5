package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/retailboard/backend/internal/application/report"
)

// OrgHandler handles region hierarchy API endpoints
type OrgHandler struct {
	BaseHandler
	service *reportapp.OrgService
}

// NewOrgHandler creates a new OrgHandler
func NewOrgHandler(service *reportapp.OrgService) *OrgHandler {
	return &OrgHandler{service: service}
}

// Hierarchy returns all regions with their store rosters in display order
func (h *OrgHandler) Hierarchy(c *gin.Context) {
	resp, err := h.service.Hierarchy(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SaveRegion replaces one manager's store roster
func (h *OrgHandler) SaveRegion(c *gin.Context) {
	var req reportapp.SaveRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.SaveRegion(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MoveStore reassigns a store to another manager
func (h *OrgHandler) MoveStore(c *gin.Context) {
	var req reportapp.MoveStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.MoveStore(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers org hierarchy routes
func (h *OrgHandler) RegisterRoutes(rg *gin.RouterGroup) {
	org := rg.Group("/org")
	{
		org.GET("/regions", h.Hierarchy)
		org.PUT("/regions", h.SaveRegion)
		org.POST("/stores/move", h.MoveStore)
	}
}
