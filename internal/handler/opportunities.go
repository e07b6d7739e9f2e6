package handler

import (
	"net/http"

	"github.com/Geraghw1/defaero-deal-tracker/internal/apierror"
	"github.com/Geraghw1/defaero-deal-tracker/internal/middleware"
	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/query"
	"github.com/Geraghw1/defaero-deal-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type OpportunitiesHandler struct{ svc service.OpportunityService }

func NewOpportunitiesHandler(svc service.OpportunityService) *OpportunitiesHandler {
	return &OpportunitiesHandler{svc: svc}
}

// List returns opportunities matching the optional filter criteria, wrapped
// under a "data" key, newest update first.
func (h *OpportunitiesHandler) List(c *gin.Context) {
	var criteria query.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	items, err := h.svc.List(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err, "Failed to fetch opportunities")
		return
	}
	if items == nil {
		items = []model.Opportunity{}
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *OpportunitiesHandler) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	claims := middleware.GetClaims(c)

	record, err := h.svc.Create(c.Request.Context(), payload, claims.Username)
	if err != nil {
		respondError(c, err, "Failed to create opportunity")
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *OpportunitiesHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}

	record, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, err, "Failed to update opportunity")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *OpportunitiesHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete opportunity")
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary returns per-status record counts plus the open pipeline total.
func (h *OpportunitiesHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summarize(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
