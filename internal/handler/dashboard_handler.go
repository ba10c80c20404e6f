package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tit-academy/crm-api/internal/service"
	"github.com/tit-academy/crm-api/pkg/response"
)

// DashboardHandler wires HTTP endpoints to the dashboard service.
type DashboardHandler struct {
	service *service.DashboardService
	metrics *service.MetricsService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService, metrics *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{service: svc, metrics: metrics}
}

// Stats godoc
// @Summary Dashboard summary
// @Description Aggregate counts plus the overall attendance rate
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, cached, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveCacheLookup(cached)
	}

	response.JSON(c, http.StatusOK, stats, map[string]interface{}{"cacheHit": cached})
}
