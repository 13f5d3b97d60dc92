package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/service"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

// DashboardHandler serves the landing-page counters.
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Summary returns the dashboard counters and recent activity.
// GET /api/v1/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	response.OK(c, h.dashboardSvc.Summary(c.Request.Context()))
}
