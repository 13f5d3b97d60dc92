package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/service"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

// ReportHandler serves the activity report endpoint.
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Generate builds the activity report for a period.
// GET /api/v1/reports?period=month
func (h *ReportHandler) Generate(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.reportSvc.Generate(c.Request.Context(), req.Period)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
