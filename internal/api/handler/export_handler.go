package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/service"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

const (
	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves the file export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Transactions downloads the transfer log.
// GET /api/v1/export/transactions?period=month&format=csv
func (h *ExportHandler) Transactions(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	buf, filename, err := h.exportSvc.ExportTransactions(c.Request.Context(), req.Period, req.Format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendFile(c, buf, filename, formatContentType(req.Format))
}

// Contracts downloads the contract register.
// GET /api/v1/export/contracts?format=json
func (h *ExportHandler) Contracts(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	buf, filename, err := h.exportSvc.ExportContracts(c.Request.Context(), req.Format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendFile(c, buf, filename, formatContentType(req.Format))
}

// Report downloads the activity report workbook.
// GET /api/v1/export/report?period=month
func (h *ExportHandler) Report(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	buf, filename, err := h.exportSvc.ExportReport(c.Request.Context(), req.Period)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendFile(c, buf, filename, contentTypeXLSX)
}

func (h *ExportHandler) sendFile(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportBadFormat):
		response.BadRequest(c, 16101, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

func formatContentType(format string) string {
	if format == service.FormatCSV {
		return contentTypeCSV
	}
	return contentTypeJSON
}
