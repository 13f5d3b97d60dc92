package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/service"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

// ContractHandler serves the contract endpoints.
type ContractHandler struct {
	contractSvc service.ContractService
}

// NewContractHandler creates a ContractHandler.
func NewContractHandler(contractSvc service.ContractService) *ContractHandler {
	return &ContractHandler{contractSvc: contractSvc}
}

// Search resolves a contract by number.
// GET /api/v1/contracts/search?number=C-1001
func (h *ContractHandler) Search(c *gin.Context) {
	var req dto.SearchContractRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.contractSvc.Search(c.Request.Context(), req.Number)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContractNotFound):
			response.NotFound(c, 13001, err.Error())
		case errors.Is(err, service.ErrInvalidContractNumber):
			response.BadRequest(c, 14005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// List returns the contract register, paginated.
// GET /api/v1/contracts?page=1&page_size=20
func (h *ContractHandler) List(c *gin.Context) {
	var req dto.ListContractsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, total, err := h.contractSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, result, total, req.GetPage(), req.GetPageSize())
}
