package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/service"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

// TransactionHandler serves the transfer endpoints.
type TransactionHandler struct {
	transactionSvc service.TransactionService
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(transactionSvc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionSvc: transactionSvc}
}

// Create records a document transfer and returns the receipt.
// POST /api/v1/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.transactionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidType):
			response.BadRequest(c, 10001, err.Error())
		case errors.Is(err, service.ErrSameEmployee):
			response.BadRequest(c, 14002, err.Error())
		case errors.Is(err, service.ErrEmptyContractList):
			response.BadRequest(c, 14003, err.Error())
		case errors.Is(err, service.ErrDuplicateContract):
			response.BadRequest(c, 14004, err.Error())
		case errors.Is(err, service.ErrInvalidContractNumber):
			response.BadRequest(c, 14005, err.Error())
		case errors.Is(err, service.ErrEmployeeNotFound):
			response.NotFound(c, 12001, err.Error())
		case errors.Is(err, service.ErrContractConflict):
			response.Conflict(c, 13002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List returns transfers filtered by period and type.
// GET /api/v1/transactions?period=week&type=deliver
func (h *TransactionHandler) List(c *gin.Context) {
	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.transactionSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Recent returns the latest transfers for the activity feed.
// GET /api/v1/transactions/recent?limit=10
func (h *TransactionHandler) Recent(c *gin.Context) {
	var req dto.RecentTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.transactionSvc.Recent(c.Request.Context(), req.Limit)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetByID returns one transfer with its contracts.
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetByID(c *gin.Context) {
	result, err := h.transactionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			response.NotFound(c, 14001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
