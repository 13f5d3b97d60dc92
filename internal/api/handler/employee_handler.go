package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/service"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

// EmployeeHandler serves the employee directory endpoints.
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// List returns all employees ordered by name.
// GET /api/v1/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	result, err := h.employeeSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Create registers a new employee.
// POST /api/v1/employees  (admin)
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.employeeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidName):
			response.BadRequest(c, 12003, err.Error())
		case errors.Is(err, service.ErrEmployeeExists):
			response.Conflict(c, 12002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}
