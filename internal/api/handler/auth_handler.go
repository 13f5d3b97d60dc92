package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/service"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

// AuthHandler serves the auth endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login signs a user in.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 11001, err.Error())
		case errors.Is(err, service.ErrEmailNotConfirmed):
			response.Forbidden(c, 11002, err.Error())
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 11003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout retires the presented access token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	var expiresAt = claims.ExpiresAt
	if expiresAt == nil {
		response.OK(c, nil)
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), claims.ID, expiresAt.Time); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Refresh rotates a refresh token into a new token pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefresh):
			response.Unauthorized(c, 11004, err.Error())
		case errors.Is(err, service.ErrEmailNotConfirmed):
			response.Forbidden(c, 11002, err.Error())
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 11003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Register creates a new account pending email confirmation.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Conflict(c, 11005, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Me returns the authenticated user.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11006, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ConfirmEmail marks an account's email as confirmed.
// POST /api/v1/auth/accounts/:id/confirm  (admin)
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	if err := h.authSvc.ConfirmEmail(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11006, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// UpdateRole changes a user's role.
// PUT /api/v1/auth/users/:id/role  (admin)
func (h *AuthHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "بيانات الطلب غير صحيحة")
		return
	}

	if err := h.authSvc.UpdateRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 11007, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11006, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}
