package dto

// ── Auth requests ──

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest creates a new account with its application profile.
type RegisterRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateRoleRequest changes another user's role (admin permission).
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=manager employee auditor"`
}

// ── Auth responses ──

// TokenResponse is the access/refresh token pair returned on login and refresh.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token lifetime in seconds
	User         UserResponse `json:"user"`
}

// UserResponse is the sanitized view of the authenticated user.
type UserResponse struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	Role        string            `json:"role"`
	Permissions []string          `json:"permissions"`
	Employee    *EmployeeResponse `json:"employee,omitempty"`
	// Degraded is true when the profile could not be loaded or created
	// and the session continues with default employee permissions.
	Degraded bool `json:"degraded,omitempty"`
}

// RegisterResponse acknowledges a newly created account.
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
