package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/config"
	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/model"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
	"github.com/EngOsamaQazan/Archeef/pkg/jwt"
	"github.com/EngOsamaQazan/Archeef/pkg/redis"
)

// ── Auth business errors ──

var (
	ErrInvalidCredentials = errors.New("البريد الإلكتروني أو كلمة المرور غير صحيحة")
	ErrEmailNotConfirmed  = errors.New("البريد الإلكتروني غير مؤكد")
	ErrAccountDisabled    = errors.New("الحساب معطل")
	ErrEmailTaken         = errors.New("البريد الإلكتروني مسجل مسبقاً")
	ErrUserNotFound       = errors.New("المستخدم غير موجود")
	ErrInvalidRefresh     = errors.New("جلسة غير صالحة، سجّل الدخول من جديد")
	ErrInvalidRole        = errors.New("الدور غير معروف")
)

// AuthService handles login, sessions and the application profile gate.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout blacklists the presented access token until it expires.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	// Me returns the current user's sanitized view.
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	// ConfirmEmail marks an account as confirmed (admin permission).
	ConfirmEmail(ctx context.Context, accountID string) error
	// UpdateRole changes a user's role (admin permission).
	UpdateRole(ctx context.Context, userID, role string) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService instance. rdb may be nil; logout
// then becomes a no-op and sessions simply expire.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Login: credentials check plus application profile gate
// ═══════════════════════════════════════════════════════════
//
// The profile in app_users is created lazily on first successful login.
// The configured manager email gets the manager role, everyone else starts
// as employee. A failed profile load or create never blocks the login:
// the session continues degraded under the same default-role rule.

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. Look the account up
	account, err := s.repo.Account.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}

	// 2. Verify the password
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !account.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	// 3. Resolve or lazily create the profile
	user, degraded := s.resolveProfile(ctx, account)
	if user != nil && !user.IsActive {
		return nil, ErrAccountDisabled
	}

	role := s.defaultRole(account.Email)
	var employee *model.Employee
	if user != nil {
		role = user.Role
		employee = user.Employee
	}

	// 4. Issue the token pair
	accessToken, err := s.jwtMgr.GenerateAccessToken(account.ID, account.Email, role)
	if err != nil {
		s.logger.Error("issue access token failed", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(account.ID, account.Email, role, req.RememberMe)
	if err != nil {
		s.logger.Error("issue refresh token failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("login",
		zap.String("user_id", account.ID),
		zap.String("role", role),
		zap.Bool("degraded", degraded))

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         buildUserResponse(account.ID, account.Email, role, employee, degraded),
	}, nil
}

// resolveProfile loads the app_users row, creating it on first login.
// Returns (nil, true) when the profile could not be loaded or created;
// callers continue with default permissions.
func (s *authService) resolveProfile(ctx context.Context, account *model.Account) (*model.AppUser, bool) {
	user, err := s.repo.AppUser.GetByUserID(ctx, account.ID)
	if err == nil {
		return user, false
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("profile lookup failed, continuing with default permissions",
			zap.String("user_id", account.ID),
			zap.Error(err))
		return nil, true
	}

	user = &model.AppUser{
		UserID:   account.ID,
		Role:     s.defaultRole(account.Email),
		IsActive: true,
	}
	if err := s.repo.AppUser.Create(ctx, user); err != nil {
		s.logger.Warn("profile create failed, continuing with default permissions",
			zap.String("user_id", account.ID),
			zap.Error(err))
		return nil, true
	}

	s.logger.Info("profile created",
		zap.String("user_id", account.ID),
		zap.String("role", user.Role))
	return user, false
}

// defaultRole is the role assumed before a profile row exists: manager for
// the configured manager email, employee for everyone else. The degraded
// paths use the same rule so the manager never loses access when the
// profile store is unavailable.
func (s *authService) defaultRole(email string) string {
	if email == s.cfg.Auth.ManagerEmail {
		return model.RoleManager
	}
	return model.RoleEmployee
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		s.logger.Warn("logout without redis, token expires naturally")
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("blacklist token failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	// 1. Verify the refresh token
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefresh
	}
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	// 2. The account must still exist and be confirmed
	account, err := s.repo.Account.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}
	if !account.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	// 3. Re-derive the role so role changes take effect on rotation
	user, degraded := s.resolveProfile(ctx, account)
	if user != nil && !user.IsActive {
		return nil, ErrAccountDisabled
	}
	role := s.defaultRole(account.Email)
	var employee *model.Employee
	if user != nil {
		role = user.Role
		employee = user.Employee
	}

	// 4. Rotate: issue a new pair, retire the old refresh token
	accessToken, err := s.jwtMgr.GenerateAccessToken(account.ID, account.Email, role)
	if err != nil {
		s.logger.Error("issue access token failed", zap.Error(err))
		return nil, err
	}
	newRefresh, err := s.jwtMgr.GenerateRefreshToken(account.ID, account.Email, role, claims.RememberMe)
	if err != nil {
		s.logger.Error("issue refresh token failed", zap.Error(err))
		return nil, err
	}
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("retire refresh token failed", zap.Error(err))
		}
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         buildUserResponse(account.ID, account.Email, role, employee, degraded),
	}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if _, err := s.repo.Account.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	account := &model.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Account.Create(ctx, account); err != nil {
		s.logger.Error("create account failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("account registered", zap.String("user_id", account.ID))
	return &dto.RegisterResponse{ID: account.ID, Email: account.Email}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	account, err := s.repo.Account.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}

	user, degraded := s.resolveProfile(ctx, account)
	role := s.defaultRole(account.Email)
	var employee *model.Employee
	if user != nil {
		role = user.Role
		employee = user.Employee
	}

	resp := buildUserResponse(account.ID, account.Email, role, employee, degraded)
	return &resp, nil
}

func (s *authService) ConfirmEmail(ctx context.Context, accountID string) error {
	if _, err := s.repo.Account.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return err
	}
	return s.repo.Account.ConfirmEmail(ctx, accountID)
}

func (s *authService) UpdateRole(ctx context.Context, userID, role string) error {
	if _, ok := model.RolePermissions[role]; !ok {
		return ErrInvalidRole
	}
	if _, err := s.repo.AppUser.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("profile lookup failed", zap.Error(err))
		return err
	}

	if err := s.repo.AppUser.UpdateRole(ctx, userID, role); err != nil {
		s.logger.Error("update role failed", zap.Error(err))
		return err
	}
	s.logger.Info("role updated",
		zap.String("user_id", userID),
		zap.String("role", role))
	return nil
}

func buildUserResponse(id, email, role string, employee *model.Employee, degraded bool) dto.UserResponse {
	return dto.UserResponse{
		ID:          id,
		Email:       email,
		Role:        role,
		Permissions: model.RolePermissions[role],
		Employee:    toEmployeeResponse(employee),
		Degraded:    degraded,
	}
}
