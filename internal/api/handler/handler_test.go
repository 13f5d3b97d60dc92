package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/service"
	"github.com/EngOsamaQazan/Archeef/pkg/jwt"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult    *dto.TokenResponse
	loginErr       error
	logoutErr      error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	registerResult *dto.RegisterResponse
	registerErr    error
	meResult       *dto.UserResponse
	meErr          error
	confirmErr     error
	updateRoleErr  error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ConfirmEmail(_ context.Context, _ string) error {
	return m.confirmErr
}
func (m *mockAuthService) UpdateRole(_ context.Context, _, _ string) error {
	return m.updateRoleErr
}

// ── Mock TransactionService ──

type mockTransactionService struct {
	createResult *dto.CreateTransactionResponse
	createErr    error
	getResult    *dto.TransactionResponse
	getErr       error
	listResult   []dto.TransactionResponse
	listErr      error
	recentResult []dto.TransactionSummary
	recentErr    error
}

func (m *mockTransactionService) Create(_ context.Context, _ *dto.CreateTransactionRequest) (*dto.CreateTransactionResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTransactionService) GetByID(_ context.Context, _ string) (*dto.TransactionResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTransactionService) List(_ context.Context, _ *dto.ListTransactionsRequest) ([]dto.TransactionResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTransactionService) Recent(_ context.Context, _ int) ([]dto.TransactionSummary, error) {
	return m.recentResult, m.recentErr
}

// ── Mock ContractService ──

type mockContractService struct {
	searchResult *dto.ContractSearchResponse
	searchErr    error
	listResult   []dto.ContractResponse
	listTotal    int64
	listErr      error
}

func (m *mockContractService) Search(_ context.Context, _ string) (*dto.ContractSearchResponse, error) {
	return m.searchResult, m.searchErr
}
func (m *mockContractService) List(_ context.Context, _ *dto.ListContractsRequest) ([]dto.ContractResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ── Mock EmployeeService ──

type mockEmployeeService struct {
	listResult   []dto.EmployeeResponse
	listErr      error
	createResult *dto.EmployeeResponse
	createErr    error
}

func (m *mockEmployeeService) List(_ context.Context) ([]dto.EmployeeResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockEmployeeService) Create(_ context.Context, _ *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	return m.createResult, m.createErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportTransactions(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportContracts(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportReport(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock DashboardService ──

type mockDashboardService struct {
	result *dto.DashboardResponse
}

func (m *mockDashboardService) Summary(_ context.Context) *dto.DashboardResponse {
	return m.result
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() (*gin.Engine, *gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	return r, c, w
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "manager")
	c.Set("claims", &jwt.Claims{
		UserID:    "test-user-id",
		Role:      "manager",
		TokenType: jwt.TokenTypeAccess,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        "test-jti",
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
			User:         dto.UserResponse{ID: "u-1", Email: "user@example.com", Role: "employee"},
		},
	}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "user@example.com",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"InvalidCredentials", service.ErrInvalidCredentials, 401, 11001},
		{"EmailNotConfirmed", service.ErrEmailNotConfirmed, 403, 11002},
		{"AccountDisabled", service.ErrAccountDisabled, 403, 11003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthService{loginErr: tt.err})

			_, _, w := setupGin()
			req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
				Email:    "user@example.com",
				Password: "wrong",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/auth/login", h.Login)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestAuthHandler_Refresh_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidRefresh})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mock := &mockAuthService{
		registerResult: &dto.RegisterResponse{ID: "u-1", Email: "new@example.com"},
	}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "Test12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrEmailTaken})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "Test12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11005 {
		t.Errorf("expected error code 11005, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mock := &mockAuthService{
		meResult: &dto.UserResponse{ID: "test-user-id", Email: "user@example.com", Role: "employee"},
	}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10002 {
		t.Errorf("expected error code 10002, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_UpdateRole_InvalidRole(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/auth/users/u-1/role", jsonBody(map[string]string{
		"role": "superuser",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/users/:id/role", h.UpdateRole)
	r.ServeHTTP(w, req)

	// oneof binding rejects unknown roles before the service is reached
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_UpdateRole_UserNotFound(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{updateRoleErr: service.ErrUserNotFound})

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/auth/users/missing/role", jsonBody(dto.UpdateRoleRequest{
		Role: "auditor",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/users/:id/role", h.UpdateRole)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11006 {
		t.Errorf("expected error code 11006, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TransactionHandler Tests
// ═══════════════════════════════════════════════════════════

func validCreateTransactionRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TransactionType: "receive",
		FromEmployeeID:  "11111111-1111-1111-1111-111111111111",
		ToEmployeeID:    "22222222-2222-2222-2222-222222222222",
		ContractNumbers: []string{"C-1001"},
	}
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	mock := &mockTransactionService{
		createResult: &dto.CreateTransactionResponse{
			Transaction: dto.TransactionResponse{ID: "t-1", ReceiptNumber: "RCP-1725000000000-042"},
			Receipt:     dto.ReceiptResponse{ReceiptNumber: "RCP-1725000000000-042", DocumentCount: 1},
		},
	}
	h := NewTransactionHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/transactions", jsonBody(validCreateTransactionRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/transactions", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestTransactionHandler_Create_BadJSON(t *testing.T) {
	h := NewTransactionHandler(&mockTransactionService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/transactions", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/transactions", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTransactionHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"InvalidType", service.ErrInvalidType, 400, 10001},
		{"SameEmployee", service.ErrSameEmployee, 400, 14002},
		{"EmptyContractList", service.ErrEmptyContractList, 400, 14003},
		{"DuplicateContract", service.ErrDuplicateContract, 400, 14004},
		{"InvalidContractNumber", service.ErrInvalidContractNumber, 400, 14005},
		{"EmployeeNotFound", service.ErrEmployeeNotFound, 404, 12001},
		{"ContractConflict", service.ErrContractConflict, 409, 13002},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransactionHandler(&mockTransactionService{createErr: tt.err})

			_, _, w := setupGin()
			req := httptest.NewRequest("POST", "/transactions", jsonBody(validCreateTransactionRequest()))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/transactions", h.Create)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestTransactionHandler_List_InvalidPeriod(t *testing.T) {
	h := NewTransactionHandler(&mockTransactionService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/transactions?period=decade", nil)

	r := gin.New()
	r.GET("/transactions", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTransactionHandler_List_Success(t *testing.T) {
	mock := &mockTransactionService{
		listResult: []dto.TransactionResponse{{ID: "t-1"}, {ID: "t-2"}},
	}
	h := NewTransactionHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/transactions?period=week&type=deliver", nil)

	r := gin.New()
	r.GET("/transactions", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestTransactionHandler_Recent_Success(t *testing.T) {
	mock := &mockTransactionService{
		recentResult: []dto.TransactionSummary{{ID: "t-1", ReceiptNumber: "RCP-1725000000000-001"}},
	}
	h := NewTransactionHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/transactions/recent?limit=5", nil)

	r := gin.New()
	r.GET("/transactions/recent", h.Recent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestTransactionHandler_GetByID_NotFound(t *testing.T) {
	h := NewTransactionHandler(&mockTransactionService{getErr: service.ErrTransactionNotFound})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/transactions/missing", nil)

	r := gin.New()
	r.GET("/transactions/:id", h.GetByID)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ContractHandler Tests
// ═══════════════════════════════════════════════════════════

func TestContractHandler_Search_Success(t *testing.T) {
	mock := &mockContractService{
		searchResult: &dto.ContractSearchResponse{
			Contract: dto.ContractResponse{ID: "c-1", ContractNumber: "C-1001", Status: "مع ربى الشريف"},
		},
	}
	h := NewContractHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/contracts/search?number=C-1001", nil)

	r := gin.New()
	r.GET("/contracts/search", h.Search)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestContractHandler_Search_MissingNumber(t *testing.T) {
	h := NewContractHandler(&mockContractService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/contracts/search", nil)

	r := gin.New()
	r.GET("/contracts/search", h.Search)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestContractHandler_Search_NotFound(t *testing.T) {
	h := NewContractHandler(&mockContractService{searchErr: service.ErrContractNotFound})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/contracts/search?number=C-9999", nil)

	r := gin.New()
	r.GET("/contracts/search", h.Search)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestContractHandler_List_PaginationEnvelope(t *testing.T) {
	mock := &mockContractService{
		listResult: []dto.ContractResponse{{ID: "c-1"}, {ID: "c-2"}},
		listTotal:  42,
	}
	h := NewContractHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/contracts?page=2&page_size=2", nil)

	r := gin.New()
	r.GET("/contracts", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Code int               `json:"code"`
		Data response.PageData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.Pagination.Total != 42 {
		t.Errorf("expected total 42, got %d", resp.Data.Pagination.Total)
	}
	if resp.Data.Pagination.Page != 2 {
		t.Errorf("expected page 2, got %d", resp.Data.Pagination.Page)
	}
}

// ═══════════════════════════════════════════════════════════
// EmployeeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEmployeeHandler_Create_Success(t *testing.T) {
	mock := &mockEmployeeService{
		createResult: &dto.EmployeeResponse{ID: "e-1", Name: "مؤمن قازان", Department: "أرشيف"},
	}
	h := NewEmployeeHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/employees", jsonBody(dto.CreateEmployeeRequest{
		Name:       "مؤمن قازان",
		Department: "أرشيف",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/employees", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestEmployeeHandler_Create_UnknownDepartment(t *testing.T) {
	h := NewEmployeeHandler(&mockEmployeeService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/employees", jsonBody(dto.CreateEmployeeRequest{
		Name:       "مؤمن قازان",
		Department: "محاسبة",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/employees", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEmployeeHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"InvalidName", service.ErrInvalidName, 400, 12003},
		{"Duplicate", service.ErrEmployeeExists, 409, 12002},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewEmployeeHandler(&mockEmployeeService{createErr: tt.err})

			_, _, w := setupGin()
			req := httptest.NewRequest("POST", "/employees", jsonBody(dto.CreateEmployeeRequest{
				Name:       "ربى الشريف",
				Department: "مكتب",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/employees", h.Create)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Transactions_CSV(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("\ufeff\"رقم الإيصال\"\r\n"),
		filename: "transactions_2026-09-01.csv",
	}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/export/transactions?period=month&format=csv", nil)

	r := gin.New()
	r.GET("/export/transactions", h.Transactions)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeCSV {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_Transactions_UnknownFormat(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/export/transactions?format=xml", nil)

	r := gin.New()
	r.GET("/export/transactions", h.Transactions)
	r.ServeHTTP(w, req)

	// oneof binding rejects formats other than json/csv
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_Transactions_BadFormatFromService(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportBadFormat})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/export/transactions?format=csv", nil)

	r := gin.New()
	r.GET("/export/transactions", h.Transactions)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16101 {
		t.Errorf("expected error code 16101, got %d", resp.Code)
	}
}

func TestExportHandler_Report_XLSX(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("PK\x03\x04workbook"),
		filename: "report_month_2026-09-01.xlsx",
	}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/export/report?period=month", nil)

	r := gin.New()
	r.GET("/export/report", h.Report)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("unexpected content type: %s", ct)
	}
}

// ═══════════════════════════════════════════════════════════
// DashboardHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDashboardHandler_Summary(t *testing.T) {
	mock := &mockDashboardService{
		result: &dto.DashboardResponse{
			TotalTransactions: 7,
			TotalContracts:    12,
			TotalEmployees:    3,
		},
	}
	h := NewDashboardHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/dashboard", nil)

	r := gin.New()
	r.GET("/dashboard", func(c *gin.Context) {
		setAuth(c)
		h.Summary(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}
