package service

import (
	"go.uber.org/zap"

	"github.com/EngOsamaQazan/Archeef/config"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
	"github.com/EngOsamaQazan/Archeef/pkg/jwt"
	"github.com/EngOsamaQazan/Archeef/pkg/redis"
)

// Service is the aggregate entry point for all business services.
type Service struct {
	Auth        AuthService
	Employee    EmployeeService
	Contract    ContractService
	Transaction TransactionService
	Report      ReportService
	Dashboard   DashboardService
	Export      ExportService
}

// NewService wires every service against the shared repository.
// rdb may be nil; services that use it degrade gracefully.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Employee:    NewEmployeeService(repo, logger),
		Contract:    NewContractService(repo, logger),
		Transaction: NewTransactionService(repo, logger),
		Report:      NewReportService(repo, logger),
		Dashboard:   NewDashboardService(cfg, repo, logger),
		Export:      NewExportService(cfg, repo, logger),
	}
}
