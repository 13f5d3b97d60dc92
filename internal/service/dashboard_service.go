package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/EngOsamaQazan/Archeef/config"
	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
)

// DashboardService assembles the landing-page counters. Each counter
// degrades to zero when its source query fails; the dashboard never
// returns an error for a partial outage.
type DashboardService interface {
	Summary(ctx context.Context) *dto.DashboardResponse
}

type dashboardService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates a DashboardService instance.
func NewDashboardService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *dashboardService) Summary(ctx context.Context) *dto.DashboardResponse {
	out := &dto.DashboardResponse{RecentActivity: []dto.TransactionSummary{}}

	if total, err := s.repo.Transaction.Count(ctx); err != nil {
		s.logger.Warn("dashboard: count transfers failed", zap.Error(err))
	} else {
		out.TotalTransactions = int(total)
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if today, err := s.repo.Transaction.CountSince(ctx, midnight); err != nil {
		s.logger.Warn("dashboard: count today's transfers failed", zap.Error(err))
	} else {
		out.TodayTransactions = int(today)
	}

	if contracts, err := s.repo.Contract.Count(ctx); err != nil {
		s.logger.Warn("dashboard: count contracts failed", zap.Error(err))
	} else {
		out.TotalContracts = int(contracts)
	}

	if employees, err := s.repo.Employee.Count(ctx); err != nil {
		s.logger.Warn("dashboard: count employees failed", zap.Error(err))
	} else {
		out.TotalEmployees = int(employees)
	}

	limit := s.cfg.Reports.RecentActivityLimit
	if limit <= 0 {
		limit = 10
	}
	if recent, err := s.repo.Transaction.List(ctx, &repository.TransactionListFilters{}, limit); err != nil {
		s.logger.Warn("dashboard: load recent activity failed", zap.Error(err))
	} else {
		for i := range recent {
			out.RecentActivity = append(out.RecentActivity, toTransactionSummary(&recent[i]))
		}
	}

	return out
}
