package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/model"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
)

// ReportService builds activity reports over the transfer log.
type ReportService interface {
	Generate(ctx context.Context, period string) (*dto.ReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a ReportService instance.
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger, now: time.Now}
}

func (s *reportService) Generate(ctx context.Context, period string) (*dto.ReportResponse, error) {
	now := s.now()

	// a report over zero transfers is still a valid report; a load failure
	// degrades to the empty aggregate instead of failing the page
	transactions, err := s.repo.Transaction.List(ctx, &repository.TransactionListFilters{
		Since: periodStart(period, now),
	}, 0)
	if err != nil {
		s.logger.Error("load transfers for report failed", zap.Error(err))
		transactions = nil
	}

	report := Aggregate(transactions)
	report.Period = normalizePeriod(period)
	report.GeneratedAt = now.Format(time.RFC3339)
	return report, nil
}

func normalizePeriod(period string) string {
	switch period {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return period
	default:
		return PeriodAll
	}
}

// ═══════════════════════════════════════════════════════════
// Aggregate: fold the transfer log into report counters
// ═══════════════════════════════════════════════════════════
//
// A single pass over the transactions produces:
//   - Total: number of transfers
//   - TotalContracts: sum of each transfer's document count
//   - ByType: transfers per type code
//   - ByEmployee / ByDepartment: sent/received split, keyed by name
//   - ByDay: per-day, per-type series keyed dd/mm/yyyy, oldest first
//
// Transfers with zero attached documents still count in Total and ByType.

func Aggregate(transactions []model.Transaction) *dto.ReportResponse {
	report := &dto.ReportResponse{
		Total:        len(transactions),
		ByType:       make(map[string]int),
		ByEmployee:   make(map[string]dto.DirectionCount),
		ByDepartment: make(map[string]dto.DirectionCount),
		ByDay:        []dto.DayCount{},
	}

	type dayEntry struct {
		date    time.Time
		receive int
		deliver int
	}
	days := make(map[string]*dayEntry)

	for i := range transactions {
		t := &transactions[i]

		report.ByType[t.TransactionType]++
		docs := t.DocumentCount()
		report.TotalContracts += docs

		// sent/received track documents moved, not transfer rows, so a
		// zero-document transfer contributes nothing here
		if t.FromEmployee != nil {
			count := report.ByEmployee[t.FromEmployee.Name]
			count.Sent += docs
			report.ByEmployee[t.FromEmployee.Name] = count

			dept := report.ByDepartment[t.FromEmployee.Department]
			dept.Sent += docs
			report.ByDepartment[t.FromEmployee.Department] = dept
		}
		if t.ToEmployee != nil {
			count := report.ByEmployee[t.ToEmployee.Name]
			count.Received += docs
			report.ByEmployee[t.ToEmployee.Name] = count

			dept := report.ByDepartment[t.ToEmployee.Department]
			dept.Received += docs
			report.ByDepartment[t.ToEmployee.Department] = dept
		}

		day := t.TransactionDate.Format("02/01/2006")
		entry, ok := days[day]
		if !ok {
			midnight := time.Date(
				t.TransactionDate.Year(), t.TransactionDate.Month(), t.TransactionDate.Day(),
				0, 0, 0, 0, t.TransactionDate.Location())
			entry = &dayEntry{date: midnight}
			days[day] = entry
		}
		switch t.TransactionType {
		case model.TransactionTypeReceive:
			entry.receive++
		case model.TransactionTypeDeliver:
			entry.deliver++
		}
	}

	ordered := make([]*dayEntry, 0, len(days))
	for _, entry := range days {
		ordered = append(ordered, entry)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].date.Before(ordered[j].date)
	})
	for _, entry := range ordered {
		report.ByDay = append(report.ByDay, dto.DayCount{
			Day:     entry.date.Format("02/01/2006"),
			Receive: entry.receive,
			Deliver: entry.deliver,
		})
	}

	return report
}
