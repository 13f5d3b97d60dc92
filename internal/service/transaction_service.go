package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/model"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
	pkgerrors "github.com/EngOsamaQazan/Archeef/pkg/errors"
)

// ── Transaction business errors ──

var (
	ErrTransactionNotFound   = errors.New("الحركة غير موجودة")
	ErrInvalidType           = errors.New("نوع الحركة غير صحيح")
	ErrSameEmployee          = errors.New("لا يمكن نقل المستندات من الموظف إلى نفسه")
	ErrEmptyContractList     = errors.New("يجب إدخال رقم عقد واحد على الأقل")
	ErrDuplicateContract     = errors.New("توجد أرقام عقود مكررة في القائمة")
	ErrInvalidContractNumber = errors.New("رقم العقد غير صالح")
	ErrContractConflict      = errors.New("تم تعديل حالة العقد من جهة أخرى، أعد المحاولة")
)

// Contract numbers allow Latin and Arabic letters, digits, spaces,
// hyphens and underscores.
var contractNumberRe = regexp.MustCompile(`^[a-zA-Z0-9\x{0600}-\x{06FF}\s\-_]+$`)

// TransactionService records and reads document transfers.
type TransactionService interface {
	Create(ctx context.Context, req *dto.CreateTransactionRequest) (*dto.CreateTransactionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TransactionResponse, error)
	List(ctx context.Context, req *dto.ListTransactionsRequest) ([]dto.TransactionResponse, error)
	Recent(ctx context.Context, limit int) ([]dto.TransactionSummary, error)
}

type transactionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTransactionService creates a TransactionService instance.
func NewTransactionService(repo *repository.Repository, logger *zap.Logger) TransactionService {
	return &transactionService{repo: repo, logger: logger, now: time.Now}
}

// NormalizeContractNumber trims the number and collapses internal runs of
// whitespace to single spaces.
func NormalizeContractNumber(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// ValidateContractNumber checks a normalized contract number. The length
// cap counts characters, not bytes, so Arabic numbers get the full 100.
func ValidateContractNumber(number string) error {
	if number == "" || utf8.RuneCountInString(number) > 100 {
		return ErrInvalidContractNumber
	}
	if !contractNumberRe.MatchString(number) {
		return ErrInvalidContractNumber
	}
	return nil
}

// newReceiptNumber builds a receipt identifier from the current epoch
// milliseconds and a random 3-digit suffix.
func newReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCP-%d-%03d", now.UnixMilli(), rand.Intn(1000))
}

// ═══════════════════════════════════════════════════════════
// Create: record a transfer atomically
// ═══════════════════════════════════════════════════════════
//
// All writes (transaction row, contract upserts, holder updates, detail
// rows) happen in one database transaction. A holder update hitting a
// stale contract version aborts the whole transfer with ErrContractConflict.

func (s *transactionService) Create(ctx context.Context, req *dto.CreateTransactionRequest) (*dto.CreateTransactionResponse, error) {
	// 1. Validate the transfer shape
	if !model.ValidTransactionType(req.TransactionType) {
		return nil, ErrInvalidType
	}
	if req.FromEmployeeID == req.ToEmployeeID {
		return nil, ErrSameEmployee
	}

	// 2. Normalize and validate contract numbers. An entry that is empty
	// after normalization is a format violation, not an omission.
	if len(req.ContractNumbers) == 0 {
		return nil, ErrEmptyContractList
	}
	numbers := make([]string, 0, len(req.ContractNumbers))
	seen := make(map[string]bool)
	for _, raw := range req.ContractNumbers {
		number := NormalizeContractNumber(raw)
		if err := ValidateContractNumber(number); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidContractNumber, number)
		}
		if seen[number] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateContract, number)
		}
		seen[number] = true
		numbers = append(numbers, number)
	}

	// 3. Resolve both employees
	from, err := s.repo.Employee.GetByID(ctx, req.FromEmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("resolve sender failed", zap.Error(err))
		return nil, err
	}
	to, err := s.repo.Employee.GetByID(ctx, req.ToEmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("resolve receiver failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	receipt := newReceiptNumber(now)

	var notes *string
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = &trimmed
	}

	transaction := &model.Transaction{
		TransactionType: req.TransactionType,
		FromEmployeeID:  from.ID,
		ToEmployeeID:    to.ID,
		ReceiptNumber:   receipt,
		Notes:           notes,
		TransactionDate: now,
	}

	status := model.HolderStatus(to.Name)

	// 4. Atomic write: transaction row, then per contract upsert + holder
	//    move + detail row
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Transaction.Create(ctx, transaction); err != nil {
			return err
		}

		for _, number := range numbers {
			contract, err := tx.Contract.GetByNumber(ctx, number)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				contract = &model.Contract{
					ContractNumber: number,
					Status:         status,
					VersionedModel: model.VersionedModel{Version: 1},
				}
				if err := tx.Contract.Create(ctx, contract); err != nil {
					return err
				}
			case err != nil:
				return err
			}

			if err := tx.Contract.UpdateHolder(ctx, contract.ID, to.ID, status, contract.Version); err != nil {
				return err
			}

			detail := &model.TransactionDetail{
				TransactionID: transaction.ID,
				ContractID:    contract.ID,
			}
			if err := tx.TransactionDetail.Create(ctx, detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrContractConflict
		}
		s.logger.Error("record transfer failed",
			zap.String("receipt", receipt),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("transfer recorded",
		zap.String("receipt", receipt),
		zap.String("type", req.TransactionType),
		zap.Int("contracts", len(numbers)))

	// 5. Build the receipt payload
	transaction.FromEmployee = from
	transaction.ToEmployee = to

	resp := toTransactionResponse(transaction)
	resp.DocumentCount = len(numbers)

	return &dto.CreateTransactionResponse{
		Transaction: resp,
		Receipt: dto.ReceiptResponse{
			ReceiptNumber:   receipt,
			TypeLabel:       model.TransactionTypeLabels[req.TransactionType],
			FromEmployee:    from.Name,
			ToEmployee:      to.Name,
			ContractNumbers: numbers,
			DocumentCount:   len(numbers),
			TransactionDate: now.Format(time.RFC3339),
			Notes:           strings.TrimSpace(req.Notes),
		},
	}, nil
}

func (s *transactionService) GetByID(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	transaction, err := s.repo.Transaction.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		s.logger.Error("load transfer failed", zap.Error(err))
		return nil, err
	}
	resp := toTransactionResponse(transaction)
	return &resp, nil
}

func (s *transactionService) List(ctx context.Context, req *dto.ListTransactionsRequest) ([]dto.TransactionResponse, error) {
	filters := &repository.TransactionListFilters{
		Since: periodStart(req.Period, s.now()),
		Type:  req.Type,
	}

	transactions, err := s.repo.Transaction.List(ctx, filters, req.Limit)
	if err != nil {
		s.logger.Error("list transfers failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, toTransactionResponse(&transactions[i]))
	}
	return out, nil
}

func (s *transactionService) Recent(ctx context.Context, limit int) ([]dto.TransactionSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	transactions, err := s.repo.Transaction.List(ctx, &repository.TransactionListFilters{}, limit)
	if err != nil {
		s.logger.Error("list recent transfers failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.TransactionSummary, 0, len(transactions))
	for i := range transactions {
		out = append(out, toTransactionSummary(&transactions[i]))
	}
	return out, nil
}
