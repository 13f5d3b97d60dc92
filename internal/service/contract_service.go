package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
)

// ── Contract business errors ──

var ErrContractNotFound = errors.New("العقد غير موجود")

// ContractService resolves contracts and their custody state.
type ContractService interface {
	// Search resolves a contract by number and attaches its latest
	// transfer. Returns ErrContractNotFound cleanly when no contract
	// carries the number.
	Search(ctx context.Context, number string) (*dto.ContractSearchResponse, error)
	List(ctx context.Context, req *dto.ListContractsRequest) ([]dto.ContractResponse, int64, error)
}

type contractService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewContractService creates a ContractService instance.
func NewContractService(repo *repository.Repository, logger *zap.Logger) ContractService {
	return &contractService{repo: repo, logger: logger}
}

func (s *contractService) Search(ctx context.Context, number string) (*dto.ContractSearchResponse, error) {
	// 1. Normalize the way transfer recording does, so a search for
	//    "  C  001 " finds the contract stored as "C 001"
	normalized := NormalizeContractNumber(number)
	if err := ValidateContractNumber(normalized); err != nil {
		return nil, err
	}

	contract, err := s.repo.Contract.GetByNumber(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		s.logger.Error("contract lookup failed", zap.Error(err))
		return nil, err
	}

	result := &dto.ContractSearchResponse{Contract: toContractResponse(contract)}

	// 2. Attach the latest transfer; a missing history is not an error
	last, err := s.repo.Transaction.GetLastForContract(ctx, contract.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no transfers yet
	case err != nil:
		s.logger.Warn("load last transfer failed",
			zap.String("contract", contract.ID),
			zap.Error(err))
	default:
		summary := toTransactionSummary(last)
		result.LastTransfer = &summary
	}

	return result, nil
}

func (s *contractService) List(ctx context.Context, req *dto.ListContractsRequest) ([]dto.ContractResponse, int64, error) {
	contracts, total, err := s.repo.Contract.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list contracts failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ContractResponse, 0, len(contracts))
	for i := range contracts {
		out = append(out, toContractResponse(&contracts[i]))
	}
	return out, total, nil
}
