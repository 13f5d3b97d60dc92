package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/model"
)

// TransactionDetailRepository is the transaction_details data-access
// interface. Append-only.
type TransactionDetailRepository interface {
	Create(ctx context.Context, detail *model.TransactionDetail) error
	ListByTransaction(ctx context.Context, transactionID string) ([]model.TransactionDetail, error)
}

type transactionDetailRepo struct {
	db *gorm.DB
}

// NewTransactionDetailRepo builds the GORM-backed
// TransactionDetailRepository.
func NewTransactionDetailRepo(db *gorm.DB) TransactionDetailRepository {
	return &transactionDetailRepo{db: db}
}

func (r *transactionDetailRepo) Create(ctx context.Context, detail *model.TransactionDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *transactionDetailRepo) ListByTransaction(ctx context.Context, transactionID string) ([]model.TransactionDetail, error) {
	var details []model.TransactionDetail
	err := r.db.WithContext(ctx).
		Preload("Contract").
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&details).Error
	return details, err
}
