package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/model"
)

// TransactionListFilters narrows transaction listings.
type TransactionListFilters struct {
	// Since keeps transfers whose transaction_date is at or after it.
	Since *time.Time
	// Type keeps one transaction type; empty keeps all.
	Type string
}

// TransactionRepository is the transactions data-access interface.
// Transactions are append-only; there is deliberately no Update or Delete.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	GetByID(ctx context.Context, id string) (*model.Transaction, error)
	// List returns transfers newest first, with employees and details
	// preloaded. limit <= 0 means no limit.
	List(ctx context.Context, filters *TransactionListFilters, limit int) ([]model.Transaction, error)
	// GetLastForContract returns the most recent transfer touching the
	// contract: highest transaction_date, ties broken by latest creation.
	GetLastForContract(ctx context.Context, contractID string) (*model.Transaction, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type transactionRepo struct {
	db *gorm.DB
}

// NewTransactionRepo builds the GORM-backed TransactionRepository.
func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, transaction *model.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepo) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.WithContext(ctx).
		Preload("FromEmployee").
		Preload("ToEmployee").
		Preload("Details").
		Preload("Details.Contract").
		Where("id = ?", id).
		First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) List(ctx context.Context, filters *TransactionListFilters, limit int) ([]model.Transaction, error) {
	db := r.db.WithContext(ctx).
		Preload("FromEmployee").
		Preload("ToEmployee").
		Preload("Details").
		Preload("Details.Contract").
		Order("transaction_date DESC")

	if filters != nil {
		if filters.Since != nil {
			db = db.Where("transaction_date >= ?", *filters.Since)
		}
		if filters.Type != "" {
			db = db.Where("transaction_type = ?", filters.Type)
		}
	}
	if limit > 0 {
		db = db.Limit(limit)
	}

	var transactions []model.Transaction
	err := db.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetLastForContract(ctx context.Context, contractID string) (*model.Transaction, error) {
	// Transfers can be recorded out of order, so the business date on the
	// parent transaction decides which movement is newest, with the insert
	// time as a tiebreaker.
	var detail model.TransactionDetail
	err := r.db.WithContext(ctx).
		Select("transaction_details.*").
		Joins("JOIN transactions ON transactions.id = transaction_details.transaction_id").
		Where("transaction_details.contract_id = ?", contractID).
		Order("transactions.transaction_date DESC, transaction_details.created_at DESC").
		First(&detail).Error
	if err != nil {
		return nil, err
	}

	var transaction model.Transaction
	err = r.db.WithContext(ctx).
		Preload("FromEmployee").
		Preload("ToEmployee").
		Where("id = ?", detail.TransactionID).
		First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Count(&count).Error
	return count, err
}

func (r *transactionRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("transaction_date >= ?", since).
		Count(&count).Error
	return count, err
}
