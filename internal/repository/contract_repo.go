package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/model"
	pkgerrors "github.com/EngOsamaQazan/Archeef/pkg/errors"
)

// ContractRepository is the contracts data-access interface.
type ContractRepository interface {
	Create(ctx context.Context, contract *model.Contract) error
	GetByID(ctx context.Context, id string) (*model.Contract, error)
	// GetByNumber looks a contract up by its (already trimmed) number.
	GetByNumber(ctx context.Context, number string) (*model.Contract, error)
	List(ctx context.Context, offset, limit int) ([]model.Contract, int64, error)
	ListAll(ctx context.Context) ([]model.Contract, error)
	// UpdateHolder sets the holder and status label, conditional on the
	// version observed at read time. Returns pkgerrors.ErrOptimisticLock
	// when the row changed in between.
	UpdateHolder(ctx context.Context, id string, holderID string, status string, version int) error
	Count(ctx context.Context) (int64, error)
}

type contractRepo struct {
	db *gorm.DB
}

// NewContractRepo builds the GORM-backed ContractRepository.
func NewContractRepo(db *gorm.DB) ContractRepository {
	return &contractRepo{db: db}
}

func (r *contractRepo) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *contractRepo) GetByID(ctx context.Context, id string) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Preload("CurrentHolder").
		Where("id = ?", id).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepo) GetByNumber(ctx context.Context, number string) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Preload("CurrentHolder").
		Where("contract_number = ?", number).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepo) List(ctx context.Context, offset, limit int) ([]model.Contract, int64, error) {
	var contracts []model.Contract
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Contract{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("CurrentHolder").
		Offset(offset).Limit(limit).
		Order("contract_number ASC").
		Find(&contracts).Error; err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}

func (r *contractRepo) ListAll(ctx context.Context) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).
		Preload("CurrentHolder").
		Order("contract_number ASC").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepo) UpdateHolder(ctx context.Context, id string, holderID string, status string, version int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Contract{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"current_holder_id": holderID,
			"status":            status,
			"version":           version + 1,
			"updated_at":        gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *contractRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Contract{}).
		Count(&count).Error
	return count, err
}
