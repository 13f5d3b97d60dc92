package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/model"
)

// AccountRepository is the accounts data-access interface.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	// ConfirmEmail marks the account's email as confirmed.
	ConfirmEmail(ctx context.Context, id string) error
}

type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepo builds the GORM-backed AccountRepository.
func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) ConfirmEmail(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_confirmed": true,
			"updated_at":      gorm.Expr("NOW()"),
		}).Error
}
