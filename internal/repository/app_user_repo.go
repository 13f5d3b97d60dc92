package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EngOsamaQazan/Archeef/internal/model"
)

// AppUserRepository is the application-profile data-access interface.
type AppUserRepository interface {
	Create(ctx context.Context, user *model.AppUser) error
	GetByUserID(ctx context.Context, userID string) (*model.AppUser, error)
	UpdateRole(ctx context.Context, userID, role string) error
}

type appUserRepo struct {
	db *gorm.DB
}

// NewAppUserRepo builds the GORM-backed AppUserRepository.
func NewAppUserRepo(db *gorm.DB) AppUserRepository {
	return &appUserRepo{db: db}
}

func (r *appUserRepo) Create(ctx context.Context, user *model.AppUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *appUserRepo) GetByUserID(ctx context.Context, userID string) (*model.AppUser, error) {
	var user model.AppUser
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("user_id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *appUserRepo) UpdateRole(ctx context.Context, userID, role string) error {
	return r.db.WithContext(ctx).
		Model(&model.AppUser{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}
