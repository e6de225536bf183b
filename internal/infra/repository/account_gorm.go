package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/account"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

func (r *AccountGormRepository) CreateAccount(
	ctx context.Context,
	user *models.User,
	certificate account.CertificateFunc,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if certificate == nil {
			return nil
		}

		cert, err := certificate(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("store certificate: %w", err)
		}

		return tx.Create(cert).Error
	})
}

func (r *AccountGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

var _ account.Repository = (*AccountGormRepository)(nil)
