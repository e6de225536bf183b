package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/workshop"
)

type WorkshopGormRepository struct {
	db *gorm.DB
}

func NewWorkshopGormRepository(db *gorm.DB) *WorkshopGormRepository {
	return &WorkshopGormRepository{db: db}
}

func (r *WorkshopGormRepository) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Workshop").
		First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *WorkshopGormRepository) SaveWorkshop(ctx context.Context, w *models.Workshop) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WorkshopGormRepository) ListBookableMechanics(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("Workshop").
		Where("users.role = ? AND users.validated = ? AND users.active = ?", models.RoleMechanic, true, true).
		Where(`"Workshop"."id" IS NOT NULL`).
		Order("users.name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListWorkshops hides workshops of mechanics that cannot take bookings.
func (r *WorkshopGormRepository) ListWorkshops(ctx context.Context) ([]models.Workshop, error) {
	var shops []models.Workshop
	if err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = workshops.mechanic_id").
		Where("users.validated = ? AND users.active = ?", true, true).
		Order("workshops.name ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *WorkshopGormRepository) GetWorkshop(ctx context.Context, id uint) (*models.Workshop, error) {
	var w models.Workshop
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkshopGormRepository) ListReviews(ctx context.Context, workshopID uint) ([]workshop.ReviewRow, error) {
	var rows []workshop.ReviewRow
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("reviews.*, users.name AS author").
		Joins("JOIN users ON users.id = reviews.client_id").
		Where("reviews.workshop_id = ?", workshopID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *WorkshopGormRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

var _ workshop.Repository = (*WorkshopGormRepository)(nil)
