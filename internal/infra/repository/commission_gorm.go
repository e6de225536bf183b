package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/mechapp/internal/domain/appointment"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/commission"
)

type CommissionGormRepository struct {
	db *gorm.DB
}

func NewCommissionGormRepository(db *gorm.DB) *CommissionGormRepository {
	return &CommissionGormRepository{db: db}
}

func (r *CommissionGormRepository) ListOutstanding(
	ctx context.Context,
	mechanicID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"mechanic_id = ? AND status = ? AND commission_payment_id IS NULL",
			mechanicID, string(domain.StatusCompleted),
		).
		Order("scheduled_for ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *CommissionGormRepository) CreatePayment(ctx context.Context, p *models.CommissionPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CommissionGormRepository) GetPayment(
	ctx context.Context,
	mechanicID uint,
	providerOrderID string,
) (*models.CommissionPayment, error) {

	var p models.CommissionPayment
	if err := r.db.WithContext(ctx).
		Where("mechanic_id = ? AND provider_order_id = ?", mechanicID, providerOrderID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkCaptured only links appointments still unpaid; a concurrent capture of
// another order keeps its own links.
func (r *CommissionGormRepository) MarkCaptured(
	ctx context.Context,
	p *models.CommissionPayment,
	appointmentIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var locked models.CommissionPayment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, p.ID).Error; err != nil {
			return err
		}
		if locked.Status == models.PaymentCaptured {
			return nil
		}

		if err := tx.Save(p).Error; err != nil {
			return err
		}

		if len(appointmentIDs) == 0 {
			return nil
		}

		return tx.Model(&models.Appointment{}).
			Where("id IN ? AND commission_payment_id IS NULL", appointmentIDs).
			Update("commission_payment_id", p.ID).Error
	})
}

var _ commission.Repository = (*CommissionGormRepository)(nil)
