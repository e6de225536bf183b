package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/admin"
)

type AdminGormRepository struct {
	db *gorm.DB
}

func NewAdminGormRepository(db *gorm.DB) *AdminGormRepository {
	return &AdminGormRepository{db: db}
}

func (r *AdminGormRepository) SetUserActive(ctx context.Context, userID uint, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AdminGormRepository) ListCertificates(ctx context.Context, status string) ([]models.Certificate, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var certs []models.Certificate
	if err := q.Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *AdminGormRepository) GetCertificate(ctx context.Context, id uint) (*models.Certificate, error) {
	var cert models.Certificate
	if err := r.db.WithContext(ctx).First(&cert, id).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *AdminGormRepository) ReviewCertificate(
	ctx context.Context,
	cert *models.Certificate,
	validated bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(cert).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ? AND role = ?", cert.MechanicID, models.RoleMechanic).
			Update("validated", validated).Error
	})
}

func (r *AdminGormRepository) ListAuditLogs(
	ctx context.Context,
	f admin.AuditFilter,
) ([]models.AuditLog, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var _ admin.Repository = (*AdminGormRepository)(nil)
