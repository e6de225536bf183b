package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/mechapp/internal/domain/appointment"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Mechanic
// --------------------------------------------------

func (r *AppointmentGormRepository) GetMechanic(
	ctx context.Context,
	mechanicID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Workshop").
		Where("id = ? AND role = ?", mechanicID, models.RoleMechanic).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Bookings of one mechanic are serialized on the mechanic row.
		if err := lockMechanic(tx, ap.MechanicID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("mechanic_not_found")
			}
			return err
		}

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"mechanic_id = ? AND status = ? AND scheduled_for < ? AND ends_at > ?",
				ap.MechanicID, string(domain.StatusScheduled), ap.EndsAt, ap.ScheduledFor,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("time_conflict")
		}
		if _, ok := httperr.BusinessCode(err); ok {
			return err
		}
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

func lockMechanic(tx *gorm.DB, mechanicID uint) *gorm.DB {
	var locked models.User
	return tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND role = ?", mechanicID, models.RoleMechanic).
		Take(&locked)
}

// --------------------------------------------------
// Appointment (Cancel / Complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListScheduledStarts(
	ctx context.Context,
	mechanicID uint,
	start time.Time,
	end time.Time,
) ([]time.Time, error) {

	var starts []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"mechanic_id = ? AND status = ? AND scheduled_for >= ? AND scheduled_for < ?",
			mechanicID, string(domain.StatusScheduled), start, end,
		).
		Order("scheduled_for ASC").
		Pluck("scheduled_for", &starts).Error; err != nil {
		return nil, err
	}

	return starts, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {
	return r.list(ctx, "client_id = ?", clientID)
}

func (r *AppointmentGormRepository) ListForMechanic(
	ctx context.Context,
	mechanicID uint,
) ([]models.Appointment, error) {
	return r.list(ctx, "mechanic_id = ?", mechanicID)
}

func (r *AppointmentGormRepository) list(
	ctx context.Context,
	where string,
	id uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(where, id).
		Order("scheduled_for DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
