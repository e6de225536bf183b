package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mechapp/internal/models"
)

type Repository interface {
	// -------- Mechanic --------
	GetMechanic(
		ctx context.Context,
		mechanicID uint,
	) (*models.User, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment inserts ap unless another scheduled appointment of
	// the same mechanic overlaps it, in which case "time_conflict" is returned.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListScheduledStarts(
		ctx context.Context,
		mechanicID uint,
		start time.Time,
		end time.Time,
	) ([]time.Time, error)

	// -------- Listing --------
	ListForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)

	ListForMechanic(
		ctx context.Context,
		mechanicID uint,
	) ([]models.Appointment, error)
}
