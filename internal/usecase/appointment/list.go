package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/mechapp/internal/domain/appointment"
	"github.com/BruksfildServices01/mechapp/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists the appointments a user takes part in, by role.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	userID uint,
	role string,
) ([]models.Appointment, error) {

	var (
		aps []models.Appointment
		err error
	)

	if role == models.RoleMechanic {
		aps, err = uc.repo.ListForMechanic(ctx, userID)
	} else {
		aps, err = uc.repo.ListForClient(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	if aps == nil {
		aps = []models.Appointment{}
	}
	return aps, nil
}
