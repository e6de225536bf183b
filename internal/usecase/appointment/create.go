package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	domain "github.com/BruksfildServices01/mechapp/internal/domain/appointment"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID   uint
	MechanicID uint

	Service      string
	VisitType    string
	ScheduledFor time.Time
	Notes        string
	Address      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Request fields
	// --------------------------------------------------
	service := strings.TrimSpace(in.Service)
	if service == "" {
		return nil, httperr.ErrBusiness("service_required")
	}

	visit, err := domain.ParseVisitType(in.VisitType)
	if err != nil {
		return nil, err
	}

	address := strings.TrimSpace(in.Address)
	if visit.RequiresAddress() && address == "" {
		return nil, httperr.ErrBusiness("address_required")
	}

	if in.MechanicID == in.ClientID {
		return nil, httperr.ErrBusiness("mechanic_not_available")
	}

	// --------------------------------------------------
	// Mechanic and workshop
	// --------------------------------------------------
	mechanic, err := uc.repo.GetMechanic(ctx, in.MechanicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("mechanic_not_found")
		}
		return nil, err
	}
	if !mechanic.Active || !mechanic.Validated || mechanic.Workshop == nil {
		return nil, httperr.ErrBusiness("mechanic_not_available")
	}

	// --------------------------------------------------
	// Slot in the application timezone
	// --------------------------------------------------
	now := uc.now()
	start := in.ScheduledFor.In(now.Location())

	if err := domain.ValidateSlot(mechanic.Workshop.Schedule, start, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Creation (conflict checked inside the repository transaction)
	// --------------------------------------------------
	workshopID := mechanic.Workshop.ID
	ap := &models.Appointment{
		ClientID:     in.ClientID,
		MechanicID:   mechanic.ID,
		WorkshopID:   &workshopID,
		Service:      service,
		VisitType:    string(visit),
		ScheduledFor: start,
		EndsAt:       start.Add(domain.SlotDuration),
		Address:      address,
		Notes:        strings.TrimSpace(in.Notes),
		Status:       string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				UserID: &in.ClientID,
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"mechanicId":   mechanic.ID,
					"scheduledFor": start,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"visitType": ap.VisitType},
	})

	return ap, nil
}
