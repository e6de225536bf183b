package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	domain "github.com/BruksfildServices01/mechapp/internal/domain/appointment"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/models"
)

type memoryRepo struct {
	mu           sync.Mutex
	mechanics    map[uint]*models.User
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		mechanics:    map[uint]*models.User{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *memoryRepo) addMechanic(id uint, schedule string) *models.User {
	m := &models.User{
		ID:        id,
		Name:      "Mecánico",
		Role:      models.RoleMechanic,
		Active:    true,
		Validated: true,
		Workshop:  &models.Workshop{ID: id * 10, MechanicID: id, Schedule: schedule},
	}
	r.mechanics[id] = m
	return m
}

func (r *memoryRepo) GetMechanic(_ context.Context, id uint) (*models.User, error) {
	m, ok := r.mechanics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.appointments {
		if other.MechanicID == ap.MechanicID &&
			other.Status == string(domain.StatusScheduled) &&
			other.ScheduledFor.Before(ap.EndsAt) &&
			other.EndsAt.After(ap.ScheduledFor) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memoryRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *memoryRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memoryRepo) ListScheduledStarts(_ context.Context, mechanicID uint, start, end time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []time.Time
	for _, ap := range r.appointments {
		if ap.MechanicID == mechanicID &&
			ap.Status == string(domain.StatusScheduled) &&
			!ap.ScheduledFor.Before(start) &&
			ap.ScheduledFor.Before(end) {
			out = append(out, ap.ScheduledFor)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListForClient(_ context.Context, clientID uint) ([]models.Appointment, error) {
	return r.list(func(ap *models.Appointment) bool { return ap.ClientID == clientID }), nil
}

func (r *memoryRepo) ListForMechanic(_ context.Context, mechanicID uint) ([]models.Appointment, error) {
	return r.list(func(ap *models.Appointment) bool { return ap.MechanicID == mechanicID }), nil
}

func (r *memoryRepo) list(keep func(*models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for id := uint(1); id <= r.nextID; id++ {
		if ap, ok := r.appointments[id]; ok && keep(ap) {
			out = append(out, *ap)
		}
	}
	return out
}

var _ domain.Repository = (*memoryRepo)(nil)

type auditSink struct {
	mu      sync.Mutex
	actions []string
}

func (s *auditSink) Save(_ context.Context, e *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, e.Action)
	return nil
}

func newDispatcher(t *testing.T) (*audit.Dispatcher, *auditSink) {
	t.Helper()
	sink := &auditSink{}
	d := audit.NewDispatcher(sink, nil)
	t.Cleanup(d.Close)
	return d, sink
}

func mexico(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	return loc
}

// fixedNow is Wednesday 2025-06-11 08:00 in Mexico City.
func fixedNow(t *testing.T) func() time.Time {
	loc := mexico(t)
	return func() time.Time { return time.Date(2025, 6, 11, 8, 0, 0, 0, loc) }
}
