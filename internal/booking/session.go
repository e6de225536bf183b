package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/mechapp/internal/domain/availability"
	"github.com/BruksfildServices01/mechapp/internal/integrations/mechapi"
)

var (
	ErrUnknownMechanic     = errors.New("booking: unknown mechanic")
	ErrIncompleteSelection = errors.New("booking: mechanic, date and time are required")
	ErrLoadFailed          = errors.New("booking: could not load data")
)

const (
	PromptSelectMechanic = "Selecciona un mecánico para ver los horarios disponibles."
	PromptSelectDate     = "Selecciona una fecha en el calendario."
)

// API is the subset of the backend client the booking page needs.
type API interface {
	ListMechanics(ctx context.Context) mechapi.Result[[]mechapi.Mechanic]
	ListWorkshops(ctx context.Context) mechapi.Result[[]mechapi.Workshop]
	UnavailableDays(ctx context.Context, mechanicID uint) mechapi.Result[[]string]
	UnavailableSlots(ctx context.Context, mechanicID uint, dateKey string) mechapi.Result[[]string]
	CreateAppointment(ctx context.Context, req mechapi.CreateAppointmentRequest) mechapi.Result[mechapi.Appointment]
}

// Navigation is what the caller should do after an operation. The session
// never navigates on its own.
type Navigation int

const (
	Stay Navigation = iota
	GoToLogin
	Forbidden
)

func navigationFor(s mechapi.Status) Navigation {
	switch s {
	case mechapi.StatusUnauthenticated:
		return GoToLogin
	case mechapi.StatusForbidden:
		return Forbidden
	default:
		return Stay
	}
}

// Session is the state of one booking page. It is safe for concurrent use:
// fetches run without the lock and are applied under it.
type Session struct {
	mu  sync.Mutex
	api API
	log *zap.Logger
	loc *time.Location

	mechanics registry[mechapi.Mechanic]
	workshops registry[mechapi.Workshop]

	calendar     *availability.CalendarState
	slots        *availability.TimeSlotState
	selectedTime string

	daysGuard  requestGuard
	slotsGuard requestGuard
}

func NewSession(api API, now time.Time, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		api:      api,
		log:      log,
		loc:      now.Location(),
		calendar: availability.NewCalendarState(now),
	}
}

// --------------------------------------------------
// Registries
// --------------------------------------------------

// LoadMechanics rebuilds the mechanic registry from scratch.
func (s *Session) LoadMechanics(ctx context.Context) (Navigation, error) {
	res := s.api.ListMechanics(ctx)
	if nav := navigationFor(res.Status); nav != Stay {
		return nav, nil
	}
	if !res.OK() {
		s.log.Warn("load mechanics failed", zap.Error(res.Err))
		return Stay, fmt.Errorf("%w: mechanics: %v", ErrLoadFailed, res.Err)
	}

	s.mu.Lock()
	s.mechanics = newRegistry(res.Value, mechanicID)
	s.mu.Unlock()
	return Stay, nil
}

func (s *Session) LoadWorkshops(ctx context.Context) (Navigation, error) {
	res := s.api.ListWorkshops(ctx)
	if nav := navigationFor(res.Status); nav != Stay {
		return nav, nil
	}
	if !res.OK() {
		s.log.Warn("load workshops failed", zap.Error(res.Err))
		return Stay, fmt.Errorf("%w: workshops: %v", ErrLoadFailed, res.Err)
	}

	s.mu.Lock()
	s.workshops = newRegistry(res.Value, workshopID)
	s.mu.Unlock()
	return Stay, nil
}

func (s *Session) Mechanics() []mechapi.Mechanic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mechanics.list()
}

func (s *Session) Workshops() []mechapi.Workshop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workshops.list()
}

// --------------------------------------------------
// Mechanic / date selection
// --------------------------------------------------

// SelectMechanic resets the calendar and fetches the mechanic's blocked days.
// Until the response arrives nothing is blocked.
func (s *Session) SelectMechanic(ctx context.Context, id uint) (Navigation, error) {
	s.mu.Lock()
	if _, ok := s.mechanics.get(id); !ok {
		s.mu.Unlock()
		return Stay, ErrUnknownMechanic
	}
	s.calendar.SetMechanic(&id)
	s.slots = nil
	s.selectedTime = ""
	s.slotsGuard.invalidate()
	ticket := s.daysGuard.issue()
	s.mu.Unlock()

	res := s.api.UnavailableDays(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.daysGuard.isCurrent(ticket) || !s.isCurrentMechanic(id) {
		s.log.Debug("discarding stale unavailable days", zap.Uint("mechanic_id", id))
		return Stay, nil
	}

	if nav := navigationFor(res.Status); nav != Stay {
		return nav, nil
	}

	if !res.OK() {
		s.log.Warn("unavailable days unavailable, assuming none",
			zap.Uint("mechanic_id", id),
			zap.Error(res.Err),
		)
		s.setUnavailableDatesLocked(availability.DateSet{})
		return Stay, nil
	}

	s.setUnavailableDatesLocked(availability.NewDateSet(res.Value...))
	return Stay, nil
}

// setUnavailableDatesLocked drops the slots and time of a date the new set
// makes unselectable.
func (s *Session) setUnavailableDatesLocked(dates availability.DateSet) {
	s.calendar.SetUnavailableDates(dates)
	if s.calendar.SelectedDate == nil {
		s.slots = nil
		s.selectedTime = ""
		s.slotsGuard.invalidate()
	}
}

// SelectDate ignores keys that cannot be selected and reports whether the
// selection changed.
func (s *Session) SelectDate(ctx context.Context, dateKey string) (bool, Navigation) {
	s.mu.Lock()
	if s.calendar.MechanicID == nil {
		s.mu.Unlock()
		return false, Stay
	}
	if !s.calendar.SelectDateKey(dateKey) {
		s.mu.Unlock()
		return false, Stay
	}
	id := *s.calendar.MechanicID
	key := s.calendar.SelectedKey()
	ticket := s.slotsGuard.issue()
	s.mu.Unlock()

	res := s.api.UnavailableSlots(ctx, id, key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.slotsGuard.isCurrent(ticket) || !s.isCurrentMechanic(id) || s.calendar.SelectedKey() != key {
		s.log.Debug("discarding stale unavailable slots",
			zap.Uint("mechanic_id", id),
			zap.String("date", key),
		)
		return true, Stay
	}

	if nav := navigationFor(res.Status); nav != Stay {
		return true, nav
	}

	times := res.Value
	if !res.OK() {
		s.log.Warn("unavailable slots unavailable, assuming none",
			zap.Uint("mechanic_id", id),
			zap.String("date", key),
			zap.Error(res.Err),
		)
		times = nil
	}

	s.slots = availability.NewTimeSlotState(id, key, times)
	s.selectedTime = availability.ResolveSelectedTime(s.selectedTime, s.slotViewsLocked())
	return true, Stay
}

func (s *Session) isCurrentMechanic(id uint) bool {
	return s.calendar.MechanicID != nil && *s.calendar.MechanicID == id
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

type CalendarView struct {
	Month        time.Time
	CanGoBack    bool
	SelectedDate string
	Cells        [availability.GridCells]availability.DayCell
}

func (s *Session) Calendar() CalendarView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CalendarView{
		Month:        s.calendar.CurrentMonth,
		CanGoBack:    s.calendar.CanShowPreviousMonth(),
		SelectedDate: s.calendar.SelectedKey(),
		Cells:        s.calendar.Grid(),
	}
}

func (s *Session) ShowNextMonth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendar.ShowNextMonth()
}

func (s *Session) ShowPreviousMonth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calendar.ShowPreviousMonth()
}

// --------------------------------------------------
// Time slots
// --------------------------------------------------

// SlotsView is the rendered time list. Prompt is set when no list can be shown.
type SlotsView struct {
	Slots        []availability.SlotView
	SelectedTime string
	Prompt       string
}

// TimeSlots renders the slots of the selected mechanic and date and clears a
// chosen time that is no longer offered.
func (s *Session) TimeSlots() SlotsView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.currentScheduleLocked(); !ok {
		s.selectedTime = ""
		return SlotsView{Prompt: PromptSelectMechanic}
	}
	if s.calendar.SelectedDate == nil {
		s.selectedTime = ""
		return SlotsView{Prompt: PromptSelectDate}
	}

	views := s.slotViewsLocked()
	s.selectedTime = availability.ResolveSelectedTime(s.selectedTime, views)
	return SlotsView{Slots: views, SelectedTime: s.selectedTime}
}

// SelectTime accepts only enabled slots of the current view.
func (s *Session) SelectTime(hm string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resolved := availability.ResolveSelectedTime(hm, s.slotViewsLocked()); resolved != "" {
		s.selectedTime = resolved
		return true
	}
	return false
}

func (s *Session) currentScheduleLocked() (string, bool) {
	if s.calendar.MechanicID == nil {
		return "", false
	}
	m, ok := s.mechanics.get(*s.calendar.MechanicID)
	if !ok || m.Workshop == nil {
		return "", false
	}
	return m.Workshop.Schedule, true
}

func (s *Session) slotViewsLocked() []availability.SlotView {
	schedule, ok := s.currentScheduleLocked()
	if !ok || s.calendar.SelectedDate == nil {
		return nil
	}
	return availability.BuildSlotViews(
		schedule,
		s.slots,
		*s.calendar.MechanicID,
		s.calendar.SelectedKey(),
	)
}

// --------------------------------------------------
// Submit
// --------------------------------------------------

type AppointmentDetails struct {
	Service   string
	VisitType string
	Notes     string
	Address   string
}

// SubmitAppointment books the current selection. A conflict or other server
// refusal comes back in the result; nothing is retried.
func (s *Session) SubmitAppointment(ctx context.Context, d AppointmentDetails) (mechapi.Result[mechapi.Appointment], Navigation, error) {
	s.mu.Lock()
	if s.calendar.MechanicID == nil || s.calendar.SelectedDate == nil || s.selectedTime == "" {
		s.mu.Unlock()
		return mechapi.Result[mechapi.Appointment]{}, Stay, ErrIncompleteSelection
	}
	id := *s.calendar.MechanicID
	key := s.calendar.SelectedKey()
	hm := s.selectedTime
	s.mu.Unlock()

	at, err := availability.ScheduledFor(key, hm, s.loc)
	if err != nil {
		return mechapi.Result[mechapi.Appointment]{}, Stay, err
	}

	res := s.api.CreateAppointment(ctx, mechapi.CreateAppointmentRequest{
		MechanicID:   id,
		Service:      d.Service,
		VisitType:    d.VisitType,
		ScheduledFor: at,
		Notes:        d.Notes,
		Address:      d.Address,
	})

	if res.OK() {
		s.log.Info("appointment booked",
			zap.Uint("mechanic_id", id),
			zap.Uint("appointment_id", res.Value.ID),
			zap.Time("scheduled_for", at),
		)
	}

	return res, navigationFor(res.Status), nil
}
