package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mechapp/internal/integrations/mechapi"
)

type slotsCall struct {
	mechanicID uint
	dateKey    string
	release    chan mechapi.Result[[]string]
}

type fakeAPI struct {
	mu sync.Mutex

	mechanics mechapi.Result[[]mechapi.Mechanic]
	workshops mechapi.Result[[]mechapi.Workshop]
	days      map[uint]mechapi.Result[[]string]
	slots     map[string]mechapi.Result[[]string]
	create    mechapi.Result[mechapi.Appointment]

	// when set, UnavailableSlots blocks until the test releases the call
	blockSlots bool
	slotsCalls chan *slotsCall

	// when set, UnavailableDays blocks until the test sends the result
	blockDays   bool
	daysStarted chan struct{}
	daysRelease chan mechapi.Result[[]string]

	created []mechapi.CreateAppointmentRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		mechanics: mechapi.Result[[]mechapi.Mechanic]{
			Status: mechapi.StatusOK,
			Value: []mechapi.Mechanic{
				{ID: 1, Name: "Luis", Workshop: &mechapi.Workshop{ID: 10, Schedule: "Lun-Vie 09:00 - 12:00"}},
				{ID: 2, Name: "Ana", Workshop: &mechapi.Workshop{ID: 20, Schedule: "10:00-11:00"}},
				{ID: 3, Name: "Sin taller"},
			},
		},
		workshops:  mechapi.Result[[]mechapi.Workshop]{Status: mechapi.StatusOK},
		days:       map[uint]mechapi.Result[[]string]{},
		slots:      map[string]mechapi.Result[[]string]{},
		slotsCalls: make(chan *slotsCall, 8),
	}
}

func (f *fakeAPI) ListMechanics(context.Context) mechapi.Result[[]mechapi.Mechanic] {
	return f.mechanics
}

func (f *fakeAPI) ListWorkshops(context.Context) mechapi.Result[[]mechapi.Workshop] {
	return f.workshops
}

func (f *fakeAPI) UnavailableDays(_ context.Context, id uint) mechapi.Result[[]string] {
	if f.blockDays {
		f.daysStarted <- struct{}{}
		return <-f.daysRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.days[id]; ok {
		return r
	}
	return mechapi.Result[[]string]{Status: mechapi.StatusOK, Value: []string{}}
}

func (f *fakeAPI) UnavailableSlots(_ context.Context, id uint, key string) mechapi.Result[[]string] {
	if f.blockSlots {
		call := &slotsCall{mechanicID: id, dateKey: key, release: make(chan mechapi.Result[[]string])}
		f.slotsCalls <- call
		return <-call.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.slots[key]; ok {
		return r
	}
	return mechapi.Result[[]string]{Status: mechapi.StatusOK, Value: []string{}}
}

func (f *fakeAPI) CreateAppointment(_ context.Context, req mechapi.CreateAppointmentRequest) mechapi.Result[mechapi.Appointment] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	return f.create
}

func mexico(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	return loc
}

// Wednesday 2025-06-11, 08:00 local.
func newTestSession(t *testing.T, api API) *Session {
	t.Helper()
	now := time.Date(2025, 6, 11, 8, 0, 0, 0, mexico(t))
	s := NewSession(api, now, nil)
	nav, err := s.LoadMechanics(context.Background())
	require.NoError(t, err)
	require.Equal(t, Stay, nav)
	return s
}

func okList(v ...string) mechapi.Result[[]string] {
	return mechapi.Result[[]string]{Status: mechapi.StatusOK, Value: v}
}

func TestLoadMechanics_ReplacesRegistry(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(t, api)
	require.Len(t, s.Mechanics(), 3)

	api.mechanics = mechapi.Result[[]mechapi.Mechanic]{
		Status: mechapi.StatusOK,
		Value:  []mechapi.Mechanic{{ID: 7, Name: "Nuevo"}},
	}
	_, err := s.LoadMechanics(context.Background())
	require.NoError(t, err)

	list := s.Mechanics()
	require.Len(t, list, 1)
	assert.Equal(t, uint(7), list[0].ID)
}

func TestLoadMechanics_Navigation(t *testing.T) {
	api := newFakeAPI()
	api.mechanics = mechapi.Result[[]mechapi.Mechanic]{Status: mechapi.StatusUnauthenticated}
	s := NewSession(api, time.Now(), nil)

	nav, err := s.LoadMechanics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, GoToLogin, nav)

	api.mechanics = mechapi.Result[[]mechapi.Mechanic]{Status: mechapi.StatusFailed, Err: errors.New("boom")}
	_, err = s.LoadMechanics(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestSelectMechanic_Unknown(t *testing.T) {
	s := newTestSession(t, newFakeAPI())
	_, err := s.SelectMechanic(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUnknownMechanic)
}

func TestSelectMechanic_BlocksUnavailableDays(t *testing.T) {
	api := newFakeAPI()
	api.days[1] = okList("2025-06-12")
	s := newTestSession(t, api)
	ctx := context.Background()

	_, err := s.SelectMechanic(ctx, 1)
	require.NoError(t, err)

	changed, _ := s.SelectDate(ctx, "2025-06-12")
	assert.False(t, changed)

	changed, _ = s.SelectDate(ctx, "2025-06-13")
	assert.True(t, changed)
	assert.Equal(t, "2025-06-13", s.Calendar().SelectedDate)
}

func TestSelectMechanic_FailureDegradesToNoneBlocked(t *testing.T) {
	api := newFakeAPI()
	api.days[1] = mechapi.Result[[]string]{Status: mechapi.StatusFailed, Err: errors.New("down")}
	s := newTestSession(t, api)

	nav, err := s.SelectMechanic(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Stay, nav)

	changed, _ := s.SelectDate(context.Background(), "2025-06-12")
	assert.True(t, changed)
}

func TestSelectMechanic_Unauthenticated(t *testing.T) {
	api := newFakeAPI()
	api.days[1] = mechapi.Result[[]string]{Status: mechapi.StatusUnauthenticated}
	s := newTestSession(t, api)

	nav, err := s.SelectMechanic(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, GoToLogin, nav)
}

func TestSelectMechanic_ResetsSelection(t *testing.T) {
	s := newTestSession(t, newFakeAPI())
	ctx := context.Background()

	_, _ = s.SelectMechanic(ctx, 1)
	s.SelectDate(ctx, "2025-06-12")
	require.True(t, s.SelectTime("10:00"))

	_, _ = s.SelectMechanic(ctx, 2)
	assert.Empty(t, s.Calendar().SelectedDate)
	assert.Equal(t, PromptSelectDate, s.TimeSlots().Prompt)
}

func TestSelectDate_WeekendAndPastIgnored(t *testing.T) {
	s := newTestSession(t, newFakeAPI())
	ctx := context.Background()
	_, _ = s.SelectMechanic(ctx, 1)

	changed, _ := s.SelectDate(ctx, "2025-06-14")
	assert.False(t, changed, "saturday")
	changed, _ = s.SelectDate(ctx, "2025-06-10")
	assert.False(t, changed, "yesterday")
	changed, _ = s.SelectDate(ctx, "junio")
	assert.False(t, changed)
}

func TestSelectDate_NoMechanic(t *testing.T) {
	s := newTestSession(t, newFakeAPI())
	changed, _ := s.SelectDate(context.Background(), "2025-06-12")
	assert.False(t, changed)
}

func TestTimeSlots_Prompts(t *testing.T) {
	s := newTestSession(t, newFakeAPI())
	ctx := context.Background()

	assert.Equal(t, PromptSelectMechanic, s.TimeSlots().Prompt)

	_, _ = s.SelectMechanic(ctx, 3)
	assert.Equal(t, PromptSelectMechanic, s.TimeSlots().Prompt)

	_, _ = s.SelectMechanic(ctx, 1)
	assert.Equal(t, PromptSelectDate, s.TimeSlots().Prompt)
}

func TestTimeSlots_DisablesReservedTimes(t *testing.T) {
	api := newFakeAPI()
	api.slots["2025-06-12"] = okList("10:00", "9:00")
	s := newTestSession(t, api)
	ctx := context.Background()

	_, _ = s.SelectMechanic(ctx, 1)
	s.SelectDate(ctx, "2025-06-12")

	view := s.TimeSlots()
	assert.Empty(t, view.Prompt)
	require.Len(t, view.Slots, 4)
	assert.Equal(t, "09:00", view.Slots[0].Time)
	assert.True(t, view.Slots[0].Disabled)
	assert.True(t, view.Slots[1].Disabled)
	assert.False(t, view.Slots[2].Disabled)
	assert.False(t, view.Slots[3].Disabled)

	assert.False(t, s.SelectTime("10:00"))
	assert.False(t, s.SelectTime("13:00"))
	assert.True(t, s.SelectTime("11:00"))
	assert.Equal(t, "11:00", s.TimeSlots().SelectedTime)
}

func TestSelectDate_DropsTimeThatBecameUnavailable(t *testing.T) {
	api := newFakeAPI()
	api.slots["2025-06-13"] = okList("11:00")
	s := newTestSession(t, api)
	ctx := context.Background()

	_, _ = s.SelectMechanic(ctx, 1)
	s.SelectDate(ctx, "2025-06-12")
	require.True(t, s.SelectTime("11:00"))

	s.SelectDate(ctx, "2025-06-13")
	assert.Empty(t, s.TimeSlots().SelectedTime)
}

func TestSelectDate_SlotsFailureBlocksNothing(t *testing.T) {
	api := newFakeAPI()
	api.slots["2025-06-12"] = mechapi.Result[[]string]{Status: mechapi.StatusFailed}
	s := newTestSession(t, api)
	ctx := context.Background()

	_, _ = s.SelectMechanic(ctx, 1)
	s.SelectDate(ctx, "2025-06-12")

	for _, v := range s.TimeSlots().Slots {
		assert.False(t, v.Disabled, v.Time)
	}
}

func TestSelectDate_OlderResponseArrivingLateIsDiscarded(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(t, api)
	ctx := context.Background()
	_, _ = s.SelectMechanic(ctx, 1)

	api.blockSlots = true

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.SelectDate(ctx, "2025-06-12")
	}()
	first := <-api.slotsCalls

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.SelectDate(ctx, "2025-06-13")
	}()
	second := <-api.slotsCalls

	assert.Equal(t, "2025-06-12", first.dateKey)
	assert.Equal(t, "2025-06-13", second.dateKey)

	second.release <- okList("09:00")
	first.release <- okList("10:00", "11:00")
	wg.Wait()

	view := s.TimeSlots()
	assert.Equal(t, "2025-06-13", s.Calendar().SelectedDate)
	require.Len(t, view.Slots, 4)
	assert.True(t, view.Slots[0].Disabled)
	assert.False(t, view.Slots[1].Disabled)
	assert.False(t, view.Slots[2].Disabled)
}

func TestSelectDate_SameKeyOlderResponseIsDiscarded(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(t, api)
	ctx := context.Background()
	_, _ = s.SelectMechanic(ctx, 1)

	api.blockSlots = true

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.SelectDate(ctx, "2025-06-12")
	}()
	older := <-api.slotsCalls
	go func() {
		defer wg.Done()
		s.SelectDate(ctx, "2025-06-12")
	}()
	newer := <-api.slotsCalls

	newer.release <- okList("09:00")
	older.release <- okList("10:00")
	wg.Wait()

	view := s.TimeSlots()
	require.Len(t, view.Slots, 4)
	assert.True(t, view.Slots[0].Disabled)
	assert.False(t, view.Slots[1].Disabled)
}

func TestShowPreviousMonth_StopsAtCurrentMonth(t *testing.T) {
	s := newTestSession(t, newFakeAPI())

	assert.False(t, s.Calendar().CanGoBack)
	assert.False(t, s.ShowPreviousMonth())

	s.ShowNextMonth()
	cal := s.Calendar()
	assert.Equal(t, time.July, cal.Month.Month())
	assert.True(t, cal.CanGoBack)
	assert.True(t, s.ShowPreviousMonth())
	assert.Equal(t, time.June, s.Calendar().Month.Month())
}

func TestSubmitAppointment(t *testing.T) {
	api := newFakeAPI()
	api.create = mechapi.Result[mechapi.Appointment]{
		Status: mechapi.StatusOK,
		Value:  mechapi.Appointment{ID: 55, MechanicID: 1, Status: "pendiente"},
	}
	s := newTestSession(t, api)
	ctx := context.Background()

	_, _, err := s.SubmitAppointment(ctx, AppointmentDetails{Service: "Afinación"})
	assert.ErrorIs(t, err, ErrIncompleteSelection)

	_, _ = s.SelectMechanic(ctx, 1)
	s.SelectDate(ctx, "2025-06-12")
	require.True(t, s.SelectTime("10:00"))

	res, nav, err := s.SubmitAppointment(ctx, AppointmentDetails{Service: "Afinación", VisitType: "taller"})
	require.NoError(t, err)
	assert.Equal(t, Stay, nav)
	assert.True(t, res.OK())
	assert.Equal(t, uint(55), res.Value.ID)

	require.Len(t, api.created, 1)
	req := api.created[0]
	assert.Equal(t, uint(1), req.MechanicID)
	assert.Equal(t, time.Date(2025, 6, 12, 10, 0, 0, 0, mexico(t)).Unix(), req.ScheduledFor.Unix())
}

func TestSubmitAppointment_ConflictIsReturned(t *testing.T) {
	api := newFakeAPI()
	api.create = mechapi.Result[mechapi.Appointment]{
		Status:     mechapi.StatusFailed,
		HTTPStatus: 409,
		Code:       "slot_taken",
		Message:    "El horario ya no está disponible",
	}
	s := newTestSession(t, api)
	ctx := context.Background()
	_, _ = s.SelectMechanic(ctx, 1)
	s.SelectDate(ctx, "2025-06-12")
	require.True(t, s.SelectTime("09:00"))

	res, nav, err := s.SubmitAppointment(ctx, AppointmentDetails{Service: "Frenos"})
	require.NoError(t, err)
	assert.Equal(t, Stay, nav)
	assert.False(t, res.OK())
	assert.Equal(t, "slot_taken", res.Code)
	assert.Len(t, api.created, 1)
}

func TestSelectMechanic_LateBlockedDaysDropSelectedTime(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(t, api)
	ctx := context.Background()

	api.blockDays = true
	api.daysStarted = make(chan struct{})
	api.daysRelease = make(chan mechapi.Result[[]string])

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.SelectMechanic(ctx, 1)
	}()
	<-api.daysStarted

	ok, nav := s.SelectDate(ctx, "2025-06-12")
	require.True(t, ok)
	require.Equal(t, Stay, nav)
	require.True(t, s.SelectTime("10:00"))

	api.daysRelease <- okList("2025-06-12")
	<-done

	assert.Empty(t, s.Calendar().SelectedDate)
	s.mu.Lock()
	assert.Nil(t, s.slots)
	assert.Empty(t, s.selectedTime)
	s.mu.Unlock()

	_, _, err := s.SubmitAppointment(ctx, AppointmentDetails{Service: "Afinación", VisitType: "taller"})
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}
