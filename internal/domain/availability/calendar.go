package availability

import "time"

const GridCells = 42

// DayCell is one square of the month grid.
type DayCell struct {
	Date       time.Time `json:"-"`
	Key        string    `json:"date"`
	Day        int       `json:"day"`
	InMonth    bool      `json:"in_month"`
	IsToday    bool      `json:"is_today"`
	Selected   bool      `json:"selected"`
	Selectable bool      `json:"selectable"`
}

// GridStart returns the Monday on or before the first day of month.
func GridStart(month time.Time) time.Time {
	first := StartOfMonth(month)
	offset := (int(first.Weekday()) + 6) % 7
	return first.AddDate(0, 0, -offset)
}

// MonthGrid lays out six weeks starting at GridStart(month). Cells outside the
// displayed month are never selectable.
func MonthGrid(month, today time.Time, unavailable DateSet, selected *time.Time) [GridCells]DayCell {
	var grid [GridCells]DayCell

	start := GridStart(month)
	todayKey := FormatDateKey(today)
	selectedKey := ""
	if selected != nil {
		selectedKey = FormatDateKey(*selected)
	}

	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		key := FormatDateKey(d)
		inMonth := d.Month() == month.Month() && d.Year() == month.Year()

		grid[i] = DayCell{
			Date:       d,
			Key:        key,
			Day:        d.Day(),
			InMonth:    inMonth,
			IsToday:    key == todayKey,
			Selected:   inMonth && key == selectedKey,
			Selectable: inMonth && IsDaySelectable(d, today, unavailable),
		}
	}

	return grid
}

// CalendarState is the date-picking state of one booking page session.
type CalendarState struct {
	Today             time.Time
	StartOfTodayMonth time.Time
	CurrentMonth      time.Time
	SelectedDate      *time.Time
	UnavailableDates  DateSet
	MechanicID        *uint
}

func NewCalendarState(now time.Time) *CalendarState {
	today := StartOfDay(now)
	return &CalendarState{
		Today:             today,
		StartOfTodayMonth: StartOfMonth(today),
		CurrentMonth:      StartOfMonth(today),
		UnavailableDates:  DateSet{},
	}
}

// SelectedKey is "" when no date is selected.
func (s *CalendarState) SelectedKey() string {
	if s.SelectedDate == nil {
		return ""
	}
	return FormatDateKey(*s.SelectedDate)
}

// SelectDate is a no-op returning false when date is not selectable.
func (s *CalendarState) SelectDate(date time.Time) bool {
	if !IsDaySelectable(date, s.Today, s.UnavailableDates) {
		return false
	}
	d := StartOfDay(date)
	s.SelectedDate = &d
	return true
}

// SelectDateKey parses key in the location of Today before selecting it.
func (s *CalendarState) SelectDateKey(key string) bool {
	d, ok := ParseDateKey(key, s.Today.Location())
	if !ok {
		return false
	}
	return s.SelectDate(d)
}

func (s *CalendarState) ClearSelection() {
	s.SelectedDate = nil
}

// SetMechanic switches the calendar to another mechanic. Unavailable dates
// belong to the previous mechanic, so they are dropped with the selection.
func (s *CalendarState) SetMechanic(id *uint) {
	if id != nil {
		v := *id
		id = &v
	}
	s.MechanicID = id
	s.SelectedDate = nil
	s.UnavailableDates = DateSet{}
}

// SetUnavailableDates replaces the blocked dates and drops a selection that
// is no longer allowed.
func (s *CalendarState) SetUnavailableDates(dates DateSet) {
	if dates == nil {
		dates = DateSet{}
	}
	s.UnavailableDates = dates

	if s.SelectedDate != nil && !IsDaySelectable(*s.SelectedDate, s.Today, dates) {
		s.SelectedDate = nil
	}
}

func (s *CalendarState) ShowNextMonth() {
	s.CurrentMonth = s.CurrentMonth.AddDate(0, 1, 0)
}

// ShowPreviousMonth stops at the month of today.
func (s *CalendarState) ShowPreviousMonth() bool {
	prev := s.CurrentMonth.AddDate(0, -1, 0)
	if prev.Before(s.StartOfTodayMonth) {
		return false
	}
	s.CurrentMonth = prev
	return true
}

func (s *CalendarState) CanShowPreviousMonth() bool {
	return s.CurrentMonth.After(s.StartOfTodayMonth)
}

func (s *CalendarState) Grid() [GridCells]DayCell {
	return MonthGrid(s.CurrentMonth, s.Today, s.UnavailableDates, s.SelectedDate)
}
