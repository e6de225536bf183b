package availability

// TimeSlotState holds the reserved times the server reported for one
// mechanic and date.
type TimeSlotState struct {
	MechanicID       uint
	DateKey          string
	UnavailableTimes map[string]struct{}
}

func NewTimeSlotState(mechanicID uint, dateKey string, times []string) *TimeSlotState {
	set := make(map[string]struct{}, len(times))
	for _, t := range times {
		if m, ok := MinutesOf(t); ok {
			set[FormatMinutes(m)] = struct{}{}
		}
	}
	return &TimeSlotState{
		MechanicID:       mechanicID,
		DateKey:          dateKey,
		UnavailableTimes: set,
	}
}

// Matches reports whether the state was fetched for this mechanic and date.
func (s *TimeSlotState) Matches(mechanicID uint, dateKey string) bool {
	return s != nil && s.MechanicID == mechanicID && s.DateKey == dateKey
}

func (s *TimeSlotState) IsUnavailable(hm string) bool {
	if s == nil {
		return false
	}
	_, ok := s.UnavailableTimes[hm]
	return ok
}

// SlotView is one rendered time option.
type SlotView struct {
	Time     string `json:"time"`
	Disabled bool   `json:"disabled"`
}

// BuildSlotViews generates the hourly slots of schedule. Slots are disabled
// only when state belongs to (mechanicID, dateKey); a missing or stale state
// blocks nothing.
func BuildSlotViews(schedule string, state *TimeSlotState, mechanicID uint, dateKey string) []SlotView {
	slots := SlotsForSchedule(schedule)
	apply := state.Matches(mechanicID, dateKey)

	views := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, SlotView{
			Time:     s,
			Disabled: apply && state.IsUnavailable(s),
		})
	}
	return views
}

// ResolveSelectedTime keeps previous only if it is still an enabled slot.
func ResolveSelectedTime(previous string, views []SlotView) string {
	if previous == "" {
		return ""
	}
	for _, v := range views {
		if v.Time == previous && !v.Disabled {
			return previous
		}
	}
	return ""
}

// FreeSlots lists the enabled times.
func FreeSlots(views []SlotView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		if !v.Disabled {
			out = append(out, v.Time)
		}
	}
	return out
}
