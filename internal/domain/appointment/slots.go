package appointment

import (
	"time"

	"github.com/BruksfildServices01/mechapp/internal/domain/availability"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
)

// SlotDuration is the length of every bookable slot.
const SlotDuration = time.Hour

// UnavailableDaysHorizon is how far ahead fully booked days are reported.
const UnavailableDaysHorizon = 90

// ValidateSlot checks that start falls on a bookable slot of schedule:
// a selectable weekday, on the hour grid of the schedule and not in the past.
func ValidateSlot(schedule string, start, now time.Time) error {
	today := availability.StartOfDay(now)
	if !availability.IsDaySelectable(start, today, nil) {
		return httperr.ErrBusiness("date_not_selectable")
	}

	if start.Second() != 0 || start.Nanosecond() != 0 {
		return httperr.ErrBusiness("time_not_available")
	}
	hm := start.Format("15:04")
	if !availability.IsScheduleSlot(schedule, hm) {
		return httperr.ErrBusiness("time_not_available")
	}

	if start.Before(now) {
		return httperr.ErrBusiness("too_soon")
	}

	return nil
}

// TakenSlots groups scheduled start times by date key, in loc.
func TakenSlots(starts []time.Time, loc *time.Location) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})
	for _, s := range starts {
		local := s.In(loc)
		key := availability.FormatDateKey(local)
		if out[key] == nil {
			out[key] = make(map[string]struct{})
		}
		out[key][local.Format("15:04")] = struct{}{}
	}
	return out
}

// FullyBookedDays lists the weekdays in [from, from+days) on which every
// slot generated from schedule is taken.
func FullyBookedDays(schedule string, taken map[string]map[string]struct{}, from time.Time, days int) []string {
	slots := availability.SlotsForSchedule(schedule)
	out := []string{}
	if len(slots) == 0 {
		return out
	}

	day := availability.StartOfDay(from)
	for i := 0; i < days; i++ {
		d := day.AddDate(0, 0, i)
		if availability.IsWeekend(d) {
			continue
		}

		key := availability.FormatDateKey(d)
		booked := taken[key]
		if len(booked) < len(slots) {
			continue
		}

		full := true
		for _, s := range slots {
			if _, ok := booked[s]; !ok {
				full = false
				break
			}
		}
		if full {
			out = append(out, key)
		}
	}

	return out
}
