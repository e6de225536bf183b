package availability

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateSet holds YYYY-MM-DD keys.
type DateSet map[string]struct{}

func NewDateSet(keys ...string) DateSet {
	s := make(DateSet, len(keys))
	for _, k := range keys {
		if _, ok := ParseDateKey(k, time.UTC); ok {
			s[k] = struct{}{}
		}
	}
	return s
}

func (s DateSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s DateSet) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// FormatDateKey renders the calendar date of t (in t's location).
func FormatDateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey parses a zero padded YYYY-MM-DD key into midnight of that date
// in loc. Keys naming impossible dates (2025-02-30) are rejected.
func ParseDateKey(key string, loc *time.Location) (time.Time, bool) {
	if len(key) != len(dateKeyLayout) {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(dateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsDaySelectable compares dates only; the time of day of both arguments is ignored.
func IsDaySelectable(date, today time.Time, unavailable DateSet) bool {
	if StartOfDay(date).Before(StartOfDay(today)) {
		return false
	}
	if IsWeekend(date) {
		return false
	}
	if unavailable.Has(FormatDateKey(date)) {
		return false
	}
	return true
}

// ScheduledFor combines a date key and an "HH:MM" slot into an instant in loc.
func ScheduledFor(dateKey, hm string, loc *time.Location) (time.Time, error) {
	day, ok := ParseDateKey(dateKey, loc)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date key %q", dateKey)
	}
	minutes, ok := MinutesOf(hm)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time %q", hm)
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		minutes/60, minutes%60, 0, 0,
		day.Location(),
	), nil
}
