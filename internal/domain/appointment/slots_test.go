package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mechapp/internal/httperr"
)

func mexico(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	return loc
}

const schedule = "Lunes a viernes 09:00 - 12:00"

func TestValidateSlot(t *testing.T) {
	loc := mexico(t)
	// Wednesday
	now := time.Date(2025, 6, 11, 10, 30, 0, 0, loc)

	cases := []struct {
		name  string
		start time.Time
		code  string
	}{
		{"ok tomorrow", time.Date(2025, 6, 12, 9, 0, 0, 0, loc), ""},
		{"ok later today", time.Date(2025, 6, 11, 11, 0, 0, 0, loc), ""},
		{"earlier today", time.Date(2025, 6, 11, 10, 0, 0, 0, loc), "too_soon"},
		{"yesterday", time.Date(2025, 6, 10, 10, 0, 0, 0, loc), "date_not_selectable"},
		{"saturday", time.Date(2025, 6, 14, 10, 0, 0, 0, loc), "date_not_selectable"},
		{"off grid", time.Date(2025, 6, 12, 9, 30, 0, 0, loc), "time_not_available"},
		{"after close", time.Date(2025, 6, 12, 13, 0, 0, 0, loc), "time_not_available"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSlot(schedule, tc.start, now)
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestFullyBookedDays(t *testing.T) {
	loc := mexico(t)
	from := time.Date(2025, 6, 11, 8, 0, 0, 0, loc)

	var starts []time.Time
	for _, h := range []int{9, 10, 11, 12} {
		starts = append(starts, time.Date(2025, 6, 12, h, 0, 0, 0, loc))
	}
	// 2025-06-13 misses 12:00
	for _, h := range []int{9, 10, 11} {
		starts = append(starts, time.Date(2025, 6, 13, h, 0, 0, 0, loc))
	}
	// a saturday full of bookings is not reported
	for _, h := range []int{9, 10, 11, 12} {
		starts = append(starts, time.Date(2025, 6, 14, h, 0, 0, 0, loc))
	}

	taken := TakenSlots(starts, loc)
	got := FullyBookedDays(schedule, taken, from, UnavailableDaysHorizon)

	assert.Equal(t, []string{"2025-06-12"}, got)
}

func TestTakenSlots_ConvertsToLocation(t *testing.T) {
	loc := mexico(t)
	utc := time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC) // 09:00 in Mexico City

	taken := TakenSlots([]time.Time{utc}, loc)
	_, ok := taken["2025-06-12"]["09:00"]
	assert.True(t, ok)
}

func TestParseVisitType(t *testing.T) {
	v, err := ParseVisitType("")
	require.NoError(t, err)
	assert.Equal(t, VisitWorkshop, v)

	v, err = ParseVisitType("Domicilio")
	require.NoError(t, err)
	assert.True(t, v.RequiresAddress())

	_, err = ParseVisitType("remoto")
	assert.True(t, httperr.IsBusiness(err, "invalid_visit_type"))
}
