package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mexico = mustLoad("America/Mexico_City")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, mexico)
}

func TestDateKeyRoundTrip(t *testing.T) {
	start := date(2024, time.January, 1)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)

		parsed, ok := ParseDateKey(FormatDateKey(d), mexico)
		require.True(t, ok)
		assert.Equal(t, d.Year(), parsed.Year())
		assert.Equal(t, d.Month(), parsed.Month())
		assert.Equal(t, d.Day(), parsed.Day())
	}
}

func TestParseDateKey_Rejects(t *testing.T) {
	for _, key := range []string{"", "2025-2-01", "2025-02-30", "2025-13-01", "01-02-2025", "2025/02/01", "2025-02-01T10:00"} {
		_, ok := ParseDateKey(key, mexico)
		assert.False(t, ok, key)
	}
}

func TestFormatDateKey_ZeroPadded(t *testing.T) {
	assert.Equal(t, "2025-03-07", FormatDateKey(date(2025, time.March, 7)))
}

func TestIsDaySelectable(t *testing.T) {
	today := time.Date(2025, time.March, 12, 15, 30, 0, 0, mexico) // Wednesday afternoon

	assert.True(t, IsDaySelectable(date(2025, time.March, 12), today, nil), "today stays selectable")
	assert.True(t, IsDaySelectable(date(2025, time.March, 13), today, DateSet{}))
	assert.False(t, IsDaySelectable(date(2025, time.March, 11), today, nil), "past")
	assert.False(t, IsDaySelectable(date(2025, time.March, 15), today, nil), "saturday")
	assert.False(t, IsDaySelectable(date(2025, time.March, 16), today, nil), "sunday")
	assert.False(t, IsDaySelectable(date(2025, time.March, 14), today, NewDateSet("2025-03-14")), "reserved")
}

func TestIsDaySelectable_PastAndWeekendsNeverSelectable(t *testing.T) {
	today := date(2025, time.June, 18)

	for i := 1; i <= 60; i++ {
		assert.False(t, IsDaySelectable(today.AddDate(0, 0, -i), today, nil))
	}
	for i := 0; i <= 60; i++ {
		d := today.AddDate(0, 0, i)
		if IsWeekend(d) {
			assert.False(t, IsDaySelectable(d, today, DateSet{}), FormatDateKey(d))
		}
	}
}

func TestScheduledFor(t *testing.T) {
	at, err := ScheduledFor("2025-03-13", "09:00", mexico)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 13, 9, 0, 0, 0, mexico), at)

	_, err = ScheduledFor("2025-03-32", "09:00", mexico)
	assert.Error(t, err)
	_, err = ScheduledFor("2025-03-13", "9h", mexico)
	assert.Error(t, err)
}
