package availability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultStartMinutes = 9 * 60
	DefaultEndMinutes   = 18 * 60

	slotStepMinutes = 60
)

var timeTokenRe = regexp.MustCompile(`\d{1,2}:\d{2}`)

// ScheduleRange is the bookable window of a workshop day, in minutes of day.
type ScheduleRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DefaultRange is used whenever a schedule text cannot be understood.
func DefaultRange() ScheduleRange {
	return ScheduleRange{Start: DefaultStartMinutes, End: DefaultEndMinutes}
}

// ComputeScheduleRange extracts the first and last HH:MM tokens of a free-text
// schedule ("Lunes a sábado de 9:00 a 19:00 hrs"). Anything it cannot read
// falls back to DefaultRange; it never fails.
func ComputeScheduleRange(scheduleText string) ScheduleRange {
	r, ok := ParseScheduleRange(scheduleText)
	if !ok {
		return DefaultRange()
	}
	return r
}

// ParseScheduleRange is ComputeScheduleRange without the fallback.
func ParseScheduleRange(scheduleText string) (ScheduleRange, bool) {
	tokens := timeTokenRe.FindAllString(scheduleText, -1)
	if len(tokens) < 2 {
		return ScheduleRange{}, false
	}

	start, ok := MinutesOf(tokens[0])
	if !ok {
		return ScheduleRange{}, false
	}
	end, ok := MinutesOf(tokens[len(tokens)-1])
	if !ok {
		return ScheduleRange{}, false
	}

	if end <= start {
		return ScheduleRange{}, false
	}

	return ScheduleRange{Start: start, End: end}, true
}

// MinutesOf parses "H:MM" / "HH:MM" into minutes of day.
func MinutesOf(hm string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(hm), ":", 2)
	if len(parts) != 2 || parts[0] == "" || len(parts[1]) != 2 {
		return 0, false
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	return h*60 + m, true
}

// FormatMinutes renders minutes of day as zero padded "HH:MM".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateTimeSlots yields one slot per hour from r.Start to r.End inclusive.
func GenerateTimeSlots(r ScheduleRange) []string {
	if r.End < r.Start {
		return []string{}
	}

	slots := make([]string, 0, (r.End-r.Start)/slotStepMinutes+1)
	for cur := r.Start; cur <= r.End; cur += slotStepMinutes {
		slots = append(slots, FormatMinutes(cur))
	}
	return slots
}

// SlotsForSchedule is ComputeScheduleRange followed by GenerateTimeSlots.
func SlotsForSchedule(scheduleText string) []string {
	return GenerateTimeSlots(ComputeScheduleRange(scheduleText))
}

// IsScheduleSlot reports whether hm is one of the generated slots of the schedule.
func IsScheduleSlot(scheduleText, hm string) bool {
	for _, s := range SlotsForSchedule(scheduleText) {
		if s == hm {
			return true
		}
	}
	return false
}
