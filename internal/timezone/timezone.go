package timezone

import (
	"sync"
	"time"
)

const DefaultTimezone = "America/Mexico_City"

var (
	mu      sync.RWMutex
	current = DefaultTimezone
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetDefault changes the application timezone. Invalid names are ignored.
func SetDefault(tz string) bool {
	if !IsValid(tz) {
		return false
	}
	mu.Lock()
	current = tz
	mu.Unlock()
	return true
}

func Name() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Location falls back to the application timezone when tz is invalid.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(Name())
	if err != nil {
		return time.UTC
	}
	return loc
}

func App() *time.Location {
	return Location(Name())
}

func Now() time.Time {
	return time.Now().In(App())
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
