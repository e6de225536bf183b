package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mechapp/internal/domain/appointment"
	"github.com/BruksfildServices01/mechapp/internal/domain/availability"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

// ======================================================
// UNAVAILABLE DAYS
// ======================================================

type GetUnavailableDays struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetUnavailableDays(repo domain.Repository) *GetUnavailableDays {
	return &GetUnavailableDays{repo: repo, now: timezone.Now}
}

// Execute returns the fully booked date keys of the coming horizon.
func (uc *GetUnavailableDays) Execute(
	ctx context.Context,
	mechanicID uint,
) ([]string, error) {

	mechanic, err := uc.repo.GetMechanic(ctx, mechanicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("mechanic_not_found")
		}
		return nil, err
	}
	if mechanic.Workshop == nil {
		return []string{}, nil
	}

	from := availability.StartOfDay(uc.now())
	to := from.AddDate(0, 0, domain.UnavailableDaysHorizon)

	starts, err := uc.repo.ListScheduledStarts(ctx, mechanicID, from, to)
	if err != nil {
		return nil, err
	}

	taken := domain.TakenSlots(starts, from.Location())
	return domain.FullyBookedDays(
		mechanic.Workshop.Schedule,
		taken,
		from,
		domain.UnavailableDaysHorizon,
	), nil
}

// ======================================================
// UNAVAILABLE SLOTS
// ======================================================

type GetUnavailableSlots struct {
	repo domain.Repository
}

func NewGetUnavailableSlots(repo domain.Repository) *GetUnavailableSlots {
	return &GetUnavailableSlots{repo: repo}
}

// Execute returns the sorted "HH:MM" start times already scheduled on dateKey.
func (uc *GetUnavailableSlots) Execute(
	ctx context.Context,
	mechanicID uint,
	dateKey string,
) ([]string, error) {

	loc := timezone.App()
	day, ok := availability.ParseDateKey(dateKey, loc)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	starts, err := uc.repo.ListScheduledStarts(ctx, mechanicID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	taken := domain.TakenSlots(starts, loc)[dateKey]
	out := make([]string, 0, len(taken))
	for hm := range taken {
		out = append(out, hm)
	}
	sort.Strings(out)
	return out, nil
}
