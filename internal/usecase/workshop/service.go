package workshop

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	"github.com/BruksfildServices01/mechapp/internal/domain/availability"
	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/account"
)

const MsgScheduleFormat = "Indica el horario con hora de apertura y cierre, por ejemplo 9:00 a 18:00."

type Service struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewService(repo Repository, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, audit: audit}
}

// ======================================================
// PROFILE
// ======================================================

func (s *Service) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	return user, err
}

type WorkshopInput struct {
	Name        string
	Address     string
	Schedule    string
	Phone       string
	Description string
}

// UpdateWorkshop creates or replaces the workshop of a mechanic. The schedule
// must contain a readable "HH:MM ... HH:MM" window.
func (s *Service) UpdateWorkshop(ctx context.Context, mechanicID uint, in WorkshopInput) (*models.Workshop, error) {

	user, err := s.Profile(ctx, mechanicID)
	if err != nil {
		return nil, err
	}
	if !user.IsMechanic() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	fields := fv.FieldErrors{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		fields["name"] = []string{fv.MsgRequired}
	}
	schedule := strings.TrimSpace(in.Schedule)
	if schedule == "" {
		fields["schedule"] = []string{fv.MsgRequired}
	} else if _, ok := availability.ParseScheduleRange(schedule); !ok {
		fields["schedule"] = []string{MsgScheduleFormat}
	}
	if !fields.Empty() {
		return nil, &account.ValidationError{Fields: fields}
	}

	w := user.Workshop
	if w == nil {
		w = &models.Workshop{MechanicID: mechanicID}
	}
	w.Name = name
	w.Address = strings.TrimSpace(in.Address)
	w.Schedule = schedule
	w.Phone = strings.TrimSpace(in.Phone)
	w.Description = strings.TrimSpace(in.Description)

	if err := s.repo.SaveWorkshop(ctx, w); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &mechanicID,
		Action:   "workshop_updated",
		Entity:   "workshop",
		EntityID: &w.ID,
	})

	return w, nil
}

// ======================================================
// MECHANICS / WORKSHOPS
// ======================================================

func (s *Service) Mechanics(ctx context.Context) ([]models.User, error) {
	return s.repo.ListBookableMechanics(ctx)
}

func (s *Service) Workshops(ctx context.Context) ([]models.Workshop, error) {
	return s.repo.ListWorkshops(ctx)
}

type Detail struct {
	Workshop      *models.Workshop
	MechanicName  string
	AverageRating float64
	Reviews       []ReviewRow
}

func (s *Service) Detail(ctx context.Context, workshopID uint) (*Detail, error) {
	w, err := s.repo.GetWorkshop(ctx, workshopID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("workshop_not_found")
	}
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListReviews(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		Workshop:      w,
		AverageRating: averageRating(reviews),
		Reviews:       reviews,
	}
	if mech, err := s.repo.GetUser(ctx, w.MechanicID); err == nil {
		d.MechanicName = mech.Name
	}
	return d, nil
}

// averageRating is rounded to one decimal; zero without reviews.
func averageRating(reviews []ReviewRow) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}

// ======================================================
// REVIEWS
// ======================================================

type ReviewInput struct {
	Rating  string
	Comment string
}

func (s *Service) AddReview(ctx context.Context, clientID, workshopID uint, in ReviewInput) (*models.Review, error) {

	values := fv.Values{
		fv.FieldRating:  fv.Text(in.Rating),
		fv.FieldComment: fv.Text(in.Comment),
	}
	if errs := fv.ReviewRules().Validate(values); !errs.Empty() {
		return nil, &account.ValidationError{Fields: errs}
	}

	w, err := s.repo.GetWorkshop(ctx, workshopID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("workshop_not_found")
	}
	if err != nil {
		return nil, err
	}
	if w.MechanicID == clientID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	rating, _ := strconv.Atoi(values[fv.FieldRating].Text)
	r := &models.Review{
		WorkshopID: workshopID,
		ClientID:   clientID,
		Rating:     rating,
		Comment:    values[fv.FieldComment].Text,
	}

	if err := s.repo.CreateReview(ctx, r); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("review_exists")
		}
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &clientID,
		Action:   "review_created",
		Entity:   "workshop",
		EntityID: &workshopID,
		Metadata: map[string]any{"rating": rating},
	})

	return r, nil
}
