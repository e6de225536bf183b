package workshop

import (
	"context"

	"github.com/BruksfildServices01/mechapp/internal/models"
)

// ReviewRow is a review joined with its author name.
type ReviewRow struct {
	models.Review
	Author string
}

type Repository interface {
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	SaveWorkshop(ctx context.Context, w *models.Workshop) error

	// ListBookableMechanics returns validated, active mechanics that own a workshop.
	ListBookableMechanics(ctx context.Context) ([]models.User, error)

	ListWorkshops(ctx context.Context) ([]models.Workshop, error)
	GetWorkshop(ctx context.Context, id uint) (*models.Workshop, error)

	ListReviews(ctx context.Context, workshopID uint) ([]ReviewRow, error)
	CreateReview(ctx context.Context, r *models.Review) error
}
