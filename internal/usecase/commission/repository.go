package commission

import (
	"context"

	"github.com/BruksfildServices01/mechapp/internal/models"
)

type Repository interface {
	// ListOutstanding returns the completed appointments of the mechanic
	// not yet covered by a captured commission payment.
	ListOutstanding(ctx context.Context, mechanicID uint) ([]models.Appointment, error)

	CreatePayment(ctx context.Context, p *models.CommissionPayment) error

	GetPayment(ctx context.Context, mechanicID uint, providerOrderID string) (*models.CommissionPayment, error)

	// MarkCaptured updates the payment and links its appointments in one transaction.
	MarkCaptured(ctx context.Context, p *models.CommissionPayment, appointmentIDs []uint) error
}
