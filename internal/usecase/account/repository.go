package account

import (
	"context"

	"github.com/BruksfildServices01/mechapp/internal/models"
)

// CertificateFunc runs inside the account transaction once the user has an ID.
type CertificateFunc func(ctx context.Context, userID uint) (*models.Certificate, error)

type Repository interface {
	EmailExists(ctx context.Context, email string) (bool, error)

	// CreateAccount inserts user and, when certificate is not nil, the
	// certificate it returns. Either both are stored or none.
	CreateAccount(ctx context.Context, user *models.User, certificate CertificateFunc) error

	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
