package admin

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mechapp/internal/models"
)

type Stats struct {
	Clients             int64 `json:"clients"`
	Mechanics           int64 `json:"mechanics"`
	ValidatedMechanics  int64 `json:"validatedMechanics"`
	PendingCertificates int64 `json:"pendingCertificates"`
	ScheduledVisits     int64 `json:"scheduledAppointments"`
	CompletedVisits     int64 `json:"completedAppointments"`
}

type UserFilter struct {
	Role      string
	Validated *bool
	Limit     uint64
	Offset    uint64
}

type UserRow struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Validated bool      `json:"validated"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reports are read-only aggregate queries.
type Reports interface {
	Stats(ctx context.Context) (Stats, error)
	ListUsers(ctx context.Context, f UserFilter) ([]UserRow, error)
}

type AuditFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Repository interface {
	SetUserActive(ctx context.Context, userID uint, active bool) error

	ListCertificates(ctx context.Context, status string) ([]models.Certificate, error)
	GetCertificate(ctx context.Context, id uint) (*models.Certificate, error)

	// ReviewCertificate saves cert and sets the mechanic's Validated flag in one transaction.
	ReviewCertificate(ctx context.Context, cert *models.Certificate, validated bool) error

	ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, int64, error)
}

// SessionRevoker ends the open sessions of a user.
type SessionRevoker interface {
	DeleteUser(ctx context.Context, userID uint) error
}
