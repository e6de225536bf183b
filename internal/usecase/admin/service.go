package admin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/infra/storage"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

const certificateURLTTL = 15 * time.Minute

type Service struct {
	reports   Reports
	repo      Repository
	presigner storage.Presigner
	sessions  SessionRevoker
	audit     *audit.Dispatcher
	now       func() time.Time
}

func NewService(
	reports Reports,
	repo Repository,
	presigner storage.Presigner,
	sessions SessionRevoker,
	audit *audit.Dispatcher,
) *Service {
	return &Service{
		reports:   reports,
		repo:      repo,
		presigner: presigner,
		sessions:  sessions,
		audit:     audit,
		now:       timezone.Now,
	}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.reports.Stats(ctx)
}

func (s *Service) ListUsers(ctx context.Context, f UserFilter) ([]UserRow, error) {
	switch f.Role {
	case "", models.RoleClient, models.RoleMechanic, models.RoleAdmin:
	default:
		return nil, httperr.ErrBusiness("invalid_role")
	}
	if f.Limit == 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return s.reports.ListUsers(ctx, f)
}

func (s *Service) SetUserActive(ctx context.Context, adminID, userID uint, active bool) error {
	if adminID == userID {
		return httperr.ErrBusiness("cannot_modify_self")
	}

	if err := s.repo.SetUserActive(ctx, userID, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("user_not_found")
		}
		return err
	}

	if !active {
		if err := s.sessions.DeleteUser(ctx, userID); err != nil {
			return err
		}
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_active_changed",
		Entity:   "user",
		EntityID: &userID,
		Metadata: map[string]any{"active": active},
	})
	return nil
}

// ======================================================
// CERTIFICATES
// ======================================================

func (s *Service) ListCertificates(ctx context.Context, status string) ([]models.Certificate, error) {
	switch status {
	case "", models.CertificatePending, models.CertificateApproved, models.CertificateRejected:
	default:
		return nil, httperr.ErrBusiness("invalid_status")
	}
	return s.repo.ListCertificates(ctx, status)
}

// ReviewCertificate approves or rejects a certificate; approval validates
// the mechanic, rejection revokes it.
func (s *Service) ReviewCertificate(
	ctx context.Context,
	adminID, certificateID uint,
	status, notes string,
) (*models.Certificate, error) {

	if status != models.CertificateApproved && status != models.CertificateRejected {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	cert, err := s.certificate(ctx, certificateID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cert.Status = status
	cert.Notes = notes
	cert.ReviewedBy = &adminID
	cert.ReviewedAt = &now

	if err := s.repo.ReviewCertificate(ctx, cert, status == models.CertificateApproved); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "certificate_" + status,
		Entity:   "certificate",
		EntityID: &cert.ID,
		Metadata: map[string]any{"mechanic_id": cert.MechanicID},
	})

	return cert, nil
}

func (s *Service) CertificateURL(ctx context.Context, certificateID uint) (string, error) {
	cert, err := s.certificate(ctx, certificateID)
	if err != nil {
		return "", err
	}
	return s.presigner.PresignGet(ctx, cert.ObjectKey, certificateURLTTL)
}

func (s *Service) certificate(ctx context.Context, id uint) (*models.Certificate, error) {
	cert, err := s.repo.GetCertificate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("certificate_not_found")
	}
	return cert, err
}

// ======================================================
// AUDIT
// ======================================================

func (s *Service) AuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, int64, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.ListAuditLogs(ctx, f)
}
