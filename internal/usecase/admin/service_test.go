package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	"github.com/BruksfildServices01/mechapp/internal/auth"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/infra/session"
	"github.com/BruksfildServices01/mechapp/internal/middleware"
	"github.com/BruksfildServices01/mechapp/internal/models"
)

type fakeReports struct {
	lastFilter UserFilter
}

func (f *fakeReports) Stats(context.Context) (Stats, error) {
	return Stats{Clients: 3, Mechanics: 2}, nil
}

func (f *fakeReports) ListUsers(_ context.Context, filter UserFilter) ([]UserRow, error) {
	f.lastFilter = filter
	return []UserRow{}, nil
}

type memoryRepo struct {
	users map[uint]*models.User
	certs map[uint]*models.Certificate
}

func (r *memoryRepo) SetUserActive(_ context.Context, id uint, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = active
	return nil
}

func (r *memoryRepo) ListCertificates(_ context.Context, status string) ([]models.Certificate, error) {
	var out []models.Certificate
	for _, c := range r.certs {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetCertificate(_ context.Context, id uint) (*models.Certificate, error) {
	c, ok := r.certs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepo) ReviewCertificate(_ context.Context, cert *models.Certificate, validated bool) error {
	r.certs[cert.ID] = cert
	r.users[cert.MechanicID].Validated = validated
	return nil
}

func (r *memoryRepo) ListAuditLogs(_ context.Context, f AuditFilter) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

type fakePresigner struct{ ttl time.Duration }

func (p *fakePresigner) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	p.ttl = ttl
	return "https://bucket.example/" + key + "?sig=1", nil
}

type nopStore struct{}

func (nopStore) Save(context.Context, *models.AuditLog) error { return nil }

func newService(t *testing.T) (*Service, *memoryRepo, *fakeReports) {
	d := audit.NewDispatcher(nopStore{}, nil)
	t.Cleanup(d.Close)

	repo := &memoryRepo{
		users: map[uint]*models.User{
			1: {ID: 1, Role: models.RoleAdmin, Active: true},
			2: {ID: 2, Role: models.RoleMechanic, Active: true},
		},
		certs: map[uint]*models.Certificate{
			10: {ID: 10, MechanicID: 2, ObjectKey: "certificates/2/a.pdf", Status: models.CertificatePending},
		},
	}
	reports := &fakeReports{}
	s := NewService(reports, repo, &fakePresigner{}, session.NewMemoryStore(), d)
	s.now = func() time.Time { return time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC) }
	return s, repo, reports
}

func TestReviewCertificate_ApproveValidatesMechanic(t *testing.T) {
	s, repo, _ := newService(t)

	cert, err := s.ReviewCertificate(context.Background(), 1, 10, models.CertificateApproved, "ok")
	require.NoError(t, err)
	assert.Equal(t, models.CertificateApproved, cert.Status)
	require.NotNil(t, cert.ReviewedBy)
	assert.Equal(t, uint(1), *cert.ReviewedBy)
	assert.True(t, repo.users[2].Validated)

	_, err = s.ReviewCertificate(context.Background(), 1, 10, models.CertificateRejected, "")
	require.NoError(t, err)
	assert.False(t, repo.users[2].Validated)
}

func TestReviewCertificate_Errors(t *testing.T) {
	s, _, _ := newService(t)

	_, err := s.ReviewCertificate(context.Background(), 1, 10, "maybe", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = s.ReviewCertificate(context.Background(), 1, 99, models.CertificateApproved, "")
	assert.True(t, httperr.IsBusiness(err, "certificate_not_found"))
}

func TestCertificateURL(t *testing.T) {
	s, _, _ := newService(t)

	url, err := s.CertificateURL(context.Background(), 10)
	require.NoError(t, err)
	assert.Contains(t, url, "certificates/2/a.pdf")
	assert.Equal(t, certificateURLTTL, s.presigner.(*fakePresigner).ttl)
}

func TestSetUserActive(t *testing.T) {
	s, repo, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, s.SetUserActive(ctx, 1, 2, false))
	assert.False(t, repo.users[2].Active)

	assert.True(t, httperr.IsBusiness(s.SetUserActive(ctx, 1, 1, false), "cannot_modify_self"))
	assert.True(t, httperr.IsBusiness(s.SetUserActive(ctx, 1, 42, true), "user_not_found"))
}

func TestSetUserActive_DeactivationEndsSessions(t *testing.T) {
	s, _, _ := newService(t)
	ctx := context.Background()
	store := s.sessions.(*session.MemoryStore)
	tokens := auth.NewTokens("secreto", time.Hour)

	sid, err := store.Create(ctx, session.Data{UserID: 2, Role: models.RoleMechanic})
	require.NoError(t, err)
	otherSID, err := store.Create(ctx, session.Data{UserID: 3, Role: models.RoleClient})
	require.NoError(t, err)
	raw, err := tokens.Issue(auth.Claims{SessionID: sid, UserID: 2, Role: models.RoleMechanic})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(tokens, store, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusNoContent, call())

	require.NoError(t, s.SetUserActive(ctx, 1, 2, false))
	assert.Equal(t, http.StatusUnauthorized, call())

	_, err = store.Get(ctx, otherSID)
	assert.NoError(t, err)
}

func TestListUsers_FilterDefaults(t *testing.T) {
	s, _, reports := newService(t)

	_, err := s.ListUsers(context.Background(), UserFilter{Role: models.RoleMechanic})
	require.NoError(t, err)
	assert.Equal(t, uint64(50), reports.lastFilter.Limit)

	_, err = s.ListUsers(context.Background(), UserFilter{Role: "jefe"})
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))
}
