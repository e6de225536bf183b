package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/infra/session"
	"github.com/BruksfildServices01/mechapp/internal/models"
)

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	repo     Repository
	sessions session.Store
	audit    *audit.Dispatcher
}

func NewLogin(repo Repository, sessions session.Store, audit *audit.Dispatcher) *Login {
	return &Login{repo: repo, sessions: sessions, audit: audit}
}

// Execute returns the user and the id of a new server-side session.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*models.User, string, error) {

	errs := fv.LoginRules().Validate(fv.Values{
		fv.FieldEmail:    fv.Text(in.Email),
		fv.FieldPassword: fv.Text(in.Password),
	})
	if !errs.Empty() {
		return nil, "", &ValidationError{Fields: errs}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", httperr.ErrBusiness("invalid_credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.audit.Dispatch(audit.Event{
			UserID: &user.ID,
			Action: "login_failed",
			Entity: "user",
		})
		return nil, "", httperr.ErrBusiness("invalid_credentials")
	}

	if !user.Active {
		return nil, "", httperr.ErrBusiness("account_disabled")
	}

	sid, err := uc.sessions.Create(ctx, session.Data{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, "", err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "login",
		Entity:   "user",
		EntityID: &user.ID,
	})

	return user, sid, nil
}

// Logout drops the server-side session.
func (uc *Login) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, sessionID)
}
