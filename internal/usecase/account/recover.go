package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/infra/session"
)

// Recover issues password reset tokens. Unknown emails are answered the same
// way as known ones.
type Recover struct {
	repo   Repository
	tokens session.RecoveryStore
	audit  *audit.Dispatcher
	log    *zap.Logger
}

func NewRecover(repo Repository, tokens session.RecoveryStore, audit *audit.Dispatcher, log *zap.Logger) *Recover {
	return &Recover{repo: repo, tokens: tokens, audit: audit, log: log}
}

func (uc *Recover) Execute(ctx context.Context, email string) error {

	errs := fv.RecoveryRules().Validate(fv.Values{fv.FieldEmail: fv.Text(email)})
	if !errs.Empty() {
		return &ValidationError{Fields: errs}
	}

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		uc.log.Info("recovery requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := uc.tokens.SaveRecoveryToken(ctx, email)
	if err != nil {
		return err
	}

	// no mailer yet; the token is only reachable through the logs
	uc.log.Info("password recovery token issued",
		zap.Uint("user_id", user.ID),
		zap.String("token", token),
		zap.Duration("ttl", session.RecoveryTTL),
	)

	uc.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "password_recovery_requested",
		Entity: "user",
	})
	return nil
}
