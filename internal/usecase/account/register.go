package account

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/infra/storage"
	"github.com/BruksfildServices01/mechapp/internal/models"
)

// Upload is a file received with the registration form.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	AccountType     string
	Terms           bool
	Certificate     *Upload
}

// Values maps the input onto the register form fields.
func (in RegisterInput) Values() fv.Values {
	values := fv.Values{
		fv.FieldName:            fv.Text(in.Name),
		fv.FieldEmail:           fv.Text(in.Email),
		fv.FieldPassword:        fv.Text(in.Password),
		fv.FieldConfirmPassword: fv.Text(in.ConfirmPassword),
		fv.FieldAccountType:     fv.Text(in.AccountType),
		fv.FieldTerms:           fv.Checkbox(in.Terms),
		fv.FieldCertificate:     fv.Files(),
	}
	if in.Certificate != nil && strings.TrimSpace(in.AccountType) == fv.AccountTypeMechanic {
		values[fv.FieldCertificate] = fv.Files(fv.File{
			Name:        in.Certificate.Name,
			Size:        int64(len(in.Certificate.Data)),
			ContentType: in.Certificate.ContentType,
		})
	}
	return values
}

// DomainChecker reports whether the domain of email can receive mail.
type DomainChecker func(ctx context.Context, email string) bool

type Register struct {
	repo        Repository
	uploader    storage.Uploader
	audit       *audit.Dispatcher
	log         *zap.Logger
	checkDomain DomainChecker
	cost        int
}

func NewRegister(
	repo Repository,
	uploader storage.Uploader,
	audit *audit.Dispatcher,
	log *zap.Logger,
	checkDomain DomainChecker,
) *Register {
	return &Register{
		repo:        repo,
		uploader:    uploader,
		audit:       audit,
		log:         log,
		checkDomain: checkDomain,
		cost:        bcrypt.DefaultCost,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {

	if errs := fv.RegisterRules().Validate(in.Values()); !errs.Empty() {
		return nil, &ValidationError{Fields: errs}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := strings.TrimSpace(in.AccountType)

	if uc.checkDomain != nil && !uc.checkDomain(ctx, email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	exists, err := uc.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness("email_taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Active:       true,
	}

	var certificate CertificateFunc
	if role == models.RoleMechanic {
		data, contentType, err := storage.NormalizeCertificate(
			in.Certificate.Data,
			certificateContentType(in.Certificate),
		)
		if err != nil {
			uc.log.Warn("certificate rejected", zap.String("email", email), zap.Error(err))
			return nil, &ValidationError{Fields: fv.FieldErrors{
				fv.FieldCertificate: {fv.MsgCertificateFormat},
			}}
		}

		certificate = func(ctx context.Context, userID uint) (*models.Certificate, error) {
			key := storage.CertificateKey(userID, contentType)
			if err := uc.uploader.Put(ctx, key, contentType, data); err != nil {
				return nil, err
			}
			return &models.Certificate{
				MechanicID:  userID,
				ObjectKey:   key,
				ContentType: contentType,
				Status:      models.CertificatePending,
			}, nil
		}
	}

	if err := uc.repo.CreateAccount(ctx, user, certificate); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("email_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": user.Role},
	})

	return user, nil
}

// certificateContentType trusts the extension over the declared type.
func certificateContentType(u *Upload) string {
	switch strings.ToLower(filepath.Ext(u.Name)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return u.ContentType
}
