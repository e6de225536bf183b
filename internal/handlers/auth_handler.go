package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mechapp/internal/auth"
	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/middleware"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/usecase/account"
)

type AuthHandler struct {
	register *account.Register
	login    *account.Login
	recover  *account.Recover
	tokens   *auth.Tokens
	secure   bool
	log      *zap.Logger
}

func NewAuthHandler(
	register *account.Register,
	login *account.Login,
	recover *account.Recover,
	tokens *auth.Tokens,
	secureCookie bool,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		recover:  recover,
		tokens:   tokens,
		secure:   secureCookie,
		log:      log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm-password" form:"confirm-password"`
	AccountType     string `json:"account-type" form:"account-type"`
	Terms           bool   `json:"terms" form:"-"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RecoveryRequest struct {
	Email string `json:"email"`
}

type userResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Validated bool   `json:"validated"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Validated: u.Validated,
	}
}

// --------- Handlers ---------

// Register accepts multipart (with the certificate file) or JSON.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	var upload *account.Upload

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
			return
		}
		switch c.PostForm("terms") {
		case "on", "true", "1":
			req.Terms = true
		}

		if fh, err := c.FormFile("certificate"); err == nil {
			if fh.Size > fv.MaxCertificateBytes {
				httperr.ValidationFailed(c, fv.MsgBadRequest, map[string][]string{
					fv.FieldCertificate: {fv.MsgCertificateSize},
				})
				return
			}
			f, err := fh.Open()
			if err != nil {
				httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
				return
			}
			data, err := io.ReadAll(io.LimitReader(f, fv.MaxCertificateBytes+1))
			f.Close()
			if err != nil {
				httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
				return
			}
			upload = &account.Upload{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
		return
	}

	user, err := h.register.Execute(c.Request.Context(), account.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AccountType:     req.AccountType,
		Terms:           req.Terms,
		Certificate:     upload,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
		return
	}

	user, sid, err := h.login.Execute(c.Request.Context(), account.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	token, err := h.tokens.Issue(auth.Claims{SessionID: sid, UserID: user.ID, Role: user.Role})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, token, int(h.tokens.TTL().Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"user":  toUserResponse(user),
		"token": token,
	})
}

// Logout always clears the cookie; an invalid or expired token is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if raw, ok := middleware.SessionToken(c); ok {
		if claims, err := h.tokens.Parse(raw); err == nil {
			if err := h.login.Logout(c.Request.Context(), claims.SessionID); err != nil {
				h.log.Warn("logout: delete session failed", zap.Error(err))
			}
		}
	}

	h.setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Recovery answers 202 whether or not the email exists.
func (h *AuthHandler) Recovery(c *gin.Context) {
	var req RecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
		return
	}

	if err := h.recover.Execute(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": fv.MsgRecoveryRequested})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.secure, true)
}
