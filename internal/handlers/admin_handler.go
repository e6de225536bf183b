package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/httpresp"
	"github.com/BruksfildServices01/mechapp/internal/middleware"
	"github.com/BruksfildServices01/mechapp/internal/usecase/admin"
)

type AdminHandler struct {
	admin *admin.Service
	log   *zap.Logger
}

func NewAdminHandler(svc *admin.Service, log *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: svc, log: log}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, stats)
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (h *AdminHandler) ListUsers(c *gin.Context) {
	f := admin.UserFilter{Role: c.Query("role")}

	if v := c.Query("validated"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_validated", "Parámetro validated inválido.")
			return
		}
		f.Validated = &b
	}

	page, _ := strconv.ParseUint(c.DefaultQuery("page", "1"), 10, 64)
	if page == 0 {
		page = 1
	}
	f.Limit, _ = strconv.ParseUint(c.DefaultQuery("limit", "50"), 10, 64)
	if f.Limit == 0 || f.Limit > 200 {
		f.Limit = 50
	}
	f.Offset = (page - 1) * f.Limit

	users, err := h.admin.ListUsers(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, users)
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
		return
	}

	if err := h.admin.SetUserActive(c.Request.Context(), middleware.UserID(c), id, *req.Active); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "active": *req.Active})
}

// --------------------------------------------------
// Certificates
// --------------------------------------------------

func (h *AdminHandler) ListCertificates(c *gin.Context) {
	certs, err := h.admin.ListCertificates(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, certs)
}

type ReviewCertificateRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *AdminHandler) ReviewCertificate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ReviewCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
		return
	}

	cert, err := h.admin.ReviewCertificate(c.Request.Context(), middleware.UserID(c), id, req.Status, req.Notes)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, cert)
}

func (h *AdminHandler) CertificateURL(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	url, err := h.admin.CertificateURL(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"url": url})
}
