package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mechapp/internal/usecase/admin"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	admin *admin.Service
	log   *zap.Logger
}

func NewAuditLogsHandler(svc *admin.Service, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{admin: svc, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := admin.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Date range, in the application timezone
	// --------------------------------------------------

	if from, ok := parseDateInApp(c.Query("from")); ok {
		f.From = &from
	}
	if to, ok := parseDateInApp(c.Query("to")); ok {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.admin.AuditLogs(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
