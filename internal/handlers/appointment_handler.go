package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/metrics"
	"github.com/BruksfildServices01/mechapp/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/mechapp/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *ucAppointment.CreateAppointment
	cancelUC      *ucAppointment.CancelAppointment
	completeUC    *ucAppointment.CompleteAppointment
	listUC        *ucAppointment.ListAppointments
	unavailDaysUC *ucAppointment.GetUnavailableDays
	unavailSlotUC *ucAppointment.GetUnavailableSlots

	metrics *metrics.Collector
	log     *zap.Logger
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listUC *ucAppointment.ListAppointments,
	unavailDaysUC *ucAppointment.GetUnavailableDays,
	unavailSlotUC *ucAppointment.GetUnavailableSlots,
	m *metrics.Collector,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		listUC:        listUC,
		unavailDaysUC: unavailDaysUC,
		unavailSlotUC: unavailSlotUC,
		metrics:       m,
		log:           log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	MechanicID   uint      `json:"mechanicId" binding:"required"`
	Service      string    `json:"service"`
	VisitType    string    `json:"visitType"`
	ScheduledFor time.Time `json:"scheduledFor" binding:"required"`
	Notes        string    `json:"notes"`
	Address      string    `json:"address"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) UnavailableDays(c *gin.Context) {
	mechanicID, ok := uintQuery(c, "mechanicId")
	if !ok {
		return
	}

	dates, err := h.unavailDaysUC.Execute(c.Request.Context(), mechanicID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *AppointmentHandler) UnavailableSlots(c *gin.Context) {
	mechanicID, ok := uintQuery(c, "mechanicId")
	if !ok {
		return
	}

	dateKey := c.Query("date")
	if _, ok := parseDateInApp(dateKey); !ok {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	times, err := h.unavailSlotUC.Execute(c.Request.Context(), mechanicID, dateKey)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"times": times})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", fv.MsgBadRequest)
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:     middleware.UserID(c),
		MechanicID:   req.MechanicID,
		Service:      req.Service,
		VisitType:    req.VisitType,
		ScheduledFor: req.ScheduledFor,
		Notes:        req.Notes,
		Address:      req.Address,
	})
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			h.metrics.AppointmentConflicts.Inc()
		}
		writeError(c, h.log, err)
		return
	}

	h.metrics.AppointmentsCreated.Inc()
	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	aps, err := h.listUC.Execute(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, aps)
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}
