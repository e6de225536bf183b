package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/usecase/account"
)

type errorMapping struct {
	status  int
	message string
}

var businessErrors = map[string]errorMapping{
	// auth
	"email_taken":          {http.StatusConflict, fv.MsgEmailTaken},
	"invalid_email_domain": {http.StatusBadRequest, "El dominio del correo no parece válido."},
	"invalid_credentials":  {http.StatusUnauthorized, fv.MsgInvalidLogin},
	"account_disabled":     {http.StatusForbidden, "Tu cuenta está desactivada."},
	"user_not_found":       {http.StatusNotFound, "Usuario no encontrado."},
	"forbidden":            {http.StatusForbidden, "No tienes permiso para esta acción."},

	// appointments
	"service_required":       {http.StatusBadRequest, "Indica el servicio que necesitas."},
	"invalid_visit_type":     {http.StatusBadRequest, "Tipo de visita inválido."},
	"address_required":       {http.StatusBadRequest, "La dirección es obligatoria para visitas a domicilio."},
	"mechanic_not_found":     {http.StatusNotFound, "Mecánico no encontrado."},
	"mechanic_not_available": {http.StatusBadRequest, "El mecánico no acepta citas por ahora."},
	"invalid_date":           {http.StatusBadRequest, "Fecha inválida."},
	"date_not_selectable":    {http.StatusBadRequest, "La fecha seleccionada no está disponible."},
	"time_not_available":     {http.StatusBadRequest, "El horario seleccionado no está disponible."},
	"too_soon":               {http.StatusBadRequest, "El horario seleccionado ya pasó."},
	"time_conflict":          {http.StatusConflict, "Ese horario acaba de ser reservado."},
	"appointment_not_found":  {http.StatusNotFound, "Cita no encontrada."},
	"invalid_state":          {http.StatusBadRequest, "La cita ya no puede modificarse."},

	// workshops
	"workshop_not_found": {http.StatusNotFound, "Taller no encontrado."},
	"review_exists":      {http.StatusConflict, "Ya calificaste este taller."},

	// admin
	"invalid_role":          {http.StatusBadRequest, "Rol inválido."},
	"invalid_status":        {http.StatusBadRequest, "Estado inválido."},
	"certificate_not_found": {http.StatusNotFound, "Certificado no encontrado."},
	"cannot_modify_self":    {http.StatusBadRequest, "No puedes modificar tu propia cuenta."},

	// payments
	"payments_disabled":      {http.StatusServiceUnavailable, "Los pagos no están configurados."},
	"nothing_to_pay":         {http.StatusBadRequest, "No tienes comisiones pendientes."},
	"payment_not_found":      {http.StatusNotFound, "Pago no encontrado."},
	"payment_not_completed":  {http.StatusPaymentRequired, "El pago aún no fue aprobado."},
	"payment_provider_error": {http.StatusBadGateway, "El proveedor de pagos no respondió."},
}

// writeError answers a use case error: field errors as 400, business codes
// by table, anything else as a logged 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var verr *account.ValidationError
	if errors.As(err, &verr) {
		httperr.ValidationFailed(c, fv.MsgBadRequest, verr.Fields)
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		if m, known := businessErrors[code]; known {
			httperr.Write(c, m.status, code, m.message)
			return
		}
		httperr.BadRequest(c, code, fv.MsgBadRequest)
		return
	}

	log.Error("request failed",
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", fv.MsgServerError)
}
