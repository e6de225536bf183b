package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mechapp/internal/domain/availability"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

// parseDateInApp reads a YYYY-MM-DD key as midnight in the application timezone.
func parseDateInApp(dateStr string) (time.Time, bool) {
	return availability.ParseDateKey(dateStr, timezone.App())
}

// uintParam answers 400 and returns false when the path param is not an id.
func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(n), true
}

// uintQuery is uintParam for a query string value.
func uintQuery(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parámetro "+name+" inválido.")
		return 0, false
	}
	return uint(n), true
}
