package account

import (
	"github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
)

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields formvalidation.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation_failed"
}
