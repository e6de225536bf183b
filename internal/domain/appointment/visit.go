package appointment

import (
	"strings"

	"github.com/BruksfildServices01/mechapp/internal/httperr"
)

type VisitType string

const (
	VisitWorkshop VisitType = "taller"
	VisitHome     VisitType = "domicilio"
)

// ParseVisitType accepts the wire values case-insensitively. Empty means
// a visit to the workshop.
func ParseVisitType(s string) (VisitType, error) {
	switch VisitType(strings.ToLower(strings.TrimSpace(s))) {
	case "", VisitWorkshop:
		return VisitWorkshop, nil
	case VisitHome:
		return VisitHome, nil
	default:
		return "", httperr.ErrBusiness("invalid_visit_type")
	}
}

// RequiresAddress is true for home visits.
func (v VisitType) RequiresAddress() bool {
	return v == VisitHome
}
