package mechapi

import "time"

type Workshop struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Schedule string `json:"schedule,omitempty"`
}

type Mechanic struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Workshop *Workshop `json:"workshop"`
}

type Review struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type WorkshopDetail struct {
	Workshop
	Phone         string   `json:"phone"`
	Description   string   `json:"description"`
	MechanicID    uint     `json:"mechanicId"`
	MechanicName  string   `json:"mechanicName"`
	AverageRating float64  `json:"averageRating"`
	Reviews       []Review `json:"reviews"`
}

type Profile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Validated bool      `json:"validated"`
	Workshop  *Workshop `json:"workshop,omitempty"`
}

type CreateAppointmentRequest struct {
	MechanicID   uint      `json:"mechanicId"`
	Service      string    `json:"service"`
	VisitType    string    `json:"visitType"`
	ScheduledFor time.Time `json:"scheduledFor"`
	Notes        string    `json:"notes"`
	Address      string    `json:"address"`
}

type Appointment struct {
	ID           uint      `json:"id"`
	MechanicID   uint      `json:"mechanicId"`
	ClientID     uint      `json:"clientId"`
	Service      string    `json:"service"`
	VisitType    string    `json:"visitType"`
	ScheduledFor time.Time `json:"scheduledFor"`
	Address      string    `json:"address"`
	Notes        string    `json:"notes"`
	Status       string    `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Upload is a file sent inside a multipart request.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

type RegisterRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	AccountType     string
	Terms           bool
	Certificate     *Upload
}

type unavailableDaysResponse struct {
	Dates rawList `json:"dates"`
}

type unavailableSlotsResponse struct {
	Times rawList `json:"times"`
}

type errorResponse struct {
	Code    string              `json:"error_code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields"`
}
