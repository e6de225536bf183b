package models

import "time"

const (
	PaymentCreated  = "created"
	PaymentCaptured = "captured"
	PaymentFailed   = "failed"
)

type CommissionPayment struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MechanicID uint `gorm:"index;not null" json:"mechanic_id"`

	Provider        string  `gorm:"size:20;not null" json:"provider"`
	ProviderOrderID string  `gorm:"size:100;uniqueIndex;not null" json:"provider_order_id"`
	ApprovalURL     string  `gorm:"size:500" json:"approval_url"`
	Reference       string  `gorm:"size:100" json:"reference"`
	Amount          float64 `json:"amount"`
	Currency        string  `gorm:"size:3" json:"currency"`

	// AppointmentIDs is a comma separated list of the appointments covered.
	AppointmentIDs string `gorm:"type:text" json:"appointment_ids"`

	Status     string     `gorm:"size:20;default:'created'" json:"status"`
	CapturedAt *time.Time `json:"captured_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
