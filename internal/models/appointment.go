package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"index" json:"clientId"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	MechanicID uint `gorm:"index" json:"mechanicId"`
	Mechanic   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	WorkshopID *uint `json:"workshopId"`

	Service   string `gorm:"size:100;not null" json:"service"`
	VisitType string `gorm:"size:20;not null" json:"visitType"`

	ScheduledFor time.Time `gorm:"index" json:"scheduledFor"`
	EndsAt       time.Time `json:"endsAt"`

	Address string `gorm:"size:255" json:"address"`
	Notes   string `gorm:"size:255" json:"notes"`
	Status  string `gorm:"size:20;default:'scheduled';index" json:"status"`

	// CommissionPaymentID is set once the platform fee was captured.
	CommissionPaymentID *uint `gorm:"index" json:"commissionPaymentId,omitempty"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
