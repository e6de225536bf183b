package models

import "time"

const (
	CertificatePending  = "pending"
	CertificateApproved = "approved"
	CertificateRejected = "rejected"
)

type Certificate struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MechanicID uint `gorm:"index;not null" json:"mechanic_id"`
	Mechanic   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ObjectKey   string `gorm:"size:255;not null" json:"object_key"`
	ContentType string `gorm:"size:100" json:"content_type"`
	Status      string `gorm:"size:20;default:'pending';index" json:"status"`

	ReviewedBy *uint      `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	Notes      string     `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
