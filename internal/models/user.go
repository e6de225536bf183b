package models

import "time"

const (
	RoleClient   = "cliente"
	RoleMechanic = "mecanico"
	RoleAdmin    = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'cliente';index" json:"role"`

	// Validated is set for mechanics once an admin approves a certificate.
	Validated bool `gorm:"default:false" json:"validated"`
	Active    bool `gorm:"default:true" json:"active"`

	Workshop *Workshop `gorm:"foreignKey:MechanicID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"workshop,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsMechanic() bool { return u.Role == RoleMechanic }
