package models

import "time"

type Workshop struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MechanicID uint `gorm:"uniqueIndex;not null" json:"mechanic_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Address     string `gorm:"size:255" json:"address"`
	Schedule    string `gorm:"size:255" json:"schedule"`
	Phone       string `gorm:"size:20" json:"phone"`
	Description string `gorm:"size:500" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
