package models

import "time"

// One review per (workshop, client).
type Review struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WorkshopID uint `gorm:"uniqueIndex:idx_review_workshop_client;not null" json:"workshop_id"`
	ClientID   uint `gorm:"uniqueIndex:idx_review_workshop_client;not null" json:"client_id"`
	Client     User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
