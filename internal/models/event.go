package models

import "time"

type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID    uint  `gorm:"index;not null" json:"client_id"`
	OrganizerID *uint `gorm:"index" json:"organizer_id"`

	Name        string    `gorm:"size:150;not null" json:"name"`
	Type        string    `gorm:"size:50" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `json:"date"`
	Budget      *float64  `gorm:"type:decimal(12,2)" json:"budget"`
	GuestCount  *int      `json:"guest_count"`
	Location    string    `gorm:"size:255" json:"location"`

	Status string `gorm:"size:20;default:'Draft'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
