package models

import "time"

type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Title   string `gorm:"size:200;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Type    string `gorm:"size:30;index;not null" json:"type"`

	ReferenceID   *uint   `json:"reference_id"`
	ReferenceType *string `gorm:"size:30" json:"reference_type"`
	RedirectURL   string  `gorm:"size:255" json:"redirect_url"`

	IsRead bool       `gorm:"default:false" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}
