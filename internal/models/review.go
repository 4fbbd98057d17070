package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID *uint `gorm:"uniqueIndex" json:"booking_id"`

	ReviewerID   uint   `gorm:"index;not null" json:"reviewer_id"`
	RevieweeID   uint   `gorm:"index:idx_reviews_reviewee;not null" json:"reviewee_id"`
	RevieweeType string `gorm:"size:20;index:idx_reviews_reviewee;not null" json:"reviewee_type"`

	Rating int    `gorm:"not null" json:"rating"`
	Text   string `gorm:"type:text" json:"text"`

	// Always true today. Kept for a future moderation queue.
	IsApproved bool `gorm:"default:true" json:"is_approved"`
	IsEdited   bool `gorm:"default:false" json:"is_edited"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
