package models

import "time"

// Organizer and Supplier are the two disjoint provider tables. Bookings and
// reviews point at them through (provider_id, provider_type) without a
// foreign key.

type Organizer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BusinessName string `gorm:"size:150;not null" json:"business_name"`
	Description  string `gorm:"type:text" json:"description"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	AverageRating float64 `gorm:"type:decimal(3,2);default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"default:0" json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Supplier struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BusinessName    string `gorm:"size:150;not null" json:"business_name"`
	ServiceCategory string `gorm:"size:100" json:"service_category"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`

	AverageRating float64 `gorm:"type:decimal(3,2);default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"default:0" json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
