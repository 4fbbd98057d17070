package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID   uint   `gorm:"index:idx_services_provider;not null" json:"provider_id"`
	ProviderType string `gorm:"size:20;index:idx_services_provider;not null" json:"provider_type"`

	Name        string  `gorm:"size:150;not null" json:"name"`
	Category    string  `gorm:"size:100" json:"category"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(12,2)" json:"price"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	IsApproved  bool    `gorm:"default:false" json:"is_approved"`

	AverageRating float64 `gorm:"type:decimal(3,2);default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"default:0" json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
