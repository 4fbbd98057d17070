package models

import "time"

// Payout is a recorded withdrawal request. Settlement happens elsewhere.
type Payout struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PayeeUserID uint    `gorm:"index;not null" json:"payee_user_id"`
	Amount      float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status      string  `gorm:"size:20;default:'Pending'" json:"status"`
	Method      string  `gorm:"size:50" json:"method"`
	Notes       string  `gorm:"type:text" json:"notes"`

	ProcessedAt *time.Time `json:"processed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
