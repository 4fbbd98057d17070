package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventID   *uint `gorm:"uniqueIndex:idx_bookings_service_client_event" json:"event_id"`
	ServiceID *uint `gorm:"uniqueIndex:idx_bookings_service_client_event" json:"service_id"`
	ClientID  *uint `gorm:"uniqueIndex:idx_bookings_service_client_event" json:"client_id"`

	ProviderID   uint   `gorm:"index:idx_bookings_provider;not null" json:"provider_id"`
	ProviderType string `gorm:"size:20;index:idx_bookings_provider;not null" json:"provider_type"`

	BookingDate time.Time `json:"booking_date"`
	EventDate   time.Time `json:"event_date"`

	QuoteAmount *float64 `gorm:"type:decimal(12,2)" json:"quote_amount"`
	FinalAmount *float64 `gorm:"type:decimal(12,2)" json:"final_amount"`

	Status string `gorm:"size:20;default:'Pending'" json:"status"`

	ClientNotes   string `gorm:"type:text" json:"client_notes"`
	ProviderNotes string `gorm:"type:text" json:"provider_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Amount is the final amount when set, otherwise the quote.
func (b Booking) Amount() float64 {
	switch {
	case b.FinalAmount != nil:
		return *b.FinalAmount
	case b.QuoteAmount != nil:
		return *b.QuoteAmount
	}
	return 0
}
