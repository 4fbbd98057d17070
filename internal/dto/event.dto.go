package dto

import "github.com/BruksfildServices01/event-marketplace/internal/models"

type EventStatusDTO struct {
	Event           *models.Event `json:"event"`
	BookingsUpdated int           `json:"bookings_updated"`
	BookingsSkipped int           `json:"bookings_skipped"`
}

type DetachDTO struct {
	Event             *models.Event `json:"event"`
	BookingsCancelled int           `json:"bookings_cancelled"`
}
