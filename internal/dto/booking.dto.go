package dto

import "github.com/BruksfildServices01/event-marketplace/internal/models"

type BookingStatusDTO struct {
	Booking *models.Booking `json:"booking"`
	Event   *models.Event   `json:"event,omitempty"`
	Changed bool            `json:"changed"`
}
