package event

import (
	"github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
)

// The functions below return the next event status and whether it differs
// from the current one.

// AfterBookingCreated reacts to a client booking a service.
func AfterBookingCreated(current Status, kind provider.Kind) (Status, bool) {
	if kind != provider.KindOrganizer || current.Locked() {
		return current, false
	}
	return changed(current, StatusPending)
}

// AfterBookingTransition cascades a booking status onto its event.
// Rejected bookings send the event back to Planning, same as Cancelled.
func AfterBookingTransition(current Status, bs booking.Status) (Status, bool) {
	if current.Locked() {
		return current, false
	}

	switch bs {
	case booking.StatusConfirmed:
		return changed(current, StatusConfirmed)
	case booking.StatusCancelled, booking.StatusRejected:
		return changed(current, StatusPlanning)
	}
	return current, false
}

// AfterClientEdit forces the organizer to review changes to an agreed event.
func AfterClientEdit(current Status) (Status, bool) {
	if current == StatusConfirmed {
		return StatusPending, true
	}
	return current, false
}

func AfterOrganizerDetach(current Status) (Status, bool) {
	if current == StatusConfirmed || current == StatusPending {
		return StatusPlanning, true
	}
	return current, false
}

// BookingStatusFor maps an organizer-set event status onto its bookings.
func BookingStatusFor(s Status) (booking.Status, bool) {
	switch s {
	case StatusConfirmed:
		return booking.StatusConfirmed, true
	case StatusCancelled:
		return booking.StatusCancelled, true
	case StatusPending:
		return booking.StatusPending, true
	case StatusCompleted:
		return booking.StatusCompleted, true
	}
	return "", false
}

func changed(current, next Status) (Status, bool) {
	return next, current != next
}
