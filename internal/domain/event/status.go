package event

import (
	"fmt"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

// ===============================
// Event Status
// ===============================

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPlanning  Status = "Planning"
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var statuses = []Status{
	StatusDraft,
	StatusPlanning,
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

func InitialStatus() Status {
	return StatusDraft
}

func Normalize(s string) (Status, error) {
	st := Status(booking.Capitalize(s))
	for _, v := range statuses {
		if st == v {
			return st, nil
		}
	}
	return "", httperr.ErrInvalidStatus(
		"invalid_event_status",
		fmt.Sprintf("unknown event status %q", s),
	)
}

// Locked events are frozen for their owning client.
func (s Status) Locked() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func CanEdit(current Status) error {
	if current.Locked() {
		return httperr.ErrEventLocked(
			"event_locked",
			fmt.Sprintf("event is %s and can no longer be edited", current),
		)
	}
	return nil
}

// ClientSettable lists the statuses a client may pick while editing.
func ClientSettable(s Status) bool {
	return s == StatusDraft || s == StatusPlanning
}
