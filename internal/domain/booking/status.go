package booking

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

var statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

func InitialStatus() Status {
	return StatusPending
}

// Capitalize returns s with the first letter upper cased and the rest lower.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Normalize turns user input like "confirmed" into a canonical Status.
func Normalize(s string) (Status, error) {
	st := Status(Capitalize(s))
	if !st.Valid() {
		return "", httperr.ErrInvalidStatus(
			"invalid_status",
			fmt.Sprintf("unknown booking status %q", s),
		)
	}
	return st, nil
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal statuses only move again through admin tooling.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}
