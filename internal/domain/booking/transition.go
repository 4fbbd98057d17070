package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

// Side identifies which party drives a transition.
type Side int

const (
	SideProvider Side = iota
	SideClient
	SideAdmin
)

var allowed = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ===============================
// Validations
// ===============================

// CanTransition validates from -> to for the given side. Re-applying the
// current status is always accepted so notes can be refreshed.
func CanTransition(from, to Status, side Side) error {
	if !to.Valid() {
		return httperr.ErrInvalidStatus("invalid_status")
	}

	if side == SideClient && to != StatusCancelled {
		return httperr.ErrInvalidTransition(
			"client_can_only_cancel",
			"clients may only cancel a booking",
		)
	}

	if from == to {
		return nil
	}

	if from.Terminal() {
		if side == SideAdmin {
			return nil
		}
		return httperr.ErrInvalidTransition(
			"booking_terminal",
			fmt.Sprintf("booking is already %s", from),
		)
	}

	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}

	return httperr.ErrInvalidTransition(
		"invalid_transition",
		fmt.Sprintf("cannot move booking from %s to %s", from, to),
	)
}

// ===============================
// Notes
// ===============================

const noteLayout = "2006-01-02 15:04:05"

func StatusNote(s Status, at time.Time) string {
	return fmt.Sprintf("Status updated to %s on %s", s, at.Format(noteLayout))
}

// AppendNote adds line to the free-text notes, one entry per line.
func AppendNote(notes, line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}
