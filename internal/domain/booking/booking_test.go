package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

func TestNormalize(t *testing.T) {
	cases := map[string]Status{
		"confirmed":  StatusConfirmed,
		"CANCELLED":  StatusCancelled,
		" rejected ": StatusRejected,
		"Completed":  StatusCompleted,
		"pEnDiNg":    StatusPending,
	}
	for in, want := range cases {
		got, err := Normalize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", "done", "confirm"} {
		_, err := Normalize(bad)
		assert.True(t, httperr.Is(err, httperr.KindInvalidStatus), bad)
	}
}

func TestCanTransitionProvider(t *testing.T) {
	ok := [][2]Status{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusConfirmed},
		{StatusCompleted, StatusCompleted},
	}
	for _, tc := range ok {
		assert.NoError(t, CanTransition(tc[0], tc[1], SideProvider), "%s -> %s", tc[0], tc[1])
	}

	bad := [][2]Status{
		{StatusPending, StatusCompleted},
		{StatusConfirmed, StatusRejected},
		{StatusConfirmed, StatusPending},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusConfirmed},
		{StatusRejected, StatusPending},
	}
	for _, tc := range bad {
		err := CanTransition(tc[0], tc[1], SideProvider)
		assert.True(t, httperr.Is(err, httperr.KindInvalidTransition), "%s -> %s", tc[0], tc[1])
	}
}

func TestCanTransitionClient(t *testing.T) {
	assert.NoError(t, CanTransition(StatusPending, StatusCancelled, SideClient))
	assert.NoError(t, CanTransition(StatusConfirmed, StatusCancelled, SideClient))

	err := CanTransition(StatusPending, StatusConfirmed, SideClient)
	assert.True(t, httperr.Is(err, httperr.KindInvalidTransition))

	err = CanTransition(StatusCompleted, StatusCancelled, SideClient)
	assert.True(t, httperr.Is(err, httperr.KindInvalidTransition))
}

func TestCanTransitionAdmin(t *testing.T) {
	assert.NoError(t, CanTransition(StatusCompleted, StatusPending, SideAdmin))
	assert.NoError(t, CanTransition(StatusRejected, StatusConfirmed, SideAdmin))

	err := CanTransition(StatusPending, StatusCompleted, SideAdmin)
	assert.True(t, httperr.Is(err, httperr.KindInvalidTransition))
}

func TestNotes(t *testing.T) {
	at := time.Date(2026, 3, 4, 15, 6, 7, 0, time.UTC)
	line := StatusNote(StatusConfirmed, at)
	assert.Equal(t, "Status updated to Confirmed on 2026-03-04 15:06:07", line)

	assert.Equal(t, line, AppendNote("", line))
	assert.Equal(t, "first\n"+line, AppendNote("first", line))
	assert.Equal(t, "first", AppendNote("first", "  "))
}

func TestClientMessage(t *testing.T) {
	title, msg := ClientMessage(StatusRejected, "Acme Events")
	assert.Equal(t, "Booking Rejected", title)
	assert.Equal(t, "Acme Events has declined your booking request", msg)

	title, msg = ClientMessage(StatusPending, "Acme Events")
	assert.Equal(t, "Booking Status Updated", title)
	assert.Equal(t, "Your booking status with Acme Events has been updated to Pending", msg)
}
