package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

func TestCanEdit(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusPlanning, StatusPending, StatusConfirmed} {
		assert.NoError(t, CanEdit(s), s)
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		assert.True(t, httperr.Is(CanEdit(s), httperr.KindEventLocked), s)
	}
}

func TestAfterBookingCreated(t *testing.T) {
	next, ok := AfterBookingCreated(StatusDraft, provider.KindOrganizer)
	assert.True(t, ok)
	assert.Equal(t, StatusPending, next)

	next, ok = AfterBookingCreated(StatusDraft, provider.KindSupplier)
	assert.False(t, ok)
	assert.Equal(t, StatusDraft, next)
}

func TestAfterBookingTransition(t *testing.T) {
	cases := []struct {
		current Status
		bs      booking.Status
		want    Status
		moved   bool
	}{
		{StatusPending, booking.StatusConfirmed, StatusConfirmed, true},
		{StatusPending, booking.StatusRejected, StatusPlanning, true},
		{StatusConfirmed, booking.StatusCancelled, StatusPlanning, true},
		{StatusPlanning, booking.StatusCancelled, StatusPlanning, false},
		{StatusConfirmed, booking.StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, booking.StatusCancelled, StatusCompleted, false},
	}

	for _, tc := range cases {
		got, moved := AfterBookingTransition(tc.current, tc.bs)
		assert.Equal(t, tc.want, got, "%s + %s", tc.current, tc.bs)
		assert.Equal(t, tc.moved, moved, "%s + %s", tc.current, tc.bs)
	}
}

func TestAfterClientEditAndDetach(t *testing.T) {
	next, ok := AfterClientEdit(StatusConfirmed)
	assert.True(t, ok)
	assert.Equal(t, StatusPending, next)

	_, ok = AfterClientEdit(StatusPlanning)
	assert.False(t, ok)

	next, ok = AfterOrganizerDetach(StatusPending)
	assert.True(t, ok)
	assert.Equal(t, StatusPlanning, next)

	next, ok = AfterOrganizerDetach(StatusCompleted)
	assert.False(t, ok)
	assert.Equal(t, StatusCompleted, next)
}

func TestNormalize(t *testing.T) {
	s, err := Normalize("planning")
	assert.NoError(t, err)
	assert.Equal(t, StatusPlanning, s)

	_, err = Normalize("archived")
	assert.True(t, httperr.Is(err, httperr.KindInvalidStatus))
}
