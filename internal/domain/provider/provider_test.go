package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

func TestParse(t *testing.T) {
	ref, err := Parse("organizer", 7)
	require.NoError(t, err)
	assert.Equal(t, Organizer(7), ref)
	assert.Equal(t, "Organizer#7", ref.String())

	ref, err = Parse("Supplier", 3)
	require.NoError(t, err)
	assert.Equal(t, Supplier(3), ref)

	_, err = Parse("venue", 1)
	assert.True(t, httperr.Is(err, httperr.KindValidation))
}

func TestRecordOwnedBy(t *testing.T) {
	rec := Record{Ref: Organizer(1), UserID: 10}

	assert.True(t, rec.OwnedBy(actor.Actor{UserID: 10, Role: actor.RoleOrganizer}))
	assert.False(t, rec.OwnedBy(actor.Actor{UserID: 10, Role: actor.RoleSupplier}))
	assert.False(t, rec.OwnedBy(actor.Actor{UserID: 11, Role: actor.RoleOrganizer}))
	assert.False(t, rec.OwnedBy(actor.Actor{UserID: 10, Role: actor.RoleAdmin}))
}
