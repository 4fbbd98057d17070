package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

type sample struct {
	BookingID uint   `validate:"required"`
	Rating    int    `validate:"min=1,max=5"`
	Text      string `validate:"max=10"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{BookingID: 1, Rating: 5}))

	err := Struct(sample{BookingID: 1, Rating: 9})
	assert.True(t, httperr.Is(err, httperr.KindValidation))
	assert.True(t, httperr.IsBusiness(err, "rating_max"))

	err = Struct(sample{Rating: 3})
	assert.True(t, httperr.IsBusiness(err, "booking_id_required"))
}
