package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.False(t, IsValid(""))
}

func TestStartOfMonth(t *testing.T) {
	at := time.Date(2026, 5, 17, 13, 4, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(at))
}

func TestFixed(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, at, Fixed(at)())
}
