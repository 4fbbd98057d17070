package rating

import (
	"fmt"
	"math"

	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

const (
	Min = 1
	Max = 5
)

// Aggregate is the derived (average, count) pair stored on providers and
// services. It is always recomputed from the full review set.
type Aggregate struct {
	Average float64 `json:"average_rating"`
	Total   int     `json:"total_reviews"`
}

// Compute returns round(mean, 2) and the count, or 0/0 for no ratings.
func Compute(ratings []int) Aggregate {
	if len(ratings) == 0 {
		return Aggregate{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return Aggregate{
		Average: Round2(float64(sum) / float64(len(ratings))),
		Total:   len(ratings),
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func Validate(r int) error {
	if r < Min || r > Max {
		return httperr.ErrValidation(
			"invalid_rating",
			fmt.Sprintf("rating must be between %d and %d", Min, Max),
		)
	}
	return nil
}
