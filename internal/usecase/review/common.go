package review

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/event-marketplace/internal/usecase/review")

// Aggregator recomputes a provider's rating aggregate.
type Aggregator interface {
	Execute(ctx context.Context, ref provider.Ref) (rating.Aggregate, error)
}

func notFound(err error, code string, msg ...string) error {
	if store.IsNotFound(err) {
		return httperr.ErrNotFound(code, msg...)
	}
	return err
}

func revieweeOf(r *models.Review) (provider.Ref, error) {
	return provider.Parse(r.RevieweeType, r.RevieweeID)
}

// reaggregate runs after the review write has committed. A failure leaves a
// stale aggregate for the repair pass and is only logged.
func reaggregate(
	ctx context.Context,
	agg Aggregator,
	log *zap.Logger,
	ref provider.Ref,
) {
	if _, err := agg.Execute(ctx, ref); err != nil {
		log.Error("rating recompute failed",
			zap.Stringer("provider", ref),
			zap.Error(err),
		)
	}
}
