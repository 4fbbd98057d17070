package rating

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/event-marketplace/internal/usecase/rating")

// RecomputeRating rebuilds the aggregate of one provider and of each of its
// services from the approved reviews. Running it twice, or concurrently,
// converges on the same numbers.
type RecomputeRating struct {
	repo store.Repository
	log  *zap.Logger
}

func NewRecomputeRating(
	repo store.Repository,
	log *zap.Logger,
) *RecomputeRating {
	return &RecomputeRating{
		repo: repo,
		log:  log,
	}
}

func (uc *RecomputeRating) Execute(
	ctx context.Context,
	ref provider.Ref,
) (domain.Aggregate, error) {
	ctx, span := tracer.Start(ctx, "rating.Recompute")
	defer span.End()
	span.SetAttributes(
		attribute.String("provider.type", string(ref.Kind)),
		attribute.Int64("provider.id", int64(ref.ID)),
	)

	var agg domain.Aggregate

	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		// The row lock orders concurrent recomputes, so the last writer has
		// read every committed review.
		if _, err := tx.ResolveProviderForUpdate(ctx, ref); err != nil {
			if store.IsNotFound(err) {
				return httperr.ErrNotFound("provider_not_found")
			}
			return err
		}

		ratings, err := tx.ApprovedRatingsForProvider(ctx, ref)
		if err != nil {
			return fmt.Errorf("load provider ratings: %w", err)
		}
		agg = domain.Compute(ratings)

		if err := tx.SaveProviderRating(ctx, ref, agg); err != nil {
			return fmt.Errorf("save provider rating: %w", err)
		}

		serviceIDs, err := tx.ListServiceIDsByProvider(ctx, ref)
		if err != nil {
			return fmt.Errorf("list provider services: %w", err)
		}

		for _, id := range serviceIDs {
			ratings, err := tx.ApprovedRatingsForService(ctx, id)
			if err != nil {
				return fmt.Errorf("load service %d ratings: %w", id, err)
			}
			if err := tx.SaveServiceRating(ctx, id, domain.Compute(ratings)); err != nil {
				return fmt.Errorf("save service %d rating: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return domain.Aggregate{}, err
	}

	uc.log.Debug("provider rating recomputed",
		zap.Stringer("provider", ref),
		zap.Float64("average", agg.Average),
		zap.Int("total", agg.Total),
	)

	return agg, nil
}
