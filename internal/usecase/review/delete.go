package review

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// DeleteReview is the admin moderation path. The removed review is returned.
type DeleteReview struct {
	repo  store.Repository
	agg   Aggregator
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewDeleteReview(
	repo store.Repository,
	agg Aggregator,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteReview {
	return &DeleteReview{
		repo:  repo,
		agg:   agg,
		audit: audit,
		log:   log,
	}
}

func (uc *DeleteReview) Execute(
	ctx context.Context,
	reviewID uint,
	a actor.Actor,
) (*models.Review, error) {
	ctx, span := tracer.Start(ctx, "review.Delete")
	defer span.End()

	if !a.IsAdmin() {
		return nil, httperr.ErrUnauthorized("admin_only", "only admins can remove reviews")
	}

	var (
		rev *models.Review
		ref provider.Ref
	)

	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		var err error
		rev, err = tx.GetReview(ctx, reviewID)
		if err != nil {
			return notFound(err, "review_not_found")
		}

		ref, err = revieweeOf(rev)
		if err != nil {
			return err
		}
		return tx.DeleteReview(ctx, rev.ID)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.log.Info("review deleted",
		zap.Uint("review_id", rev.ID),
		zap.Uint("admin_id", a.UserID),
	)

	reaggregate(ctx, uc.agg, uc.log, ref)

	adminID := a.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &rev.ID,
		Metadata: map[string]any{"rating": rev.Rating, "reviewer_id": rev.ReviewerID},
	})

	return rev, nil
}
