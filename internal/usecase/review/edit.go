package review

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	"github.com/BruksfildServices01/event-marketplace/internal/validators"
)

type EditInput struct {
	ReviewID uint `validate:"required"`
	Actor    actor.Actor
	Rating   int    `validate:"required"`
	Text     string `validate:"required,max=2000"`
}

type EditReview struct {
	repo  store.Repository
	agg   Aggregator
	audit *audit.Dispatcher
	clock timezone.Clock
	log   *zap.Logger
}

func NewEditReview(
	repo store.Repository,
	agg Aggregator,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	log *zap.Logger,
) *EditReview {
	return &EditReview{
		repo:  repo,
		agg:   agg,
		audit: audit,
		clock: clock,
		log:   log,
	}
}

func (uc *EditReview) Execute(
	ctx context.Context,
	in EditInput,
) (*models.Review, error) {
	ctx, span := tracer.Start(ctx, "review.Edit")
	defer span.End()

	if err := rating.Validate(in.Rating); err != nil {
		return nil, err
	}
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	var (
		rev *models.Review
		ref provider.Ref
	)

	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		var err error
		rev, err = tx.GetReview(ctx, in.ReviewID)
		if err != nil {
			return notFound(err, "review_not_found")
		}
		if rev.ReviewerID != in.Actor.UserID {
			return httperr.ErrUnauthorized("review_not_owned", "only the author can edit a review")
		}

		ref, err = revieweeOf(rev)
		if err != nil {
			return err
		}

		rev.Rating = in.Rating
		rev.Text = in.Text
		rev.IsEdited = true
		rev.UpdatedAt = uc.clock()
		return tx.UpdateReview(ctx, rev)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.log.Info("review edited", zap.Uint("review_id", rev.ID), zap.Int("rating", rev.Rating))

	reaggregate(ctx, uc.agg, uc.log, ref)

	uc.audit.Dispatch(audit.Event{
		UserID:   &rev.ReviewerID,
		Action:   "review_edited",
		Entity:   "review",
		EntityID: &rev.ID,
	})

	return rev, nil
}
