package review

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	bookingdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/validators"
)

type CreateInput struct {
	BookingID uint `validate:"required"`
	Actor     actor.Actor
	Rating    int    `validate:"required"`
	Text      string `validate:"required,max=2000"`
}

type CreateReview struct {
	repo  store.Repository
	agg   Aggregator
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateReview(
	repo store.Repository,
	agg Aggregator,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateReview {
	return &CreateReview{
		repo:  repo,
		agg:   agg,
		audit: audit,
		log:   log,
	}
}

var errReviewExists = httperr.ErrConflict("review_exists", "this booking has already been reviewed")

func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Review, error) {
	ctx, span := tracer.Start(ctx, "review.Create")
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
		b, err := tx.GetBookingForUpdate(ctx, in.BookingID)
		if err != nil {
			return notFound(err, "booking_not_found")
		}

		client, err := tx.GetClientByUser(ctx, in.Actor.UserID)
		if err != nil && !store.IsNotFound(err) {
			return err
		}
		if client == nil || b.ClientID == nil || *b.ClientID != client.ID {
			return httperr.ErrUnauthorized("booking_not_owned", "only the booking's client can review it")
		}

		if bookingdomain.Status(b.Status) != bookingdomain.StatusCompleted {
			return httperr.ErrNotFound("booking_not_completed", "booking not found or not completed")
		}

		if _, err := tx.GetReviewByBooking(ctx, b.ID); err == nil {
			return errReviewExists
		} else if !store.IsNotFound(err) {
			return err
		}

		ref, err = provider.Parse(b.ProviderType, b.ProviderID)
		if err != nil {
			return err
		}

		rev = &models.Review{
			BookingID:    &b.ID,
			ReviewerID:   in.Actor.UserID,
			RevieweeID:   ref.ID,
			RevieweeType: string(ref.Kind),
			Rating:       in.Rating,
			Text:         in.Text,
			IsApproved:   true,
		}
		if err := tx.CreateReview(ctx, rev); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return errReviewExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.log.Info("review created",
		zap.Uint("review_id", rev.ID),
		zap.Uint("booking_id", in.BookingID),
		zap.Int("rating", rev.Rating),
	)

	reaggregate(ctx, uc.agg, uc.log, ref)

	uc.audit.Dispatch(audit.Event{
		UserID:   &rev.ReviewerID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &rev.ID,
	})

	return rev, nil
}
