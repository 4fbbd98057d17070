package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/validators"
)

type FinalAmountInput struct {
	BookingID uint    `validate:"required"`
	Amount    float64 `validate:"gt=0"`
	Actor     actor.Actor
}

// SetFinalAmount records the settled price. Only completed bookings carry one.
type SetFinalAmount struct {
	repo  store.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewSetFinalAmount(
	repo store.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *SetFinalAmount {
	return &SetFinalAmount{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *SetFinalAmount) Execute(
	ctx context.Context,
	in FinalAmountInput,
) (*models.Booking, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	var b *models.Booking
	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		var err error
		b, err = tx.GetBookingForUpdate(ctx, in.BookingID)
		if err != nil {
			return notFound(err, "booking_not_found")
		}

		prov, err := ProviderOf(ctx, tx, b)
		if err != nil {
			return err
		}
		if !in.Actor.IsAdmin() && !prov.OwnedBy(in.Actor) {
			return httperr.ErrUnauthorized("booking_not_owned")
		}

		if domain.Status(b.Status) != domain.StatusCompleted {
			return httperr.ErrInvalidTransition(
				"booking_not_completed",
				"final amount can only be set on a completed booking",
			)
		}

		amount := in.Amount
		b.FinalAmount = &amount
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("booking final amount set",
		zap.Uint("booking_id", b.ID),
		zap.Float64("amount", in.Amount),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID(in.Actor),
		Action:   "booking_final_amount_set",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]float64{"amount": in.Amount},
	})

	return b, nil
}
