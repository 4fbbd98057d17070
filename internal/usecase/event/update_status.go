package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	bookingdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/event"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	bookinguc "github.com/BruksfildServices01/event-marketplace/internal/usecase/booking"
)

type StatusResult struct {
	Event   *models.Event
	Updated int
	Skipped int
}

// UpdateEventStatus is the organizer's switch for an assigned event. The
// organizer's own bookings on the event follow it where the booking table
// allows; the rest are left untouched.
type UpdateEventStatus struct {
	repo       store.Repository
	transition *bookinguc.TransitionBooking
	audit      *audit.Dispatcher
	log        *zap.Logger
}

func NewUpdateEventStatus(
	repo store.Repository,
	transition *bookinguc.TransitionBooking,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *UpdateEventStatus {
	return &UpdateEventStatus{
		repo:       repo,
		transition: transition,
		audit:      audit,
		log:        log,
	}
}

func (uc *UpdateEventStatus) Execute(
	ctx context.Context,
	eventID uint,
	status string,
	a actor.Actor,
) (*StatusResult, error) {
	next, err := domain.Normalize(status)
	if err != nil {
		return nil, err
	}

	var res StatusResult

	err = uc.repo.Transaction(ctx, func(tx store.Repository) error {
		ev, org, err := assignedEvent(ctx, tx, a, eventID)
		if err != nil {
			return err
		}

		ev.Status = string(next)
		if err := tx.UpdateEvent(ctx, ev); err != nil {
			return err
		}
		res.Event = ev

		bs, ok := domain.BookingStatusFor(next)
		if !ok || org == nil {
			return nil
		}

		bookings, err := tx.ListBookingsByEvent(ctx, ev.ID)
		if err != nil {
			return err
		}

		for i := range bookings {
			b := &bookings[i]
			if b.ProviderType != string(provider.KindOrganizer) || b.ProviderID != org.Ref.ID {
				continue
			}
			if bookingdomain.Status(b.Status) == bs {
				continue
			}
			changed, err := uc.transition.ApplyInTx(ctx, tx, b, org, bs, bookingdomain.SideProvider, "")
			if err != nil {
				if httperr.Is(err, httperr.KindInvalidTransition) {
					res.Skipped++
					continue
				}
				return err
			}
			if changed {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("event status updated",
		zap.Uint("event_id", eventID),
		zap.String("status", string(next)),
		zap.Int("bookings_updated", res.Updated),
		zap.Int("bookings_skipped", res.Skipped),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID(a),
		Action:   "event_status_" + string(next),
		Entity:   "event",
		EntityID: &eventID,
	})

	return &res, nil
}
