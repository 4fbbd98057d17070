package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
)

type DeleteEvent struct {
	repo  store.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewDeleteEvent(
	repo store.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteEvent {
	return &DeleteEvent{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *DeleteEvent) Execute(
	ctx context.Context,
	eventID uint,
	a actor.Actor,
) error {
	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		ev, _, err := ownedEvent(ctx, tx, a, eventID)
		if err != nil {
			return err
		}

		n, err := tx.CountBookingsByEvent(ctx, ev.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return httperr.ErrConflict(
				"event_has_bookings",
				"Cannot delete event that has existing bookings",
			)
		}

		return tx.DeleteEvent(ctx, ev.ID)
	})
	if err != nil {
		return err
	}

	uc.log.Info("event deleted", zap.Uint("event_id", eventID))

	uc.audit.Dispatch(audit.Event{
		UserID:   userID(a),
		Action:   "event_deleted",
		Entity:   "event",
		EntityID: &eventID,
	})
	return nil
}
