package event

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	bookingdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/event"
	notifdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	notifuc "github.com/BruksfildServices01/event-marketplace/internal/usecase/notification"
)

type DetachResult struct {
	Event     *models.Event
	Cancelled int
}

// DetachOrganizer lets the assigned organizer walk away from an event.
// Open bookings on the event are cancelled and the client is told once.
type DetachOrganizer struct {
	repo     store.Repository
	notifier *notifuc.Notifier
	audit    *audit.Dispatcher
	clock    timezone.Clock
	log      *zap.Logger
}

func NewDetachOrganizer(
	repo store.Repository,
	notifier *notifuc.Notifier,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	log *zap.Logger,
) *DetachOrganizer {
	return &DetachOrganizer{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		clock:    clock,
		log:      log,
	}
}

func (uc *DetachOrganizer) Execute(
	ctx context.Context,
	eventID uint,
	a actor.Actor,
) (*DetachResult, error) {
	var res DetachResult

	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		ev, org, err := assignedEvent(ctx, tx, a, eventID)
		if err != nil {
			return err
		}

		ev.OrganizerID = nil
		next, _ := domain.AfterOrganizerDetach(domain.Status(ev.Status))
		ev.Status = string(next)
		if err := tx.UpdateEvent(ctx, ev); err != nil {
			return err
		}

		bookings, err := tx.ListBookingsByEvent(ctx, ev.ID)
		if err != nil {
			return err
		}

		note := "Organizer disconnected from event on " + uc.clock().Format("2006-01-02")
		for i := range bookings {
			b := &bookings[i]
			st := bookingdomain.Status(b.Status)
			if st != bookingdomain.StatusPending && st != bookingdomain.StatusConfirmed {
				continue
			}
			b.Status = string(bookingdomain.StatusCancelled)
			b.ProviderNotes = bookingdomain.AppendNote(b.ProviderNotes, note)
			if err := tx.UpdateBooking(ctx, b); err != nil {
				return err
			}
			res.Cancelled++
		}

		client, err := tx.GetClient(ctx, ev.ClientID)
		if err != nil {
			uc.log.Warn("event client not found", zap.Uint("event_id", ev.ID), zap.Error(err))
		} else {
			orgName := "Your organizer"
			if org != nil {
				orgName = org.Name
			}
			uc.notifier.Send(ctx, tx, notifuc.Input{
				UserID: client.UserID,
				Title:  "Organizer Removed from Event",
				Message: fmt.Sprintf(
					"%s has removed themselves from your event '%s'. You may need to find a new organizer.",
					orgName, ev.Name,
				),
				Type:          notifdomain.TypeEventUpdate,
				ReferenceID:   &ev.ID,
				ReferenceType: notifdomain.RefEvent,
				RedirectURL:   notifdomain.ClientEventURL(ev.ID),
			})
		}

		res.Event = ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("organizer detached from event",
		zap.Uint("event_id", eventID),
		zap.Int("bookings_cancelled", res.Cancelled),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID(a),
		Action:   "organizer_detached",
		Entity:   "event",
		EntityID: &eventID,
		Metadata: map[string]int{"bookings_cancelled": res.Cancelled},
	})

	return &res, nil
}
