package event

import (
	"context"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

func notFound(err error, code string) error {
	if store.IsNotFound(err) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// ownedEvent loads and locks an event that must belong to a's client profile.
func ownedEvent(
	ctx context.Context,
	tx store.Repository,
	a actor.Actor,
	eventID uint,
) (*models.Event, *models.Client, error) {
	ev, err := tx.GetEventForUpdate(ctx, eventID)
	if err != nil {
		return nil, nil, notFound(err, "event_not_found")
	}

	client, err := tx.GetClientByUser(ctx, a.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil, httperr.ErrUnauthorized("event_not_owned")
		}
		return nil, nil, err
	}
	if ev.ClientID != client.ID {
		return nil, nil, httperr.ErrUnauthorized("event_not_owned")
	}
	return ev, client, nil
}

// assignedEvent loads and locks an event that must be assigned to a's
// organizer profile. Admins pass without a profile.
func assignedEvent(
	ctx context.Context,
	tx store.Repository,
	a actor.Actor,
	eventID uint,
) (*models.Event, *provider.Record, error) {
	ev, err := tx.GetEventForUpdate(ctx, eventID)
	if err != nil {
		return nil, nil, notFound(err, "event_not_found")
	}

	if a.IsAdmin() {
		if ev.OrganizerID == nil {
			return ev, nil, nil
		}
		org, err := tx.ResolveProvider(ctx, provider.Organizer(*ev.OrganizerID))
		if err != nil && !store.IsNotFound(err) {
			return nil, nil, err
		}
		return ev, org, nil
	}

	org, err := tx.GetProviderByUser(ctx, provider.KindOrganizer, a.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil, httperr.ErrUnauthorized("not_an_organizer")
		}
		return nil, nil, err
	}
	if ev.OrganizerID == nil || *ev.OrganizerID != org.Ref.ID {
		return nil, nil, httperr.ErrUnauthorized("event_not_assigned")
	}
	return ev, org, nil
}

func clientName(ctx context.Context, tx store.Repository, client *models.Client) string {
	if user, err := tx.GetUser(ctx, client.UserID); err == nil {
		return user.FullName()
	}
	return "Your client"
}

func userID(a actor.Actor) *uint {
	id := a.UserID
	return &id
}
