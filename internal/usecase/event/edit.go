package event

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/event"
	notifdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	notifuc "github.com/BruksfildServices01/event-marketplace/internal/usecase/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/validators"
)

// EditInput carries only the fields the client wants to change.
type EditInput struct {
	EventID     uint `validate:"required"`
	Actor       actor.Actor
	Name        *string `validate:"omitempty,min=1,max=150"`
	Type        *string `validate:"omitempty,max=50"`
	Description *string `validate:"omitempty,max=4000"`
	Date        *time.Time
	Budget      *float64 `validate:"omitempty,gte=0"`
	GuestCount  *int     `validate:"omitempty,gte=0"`
	Location    *string  `validate:"omitempty,max=255"`
	Status      *string
}

type EditEvent struct {
	repo     store.Repository
	notifier *notifuc.Notifier
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewEditEvent(
	repo store.Repository,
	notifier *notifuc.Notifier,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *EditEvent {
	return &EditEvent{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		log:      log,
	}
}

func (uc *EditEvent) Execute(
	ctx context.Context,
	in EditInput,
) (*models.Event, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	var ev *models.Event

	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		var (
			client *models.Client
			err    error
		)
		ev, client, err = ownedEvent(ctx, tx, in.Actor, in.EventID)
		if err != nil {
			return err
		}

		current := domain.Status(ev.Status)
		if err := domain.CanEdit(current); err != nil {
			return err
		}

		applyFields(ev, in)

		next, reviewRequired := domain.AfterClientEdit(current)
		if !reviewRequired && in.Status != nil {
			next, err = clientStatus(current, *in.Status)
			if err != nil {
				return err
			}
		}
		ev.Status = string(next)

		if err := tx.UpdateEvent(ctx, ev); err != nil {
			return err
		}

		if reviewRequired && ev.OrganizerID != nil {
			uc.notifyOrganizer(ctx, tx, ev, client)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("event edited", zap.Uint("event_id", ev.ID), zap.String("status", ev.Status))

	uc.audit.Dispatch(audit.Event{
		UserID:   userID(in.Actor),
		Action:   "event_edited",
		Entity:   "event",
		EntityID: &ev.ID,
	})

	return ev, nil
}

func applyFields(ev *models.Event, in EditInput) {
	if in.Name != nil {
		ev.Name = *in.Name
	}
	if in.Type != nil {
		ev.Type = *in.Type
	}
	if in.Description != nil {
		ev.Description = *in.Description
	}
	if in.Date != nil {
		ev.Date = *in.Date
	}
	if in.Budget != nil {
		ev.Budget = in.Budget
	}
	if in.GuestCount != nil {
		ev.GuestCount = in.GuestCount
	}
	if in.Location != nil {
		ev.Location = *in.Location
	}
}

// clientStatus lets a client move a Draft/Planning event between those two.
func clientStatus(current domain.Status, requested string) (domain.Status, error) {
	next, err := domain.Normalize(requested)
	if err != nil {
		return "", err
	}
	if next == current {
		return current, nil
	}
	if !domain.ClientSettable(current) || !domain.ClientSettable(next) {
		return "", httperr.ErrValidation(
			"status_not_settable",
			fmt.Sprintf("clients cannot move an event from %s to %s", current, next),
		)
	}
	return next, nil
}

func (uc *EditEvent) notifyOrganizer(
	ctx context.Context,
	tx store.Repository,
	ev *models.Event,
	client *models.Client,
) {
	org, err := tx.ResolveProvider(ctx, provider.Organizer(*ev.OrganizerID))
	if err != nil {
		uc.log.Warn("assigned organizer not resolvable",
			zap.Uint("event_id", ev.ID),
			zap.Error(err),
		)
		return
	}

	uc.notifier.Send(ctx, tx, notifuc.Input{
		UserID:        org.UserID,
		Title:         "Event Updated - Review Required",
		Message:       fmt.Sprintf("%s has updated the event '%s'. Please review the changes.", clientName(ctx, tx, client), ev.Name),
		Type:          notifdomain.TypeEventUpdate,
		ReferenceID:   &ev.ID,
		ReferenceType: notifdomain.RefEvent,
		RedirectURL:   notifdomain.OrganizerEventURL(ev.ID),
	})
}
