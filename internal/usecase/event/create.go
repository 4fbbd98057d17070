package event

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/event"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/validators"
)

type CreateInput struct {
	Actor       actor.Actor
	Name        string    `validate:"required,max=150"`
	Type        string    `validate:"max=50"`
	Description string    `validate:"max=4000"`
	Date        time.Time `validate:"required"`
	Budget      *float64  `validate:"omitempty,gte=0"`
	GuestCount  *int      `validate:"omitempty,gte=0"`
	Location    string    `validate:"max=255"`
}

type CreateEvent struct {
	repo  store.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateEvent(
	repo store.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateEvent {
	return &CreateEvent{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *CreateEvent) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Event, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	client, err := uc.repo.GetClientByUser(ctx, in.Actor.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, httperr.ErrUnauthorized("client_profile_required")
		}
		return nil, err
	}

	ev := &models.Event{
		ClientID:    client.ID,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Date:        in.Date,
		Budget:      in.Budget,
		GuestCount:  in.GuestCount,
		Location:    in.Location,
		Status:      string(domain.InitialStatus()),
	}
	if err := uc.repo.CreateEvent(ctx, ev); err != nil {
		return nil, err
	}

	uc.log.Info("event created", zap.Uint("event_id", ev.ID), zap.Uint("client_id", client.ID))

	uc.audit.Dispatch(audit.Event{
		UserID:   userID(in.Actor),
		Action:   "event_created",
		Entity:   "event",
		EntityID: &ev.ID,
	})

	return ev, nil
}
