package booking

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	eventdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/event"
	notifdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	notifuc "github.com/BruksfildServices01/event-marketplace/internal/usecase/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Actor       actor.Actor
	ClientID    uint     `validate:"required"`
	ServiceID   uint     `validate:"required"`
	EventID     uint     `validate:"required"`
	QuoteAmount *float64 `validate:"omitempty,gt=0"`
	Notes       string   `validate:"max=1000"`
}

// ======================================================
// USECASE
// ======================================================

type CreateBooking struct {
	repo     store.Repository
	notifier *notifuc.Notifier
	audit    *audit.Dispatcher
	pub      Publisher
	clock    timezone.Clock
	log      *zap.Logger
}

func NewCreateBooking(
	repo store.Repository,
	notifier *notifuc.Notifier,
	audit *audit.Dispatcher,
	pub Publisher,
	clock timezone.Clock,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		pub:      pub,
		clock:    clock,
		log:      log,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Create")
	defer span.End()

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	var b *models.Booking

	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		// -------------------------------
		// Client
		// -------------------------------
		client, err := tx.GetClient(ctx, in.ClientID)
		if err != nil {
			return notFound(err, "client_not_found")
		}
		if !in.Actor.IsAdmin() && client.UserID != in.Actor.UserID {
			return httperr.ErrUnauthorized("client_not_owned")
		}

		// -------------------------------
		// Service + provider
		// -------------------------------
		svc, err := tx.GetService(ctx, in.ServiceID)
		if err != nil {
			return notFound(err, "service_not_found")
		}
		if !svc.IsActive || !svc.IsApproved {
			return httperr.ErrNotFound("service_not_available", "service is not active or not approved")
		}

		ref, err := provider.Parse(svc.ProviderType, svc.ProviderID)
		if err != nil {
			return err
		}
		prov, err := tx.ResolveProvider(ctx, ref)
		if err != nil {
			return notFound(err, "provider_not_found")
		}
		if !prov.Active {
			return httperr.ErrNotFound("provider_inactive")
		}

		// -------------------------------
		// Event
		// -------------------------------
		ev, err := tx.GetEventForUpdate(ctx, in.EventID)
		if err != nil {
			return notFound(err, "event_not_found")
		}
		if ev.ClientID != client.ID {
			return httperr.ErrNotFound("event_not_found")
		}
		if err := eventdomain.CanEdit(eventdomain.Status(ev.Status)); err != nil {
			return err
		}

		// -------------------------------
		// Duplicate check
		// -------------------------------
		if _, err := tx.FindBooking(ctx, svc.ID, client.ID, ev.ID); err == nil {
			return errAlreadyBooked
		} else if !store.IsNotFound(err) {
			return err
		}

		quote := svc.Price
		if in.QuoteAmount != nil {
			quote = *in.QuoteAmount
		}

		b = &models.Booking{
			EventID:      &ev.ID,
			ServiceID:    &svc.ID,
			ClientID:     &client.ID,
			ProviderID:   ref.ID,
			ProviderType: string(ref.Kind),
			BookingDate:  uc.clock(),
			EventDate:    ev.Date,
			QuoteAmount:  &quote,
			Status:       string(domain.InitialStatus()),
			ClientNotes:  in.Notes,
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return errAlreadyBooked
			}
			return err
		}

		// -------------------------------
		// Event reacts to an organizer booking
		// -------------------------------
		if ref.Kind == provider.KindOrganizer {
			status, _ := eventdomain.AfterBookingCreated(eventdomain.Status(ev.Status), ref.Kind)
			orgID := ref.ID
			ev.Status = string(status)
			ev.OrganizerID = &orgID
			if err := tx.UpdateEvent(ctx, ev); err != nil {
				return err
			}
		}

		uc.notifyProvider(ctx, tx, b, prov, client)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.log.Info("booking created",
		zap.Uint("booking_id", b.ID),
		zap.Uint("event_id", in.EventID),
		zap.String("provider", b.ProviderType),
		zap.Uint("provider_id", b.ProviderID),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID(in.Actor),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	if uc.pub != nil {
		if err := uc.pub.PublishJSON(ctx, EventBookingCreated, Created{
			BookingID:    b.ID,
			EventID:      b.EventID,
			ServiceID:    b.ServiceID,
			ClientID:     b.ClientID,
			ProviderID:   b.ProviderID,
			ProviderType: b.ProviderType,
		}); err != nil {
			uc.log.Warn("publish booking event failed", zap.Uint("booking_id", b.ID), zap.Error(err))
		}
	}

	return b, nil
}

var errAlreadyBooked = httperr.ErrConflict("booking_exists", "service already booked for this event")

func (uc *CreateBooking) notifyProvider(
	ctx context.Context,
	tx store.Repository,
	b *models.Booking,
	prov *provider.Record,
	client *models.Client,
) {
	name := "A client"
	if user, err := tx.GetUser(ctx, client.UserID); err == nil {
		name = user.FullName()
	}

	title, msg := domain.NewRequestMessage(name)
	uc.notifier.Send(ctx, tx, notifuc.Input{
		UserID:        prov.UserID,
		Title:         title,
		Message:       msg,
		Type:          notifdomain.TypeBooking,
		ReferenceID:   &b.ID,
		ReferenceType: notifdomain.RefBooking,
		RedirectURL:   notifdomain.ProviderBookingURL(prov.Ref.Kind, b.ID),
	})
}
