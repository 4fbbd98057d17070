package booking

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
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
// INPUT / OUTPUT
// ======================================================

type TransitionInput struct {
	BookingID uint   `validate:"required"`
	Status    string `validate:"required"`
	Actor     actor.Actor
	Notes     string `validate:"max=1000"`
}

type TransitionResult struct {
	Booking *models.Booking
	Event   *models.Event
	Changed bool
}

// ======================================================
// USECASE
// ======================================================

type TransitionBooking struct {
	repo     store.Repository
	notifier *notifuc.Notifier
	audit    *audit.Dispatcher
	pub      Publisher
	clock    timezone.Clock
	log      *zap.Logger
}

func NewTransitionBooking(
	repo store.Repository,
	notifier *notifuc.Notifier,
	audit *audit.Dispatcher,
	pub Publisher,
	clock timezone.Clock,
	log *zap.Logger,
) *TransitionBooking {
	return &TransitionBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		pub:      pub,
		clock:    clock,
		log:      log,
	}
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	in TransitionInput,
) (*TransitionResult, error) {
	ctx, span := tracer.Start(ctx, "booking.Transition")
	defer span.End()
	span.SetAttributes(attribute.Int64("booking.id", int64(in.BookingID)))

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	next, err := domain.Normalize(in.Status)
	if err != nil {
		return nil, err
	}

	var (
		res  TransitionResult
		prev domain.Status
	)

	err = uc.repo.Transaction(ctx, func(tx store.Repository) error {
		// Lock first, validate against what the lock returned.
		b, err := tx.GetBookingForUpdate(ctx, in.BookingID)
		if err != nil {
			return notFound(err, "booking_not_found")
		}

		prov, err := ProviderOf(ctx, tx, b)
		if err != nil {
			return err
		}

		side, err := uc.sideOf(ctx, tx, in.Actor, b, prov)
		if err != nil {
			return err
		}
		if side == domain.SideProvider && !prov.Active {
			return httperr.ErrNotFound("provider_not_found", "provider is not active")
		}

		prev = domain.Status(b.Status)
		changed, err := uc.ApplyInTx(ctx, tx, b, prov, next, side, in.Notes)
		if err != nil {
			return err
		}

		res.Booking = b
		res.Changed = changed

		// A repeated status only refreshes notes.
		if b.EventID != nil && changed {
			ev, err := uc.cascade(ctx, tx, *b.EventID, next)
			if err != nil {
				return err
			}
			res.Event = ev
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.log.Info("booking status updated",
		zap.Uint("booking_id", res.Booking.ID),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
		zap.Uint("actor_id", in.Actor.UserID),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID(in.Actor),
		Action:   "booking_status_" + string(next),
		Entity:   "booking",
		EntityID: &res.Booking.ID,
		Metadata: map[string]string{"from": string(prev), "to": string(next)},
	})

	if res.Changed {
		uc.publish(ctx, StatusChanged{
			BookingID:    res.Booking.ID,
			EventID:      res.Booking.EventID,
			ProviderID:   res.Booking.ProviderID,
			ProviderType: res.Booking.ProviderType,
			From:         string(prev),
			To:           string(next),
			ActorID:      in.Actor.UserID,
		})
	}

	return &res, nil
}

// ApplyInTx writes the new status and note onto b and notifies the other
// party when the status actually changed. It does not touch the event.
func (uc *TransitionBooking) ApplyInTx(
	ctx context.Context,
	tx store.Repository,
	b *models.Booking,
	prov *provider.Record,
	next domain.Status,
	side domain.Side,
	notes string,
) (bool, error) {
	prev := domain.Status(b.Status)
	if err := domain.CanTransition(prev, next, side); err != nil {
		return false, err
	}

	b.Status = string(next)
	b.ProviderNotes = domain.AppendNote(b.ProviderNotes, domain.StatusNote(next, uc.clock()))
	b.ProviderNotes = domain.AppendNote(b.ProviderNotes, notes)

	if err := tx.UpdateBooking(ctx, b); err != nil {
		return false, err
	}

	if prev == next {
		return false, nil
	}

	uc.notifyCounterparty(ctx, tx, b, prov, next, side)
	return true, nil
}

func (uc *TransitionBooking) sideOf(
	ctx context.Context,
	tx store.Repository,
	a actor.Actor,
	b *models.Booking,
	prov *provider.Record,
) (domain.Side, error) {
	if a.IsAdmin() {
		return domain.SideAdmin, nil
	}
	if prov.OwnedBy(a) {
		return domain.SideProvider, nil
	}
	if a.Role == actor.RoleClient && b.ClientID != nil {
		client, err := tx.GetClient(ctx, *b.ClientID)
		if err != nil && !store.IsNotFound(err) {
			return 0, err
		}
		if client != nil && client.UserID == a.UserID {
			return domain.SideClient, nil
		}
	}
	return 0, httperr.ErrUnauthorized("booking_not_owned", "actor does not own this booking")
}

func (uc *TransitionBooking) cascade(
	ctx context.Context,
	tx store.Repository,
	eventID uint,
	next domain.Status,
) (*models.Event, error) {
	ev, err := tx.GetEventForUpdate(ctx, eventID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	status, changed := eventdomain.AfterBookingTransition(eventdomain.Status(ev.Status), next)
	if !changed {
		return ev, nil
	}

	ev.Status = string(status)
	if err := tx.UpdateEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (uc *TransitionBooking) notifyCounterparty(
	ctx context.Context,
	tx store.Repository,
	b *models.Booking,
	prov *provider.Record,
	next domain.Status,
	side domain.Side,
) {
	client, user, err := clientUser(ctx, tx, b)

	if side == domain.SideClient {
		name := "Client"
		if user != nil {
			name = user.FullName()
		}
		title, msg := domain.ProviderMessage(next, name)
		uc.notifier.Send(ctx, tx, notifuc.Input{
			UserID:        prov.UserID,
			Title:         title,
			Message:       msg,
			Type:          notifdomain.TypeBooking,
			ReferenceID:   &b.ID,
			ReferenceType: notifdomain.RefBooking,
			RedirectURL:   notifdomain.ProviderBookingURL(prov.Ref.Kind, b.ID),
		})
		return
	}

	if client == nil {
		uc.log.Warn("booking has no client to notify",
			zap.Uint("booking_id", b.ID),
			zap.Error(err),
		)
		return
	}

	title, msg := domain.ClientMessage(next, prov.Name)
	uc.notifier.Send(ctx, tx, notifuc.Input{
		UserID:        client.UserID,
		Title:         title,
		Message:       msg,
		Type:          notifdomain.TypeBooking,
		ReferenceID:   &b.ID,
		ReferenceType: notifdomain.RefBooking,
		RedirectURL:   notifdomain.ClientBookingsURL,
	})
}

func (uc *TransitionBooking) publish(ctx context.Context, ev StatusChanged) {
	if uc.pub == nil {
		return
	}
	if err := uc.pub.PublishJSON(ctx, EventBookingStatusChanged, ev); err != nil {
		uc.log.Warn("publish booking event failed",
			zap.Uint("booking_id", ev.BookingID),
			zap.Error(err),
		)
	}
}
