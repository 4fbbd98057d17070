package booking

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/event-marketplace/internal/usecase/booking")

// Routing keys published after commit.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// Publisher emits domain events. Failures are logged by the caller and
// never undo a committed change.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type StatusChanged struct {
	BookingID    uint   `json:"booking_id"`
	EventID      *uint  `json:"event_id,omitempty"`
	ProviderID   uint   `json:"provider_id"`
	ProviderType string `json:"provider_type"`
	From         string `json:"from"`
	To           string `json:"to"`
	ActorID      uint   `json:"actor_id"`
}

type Created struct {
	BookingID    uint   `json:"booking_id"`
	EventID      *uint  `json:"event_id,omitempty"`
	ServiceID    *uint  `json:"service_id,omitempty"`
	ClientID     *uint  `json:"client_id,omitempty"`
	ProviderID   uint   `json:"provider_id"`
	ProviderType string `json:"provider_type"`
}

func notFound(err error, code string) error {
	if store.IsNotFound(err) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// ProviderOf resolves the provider row a booking points at.
func ProviderOf(
	ctx context.Context,
	repo store.Repository,
	b *models.Booking,
) (*provider.Record, error) {
	ref, err := provider.Parse(b.ProviderType, b.ProviderID)
	if err != nil {
		return nil, err
	}
	prov, err := repo.ResolveProvider(ctx, ref)
	if err != nil {
		return nil, notFound(err, "provider_not_found")
	}
	return prov, nil
}

// clientUser returns the user behind the booking's client, if any.
func clientUser(
	ctx context.Context,
	repo store.Repository,
	b *models.Booking,
) (*models.Client, *models.User, error) {
	if b.ClientID == nil {
		return nil, nil, store.ErrNotFound
	}
	client, err := repo.GetClient(ctx, *b.ClientID)
	if err != nil {
		return nil, nil, err
	}
	user, err := repo.GetUser(ctx, client.UserID)
	if err != nil {
		return client, nil, err
	}
	return client, user, nil
}

func userID(a actor.Actor) *uint {
	id := a.UserID
	return &id
}
