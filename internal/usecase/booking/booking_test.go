package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	eventdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/event"
	notifdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	notifuc "github.com/BruksfildServices01/event-marketplace/internal/usecase/notification"
)

type recordedEvent struct {
	key     string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{key: key, payload: v})
	return nil
}

type harness struct {
	repo       *memory.Store
	demo       memory.Demo
	pub        *recordingPublisher
	create     *CreateBooking
	transition *TransitionBooking
	final      *SetFinalAmount
	event      models.Event
}

var now = time.Date(2026, 6, 10, 9, 30, 0, 0, time.UTC)

func newHarness(t *testing.T) *harness {
	t.Helper()

	repo := memory.New()
	demo := memory.SeedDemo(repo)
	log := zaptest.NewLogger(t)
	clock := timezone.Fixed(now)
	pub := &recordingPublisher{}
	notifier := notifuc.NewNotifier(repo, nil, nil, clock, log)

	ev := models.Event{
		ClientID: demo.Client.ID,
		Name:     "Summer Wedding",
		Date:     now.AddDate(0, 3, 0),
		Status:   string(eventdomain.StatusDraft),
	}
	require.NoError(t, repo.CreateEvent(context.Background(), &ev))

	return &harness{
		repo:       repo,
		demo:       demo,
		pub:        pub,
		create:     NewCreateBooking(repo, notifier, nil, pub, clock, log),
		transition: NewTransitionBooking(repo, notifier, nil, pub, clock, log),
		final:      NewSetFinalAmount(repo, nil, log),
		event:      ev,
	}
}

func (h *harness) book(t *testing.T, serviceID uint) *models.Booking {
	t.Helper()
	b, err := h.create.Execute(context.Background(), CreateInput{
		Actor:     h.demo.ClientActor(),
		ClientID:  h.demo.Client.ID,
		ServiceID: serviceID,
		EventID:   h.event.ID,
	})
	require.NoError(t, err)
	return b
}

func (h *harness) eventStatus(t *testing.T) string {
	t.Helper()
	ev, err := h.repo.GetEvent(context.Background(), h.event.ID)
	require.NoError(t, err)
	return ev.Status
}

// --------------------------------------------------
// CreateBooking
// --------------------------------------------------

func TestCreateBookingWithOrganizer(t *testing.T) {
	h := newHarness(t)

	b := h.book(t, h.demo.OrganizerService.ID)

	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, h.demo.Organizer.ID, b.ProviderID)
	assert.Equal(t, "Organizer", b.ProviderType)
	require.NotNil(t, b.QuoteAmount)
	assert.Equal(t, 1500.0, *b.QuoteAmount)
	assert.Equal(t, h.event.Date, b.EventDate)

	ev, err := h.repo.GetEvent(context.Background(), h.event.ID)
	require.NoError(t, err)
	assert.Equal(t, string(eventdomain.StatusPending), ev.Status)
	require.NotNil(t, ev.OrganizerID)
	assert.Equal(t, h.demo.Organizer.ID, *ev.OrganizerID)

	notes := h.repo.NotificationsFor(h.demo.OrganizerUser.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "New Booking Request", notes[0].Title)
	assert.Equal(t, "Ana Silva has sent you a booking request", notes[0].Message)
	assert.Equal(t, fmt.Sprintf("/organizer/bookings/details/%d", b.ID), notes[0].RedirectURL)

	require.Len(t, h.pub.events, 1)
	assert.Equal(t, EventBookingCreated, h.pub.events[0].key)
}

func TestCreateBookingWithSupplierLeavesEventAlone(t *testing.T) {
	h := newHarness(t)

	quote := 650.0
	b, err := h.create.Execute(context.Background(), CreateInput{
		Actor:       h.demo.ClientActor(),
		ClientID:    h.demo.Client.ID,
		ServiceID:   h.demo.SupplierService.ID,
		EventID:     h.event.ID,
		QuoteAmount: &quote,
	})
	require.NoError(t, err)
	assert.Equal(t, 650.0, *b.QuoteAmount)

	assert.Equal(t, string(eventdomain.StatusDraft), h.eventStatus(t))
	assert.Len(t, h.repo.NotificationsFor(h.demo.SupplierUser.ID), 1)
}

func TestCreateBookingRejectsDuplicate(t *testing.T) {
	h := newHarness(t)
	h.book(t, h.demo.OrganizerService.ID)

	_, err := h.create.Execute(context.Background(), CreateInput{
		Actor:     h.demo.ClientActor(),
		ClientID:  h.demo.Client.ID,
		ServiceID: h.demo.OrganizerService.ID,
		EventID:   h.event.ID,
	})
	assert.True(t, httperr.Is(err, httperr.KindConflict))
}

func TestCreateBookingGuards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	hidden := h.repo.AddService(models.Service{
		ProviderID: h.demo.Supplier.ID, ProviderType: "Supplier",
		Name: "Draft offer", Price: 10, IsActive: true, IsApproved: false,
	})
	_, err := h.create.Execute(ctx, CreateInput{
		Actor: h.demo.ClientActor(), ClientID: h.demo.Client.ID,
		ServiceID: hidden.ID, EventID: h.event.ID,
	})
	assert.True(t, httperr.Is(err, httperr.KindNotFound), "unapproved service")

	other := h.repo.AddClient(models.Client{UserID: h.demo.SupplierUser.ID})
	_, err = h.create.Execute(ctx, CreateInput{
		Actor: h.demo.SupplierActor(), ClientID: other.ID,
		ServiceID: h.demo.OrganizerService.ID, EventID: h.event.ID,
	})
	assert.True(t, httperr.Is(err, httperr.KindNotFound), "event of another client")

	_, err = h.create.Execute(ctx, CreateInput{
		Actor: h.demo.SupplierActor(), ClientID: h.demo.Client.ID,
		ServiceID: h.demo.OrganizerService.ID, EventID: h.event.ID,
	})
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized), "acting for someone else")

	_, err = h.create.Execute(ctx, CreateInput{Actor: h.demo.ClientActor()})
	assert.True(t, httperr.Is(err, httperr.KindValidation))
}

// --------------------------------------------------
// TransitionBooking
// --------------------------------------------------

func TestConfirmByOrganizerCascadesAndNotifiesClient(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, h.demo.OrganizerService.ID)

	res, err := h.transition.Execute(context.Background(), TransitionInput{
		BookingID: b.ID,
		Status:    "confirmed",
		Actor:     h.demo.OrganizerActor(),
	})
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, "Confirmed", res.Booking.Status)
	require.NotNil(t, res.Event)
	assert.Equal(t, "Confirmed", res.Event.Status)
	assert.Equal(t, "Confirmed", h.eventStatus(t))
	assert.Equal(t, "Status updated to Confirmed on 2026-06-10 09:30:00", res.Booking.ProviderNotes)

	notes := h.repo.NotificationsFor(h.demo.ClientUser.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, string(notifdomain.TypeBooking), notes[0].Type)
	assert.Equal(t, "Booking Confirmed", notes[0].Title)
	assert.Equal(t, "Acme Events has confirmed your booking!", notes[0].Message)
	assert.Equal(t, notifdomain.ClientBookingsURL, notes[0].RedirectURL)
}

func TestReapplyingSameStatusDoesNotNotifyAgain(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, h.demo.OrganizerService.ID)
	ctx := context.Background()

	in := TransitionInput{BookingID: b.ID, Status: "Confirmed", Actor: h.demo.OrganizerActor()}
	_, err := h.transition.Execute(ctx, in)
	require.NoError(t, err)

	in.Notes = "venue walkthrough booked"
	res, err := h.transition.Execute(ctx, in)
	require.NoError(t, err)

	assert.False(t, res.Changed)
	assert.Len(t, h.repo.NotificationsFor(h.demo.ClientUser.ID), 1)
	assert.Equal(t, 3, len(strings.Split(res.Booking.ProviderNotes, "\n")))

	statusEvents := 0
	for _, ev := range h.pub.events {
		if ev.key == EventBookingStatusChanged {
			statusEvents++
		}
	}
	assert.Equal(t, 1, statusEvents)
}

func TestReapplyingCancelledLeavesConfirmedEventAlone(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	flowers := h.book(t, h.demo.SupplierService.ID)
	_, err := h.transition.Execute(ctx, TransitionInput{
		BookingID: flowers.ID, Status: "Cancelled", Actor: h.demo.SupplierActor(),
	})
	require.NoError(t, err)

	planning := h.book(t, h.demo.OrganizerService.ID)
	_, err = h.transition.Execute(ctx, TransitionInput{
		BookingID: planning.ID, Status: "Confirmed", Actor: h.demo.OrganizerActor(),
	})
	require.NoError(t, err)
	require.Equal(t, string(eventdomain.StatusConfirmed), h.eventStatus(t))

	res, err := h.transition.Execute(ctx, TransitionInput{
		BookingID: flowers.ID, Status: "Cancelled", Actor: h.demo.SupplierActor(),
	})
	require.NoError(t, err)

	assert.False(t, res.Changed)
	assert.Equal(t, string(eventdomain.StatusConfirmed), h.eventStatus(t))
}

func TestRejectAndCancelReturnEventToPlanning(t *testing.T) {
	for _, status := range []string{"Rejected", "Cancelled"} {
		t.Run(status, func(t *testing.T) {
			h := newHarness(t)
			b := h.book(t, h.demo.OrganizerService.ID)

			_, err := h.transition.Execute(context.Background(), TransitionInput{
				BookingID: b.ID, Status: status, Actor: h.demo.OrganizerActor(),
			})
			require.NoError(t, err)
			assert.Equal(t, string(eventdomain.StatusPlanning), h.eventStatus(t))
		})
	}
}

func TestClientCancelNotifiesProvider(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, h.demo.SupplierService.ID)
	ctx := context.Background()

	_, err := h.transition.Execute(ctx, TransitionInput{
		BookingID: b.ID, Status: "Confirmed", Actor: h.demo.ClientActor(),
	})
	assert.True(t, httperr.Is(err, httperr.KindInvalidTransition))

	res, err := h.transition.Execute(ctx, TransitionInput{
		BookingID: b.ID, Status: "cancelled", Actor: h.demo.ClientActor(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", res.Booking.Status)

	notes := h.repo.NotificationsFor(h.demo.SupplierUser.ID)
	require.Len(t, notes, 2)
	assert.Equal(t, "Your booking with Ana Silva has been cancelled", notes[1].Message)
	assert.Empty(t, h.repo.NotificationsFor(h.demo.ClientUser.ID))
}

func TestTransitionFailures(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, h.demo.OrganizerService.ID)
	ctx := context.Background()

	_, err := h.transition.Execute(ctx, TransitionInput{
		BookingID: 999, Status: "Confirmed", Actor: h.demo.OrganizerActor(),
	})
	assert.True(t, httperr.Is(err, httperr.KindNotFound))

	_, err = h.transition.Execute(ctx, TransitionInput{
		BookingID: b.ID, Status: "Confirmed", Actor: h.demo.SupplierActor(),
	})
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	_, err = h.transition.Execute(ctx, TransitionInput{
		BookingID: b.ID, Status: "approved", Actor: h.demo.OrganizerActor(),
	})
	assert.True(t, httperr.Is(err, httperr.KindInvalidStatus))

	_, err = h.transition.Execute(ctx, TransitionInput{
		BookingID: b.ID, Status: "Completed", Actor: h.demo.OrganizerActor(),
	})
	assert.True(t, httperr.Is(err, httperr.KindInvalidTransition))

	got, err := h.repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", got.Status)
}

func TestInactiveProviderCannotTransition(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	b := h.book(t, h.demo.OrganizerService.ID)

	require.True(t, h.repo.SetProviderActive(provider.Organizer(h.demo.Organizer.ID), false))

	_, err := h.transition.Execute(ctx, TransitionInput{
		BookingID: b.ID, Status: "Confirmed", Actor: h.demo.OrganizerActor(),
	})
	assert.True(t, httperr.IsBusiness(err, "provider_not_found"))

	// The client can still walk away from the booking.
	res, err := h.transition.Execute(ctx, TransitionInput{
		BookingID: b.ID, Status: "Cancelled", Actor: h.demo.ClientActor(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", res.Booking.Status)
}

func TestTerminalStatusOnlyMovesForAdmin(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, h.demo.OrganizerService.ID)
	ctx := context.Background()
	org := h.demo.OrganizerActor()

	for _, s := range []string{"Confirmed", "Completed"} {
		_, err := h.transition.Execute(ctx, TransitionInput{BookingID: b.ID, Status: s, Actor: org})
		require.NoError(t, err)
	}

	_, err := h.transition.Execute(ctx, TransitionInput{BookingID: b.ID, Status: "Cancelled", Actor: org})
	assert.True(t, httperr.Is(err, httperr.KindInvalidTransition))

	res, err := h.transition.Execute(ctx, TransitionInput{
		BookingID: b.ID, Status: "Cancelled", Actor: h.demo.AdminActor(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", res.Booking.Status)
}

func TestConcurrentTransitionsAreSerialized(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, h.demo.OrganizerService.ID)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, status := range []string{"Confirmed", "Rejected"} {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			_, errs[i] = h.transition.Execute(ctx, TransitionInput{
				BookingID: b.ID, Status: status, Actor: h.demo.OrganizerActor(),
			})
		}(i, status)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.True(t, httperr.Is(err, httperr.KindInvalidTransition))
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Len(t, h.repo.NotificationsFor(h.demo.ClientUser.ID), 1)
}

// --------------------------------------------------
// SetFinalAmount
// --------------------------------------------------

func TestSetFinalAmountRequiresCompleted(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, h.demo.OrganizerService.ID)
	ctx := context.Background()
	org := h.demo.OrganizerActor()

	_, err := h.final.Execute(ctx, FinalAmountInput{BookingID: b.ID, Amount: 1800, Actor: org})
	assert.True(t, httperr.Is(err, httperr.KindInvalidTransition))

	for _, s := range []string{"Confirmed", "Completed"} {
		_, err := h.transition.Execute(ctx, TransitionInput{BookingID: b.ID, Status: s, Actor: org})
		require.NoError(t, err)
	}

	_, err = h.final.Execute(ctx, FinalAmountInput{BookingID: b.ID, Amount: 1800, Actor: h.demo.SupplierActor()})
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	got, err := h.final.Execute(ctx, FinalAmountInput{BookingID: b.ID, Amount: 1800, Actor: org})
	require.NoError(t, err)
	assert.Equal(t, 1800.0, got.Amount())
}
