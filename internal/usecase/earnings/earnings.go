package earnings

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	bookingdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
)

// Payout statuses.
const (
	PayoutPending   = "Pending"
	PayoutCompleted = "Completed"
)

type Summary struct {
	TotalEarnings     float64 `json:"total_earnings"`
	MonthlyEarnings   float64 `json:"monthly_earnings"`
	AvailableBalance  float64 `json:"available_balance"`
	PendingPayouts    float64 `json:"pending_payouts"`
	CompletedBookings int     `json:"completed_bookings"`
}

// Requestable is what a new payout may still claim.
func (s Summary) Requestable() float64 {
	return round2(s.AvailableBalance - s.PendingPayouts)
}

// ======================================================
// GET EARNINGS
// ======================================================

type GetEarnings struct {
	repo  store.Repository
	clock timezone.Clock
	log   *zap.Logger
}

func NewGetEarnings(
	repo store.Repository,
	clock timezone.Clock,
	log *zap.Logger,
) *GetEarnings {
	return &GetEarnings{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

func (uc *GetEarnings) Execute(ctx context.Context, a actor.Actor) (*Summary, error) {
	prov, err := payee(ctx, uc.repo, a)
	if err != nil {
		return nil, err
	}
	return summarize(ctx, uc.repo, prov, uc.clock())
}

// summarize counts completed work by its booking date; the month window
// starts at the first day of now's month.
func summarize(
	ctx context.Context,
	repo store.Repository,
	prov *provider.Record,
	now time.Time,
) (*Summary, error) {
	bookings, err := repo.ListBookingsByProvider(ctx, prov.Ref, string(bookingdomain.StatusCompleted))
	if err != nil {
		return nil, err
	}

	monthStart := timezone.StartOfMonth(now)

	var s Summary
	for _, b := range bookings {
		amount := b.Amount()
		s.TotalEarnings += amount
		if !b.BookingDate.Before(monthStart) {
			s.MonthlyEarnings += amount
		}
		s.CompletedBookings++
	}

	paid, err := repo.SumPayouts(ctx, prov.UserID, PayoutCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := repo.SumPayouts(ctx, prov.UserID, PayoutPending)
	if err != nil {
		return nil, err
	}

	s.TotalEarnings = round2(s.TotalEarnings)
	s.MonthlyEarnings = round2(s.MonthlyEarnings)
	s.AvailableBalance = round2(s.TotalEarnings - paid)
	s.PendingPayouts = round2(pending)
	return &s, nil
}

func payee(ctx context.Context, repo store.Repository, a actor.Actor) (*provider.Record, error) {
	kind, ok := provider.KindForRole(a.Role)
	if !ok {
		return nil, httperr.ErrUnauthorized("provider_role_required")
	}
	prov, err := repo.GetProviderByUser(ctx, kind, a.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, httperr.ErrUnauthorized("provider_profile_required")
		}
		return nil, err
	}
	return prov, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
