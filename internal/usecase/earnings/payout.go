package earnings

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	notifdomain "github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	notifuc "github.com/BruksfildServices01/event-marketplace/internal/usecase/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/validators"
)

const DefaultMethod = "Bank Transfer"

type PayoutInput struct {
	Actor  actor.Actor
	Amount float64 `validate:"gt=0"`
	Method string  `validate:"max=50"`
	Notes  string  `validate:"max=1000"`
}

// RequestPayout records a withdrawal request. Nothing is transferred here.
type RequestPayout struct {
	repo     store.Repository
	notifier *notifuc.Notifier
	audit    *audit.Dispatcher
	clock    timezone.Clock
	minimum  float64
	log      *zap.Logger
}

func NewRequestPayout(
	repo store.Repository,
	notifier *notifuc.Notifier,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	minimum float64,
	log *zap.Logger,
) *RequestPayout {
	return &RequestPayout{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		clock:    clock,
		minimum:  minimum,
		log:      log,
	}
}

func (uc *RequestPayout) Execute(
	ctx context.Context,
	in PayoutInput,
) (*models.Payout, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	if in.Amount < uc.minimum {
		return nil, httperr.ErrValidation(
			"payout_below_minimum",
			fmt.Sprintf("minimum payout is %.2f", uc.minimum),
		)
	}

	method := in.Method
	if method == "" {
		method = DefaultMethod
	}

	var p *models.Payout

	err := uc.repo.Transaction(ctx, func(tx store.Repository) error {
		prov, err := payee(ctx, tx, in.Actor)
		if err != nil {
			return err
		}
		// Concurrent requests for one payee must see each other's payouts.
		if _, err := tx.ResolveProviderForUpdate(ctx, prov.Ref); err != nil {
			return fmt.Errorf("lock payee: %w", err)
		}

		sum, err := summarize(ctx, tx, prov, uc.clock())
		if err != nil {
			return err
		}
		if in.Amount > sum.Requestable() {
			return httperr.ErrValidation(
				"insufficient_balance",
				fmt.Sprintf("requested %.2f, available %.2f", in.Amount, sum.Requestable()),
			)
		}

		p = &models.Payout{
			PayeeUserID: prov.UserID,
			Amount:      round2(in.Amount),
			Status:      PayoutPending,
			Method:      method,
			Notes:       in.Notes,
		}
		if err := tx.CreatePayout(ctx, p); err != nil {
			return err
		}

		uc.notifier.Send(ctx, tx, notifuc.Input{
			UserID:        prov.UserID,
			Title:         "Payout Requested",
			Message:       fmt.Sprintf("Your payout request of %.2f via %s is pending.", p.Amount, method),
			Type:          notifdomain.TypePayout,
			ReferenceID:   &p.ID,
			ReferenceType: notifdomain.RefPayout,
			RedirectURL:   fmt.Sprintf("/%s/earnings", prov.Ref.Kind.Path()),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("payout requested",
		zap.Uint("payout_id", p.ID),
		zap.Uint("payee_user_id", p.PayeeUserID),
		zap.Float64("amount", p.Amount),
	)

	uid := in.Actor.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &uid,
		Action:   "payout_requested",
		Entity:   "payout",
		EntityID: &p.ID,
		Metadata: map[string]any{"amount": p.Amount, "method": method},
	})

	return p, nil
}
