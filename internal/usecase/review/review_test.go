package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	ratinguc "github.com/BruksfildServices01/event-marketplace/internal/usecase/rating"
)

type failingAggregator struct{ calls int }

func (f *failingAggregator) Execute(context.Context, provider.Ref) (rating.Aggregate, error) {
	f.calls++
	return rating.Aggregate{}, errors.New("db went away")
}

type fixture struct {
	repo   *memory.Store
	demo   memory.Demo
	create *CreateReview
	edit   *EditReview
	delete *DeleteReview
}

var editedAt = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := memory.New()
	demo := memory.SeedDemo(repo)
	log := zaptest.NewLogger(t)
	agg := ratinguc.NewRecomputeRating(repo, log)

	return &fixture{
		repo:   repo,
		demo:   demo,
		create: NewCreateReview(repo, agg, nil, log),
		edit:   NewEditReview(repo, agg, nil, timezone.Fixed(editedAt), log),
		delete: NewDeleteReview(repo, agg, nil, log),
	}
}

func (f *fixture) booking(t *testing.T, status string) *models.Booking {
	t.Helper()

	serviceID := f.demo.OrganizerService.ID
	clientID := f.demo.Client.ID
	b := &models.Booking{
		ServiceID:    &serviceID,
		ClientID:     &clientID,
		ProviderID:   f.demo.Organizer.ID,
		ProviderType: "Organizer",
		Status:       status,
	}
	require.NoError(t, f.repo.CreateBooking(context.Background(), b))
	return b
}

func (f *fixture) organizer() models.Organizer {
	o, _ := f.repo.Organizer(f.demo.Organizer.ID)
	return o
}

func TestCreateReviewUpdatesAggregates(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "Completed")

	rev, err := f.create.Execute(context.Background(), CreateInput{
		BookingID: b.ID,
		Actor:     f.demo.ClientActor(),
		Rating:    4,
		Text:      "Lovely day",
	})
	require.NoError(t, err)

	assert.True(t, rev.IsApproved)
	assert.False(t, rev.IsEdited)
	assert.Equal(t, f.demo.Organizer.ID, rev.RevieweeID)
	assert.Equal(t, "Organizer", rev.RevieweeType)
	assert.Equal(t, f.demo.ClientUser.ID, rev.ReviewerID)

	org := f.organizer()
	assert.Equal(t, 4.0, org.AverageRating)
	assert.Equal(t, 1, org.TotalReviews)

	svc, err := f.repo.GetService(context.Background(), f.demo.OrganizerService.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.TotalReviews)
}

func TestCreateReviewTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "Completed")
	in := CreateInput{BookingID: b.ID, Actor: f.demo.ClientActor(), Rating: 5, Text: "Great"}

	_, err := f.create.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = f.create.Execute(context.Background(), in)
	assert.True(t, httperr.Is(err, httperr.KindConflict))

	assert.Len(t, f.repo.Reviews(), 1)
	assert.Equal(t, 1, f.organizer().TotalReviews)
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "Pending")

	_, err := f.create.Execute(context.Background(), CreateInput{
		BookingID: b.ID, Actor: f.demo.ClientActor(), Rating: 5, Text: "Too early",
	})
	assert.True(t, httperr.Is(err, httperr.KindNotFound))
	assert.Empty(t, f.repo.Reviews())
	assert.Equal(t, 0, f.organizer().TotalReviews)
	assert.Equal(t, 0.0, f.organizer().AverageRating)
}

func TestCreateReviewGuards(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "Completed")
	ctx := context.Background()

	_, err := f.create.Execute(ctx, CreateInput{BookingID: 404, Actor: f.demo.ClientActor(), Rating: 5, Text: "x"})
	assert.True(t, httperr.Is(err, httperr.KindNotFound))

	_, err = f.create.Execute(ctx, CreateInput{BookingID: b.ID, Actor: f.demo.SupplierActor(), Rating: 5, Text: "x"})
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	_, err = f.create.Execute(ctx, CreateInput{BookingID: b.ID, Actor: f.demo.ClientActor(), Rating: 6, Text: "x"})
	assert.True(t, httperr.Is(err, httperr.KindValidation))

	_, err = f.create.Execute(ctx, CreateInput{BookingID: b.ID, Actor: f.demo.ClientActor(), Rating: 3})
	assert.True(t, httperr.Is(err, httperr.KindValidation))
}

func TestEditReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, r := range []int{5, 3} {
		b := f.booking(t, "Completed")
		_, err := f.create.Execute(ctx, CreateInput{BookingID: b.ID, Actor: f.demo.ClientActor(), Rating: r, Text: "ok"})
		require.NoError(t, err)
	}
	assert.Equal(t, 4.0, f.organizer().AverageRating)

	first := f.repo.Reviews()[0]

	_, err := f.edit.Execute(ctx, EditInput{
		ReviewID: first.ID, Actor: f.demo.OrganizerActor(), Rating: 1, Text: "hijack",
	})
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	rev, err := f.edit.Execute(ctx, EditInput{
		ReviewID: first.ID, Actor: f.demo.ClientActor(), Rating: 2, Text: "changed my mind",
	})
	require.NoError(t, err)
	assert.True(t, rev.IsEdited)
	assert.Equal(t, editedAt, rev.UpdatedAt)

	org := f.organizer()
	assert.Equal(t, 2.5, org.AverageRating)
	assert.Equal(t, 2, org.TotalReviews)
}

func TestDeleteLastReviewResetsAggregate(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "Completed")
	ctx := context.Background()

	rev, err := f.create.Execute(ctx, CreateInput{BookingID: b.ID, Actor: f.demo.ClientActor(), Rating: 5, Text: "x"})
	require.NoError(t, err)

	_, err = f.delete.Execute(ctx, rev.ID, f.demo.ClientActor())
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	_, err = f.delete.Execute(ctx, rev.ID, f.demo.AdminActor())
	require.NoError(t, err)

	org := f.organizer()
	assert.Equal(t, 0.0, org.AverageRating)
	assert.Equal(t, 0, org.TotalReviews)

	_, err = f.delete.Execute(ctx, rev.ID, actor.Actor{UserID: 1, Role: actor.RoleAdmin})
	assert.True(t, httperr.Is(err, httperr.KindNotFound))
}

func TestAggregationFailureDoesNotUndoReview(t *testing.T) {
	f := newFixture(t)
	agg := &failingAggregator{}
	f.create = NewCreateReview(f.repo, agg, nil, zaptest.NewLogger(t))
	b := f.booking(t, "Completed")

	rev, err := f.create.Execute(context.Background(), CreateInput{
		BookingID: b.ID, Actor: f.demo.ClientActor(), Rating: 5, Text: "x",
	})
	require.NoError(t, err)
	assert.NotZero(t, rev.ID)
	assert.Equal(t, 1, agg.calls)
	assert.Len(t, f.repo.Reviews(), 1)
}
