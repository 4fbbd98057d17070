package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

type fakeConversations struct {
	unread int
	err    error
}

func (f fakeConversations) UnreadCount(context.Context, uint, uint) (int, error) {
	return f.unread, f.err
}

type countingCache struct {
	values      map[uint]int64
	invalidated int
}

func (c *countingCache) Get(_ context.Context, userID uint) (int64, bool, error) {
	v, ok := c.values[userID]
	return v, ok, nil
}

func (c *countingCache) Set(_ context.Context, userID uint, n int64) error {
	c.values[userID] = n
	return nil
}

func (c *countingCache) Invalidate(_ context.Context, userID uint) error {
	delete(c.values, userID)
	c.invalidated++
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setup(t *testing.T) (*memory.Store, *Notifier, *clock, models.User) {
	t.Helper()

	repo := memory.New()
	user := repo.AddUser(models.User{Email: "ana@example.com", FirstName: "Ana", Role: "Client"})
	clk := &clock{t: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)}
	n := NewNotifier(repo, nil, fakeConversations{unread: 1}, clk.now, zaptest.NewLogger(t))
	return repo, n, clk, user
}

func TestNotifyCreatesUnreadRow(t *testing.T) {
	repo, n, clk, user := setup(t)
	ref := uint(12)

	row, err := n.Notify(context.Background(), Input{
		UserID:        user.ID,
		Title:         "Booking Confirmed",
		Message:       "Acme has confirmed your booking!",
		Type:          domain.TypeBooking,
		ReferenceID:   &ref,
		ReferenceType: domain.RefBooking,
		RedirectURL:   domain.ClientBookingsURL,
	})
	require.NoError(t, err)

	assert.False(t, row.IsRead)
	assert.Equal(t, clk.t, row.CreatedAt)
	require.NotNil(t, row.ReferenceType)
	assert.Equal(t, domain.RefBooking, *row.ReferenceType)
	assert.Len(t, repo.Notifications(), 1)
}

func TestNotifyValidatesInput(t *testing.T) {
	_, n, _, user := setup(t)

	_, err := n.Notify(context.Background(), Input{UserID: user.ID, Type: domain.TypeBooking})
	assert.True(t, httperr.Is(err, httperr.KindValidation))
}

func TestMessageNotificationIsReactivated(t *testing.T) {
	repo, n, clk, user := setup(t)
	ctx := context.Background()

	first, err := n.NotifyMessage(ctx, user.ID, 77, "Bob")
	require.NoError(t, err)
	assert.Equal(t, "/client/messages?conversation=77", first.RedirectURL)

	_, err = n.MarkRead(ctx, actor.Actor{UserID: user.ID, Role: actor.RoleClient}, first.ID)
	require.NoError(t, err)

	clk.t = clk.t.Add(5 * time.Minute)
	n.conversations = fakeConversations{unread: 3}

	second, err := n.NotifyMessage(ctx, user.ID, 77, "Bob")
	require.NoError(t, err)

	rows := repo.Notifications()
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, rows[0].IsRead)
	assert.Nil(t, rows[0].ReadAt)
	assert.Equal(t, clk.t, rows[0].CreatedAt)
	assert.Equal(t, "You have 3 new messages from Bob", rows[0].Message)
}

func TestMessageNotificationsPerConversation(t *testing.T) {
	repo, n, _, user := setup(t)
	ctx := context.Background()

	_, err := n.NotifyMessage(ctx, user.ID, 1, "Bob")
	require.NoError(t, err)
	_, err = n.NotifyMessage(ctx, user.ID, 2, "Bob")
	require.NoError(t, err)

	assert.Len(t, repo.Notifications(), 2)
}

func TestNotifyMessageFallsBackWhenCountFails(t *testing.T) {
	_, n, _, user := setup(t)
	n.conversations = fakeConversations{err: errors.New("down")}

	row, err := n.NotifyMessage(context.Background(), user.ID, 5, "Bob")
	require.NoError(t, err)
	assert.Equal(t, "You have a new message from Bob", row.Message)
}

func TestSendIsBestEffort(t *testing.T) {
	repo, n, _, user := setup(t)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx store.Repository) error {
		assert.Nil(t, n.Send(ctx, tx, Input{UserID: user.ID}))
		assert.NotNil(t, n.Send(ctx, tx, Input{
			UserID:  user.ID,
			Title:   "Hello",
			Message: "World",
			Type:    domain.TypeEventUpdate,
		}))
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, repo.Notifications(), 1)
}

func TestGuardedMutations(t *testing.T) {
	repo, n, _, user := setup(t)
	ctx := context.Background()
	owner := actor.Actor{UserID: user.ID, Role: actor.RoleClient}
	stranger := actor.Actor{UserID: user.ID + 100, Role: actor.RoleClient}

	row, err := n.Notify(ctx, Input{UserID: user.ID, Title: "t", Message: "m", Type: domain.TypeBooking})
	require.NoError(t, err)

	_, err = n.MarkRead(ctx, stranger, row.ID)
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	err = n.Delete(ctx, stranger, row.ID)
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	err = n.Delete(ctx, owner, 9999)
	assert.True(t, httperr.Is(err, httperr.KindNotFound))

	require.NoError(t, n.Delete(ctx, owner, row.ID))
	assert.Empty(t, repo.Notifications())
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	_, n, _, user := setup(t)
	ctx := context.Background()
	a := actor.Actor{UserID: user.ID, Role: actor.RoleClient}
	cache := &countingCache{values: map[uint]int64{}}
	n.cache = cache

	for i := 0; i < 3; i++ {
		_, err := n.Notify(ctx, Input{UserID: user.ID, Title: "t", Message: "m", Type: domain.TypeBooking})
		require.NoError(t, err)
	}

	count, err := n.UnreadCount(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, int64(3), cache.values[user.ID])

	marked, err := n.MarkAllRead(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)

	count, err = n.UnreadCount(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	list, err := n.List(ctx, a, 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	for _, row := range list {
		assert.True(t, row.IsRead)
	}
}
