package notification

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/messaging"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	"github.com/BruksfildServices01/event-marketplace/internal/validators"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// ===============================
// INPUT
// ===============================

type Input struct {
	UserID        uint        `validate:"required"`
	Title         string      `validate:"required,max=200"`
	Message       string      `validate:"required"`
	Type          domain.Type `validate:"required"`
	ReferenceID   *uint
	ReferenceType string `validate:"max=30"`
	RedirectURL   string `validate:"max=255"`
}

func (in Input) conversationID() (uint, bool) {
	if in.Type == domain.TypeMessage &&
		in.ReferenceType == domain.RefConversation &&
		in.ReferenceID != nil {
		return *in.ReferenceID, true
	}
	return 0, false
}

// ===============================
// NOTIFIER
// ===============================

type Notifier struct {
	repo          store.Repository
	cache         UnreadCache
	conversations messaging.Conversations
	clock         timezone.Clock
	log           *zap.Logger
}

func NewNotifier(
	repo store.Repository,
	cache UnreadCache,
	conversations messaging.Conversations,
	clock timezone.Clock,
	log *zap.Logger,
) *Notifier {
	if cache == nil {
		cache = NoCache{}
	}
	if conversations == nil {
		conversations = messaging.None{}
	}
	return &Notifier{
		repo:          repo,
		cache:         cache,
		conversations: conversations,
		clock:         clock,
		log:           log,
	}
}

// Notify stores a notification for in.UserID. Message notifications for a
// conversation reuse the existing row for that (user, conversation).
func (n *Notifier) Notify(ctx context.Context, in Input) (*models.Notification, error) {
	return n.write(ctx, n.repo, in)
}

// Send is the best-effort variant used inside another operation's
// transaction. The write runs in a nested transaction so a failure rolls back
// only the notification; it is logged and nil is returned.
func (n *Notifier) Send(
	ctx context.Context,
	tx store.Repository,
	in Input,
) *models.Notification {
	out, err := n.write(ctx, tx, in)
	if err != nil {
		n.log.Warn("notification dispatch failed",
			zap.Uint("user_id", in.UserID),
			zap.String("type", string(in.Type)),
			zap.Error(err),
		)
		return nil
	}
	return out
}

func (n *Notifier) write(
	ctx context.Context,
	repo store.Repository,
	in Input,
) (*models.Notification, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	var out *models.Notification
	attempt := func() error {
		return repo.Transaction(ctx, func(tx store.Repository) error {
			var err error
			out, err = n.upsert(ctx, tx, in)
			return err
		})
	}

	err := attempt()
	if errors.Is(err, store.ErrDuplicate) {
		// Lost an insert race on the conversation row; it exists now.
		err = attempt()
	}
	if err != nil {
		return nil, err
	}

	n.invalidate(ctx, in.UserID)
	return out, nil
}

func (n *Notifier) upsert(
	ctx context.Context,
	tx store.Repository,
	in Input,
) (*models.Notification, error) {
	now := n.clock()

	if convID, ok := in.conversationID(); ok {
		existing, err := tx.FindMessageNotification(ctx, in.UserID, convID)
		switch {
		case err == nil:
			existing.Title = in.Title
			existing.Message = in.Message
			existing.RedirectURL = in.RedirectURL
			existing.CreatedAt = now
			existing.IsRead = false
			existing.ReadAt = nil
			if err := tx.UpdateNotification(ctx, existing); err != nil {
				return nil, fmt.Errorf("reactivate notification: %w", err)
			}
			return existing, nil
		case !store.IsNotFound(err):
			return nil, fmt.Errorf("find message notification: %w", err)
		}
	}

	row := &models.Notification{
		UserID:      in.UserID,
		Title:       in.Title,
		Message:     in.Message,
		Type:        string(in.Type),
		ReferenceID: in.ReferenceID,
		RedirectURL: in.RedirectURL,
		CreatedAt:   now,
	}
	if in.ReferenceType != "" {
		ref := in.ReferenceType
		row.ReferenceType = &ref
	}

	if err := tx.CreateNotification(ctx, row); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return row, nil
}

// NotifyMessage tells recipientUserID about new messages in a conversation.
func (n *Notifier) NotifyMessage(
	ctx context.Context,
	recipientUserID uint,
	conversationID uint,
	senderName string,
) (*models.Notification, error) {
	user, err := n.repo.GetUser(ctx, recipientUserID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, httperr.ErrNotFound("user_not_found")
		}
		return nil, err
	}

	unread, err := n.conversations.UnreadCount(ctx, conversationID, recipientUserID)
	if err != nil {
		n.log.Warn("unread message count unavailable",
			zap.Uint("conversation_id", conversationID),
			zap.Error(err),
		)
		unread = 1
	}

	title, msg := domain.MessageText(unread, senderName)
	role, _ := actor.ParseRole(user.Role)

	return n.Notify(ctx, Input{
		UserID:        recipientUserID,
		Title:         title,
		Message:       msg,
		Type:          domain.TypeMessage,
		ReferenceID:   &conversationID,
		ReferenceType: domain.RefConversation,
		RedirectURL:   domain.MessageURL(role, conversationID),
	})
}

// ===============================
// READ SIDE / GUARDED MUTATIONS
// ===============================

func (n *Notifier) owned(ctx context.Context, a actor.Actor, id uint) (*models.Notification, error) {
	row, err := n.repo.GetNotification(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, httperr.ErrNotFound("notification_not_found")
		}
		return nil, err
	}
	if row.UserID != a.UserID {
		return nil, httperr.ErrUnauthorized("notification_not_owned")
	}
	return row, nil
}

func (n *Notifier) MarkRead(ctx context.Context, a actor.Actor, id uint) (*models.Notification, error) {
	row, err := n.owned(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if row.IsRead {
		return row, nil
	}

	now := n.clock()
	row.IsRead = true
	row.ReadAt = &now
	if err := n.repo.UpdateNotification(ctx, row); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}

	n.invalidate(ctx, a.UserID)
	return row, nil
}

func (n *Notifier) MarkAllRead(ctx context.Context, a actor.Actor) (int64, error) {
	count, err := n.repo.MarkAllNotificationsRead(ctx, a.UserID, n.clock())
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	n.invalidate(ctx, a.UserID)
	return count, nil
}

func (n *Notifier) Delete(ctx context.Context, a actor.Actor, id uint) error {
	if _, err := n.owned(ctx, a, id); err != nil {
		return err
	}
	if err := n.repo.DeleteNotification(ctx, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	n.invalidate(ctx, a.UserID)
	return nil
}

func (n *Notifier) List(ctx context.Context, a actor.Actor, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return n.repo.ListNotifications(ctx, a.UserID, limit)
}

func (n *Notifier) UnreadCount(ctx context.Context, a actor.Actor) (int64, error) {
	if v, ok, err := n.cache.Get(ctx, a.UserID); err == nil && ok {
		return v, nil
	} else if err != nil {
		n.log.Debug("unread cache read failed", zap.Error(err))
	}

	count, err := n.repo.CountUnreadNotifications(ctx, a.UserID)
	if err != nil {
		return 0, err
	}

	if err := n.cache.Set(ctx, a.UserID, count); err != nil {
		n.log.Debug("unread cache write failed", zap.Error(err))
	}
	return count, nil
}

func (n *Notifier) invalidate(ctx context.Context, userID uint) {
	if err := n.cache.Invalidate(ctx, userID); err != nil {
		n.log.Warn("unread cache invalidate failed",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}
}
