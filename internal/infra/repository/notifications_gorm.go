package repository

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (r *GormRepository) GetNotification(
	ctx context.Context,
	id uint,
) (*models.Notification, error) {

	var n models.Notification
	if err := r.conn(ctx).First(&n, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func (r *GormRepository) FindMessageNotification(
	ctx context.Context,
	userID uint,
	conversationID uint,
) (*models.Notification, error) {

	var n models.Notification
	if err := r.conn(ctx).
		Where(
			"user_id = ? AND type = ? AND reference_type = ? AND reference_id = ?",
			userID,
			string(domain.TypeMessage),
			domain.RefConversation,
			conversationID,
		).
		First(&n).Error; err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func (r *GormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return mapErr(r.conn(ctx).Create(n).Error)
}

func (r *GormRepository) UpdateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return mapErr(r.conn(ctx).Save(n).Error)
}

func (r *GormRepository) DeleteNotification(
	ctx context.Context,
	id uint,
) error {
	return affected(r.conn(ctx).Delete(&models.Notification{}, id))
}

func (r *GormRepository) MarkAllNotificationsRead(
	ctx context.Context,
	userID uint,
	at time.Time,
) (int64, error) {

	res := r.conn(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *GormRepository) CountUnreadNotifications(
	ctx context.Context,
	userID uint,
) (int64, error) {

	var n int64
	if err := r.conn(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *GormRepository) ListNotifications(
	ctx context.Context,
	userID uint,
	limit int,
) ([]models.Notification, error) {

	q := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.Notification
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
