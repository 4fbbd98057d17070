package repository

import (
	"context"

	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// --------------------------------------------------
// Events
// --------------------------------------------------

func (r *GormRepository) GetEvent(
	ctx context.Context,
	id uint,
) (*models.Event, error) {

	var ev models.Event
	if err := r.conn(ctx).First(&ev, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &ev, nil
}

func (r *GormRepository) GetEventForUpdate(
	ctx context.Context,
	id uint,
) (*models.Event, error) {

	var ev models.Event
	if err := r.locked(ctx).First(&ev, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &ev, nil
}

func (r *GormRepository) CreateEvent(
	ctx context.Context,
	ev *models.Event,
) error {
	return mapErr(r.conn(ctx).Create(ev).Error)
}

func (r *GormRepository) UpdateEvent(
	ctx context.Context,
	ev *models.Event,
) error {
	return mapErr(r.conn(ctx).Save(ev).Error)
}

func (r *GormRepository) DeleteEvent(
	ctx context.Context,
	id uint,
) error {
	return affected(r.conn(ctx).Delete(&models.Event{}, id))
}

func (r *GormRepository) CountBookingsByEvent(
	ctx context.Context,
	eventID uint,
) (int64, error) {

	var n int64
	if err := r.conn(ctx).
		Model(&models.Booking{}).
		Where("event_id = ?", eventID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
