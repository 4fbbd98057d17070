package repository

import (
	"context"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *GormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.conn(ctx).First(&b, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *GormRepository) GetBookingForUpdate(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.locked(ctx).First(&b, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *GormRepository) FindBooking(
	ctx context.Context,
	serviceID uint,
	clientID uint,
	eventID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.conn(ctx).
		Where("service_id = ? AND client_id = ? AND event_id = ?", serviceID, clientID, eventID).
		First(&b).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *GormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return mapErr(r.conn(ctx).Create(b).Error)
}

func (r *GormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return mapErr(r.conn(ctx).Save(b).Error)
}

func (r *GormRepository) ListBookingsByEvent(
	ctx context.Context,
	eventID uint,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.conn(ctx).
		Where("event_id = ?", eventID).
		Order("id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository) ListBookingsByProvider(
	ctx context.Context,
	ref provider.Ref,
	status string,
) ([]models.Booking, error) {

	q := r.conn(ctx).
		Where("provider_id = ? AND provider_type = ?", ref.ID, string(ref.Kind))
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []models.Booking
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
