package repository

import (
	"context"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *GormRepository) GetReview(
	ctx context.Context,
	id uint,
) (*models.Review, error) {

	var rv models.Review
	if err := r.conn(ctx).First(&rv, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &rv, nil
}

func (r *GormRepository) GetReviewByBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Review, error) {

	var rv models.Review
	if err := r.conn(ctx).
		Where("booking_id = ?", bookingID).
		First(&rv).Error; err != nil {
		return nil, mapErr(err)
	}
	return &rv, nil
}

func (r *GormRepository) CreateReview(
	ctx context.Context,
	rv *models.Review,
) error {
	return mapErr(r.conn(ctx).Create(rv).Error)
}

func (r *GormRepository) UpdateReview(
	ctx context.Context,
	rv *models.Review,
) error {
	return mapErr(r.conn(ctx).Save(rv).Error)
}

func (r *GormRepository) DeleteReview(
	ctx context.Context,
	id uint,
) error {
	return affected(r.conn(ctx).Delete(&models.Review{}, id))
}

// Ratings are matched through the review's booking, never through the
// reviewee columns.
func (r *GormRepository) approvedRatings(
	ctx context.Context,
	where string,
	args ...any,
) ([]int, error) {

	var out []int
	if err := r.conn(ctx).
		Model(&models.Review{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Where("reviews.is_approved = ?", true).
		Where(where, args...).
		Order("reviews.id").
		Pluck("reviews.rating", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository) ApprovedRatingsForProvider(
	ctx context.Context,
	ref provider.Ref,
) ([]int, error) {
	return r.approvedRatings(ctx,
		"bookings.provider_id = ? AND bookings.provider_type = ?",
		ref.ID, string(ref.Kind),
	)
}

func (r *GormRepository) ApprovedRatingsForService(
	ctx context.Context,
	serviceID uint,
) ([]int, error) {
	return r.approvedRatings(ctx, "bookings.service_id = ?", serviceID)
}
