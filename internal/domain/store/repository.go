package store

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate record")
)

// Repository is the persistence port of the core. Transaction runs fn in a
// unit of work; calling it on a transactional Repository nests (savepoint),
// so a failed inner block rolls back alone.
type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Users / Clients --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetClientByUser(
		ctx context.Context,
		userID uint,
	) (*models.Client, error)

	// -------- Providers --------
	ResolveProvider(
		ctx context.Context,
		ref provider.Ref,
	) (*provider.Record, error)

	// ResolveProviderForUpdate locks the provider row until the transaction
	// ends. Rating recomputes and payout requests serialize on it.
	ResolveProviderForUpdate(
		ctx context.Context,
		ref provider.Ref,
	) (*provider.Record, error)

	GetProviderByUser(
		ctx context.Context,
		kind provider.Kind,
		userID uint,
	) (*provider.Record, error)

	ListProviders(
		ctx context.Context,
	) ([]provider.Ref, error)

	SaveProviderRating(
		ctx context.Context,
		ref provider.Ref,
		agg rating.Aggregate,
	) error

	// -------- Services --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ListServiceIDsByProvider(
		ctx context.Context,
		ref provider.Ref,
	) ([]uint, error)

	SaveServiceRating(
		ctx context.Context,
		serviceID uint,
		agg rating.Aggregate,
	) error

	// -------- Events --------
	GetEvent(
		ctx context.Context,
		id uint,
	) (*models.Event, error)

	GetEventForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Event, error)

	CreateEvent(
		ctx context.Context,
		ev *models.Event,
	) error

	UpdateEvent(
		ctx context.Context,
		ev *models.Event,
	) error

	DeleteEvent(
		ctx context.Context,
		id uint,
	) error

	CountBookingsByEvent(
		ctx context.Context,
		eventID uint,
	) (int64, error)

	// -------- Bookings --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// GetBookingForUpdate locks the row until the transaction ends.
	GetBookingForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	FindBooking(
		ctx context.Context,
		serviceID uint,
		clientID uint,
		eventID uint,
	) (*models.Booking, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsByEvent(
		ctx context.Context,
		eventID uint,
	) ([]models.Booking, error)

	// ListBookingsByProvider filters by status when status is not empty.
	ListBookingsByProvider(
		ctx context.Context,
		ref provider.Ref,
		status string,
	) ([]models.Booking, error)

	// -------- Reviews --------
	GetReview(
		ctx context.Context,
		id uint,
	) (*models.Review, error)

	GetReviewByBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Review, error)

	CreateReview(
		ctx context.Context,
		r *models.Review,
	) error

	UpdateReview(
		ctx context.Context,
		r *models.Review,
	) error

	DeleteReview(
		ctx context.Context,
		id uint,
	) error

	// ApprovedRatingsForProvider matches reviews through their booking's
	// (provider_id, provider_type).
	ApprovedRatingsForProvider(
		ctx context.Context,
		ref provider.Ref,
	) ([]int, error)

	ApprovedRatingsForService(
		ctx context.Context,
		serviceID uint,
	) ([]int, error)

	// -------- Notifications --------
	GetNotification(
		ctx context.Context,
		id uint,
	) (*models.Notification, error)

	FindMessageNotification(
		ctx context.Context,
		userID uint,
		conversationID uint,
	) (*models.Notification, error)

	CreateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	UpdateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	DeleteNotification(
		ctx context.Context,
		id uint,
	) error

	MarkAllNotificationsRead(
		ctx context.Context,
		userID uint,
		at time.Time,
	) (int64, error)

	CountUnreadNotifications(
		ctx context.Context,
		userID uint,
	) (int64, error)

	ListNotifications(
		ctx context.Context,
		userID uint,
		limit int,
	) ([]models.Notification, error)

	// -------- Payouts --------
	CreatePayout(
		ctx context.Context,
		p *models.Payout,
	) error

	SumPayouts(
		ctx context.Context,
		payeeUserID uint,
		status string,
	) (float64, error)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
