package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	domain "github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

func reviewed(t *testing.T, repo *memory.Store, svc models.Service, rating int, approved bool) {
	t.Helper()
	ctx := context.Background()

	serviceID := svc.ID
	b := &models.Booking{
		ServiceID:    &serviceID,
		ProviderID:   svc.ProviderID,
		ProviderType: svc.ProviderType,
		Status:       "Completed",
	}
	require.NoError(t, repo.CreateBooking(ctx, b))
	require.NoError(t, repo.CreateReview(ctx, &models.Review{
		BookingID:    &b.ID,
		RevieweeID:   svc.ProviderID,
		RevieweeType: svc.ProviderType,
		Rating:       rating,
		IsApproved:   approved,
	}))
}

func TestRecomputeProviderAndServices(t *testing.T) {
	repo := memory.New()
	demo := memory.SeedDemo(repo)
	second := repo.AddService(models.Service{
		ProviderID: demo.Organizer.ID, ProviderType: "Organizer",
		Name: "Day-of coordination", IsActive: true, IsApproved: true,
	})

	reviewed(t, repo, demo.OrganizerService, 5, true)
	reviewed(t, repo, demo.OrganizerService, 4, true)
	reviewed(t, repo, second, 2, true)
	reviewed(t, repo, second, 1, false)
	reviewed(t, repo, demo.SupplierService, 3, true)

	uc := NewRecomputeRating(repo, zaptest.NewLogger(t))
	agg, err := uc.Execute(context.Background(), provider.Organizer(demo.Organizer.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.Aggregate{Average: 3.67, Total: 3}, agg)

	org, _ := repo.Organizer(demo.Organizer.ID)
	assert.Equal(t, 3.67, org.AverageRating)
	assert.Equal(t, 3, org.TotalReviews)

	svc, err := repo.GetService(context.Background(), demo.OrganizerService.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, svc.AverageRating)
	assert.Equal(t, 2, svc.TotalReviews)

	svc, err = repo.GetService(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, svc.AverageRating)
	assert.Equal(t, 1, svc.TotalReviews)

	sup, _ := repo.Supplier(demo.Supplier.ID)
	assert.Equal(t, 0, sup.TotalReviews, "other providers untouched")
}

func TestRecomputeIsIdempotent(t *testing.T) {
	repo := memory.New()
	demo := memory.SeedDemo(repo)
	reviewed(t, repo, demo.SupplierService, 4, true)

	uc := NewRecomputeRating(repo, zaptest.NewLogger(t))
	ref := provider.Supplier(demo.Supplier.ID)

	first, err := uc.Execute(context.Background(), ref)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecomputeWithoutReviewsIsZero(t *testing.T) {
	repo := memory.New()
	demo := memory.SeedDemo(repo)

	uc := NewRecomputeRating(repo, zaptest.NewLogger(t))
	agg, err := uc.Execute(context.Background(), provider.Organizer(demo.Organizer.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.Aggregate{}, agg)
}

func TestRecomputeUnknownProvider(t *testing.T) {
	repo := memory.New()
	uc := NewRecomputeRating(repo, zaptest.NewLogger(t))

	_, err := uc.Execute(context.Background(), provider.Supplier(42))
	assert.True(t, httperr.Is(err, httperr.KindNotFound))
}

func TestRecomputeAllRepairsDrift(t *testing.T) {
	repo := memory.New()
	demo := memory.SeedDemo(repo)
	reviewed(t, repo, demo.OrganizerService, 5, true)
	reviewed(t, repo, demo.SupplierService, 2, true)

	// simulate drift
	require.NoError(t, repo.SaveProviderRating(context.Background(),
		provider.Organizer(demo.Organizer.ID), domain.Aggregate{Average: 1.11, Total: 9}))

	log := zaptest.NewLogger(t)
	all := NewRecomputeAll(repo, NewRecomputeRating(repo, log), log)
	sum, err := all.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RepairSummary{Providers: 2, Failed: 0}, sum)

	org, _ := repo.Organizer(demo.Organizer.ID)
	assert.Equal(t, 5.0, org.AverageRating)
	assert.Equal(t, 1, org.TotalReviews)

	sup, _ := repo.Supplier(demo.Supplier.ID)
	assert.Equal(t, 2.0, sup.AverageRating)
}

// callLog records the repository calls made inside transactions.
type callLog struct {
	store.Repository
	calls *[]string
}

func (r callLog) Transaction(ctx context.Context, fn func(tx store.Repository) error) error {
	return r.Repository.Transaction(ctx, func(tx store.Repository) error {
		return fn(callLog{Repository: tx, calls: r.calls})
	})
}

func (r callLog) ResolveProviderForUpdate(ctx context.Context, ref provider.Ref) (*provider.Record, error) {
	*r.calls = append(*r.calls, "lock "+ref.String())
	return r.Repository.ResolveProviderForUpdate(ctx, ref)
}

func (r callLog) ApprovedRatingsForProvider(ctx context.Context, ref provider.Ref) ([]int, error) {
	*r.calls = append(*r.calls, "ratings "+ref.String())
	return r.Repository.ApprovedRatingsForProvider(ctx, ref)
}

func TestRecomputeLocksProviderBeforeReadingRatings(t *testing.T) {
	repo := memory.New()
	demo := memory.SeedDemo(repo)
	reviewed(t, repo, demo.SupplierService, 4, true)

	var calls []string
	uc := NewRecomputeRating(callLog{Repository: repo, calls: &calls}, zaptest.NewLogger(t))

	ref := provider.Supplier(demo.Supplier.ID)
	_, err := uc.Execute(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, []string{"lock " + ref.String(), "ratings " + ref.String()}, calls)
}
