package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/rating"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// --------------------------------------------------
// Providers
// --------------------------------------------------

func organizerRecord(o models.Organizer) *provider.Record {
	return &provider.Record{
		Ref:           provider.Organizer(o.ID),
		UserID:        o.UserID,
		Name:          o.BusinessName,
		Active:        o.IsActive,
		AverageRating: o.AverageRating,
		TotalReviews:  o.TotalReviews,
	}
}

func supplierRecord(s models.Supplier) *provider.Record {
	return &provider.Record{
		Ref:           provider.Supplier(s.ID),
		UserID:        s.UserID,
		Name:          s.BusinessName,
		Active:        s.IsActive,
		AverageRating: s.AverageRating,
		TotalReviews:  s.TotalReviews,
	}
}

// providerModel returns an empty row of the table behind kind.
func providerModel(kind provider.Kind) (any, bool) {
	switch kind {
	case provider.KindOrganizer:
		return &models.Organizer{}, true
	case provider.KindSupplier:
		return &models.Supplier{}, true
	}
	return nil, false
}

func (r *GormRepository) findProvider(
	db *gorm.DB,
	kind provider.Kind,
	query string,
	arg uint,
) (*provider.Record, error) {

	switch kind {
	case provider.KindOrganizer:
		var o models.Organizer
		if err := db.Where(query, arg).First(&o).Error; err != nil {
			return nil, mapErr(err)
		}
		return organizerRecord(o), nil

	case provider.KindSupplier:
		var s models.Supplier
		if err := db.Where(query, arg).First(&s).Error; err != nil {
			return nil, mapErr(err)
		}
		return supplierRecord(s), nil
	}
	return nil, store.ErrNotFound
}

func (r *GormRepository) ResolveProvider(
	ctx context.Context,
	ref provider.Ref,
) (*provider.Record, error) {
	return r.findProvider(r.conn(ctx), ref.Kind, "id = ?", ref.ID)
}

func (r *GormRepository) ResolveProviderForUpdate(
	ctx context.Context,
	ref provider.Ref,
) (*provider.Record, error) {
	return r.findProvider(r.locked(ctx), ref.Kind, "id = ?", ref.ID)
}

func (r *GormRepository) GetProviderByUser(
	ctx context.Context,
	kind provider.Kind,
	userID uint,
) (*provider.Record, error) {
	return r.findProvider(r.conn(ctx), kind, "user_id = ?", userID)
}

func (r *GormRepository) ListProviders(
	ctx context.Context,
) ([]provider.Ref, error) {

	var orgIDs, supIDs []uint
	if err := r.conn(ctx).
		Model(&models.Organizer{}).
		Order("id").
		Pluck("id", &orgIDs).Error; err != nil {
		return nil, err
	}
	if err := r.conn(ctx).
		Model(&models.Supplier{}).
		Order("id").
		Pluck("id", &supIDs).Error; err != nil {
		return nil, err
	}

	refs := make([]provider.Ref, 0, len(orgIDs)+len(supIDs))
	for _, id := range orgIDs {
		refs = append(refs, provider.Organizer(id))
	}
	for _, id := range supIDs {
		refs = append(refs, provider.Supplier(id))
	}
	return refs, nil
}

func (r *GormRepository) SaveProviderRating(
	ctx context.Context,
	ref provider.Ref,
	agg rating.Aggregate,
) error {

	model, ok := providerModel(ref.Kind)
	if !ok {
		return store.ErrNotFound
	}
	return affected(r.conn(ctx).
		Model(model).
		Where("id = ?", ref.ID).
		Updates(map[string]any{
			"average_rating": agg.Average,
			"total_reviews":  agg.Total,
		}))
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *GormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.conn(ctx).First(&s, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *GormRepository) ListServiceIDsByProvider(
	ctx context.Context,
	ref provider.Ref,
) ([]uint, error) {

	var ids []uint
	if err := r.conn(ctx).
		Model(&models.Service{}).
		Where("provider_id = ? AND provider_type = ?", ref.ID, string(ref.Kind)).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormRepository) SaveServiceRating(
	ctx context.Context,
	serviceID uint,
	agg rating.Aggregate,
) error {
	return affected(r.conn(ctx).
		Model(&models.Service{}).
		Where("id = ?", serviceID).
		Updates(map[string]any{
			"average_rating": agg.Average,
			"total_reviews":  agg.Total,
		}))
}
