package repository

import (
	"context"

	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// --------------------------------------------------
// Users / Clients
// --------------------------------------------------

func (r *GormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.conn(ctx).First(&u, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *GormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.conn(ctx).First(&c, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *GormRepository) GetClientByUser(
	ctx context.Context,
	userID uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.conn(ctx).
		Where("user_id = ?", userID).
		First(&c).Error; err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}
