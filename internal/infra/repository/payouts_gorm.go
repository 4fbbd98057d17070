package repository

import (
	"context"

	"github.com/BruksfildServices01/event-marketplace/internal/models"
)

// --------------------------------------------------
// Payouts
// --------------------------------------------------

func (r *GormRepository) CreatePayout(
	ctx context.Context,
	p *models.Payout,
) error {
	return mapErr(r.conn(ctx).Create(p).Error)
}

func (r *GormRepository) SumPayouts(
	ctx context.Context,
	payeeUserID uint,
	status string,
) (float64, error) {

	var sum float64
	if err := r.conn(ctx).
		Model(&models.Payout{}).
		Where("payee_user_id = ? AND status = ?", payeeUserID, status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}
