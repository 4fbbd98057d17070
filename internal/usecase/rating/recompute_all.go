package rating

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
)

type RepairSummary struct {
	Providers int `json:"providers"`
	Failed    int `json:"failed"`
}

// RecomputeAll is the repair pass for aggregates left stale by a failed
// recompute. One provider failing does not stop the pass.
type RecomputeAll struct {
	repo      store.Repository
	recompute *RecomputeRating
	log       *zap.Logger
}

func NewRecomputeAll(
	repo store.Repository,
	recompute *RecomputeRating,
	log *zap.Logger,
) *RecomputeAll {
	return &RecomputeAll{
		repo:      repo,
		recompute: recompute,
		log:       log,
	}
}

func (uc *RecomputeAll) Execute(ctx context.Context) (RepairSummary, error) {
	refs, err := uc.repo.ListProviders(ctx)
	if err != nil {
		return RepairSummary{}, err
	}

	var sum RepairSummary
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		sum.Providers++
		if _, err := uc.recompute.Execute(ctx, ref); err != nil {
			sum.Failed++
			uc.log.Error("rating repair failed", zap.Stringer("provider", ref), zap.Error(err))
		}
	}

	uc.log.Info("rating repair finished",
		zap.Int("providers", sum.Providers),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}
