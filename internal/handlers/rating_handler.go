package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/dto"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/httpresp"
	ucRating "github.com/BruksfildServices01/event-marketplace/internal/usecase/rating"
)

type RatingHandler struct {
	repo      store.Repository
	recompute *ucRating.RecomputeAll
}

func NewRatingHandler(
	repo store.Repository,
	recompute *ucRating.RecomputeAll,
) *RatingHandler {
	return &RatingHandler{
		repo:      repo,
		recompute: recompute,
	}
}

// Get serves GET /providers/:type/:id/rating with the stored aggregate.
func (h *RatingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	ref, err := provider.Parse(c.Param("type"), uint(id))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	rec, err := h.repo.ResolveProvider(c.Request.Context(), ref)
	if err != nil {
		if store.IsNotFound(err) {
			httperr.Respond(c, httperr.ErrNotFound("provider_not_found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ProviderRatingDTO{
		ProviderType:  string(rec.Ref.Kind),
		ProviderID:    rec.Ref.ID,
		Name:          rec.Name,
		AverageRating: rec.AverageRating,
		TotalReviews:  rec.TotalReviews,
	})
}

func (h *RatingHandler) RecomputeAll(c *gin.Context) {
	sum, err := h.recompute.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, sum)
}
