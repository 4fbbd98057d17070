package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/provider"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/httpresp"
)

type MeHandler struct {
	repo store.Repository
}

func NewMeHandler(repo store.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

// GetMe returns the caller's user row and, for providers, the provider
// profile the token resolves to.
func (h *MeHandler) GetMe(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.repo.GetUser(c.Request.Context(), a.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			httperr.Respond(c, httperr.ErrNotFound("user_not_found"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	out := gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.FullName(),
			"email": user.Email,
			"role":  a.Role,
		},
	}

	if kind, ok := provider.KindForRole(a.Role); ok {
		if rec, err := h.repo.GetProviderByUser(c.Request.Context(), kind, a.UserID); err == nil {
			out["provider"] = gin.H{
				"type":           rec.Ref.Kind,
				"id":             rec.Ref.ID,
				"name":           rec.Name,
				"average_rating": rec.AverageRating,
				"total_reviews":  rec.TotalReviews,
			}
		}
	}

	httpresp.OK(c, out)
}
