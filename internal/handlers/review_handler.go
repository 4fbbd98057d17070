package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/httpresp"
	ucReview "github.com/BruksfildServices01/event-marketplace/internal/usecase/review"
)

type ReviewHandler struct {
	create *ucReview.CreateReview
	edit   *ucReview.EditReview
	delete *ucReview.DeleteReview
}

func NewReviewHandler(
	create *ucReview.CreateReview,
	edit *ucReview.EditReview,
	remove *ucReview.DeleteReview,
) *ReviewHandler {
	return &ReviewHandler{
		create: create,
		edit:   edit,
		delete: remove,
	}
}

type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

type EditReviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.create.Execute(c.Request.Context(), ucReview.CreateInput{
		BookingID: req.BookingID,
		Actor:     a,
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, r)
}

func (h *ReviewHandler) Edit(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req EditReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.edit.Execute(c.Request.Context(), ucReview.EditInput{
		ReviewID: id,
		Actor:    a,
		Rating:   req.Rating,
		Text:     req.Text,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, r)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.delete.Execute(c.Request.Context(), id, a); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
