package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/dto"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/event-marketplace/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo        store.Repository
	create      *ucBooking.CreateBooking
	transition  *ucBooking.TransitionBooking
	finalAmount *ucBooking.SetFinalAmount
}

func NewBookingHandler(
	repo store.Repository,
	create *ucBooking.CreateBooking,
	transition *ucBooking.TransitionBooking,
	finalAmount *ucBooking.SetFinalAmount,
) *BookingHandler {
	return &BookingHandler{
		repo:        repo,
		create:      create,
		transition:  transition,
		finalAmount: finalAmount,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID   uint     `json:"service_id" binding:"required"`
	EventID     uint     `json:"event_id" binding:"required"`
	QuoteAmount *float64 `json:"quote_amount"`
	Notes       string   `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type FinalAmountRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.repo.GetClientByUser(c.Request.Context(), a.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			httperr.Respond(c, httperr.ErrUnauthorized("client_profile_required"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateInput{
		Actor:       a,
		ClientID:    client.ID,
		ServiceID:   req.ServiceID,
		EventID:     req.EventID,
		QuoteAmount: req.QuoteAmount,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.transition.Execute(c.Request.Context(), ucBooking.TransitionInput{
		BookingID: id,
		Status:    req.Status,
		Actor:     a,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.BookingStatusDTO{
		Booking: res.Booking,
		Event:   res.Event,
		Changed: res.Changed,
	})
}

func (h *BookingHandler) SetFinalAmount(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req FinalAmountRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.finalAmount.Execute(c.Request.Context(), ucBooking.FinalAmountInput{
		BookingID: id,
		Amount:    req.Amount,
		Actor:     a,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}
