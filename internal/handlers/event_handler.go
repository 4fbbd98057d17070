package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-marketplace/internal/dto"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/httpresp"
	ucEvent "github.com/BruksfildServices01/event-marketplace/internal/usecase/event"
)

// ======================================================
// HANDLER
// ======================================================

type EventHandler struct {
	create *ucEvent.CreateEvent
	edit   *ucEvent.EditEvent
	delete *ucEvent.DeleteEvent
	detach *ucEvent.DetachOrganizer
	status *ucEvent.UpdateEventStatus
}

func NewEventHandler(
	create *ucEvent.CreateEvent,
	edit *ucEvent.EditEvent,
	remove *ucEvent.DeleteEvent,
	detach *ucEvent.DetachOrganizer,
	status *ucEvent.UpdateEventStatus,
) *EventHandler {
	return &EventHandler{
		create: create,
		edit:   edit,
		delete: remove,
		detach: detach,
		status: status,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Budget      *float64  `json:"budget"`
	GuestCount  *int      `json:"guest_count"`
	Location    string    `json:"location"`
}

// EditEventRequest leaves absent fields untouched.
type EditEventRequest struct {
	Name        *string    `json:"name"`
	Type        *string    `json:"type"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Budget      *float64   `json:"budget"`
	GuestCount  *int       `json:"guest_count"`
	Location    *string    `json:"location"`
	Status      *string    `json:"status"`
}

type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *EventHandler) Create(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	ev, err := h.create.Execute(c.Request.Context(), ucEvent.CreateInput{
		Actor:       a,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Date:        req.Date,
		Budget:      req.Budget,
		GuestCount:  req.GuestCount,
		Location:    req.Location,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ev)
}

func (h *EventHandler) Edit(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req EditEventRequest
	if !bindJSON(c, &req) {
		return
	}

	ev, err := h.edit.Execute(c.Request.Context(), ucEvent.EditInput{
		EventID:     id,
		Actor:       a,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Date:        req.Date,
		Budget:      req.Budget,
		GuestCount:  req.GuestCount,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ev)
}

func (h *EventHandler) Delete(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), id, a); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *EventHandler) Detach(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	res, err := h.detach.Execute(c.Request.Context(), id, a)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.DetachDTO{
		Event:             res.Event,
		BookingsCancelled: res.Cancelled,
	})
}

func (h *EventHandler) UpdateStatus(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateEventStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.status.Execute(c.Request.Context(), id, req.Status, a)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.EventStatusDTO{
		Event:           res.Event,
		BookingsUpdated: res.Updated,
		BookingsSkipped: res.Skipped,
	})
}
