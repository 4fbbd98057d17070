package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-marketplace/internal/dto"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/httpresp"
	ucNotification "github.com/BruksfildServices01/event-marketplace/internal/usecase/notification"
)

type NotificationHandler struct {
	notifier *ucNotification.Notifier
}

func NewNotificationHandler(notifier *ucNotification.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

func (h *NotificationHandler) List(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.notifier.List(c.Request.Context(), a, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	n, err := h.notifier.UnreadCount(c.Request.Context(), a)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.UnreadCountDTO{Unread: n})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	n, err := h.notifier.MarkRead(c.Request.Context(), a, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	n, err := h.notifier.MarkAllRead(c.Request.Context(), a)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"updated": n})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifier.Delete(c.Request.Context(), a, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
