package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/httpresp"
	ucEarnings "github.com/BruksfildServices01/event-marketplace/internal/usecase/earnings"
)

type EarningsHandler struct {
	get     *ucEarnings.GetEarnings
	request *ucEarnings.RequestPayout
}

func NewEarningsHandler(
	get *ucEarnings.GetEarnings,
	request *ucEarnings.RequestPayout,
) *EarningsHandler {
	return &EarningsHandler{
		get:     get,
		request: request,
	}
}

type PayoutRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
	Notes  string  `json:"notes"`
}

func (h *EarningsHandler) Get(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	sum, err := h.get.Execute(c.Request.Context(), a)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, sum)
}

func (h *EarningsHandler) RequestPayout(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	var req PayoutRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.request.Execute(c.Request.Context(), ucEarnings.PayoutInput{
		Actor:  a,
		Amount: req.Amount,
		Method: req.Method,
		Notes:  req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, p)
}
