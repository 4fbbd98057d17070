package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/httperr"
	"github.com/BruksfildServices01/event-marketplace/internal/middleware"
)

// currentActor writes a 401 and returns false when auth did not run.
func currentActor(c *gin.Context) (actor.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "actor_not_in_context", "Authentication required.")
		return actor.Actor{}, false
	}
	return a, true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}
