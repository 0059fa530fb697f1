package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkrylova/awards-voting/internal/middleware"
	"github.com/mkrylova/awards-voting/internal/services"
)

type VotingHandler struct {
	votingService *services.AwardsVoting
}

func NewVotingHandler(votingService *services.AwardsVoting) *VotingHandler {
	return &VotingHandler{votingService: votingService}
}

// respondError maps service error kinds to HTTP statuses. The kind field is
// the machine-readable discriminator; not_active and conflict share 409.
func respondError(c *gin.Context, err error) {
	status, kind := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, services.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, services.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrPermission):
		status, kind = http.StatusForbidden, "permission"
	case errors.Is(err, services.ErrNotActive):
		status, kind = http.StatusConflict, "not_active"
	case errors.Is(err, services.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	}

	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error", "kind": kind})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

// actorFromContext pulls the authenticated caller out of the gin context.
// Writes the error response itself when the request is not authenticated.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userIDValue, exists := c.Get(middleware.CtxUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "kind": "unauthenticated"})
		return services.Actor{}, false
	}

	userID, ok := userIDValue.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user id in context", "kind": "internal"})
		return services.Actor{}, false
	}

	actor := services.Actor{ID: userID}
	if email, ok := c.Get(middleware.CtxUserEmail); ok {
		actor.Email, _ = email.(string)
	}
	if isAdmin, ok := c.Get(middleware.CtxIsAdmin); ok {
		actor.IsAdmin, _ = isAdmin.(bool)
	}

	return actor, true
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "kind": "validation"})
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "kind": "validation"})
		return nil, false
	}
	return &v, true
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "kind": "validation"})
		return 0, false
	}
	return v, true
}
