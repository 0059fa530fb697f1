package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkrylova/awards-voting/internal/repo"
)

type CreateNominationRequest struct {
	VotingID    int64  `json:"voting_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateNominationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (v *VotingHandler) CreateNomination(c *gin.Context) {
	var req CreateNominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "kind": "validation"})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	nominationID, err := v.votingService.CreateNomination(c.Request.Context(), actor, req.VotingID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"nomination_id": nominationID})
}

func (v *VotingHandler) GetNominationByID(c *gin.Context) {
	nominationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	nomination, err := v.votingService.GetNominationByID(c.Request.Context(), nominationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nomination": nomination})
}

func (v *VotingHandler) GetNominations(c *gin.Context) {
	votingID, ok := queryInt64(c, "voting")
	if !ok {
		return
	}

	nominations, err := v.votingService.ListNominations(c.Request.Context(), repo.NominationFilter{
		VotingID: votingID,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nominations": nominations})
}

func (v *VotingHandler) UpdateNomination(c *gin.Context) {
	var req UpdateNominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "kind": "validation"})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	nominationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := v.votingService.UpdateNomination(c.Request.Context(), actor, nominationID, req.Title, req.Description); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nomination_id": nominationID})
}

func (v *VotingHandler) DeleteNomination(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	nominationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := v.votingService.DeleteNomination(c.Request.Context(), actor, nominationID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
