package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkrylova/awards-voting/internal/repo"
)

type CreateParticipantRequest struct {
	NominationID int64   `json:"nomination_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	AvatarURL    *string `json:"avatar_url"`
}

type UpdateParticipantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
}

func (v *VotingHandler) CreateParticipant(c *gin.Context) {
	var req CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "kind": "validation"})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	participantID, err := v.votingService.CreateParticipant(c.Request.Context(), actor, req.NominationID, req.Name, req.Description, req.AvatarURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"participant_id": participantID})
}

func (v *VotingHandler) GetParticipantByID(c *gin.Context) {
	participantID, ok := paramID(c, "id")
	if !ok {
		return
	}

	participant, err := v.votingService.GetParticipantByID(c.Request.Context(), participantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participant": participant})
}

func (v *VotingHandler) GetParticipants(c *gin.Context) {
	nominationID, ok := queryInt64(c, "nomination")
	if !ok {
		return
	}

	participants, err := v.votingService.ListParticipants(c.Request.Context(), repo.ParticipantFilter{
		NominationID: nominationID,
		Search:       c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

func (v *VotingHandler) GetPopularParticipants(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	participants, err := v.votingService.PopularParticipants(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

func (v *VotingHandler) UpdateParticipant(c *gin.Context) {
	var req UpdateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "kind": "validation"})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	participantID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := v.votingService.UpdateParticipant(c.Request.Context(), actor, participantID, req.Name, req.Description, req.AvatarURL); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participant_id": participantID})
}

func (v *VotingHandler) DeleteParticipant(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	participantID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := v.votingService.DeleteParticipant(c.Request.Context(), actor, participantID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
