package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkrylova/awards-voting/internal/repo"
)

type CastVoteRequest struct {
	ParticipantID int64 `json:"participant_id" binding:"required"`
}

func (v *VotingHandler) CastVote(c *gin.Context) {
	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "kind": "validation"})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	vote, err := v.votingService.CastVote(c.Request.Context(), actor, req.ParticipantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vote": vote})
}

// RetractVote removes the caller's ballot in the nomination of the given
// participant. Succeeds with 204 even when there was nothing to retract.
func (v *VotingHandler) RetractVote(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	participantID, ok := queryInt64(c, "participant_id")
	if !ok {
		return
	}
	if participantID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participant_id is required", "kind": "validation"})
		return
	}

	if err := v.votingService.RetractVote(c.Request.Context(), actor, *participantID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}

func (v *VotingHandler) DeleteVote(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	voteID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := v.votingService.DeleteVote(c.Request.Context(), actor, voteID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}

func (v *VotingHandler) GetVotes(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	userID, ok := queryInt64(c, "user")
	if !ok {
		return
	}
	participantID, ok := queryInt64(c, "participant")
	if !ok {
		return
	}
	nominationID, ok := queryInt64(c, "nomination")
	if !ok {
		return
	}
	votingID, ok := queryInt64(c, "voting")
	if !ok {
		return
	}

	var target int64
	if userID != nil {
		target = *userID
	}

	votes, err := v.votingService.ListVotes(c.Request.Context(), actor, target, repo.VoteFilter{
		ParticipantID: participantID,
		NominationID:  nominationID,
		VotingID:      votingID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"votes": votes})
}

func (v *VotingHandler) GetVoteHistory(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	votes, err := v.votingService.VoteHistory(c.Request.Context(), actor, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"votes": votes})
}

func (v *VotingHandler) GetLogs(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	logs, err := v.votingService.GetLogs(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
