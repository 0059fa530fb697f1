package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkrylova/awards-voting/internal/services"
)

type VotingRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

func (v *VotingHandler) CreateVoting(c *gin.Context) {
	var req VotingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "kind": "validation"})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	votingID, err := v.votingService.CreateVoting(c.Request.Context(), actor, services.VotingInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"voting_id": votingID})
}

func (v *VotingHandler) GetVotingByID(c *gin.Context) {
	votingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	voting, err := v.votingService.GetVotingByID(c.Request.Context(), votingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voting": voting})
}

func (v *VotingHandler) GetVotings(c *gin.Context) {
	query := services.VotingsQuery{
		Title:   c.Query("title"),
		Search:  c.Query("search"),
		Active:  c.Query("active") == "true",
		Expired: c.Query("expired") == "true",
		OrderBy: c.Query("order_by"),
		Desc:    c.Query("desc") == "true",
	}

	startAfter, ok := queryTime(c, "start_after")
	if !ok {
		return
	}
	endBefore, ok := queryTime(c, "end_before")
	if !ok {
		return
	}
	query.StartAfter = startAfter
	query.EndBefore = endBefore

	votings, err := v.votingService.ListVotings(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"votings": votings})
}

func (v *VotingHandler) GetActiveVotings(c *gin.Context) {
	votings, err := v.votingService.ActiveVotings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"votings": votings})
}

func (v *VotingHandler) GetExpiredVotings(c *gin.Context) {
	votings, err := v.votingService.ExpiredVotings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"votings": votings})
}

func (v *VotingHandler) UpdateVoting(c *gin.Context) {
	var req VotingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "kind": "validation"})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	votingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := v.votingService.UpdateVoting(c.Request.Context(), actor, votingID, services.VotingInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voting_id": votingID})
}

func (v *VotingHandler) CloseVoting(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	votingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	voting, err := v.votingService.CloseVoting(c.Request.Context(), actor, votingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voting": voting})
}

func (v *VotingHandler) DeleteVoting(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	votingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := v.votingService.DeleteVoting(c.Request.Context(), actor, votingID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}

func (v *VotingHandler) ExportVotings(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="votings.csv"`)

	if err := v.votingService.ExportVotingsCSV(c.Request.Context(), c.Writer); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "kind": "validation"})
		return nil, false
	}
	return &t, true
}
