package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mkrylova/awards-voting/internal/handlers"
)

func RegisterPublicRoutes(rg *gin.RouterGroup, handler *handlers.VotingHandler) {
	{
		rg.GET("/votings", handler.GetVotings)
		rg.GET("/votings/active", handler.GetActiveVotings)
		rg.GET("/votings/expired", handler.GetExpiredVotings)
		rg.GET("/votings/export", handler.ExportVotings)
		rg.GET("/votings/:id", handler.GetVotingByID)

		rg.GET("/nominations", handler.GetNominations)
		rg.GET("/nominations/:id", handler.GetNominationByID)

		rg.GET("/participants", handler.GetParticipants)
		rg.GET("/participants/popular", handler.GetPopularParticipants)
		rg.GET("/participants/:id", handler.GetParticipantByID)
	}
}

func RegisterPrivateRoutes(rg *gin.RouterGroup, handler *handlers.VotingHandler) {
	{
		rg.POST("/votings", handler.CreateVoting)
		rg.PATCH("/votings/:id", handler.UpdateVoting)
		rg.POST("/votings/:id/close", handler.CloseVoting)
		rg.DELETE("/votings/:id", handler.DeleteVoting)

		rg.POST("/nominations", handler.CreateNomination)
		rg.PATCH("/nominations/:id", handler.UpdateNomination)
		rg.DELETE("/nominations/:id", handler.DeleteNomination)

		rg.POST("/participants", handler.CreateParticipant)
		rg.PATCH("/participants/:id", handler.UpdateParticipant)
		rg.DELETE("/participants/:id", handler.DeleteParticipant)

		rg.GET("/votes", handler.GetVotes)
		rg.GET("/votes/history", handler.GetVoteHistory)
		rg.POST("/votes", handler.CastVote)
		rg.DELETE("/votes", handler.RetractVote)
		rg.DELETE("/votes/:id", handler.DeleteVote)

		rg.GET("/logs", handler.GetLogs)
	}
}
