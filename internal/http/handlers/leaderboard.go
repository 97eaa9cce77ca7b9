package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frqgit/year-7-math/internal/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GET /api/leaderboard?limit=10
func (lh *LeaderboardHandler) Top(c *gin.Context) {
	entries, err := lh.leaderboardService.Top(c.Request.Context(), queryInt(c, "limit", 10))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"leaderboard": entries})
}
