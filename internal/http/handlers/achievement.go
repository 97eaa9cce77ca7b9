package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frqgit/year-7-math/internal/services"
)

type AchievementHandler struct {
	achievementService services.AchievementService
}

func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// GET /api/achievements
func (ah *AchievementHandler) ListCatalog(c *gin.Context) {
	catalog, err := ah.achievementService.ListCatalog(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"achievements": catalog})
}

// GET /api/achievements/user
func (ah *AchievementHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	unlocked, err := ah.achievementService.ListUserAchievements(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"achievements": unlocked})
}
