package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frqgit/year-7-math/internal/services"
)

type ProfileHandler struct {
	authService services.AuthService
}

func NewProfileHandler(authService services.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// GET /api/profile
func (ph *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	profile, err := ph.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}
