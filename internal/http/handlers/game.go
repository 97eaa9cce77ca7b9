package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frqgit/year-7-math/internal/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// POST /api/game/complete
// body: { "difficulty": 1, "questions_answered": 10, "correct_answers": 8, "coins_earned": 8, "game_mode": "standard" }
func (gh *GameHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		Difficulty        int    `json:"difficulty"`
		QuestionsAnswered int    `json:"questions_answered"`
		CorrectAnswers    int    `json:"correct_answers"`
		CoinsEarned       int    `json:"coins_earned"`
		GameMode          string `json:"game_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := gh.gameService.RecordSession(c.Request.Context(), userID, services.RecordSessionInput{
		Difficulty:        req.Difficulty,
		QuestionsAnswered: req.QuestionsAnswered,
		CorrectAnswers:    req.CorrectAnswers,
		CoinsEarned:       req.CoinsEarned,
		GameMode:          req.GameMode,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/game/sessions?limit=20
func (gh *GameHandler) ListSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	sessions, err := gh.gameService.ListSessions(c.Request.Context(), userID, queryInt(c, "limit", 20))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}
