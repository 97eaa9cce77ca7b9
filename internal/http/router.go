package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/frqgit/year-7-math/internal/http/handlers"
	httpMW "github.com/frqgit/year-7-math/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	ProfileHandler     *httpH.ProfileHandler
	GameHandler        *httpH.GameHandler
	AchievementHandler *httpH.AchievementHandler
	WalletHandler      *httpH.WalletHandler
	LeaderboardHandler *httpH.LeaderboardHandler
	QuestionHandler    *httpH.QuestionHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/signup", cfg.AuthHandler.Signup)
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		}

		// Leaderboard (public)
		if cfg.LeaderboardHandler != nil {
			api.GET("/leaderboard", cfg.LeaderboardHandler.Top)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.GET("/auth/me", cfg.AuthHandler.Me)
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// Profile
		if cfg.ProfileHandler != nil {
			protected.GET("/profile", cfg.ProfileHandler.Get)
		}

		// Game rounds
		if cfg.GameHandler != nil {
			protected.POST("/game/complete", cfg.GameHandler.Complete)
			protected.GET("/game/sessions", cfg.GameHandler.ListSessions)
		}

		// Achievements
		if cfg.AchievementHandler != nil {
			protected.GET("/achievements", cfg.AchievementHandler.ListCatalog)
			protected.GET("/achievements/user", cfg.AchievementHandler.ListMine)
		}

		// Coins
		if cfg.WalletHandler != nil {
			protected.POST("/coins/spend", cfg.WalletHandler.Spend)
			protected.GET("/coins/transactions", cfg.WalletHandler.ListTransactions)
		}

		// Question generation
		if cfg.QuestionHandler != nil {
			protected.GET("/questions", cfg.QuestionHandler.Generate)
			protected.GET("/questions/kinds", cfg.QuestionHandler.Kinds)
			protected.GET("/questions/tables/:table", cfg.QuestionHandler.Table)
		}
	}

	return r
}
