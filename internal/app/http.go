package app

import (
	"github.com/frqgit/year-7-math/internal/http"
	httpH "github.com/frqgit/year-7-math/internal/http/handlers"
	httpMW "github.com/frqgit/year-7-math/internal/http/middleware"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	Profile     *httpH.ProfileHandler
	Game        *httpH.GameHandler
	Achievement *httpH.AchievementHandler
	Wallet      *httpH.WalletHandler
	Leaderboard *httpH.LeaderboardHandler
	Question    *httpH.QuestionHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Auth:        httpH.NewAuthHandler(services.Auth),
		Profile:     httpH.NewProfileHandler(services.Auth),
		Game:        httpH.NewGameHandler(services.Game),
		Achievement: httpH.NewAchievementHandler(services.Achievement),
		Wallet:      httpH.NewWalletHandler(services.Wallet),
		Leaderboard: httpH.NewLeaderboardHandler(services.Leaderboard),
		Question:    httpH.NewQuestionHandler(services.Question),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		AuthMiddleware:     middleware.Auth,
		ProfileHandler:     handlers.Profile,
		GameHandler:        handlers.Game,
		AchievementHandler: handlers.Achievement,
		WalletHandler:      handlers.Wallet,
		LeaderboardHandler: handlers.Leaderboard,
		QuestionHandler:    handlers.Question,
	})
}
