package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/platform/logger"
	"github.com/frqgit/year-7-math/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Wallet      services.WalletService
	Achievement services.AchievementService
	Game        services.GameService
	Leaderboard services.LeaderboardService
	Question    services.QuestionService
}

func wireServices(db *gorm.DB, rdb *redis.Client, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	leaderboard := services.NewLeaderboardService(db, rdb, r.Profiles, log)
	wallet := services.NewWalletService(db, r.Profiles, r.Transactions, leaderboard, log)
	achievement := services.NewAchievementService(db, r.Achievements, r.UserAchievements, r.Sessions, wallet, log)
	game := services.NewGameService(db, r.Profiles, r.Sessions, wallet, achievement, leaderboard, log)
	auth := services.NewAuthService(
		db, r.Users, r.Profiles, r.UserAchievements, r.Tokens,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log,
	)

	return Services{
		Auth:        auth,
		Wallet:      wallet,
		Achievement: achievement,
		Game:        game,
		Leaderboard: leaderboard,
		Question:    services.NewQuestionService(log),
	}
}
