package app

import (
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/data/repos"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

type Repos struct {
	Users            repos.UserRepo
	Profiles         repos.ProfileRepo
	Sessions         repos.SessionRepo
	Achievements     repos.AchievementRepo
	UserAchievements repos.UserAchievementRepo
	Transactions     repos.CoinTransactionRepo
	Tokens           repos.UserTokenRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Users:            repos.NewUserRepo(db, log),
		Profiles:         repos.NewProfileRepo(db, log),
		Sessions:         repos.NewSessionRepo(db, log),
		Achievements:     repos.NewAchievementRepo(db, log),
		UserAchievements: repos.NewUserAchievementRepo(db, log),
		Transactions:     repos.NewCoinTransactionRepo(db, log),
		Tokens:           repos.NewUserTokenRepo(db, log),
	}
}
