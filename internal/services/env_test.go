package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/data/repos"
	"github.com/frqgit/year-7-math/internal/data/repos/testutil"
)

// testEnv wires the full service stack against a test database, without
// Redis. Tests exercise the services through their public interfaces.
type testEnv struct {
	db           *gorm.DB
	users        repos.UserRepo
	profiles     repos.ProfileRepo
	sessions     repos.SessionRepo
	achievements repos.AchievementRepo
	unlocks      repos.UserAchievementRepo
	txs          repos.CoinTransactionRepo
	tokens       repos.UserTokenRepo

	wallet      WalletService
	achievement AchievementService
	game        GameService
	board       LeaderboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:           db,
		users:        repos.NewUserRepo(db, log),
		profiles:     repos.NewProfileRepo(db, log),
		sessions:     repos.NewSessionRepo(db, log),
		achievements: repos.NewAchievementRepo(db, log),
		unlocks:      repos.NewUserAchievementRepo(db, log),
		txs:          repos.NewCoinTransactionRepo(db, log),
		tokens:       repos.NewUserTokenRepo(db, log),
	}
	env.board = NewLeaderboardService(db, nil, env.profiles, log)
	env.wallet = NewWalletService(db, env.profiles, env.txs, env.board, log)
	env.achievement = NewAchievementService(db, env.achievements, env.unlocks, env.sessions, env.wallet, log)
	env.game = NewGameService(db, env.profiles, env.sessions, env.wallet, env.achievement, env.board, log)
	return env
}
