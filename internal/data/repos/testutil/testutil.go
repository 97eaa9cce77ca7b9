package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frqgit/year-7-math/internal/domain"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	sqliteSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// UsingPostgres reports whether the suite runs against a shared Postgres
// database instead of per-test SQLite.
func UsingPostgres() bool {
	return os.Getenv("TEST_POSTGRES_DSN") != ""
}

// DB opens a migrated database for one test. When TEST_POSTGRES_DSN is set
// the suite runs against Postgres; otherwise each call gets its own
// in-memory SQLite database, so tests never observe each other's writes.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			tb.Fatalf("open test postgres: %v", err)
		}
		migrate(tb, db)
		return db
	}

	name := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared&_busy_timeout=5000", sqliteSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("unwrap test sqlite: %v", err)
	}
	// A single connection keeps the shared in-memory database alive and
	// serializes concurrent transactions the way Postgres row locks would.
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })
	migrate(tb, db)
	return db
}

func migrate(tb testing.TB, db *gorm.DB) {
	tb.Helper()
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.UserToken{},
		&domain.UserProfile{},
		&domain.GameSession{},
		&domain.Achievement{},
		&domain.UserAchievement{},
		&domain.CoinTransaction{},
	); err != nil {
		tb.Fatalf("automigrate test db: %v", err)
	}
}

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, username string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Password: "hashed-pw",
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProfile(tb testing.TB, ctx context.Context, db *gorm.DB, userID uuid.UUID) *domain.UserProfile {
	tb.Helper()
	p := &domain.UserProfile{
		ID:     uuid.New(),
		UserID: userID,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedAchievement(tb testing.TB, ctx context.Context, db *gorm.DB, name, category string, requirement, coinReward int) *domain.Achievement {
	tb.Helper()
	a := &domain.Achievement{
		ID:          uuid.New(),
		Name:        name,
		Description: name,
		Icon:        "star",
		CoinReward:  coinReward,
		Requirement: requirement,
		Category:    category,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed achievement: %v", err)
	}
	return a
}

func SeedSession(tb testing.TB, ctx context.Context, db *gorm.DB, userID uuid.UUID, difficulty, answered, correct, coins int, completedAt time.Time) *domain.GameSession {
	tb.Helper()
	s := &domain.GameSession{
		ID:                uuid.New(),
		UserID:            userID,
		Difficulty:        difficulty,
		QuestionsAnswered: answered,
		CorrectAnswers:    correct,
		CoinsEarned:       coins,
		GameMode:          domain.GameModeStandard,
		CompletedAt:       completedAt,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}
