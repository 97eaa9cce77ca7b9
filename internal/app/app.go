package app

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/db"
	"github.com/frqgit/year-7-math/internal/http"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	if err := db.SeedAchievements(theDB, log); err != nil {
		log.Sync()
		return nil, fmt.Errorf("seed achievements: %w", err)
	}

	rdb := newRedis(cfg, log)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, rdb, log, cfg, reposet)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(handlerset, middleware)

	return &App{
		Log:      log,
		DB:       theDB,
		Redis:    rdb,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

// newRedis connects the leaderboard cache. No address means no cache; the
// leaderboard serves straight from the database.
func newRedis(cfg Config, log *logger.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, leaderboard cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unreachable, leaderboard cache disabled", "error", err)
		return nil
	}
	log.Info("Redis connected", "addr", cfg.RedisAddr)
	return client
}

func (a *App) Run() error {
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn("Redis close failed", "error", err)
		}
	}
	a.Log.Sync()
}
