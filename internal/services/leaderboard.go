package services

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/data/repos"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

const leaderboardKey = "leaderboard:coins"

// LeaderboardEntry is one ranked row of the coin leaderboard.
type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	TotalCoins    int       `json:"total_coins"`
	GamesPlayed   int       `json:"games_played"`
	HighestStreak int       `json:"highest_streak"`
}

// LeaderboardService ranks users by total coins. The database is the source
// of truth; a Redis sorted set is kept as a write-through cache and consulted
// first when available. A nil Redis client disables caching entirely.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
	RecordCoins(ctx context.Context, userID uuid.UUID, totalCoins int)
}

type leaderboardService struct {
	db       *gorm.DB
	rdb      *redis.Client
	profiles repos.ProfileRepo
	log      *logger.Logger
}

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client, profiles repos.ProfileRepo, baseLog *logger.Logger) LeaderboardService {
	return &leaderboardService{
		db:       db,
		rdb:      rdb,
		profiles: profiles,
		log:      baseLog.With("service", "leaderboard"),
	}
}

func (ls *leaderboardService) Top(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if ls.rdb != nil {
		entries, err := ls.topFromCache(ctx, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			ls.log.Warn("leaderboard cache read failed, falling back to database", "error", err)
		}
	}
	return ls.topFromDB(ctx, limit)
}

// RecordCoins writes the user's new balance into the cache. Failures are
// logged and swallowed: the cache repopulates from the database on the next
// miss.
func (ls *leaderboardService) RecordCoins(ctx context.Context, userID uuid.UUID, totalCoins int) {
	if ls.rdb == nil {
		return
	}
	member := redis.Z{Score: float64(totalCoins), Member: userID.String()}
	if err := ls.rdb.ZAdd(ctx, leaderboardKey, member).Err(); err != nil {
		ls.log.Warn("leaderboard cache write failed", "user_id", userID, "error", err)
	}
}

func (ls *leaderboardService) topFromCache(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	zs, err := ls.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]*LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		userID, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		profile, err := ls.profiles.GetByUserIDWithUser(ctx, nil, userID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		username := profile.User.Username
		if username == "" {
			username = "player-" + strconv.Itoa(i+1)
		}
		entries = append(entries, &LeaderboardEntry{
			Rank:          i + 1,
			UserID:        userID,
			Username:      username,
			TotalCoins:    int(z.Score),
			GamesPlayed:   profile.GamesPlayed,
			HighestStreak: profile.HighestStreak,
		})
	}
	return entries, nil
}

func (ls *leaderboardService) topFromDB(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	profiles, err := ls.profiles.TopByCoins(ctx, nil, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]*LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, &LeaderboardEntry{
			Rank:          i + 1,
			UserID:        p.UserID,
			Username:      p.User.Username,
			TotalCoins:    p.TotalCoins,
			GamesPlayed:   p.GamesPlayed,
			HighestStreak: p.HighestStreak,
		})
		ls.RecordCoins(ctx, p.UserID, p.TotalCoins)
	}
	return entries, nil
}
