package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/data/repos"
	"github.com/frqgit/year-7-math/internal/domain"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

// evaluationWindow caps how many recent sessions the history-based
// predicates look at.
const evaluationWindow = 50

// AchievementService evaluates the catalog against a user's stats and
// unlocks whatever newly qualifies. Unlocks are idempotent: the composite
// unique index on (user_id, achievement_id) makes a repeat unlock a no-op.
type AchievementService interface {
	Evaluate(ctx context.Context, userID uuid.UUID, profile *domain.UserProfile) ([]*domain.Achievement, error)
	ListCatalog(ctx context.Context) ([]*domain.Achievement, error)
	ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*domain.UserAchievement, error)
}

type achievementService struct {
	db           *gorm.DB
	achievements repos.AchievementRepo
	unlocks      repos.UserAchievementRepo
	sessions     repos.SessionRepo
	wallet       WalletService
	log          *logger.Logger
}

func NewAchievementService(db *gorm.DB, achievements repos.AchievementRepo, unlocks repos.UserAchievementRepo, sessions repos.SessionRepo, wallet WalletService, baseLog *logger.Logger) AchievementService {
	return &achievementService{
		db:           db,
		achievements: achievements,
		unlocks:      unlocks,
		sessions:     sessions,
		wallet:       wallet,
		log:          baseLog.With("service", "achievement"),
	}
}

func (as *achievementService) ListCatalog(ctx context.Context) ([]*domain.Achievement, error) {
	return as.achievements.List(ctx, nil)
}

func (as *achievementService) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*domain.UserAchievement, error) {
	return as.unlocks.ListByUser(ctx, nil, userID)
}

// Evaluate checks every locked achievement against the profile and the
// recent session window, unlocking each one that qualifies. It returns only
// the achievements unlocked by this call, so a second run over the same
// stats returns an empty slice.
func (as *achievementService) Evaluate(ctx context.Context, userID uuid.UUID, profile *domain.UserProfile) ([]*domain.Achievement, error) {
	catalog, err := as.achievements.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	unlocked, err := as.unlocks.UnlockedIDs(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := as.sessions.ListByUser(ctx, nil, userID, evaluationWindow)
	if err != nil {
		return nil, err
	}

	newly := make([]*domain.Achievement, 0)
	for _, achievement := range catalog {
		if unlocked[achievement.ID] {
			continue
		}
		if !satisfied(achievement, profile, sessions) {
			continue
		}
		won, err := as.unlock(ctx, userID, achievement)
		if err != nil {
			return nil, err
		}
		if won {
			newly = append(newly, achievement)
		}
	}
	return newly, nil
}

// unlock records the user achievement and credits its coin reward in one
// transaction. A unique violation means another request already unlocked it,
// which is not an error.
func (as *achievementService) unlock(ctx context.Context, userID uuid.UUID, achievement *domain.Achievement) (bool, error) {
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &domain.UserAchievement{
			ID:            uuid.New(),
			UserID:        userID,
			AchievementID: achievement.ID,
			UnlockedAt:    time.Now().UTC(),
		}
		if err := as.unlocks.Create(ctx, tx, record); err != nil {
			return err
		}
		if achievement.CoinReward > 0 {
			desc := fmt.Sprintf("Achievement: %s", achievement.Name)
			if _, err := as.wallet.Credit(ctx, tx, userID, achievement.CoinReward, domain.TxTypeAchievement, desc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	as.log.Info("achievement unlocked", "user_id", userID, "achievement", achievement.Name)
	return true, nil
}

// satisfied reports whether the profile and session history meet the
// achievement's requirement. Speed and daily streak use lifetime counters as
// proxies because per-question timing and calendar tracking are not stored.
func satisfied(a *domain.Achievement, profile *domain.UserProfile, sessions []*domain.GameSession) bool {
	req := a.Requirement
	switch a.Category {
	case domain.CategoryGames:
		return profile.GamesPlayed >= req
	case domain.CategoryCoins:
		return profile.TotalCoins >= req
	case domain.CategoryStreak:
		return profile.HighestStreak >= req
	case domain.CategoryAccuracy:
		return profile.TotalQuestions > 0 && profile.Accuracy() >= float64(req)
	case domain.CategoryDifficulty:
		return distinctDifficulties(sessions) >= req
	case domain.CategorySpeed:
		return profile.TotalCorrectAnswers >= req
	case domain.CategoryPerfectGame:
		for _, s := range sessions {
			if s.QuestionsAnswered >= 10 && s.Clean() {
				return true
			}
		}
		return false
	case domain.CategoryConsistency:
		if len(sessions) < req {
			return false
		}
		for _, s := range sessions[:req] {
			if s.QuestionsAnswered == 0 || s.Accuracy() < 0.8 {
				return false
			}
		}
		return true
	case domain.CategoryDailyStreak:
		return profile.GamesPlayed >= req
	default:
		return false
	}
}

func distinctDifficulties(sessions []*domain.GameSession) int {
	seen := make(map[int]bool, 5)
	for _, s := range sessions {
		seen[s.Difficulty] = true
	}
	return len(seen)
}
