package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/domain"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

type UserAchievementRepo interface {
	// Create inserts one unlock row. On a duplicate (userID, achievementID)
	// pair the store's unique constraint fires; callers classify that with
	// errors.IsUniqueViolation and treat it as already unlocked.
	Create(ctx context.Context, tx *gorm.DB, unlock *domain.UserAchievement) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserAchievement, error)
	UnlockedIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (map[uuid.UUID]bool, error)
}

type userAchievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserAchievementRepo(db *gorm.DB, baseLog *logger.Logger) UserAchievementRepo {
	repoLog := baseLog.With("repo", "UserAchievementRepo")
	return &userAchievementRepo{db: db, log: repoLog}
}

func (uar *userAchievementRepo) Create(ctx context.Context, tx *gorm.DB, unlock *domain.UserAchievement) error {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	return transaction.WithContext(ctx).Create(unlock).Error
}

func (uar *userAchievementRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	var results []*domain.UserAchievement
	if err := transaction.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (uar *userAchievementRepo) UnlockedIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&domain.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
