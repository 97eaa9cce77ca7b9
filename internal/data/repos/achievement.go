package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/domain"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

type AchievementRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Achievement, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	repoLog := baseLog.With("repo", "AchievementRepo")
	return &achievementRepo{db: db, log: repoLog}
}

func (ar *achievementRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*domain.Achievement
	if err := transaction.WithContext(ctx).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
