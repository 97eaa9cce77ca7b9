package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/domain"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *domain.GameSession) error
	// ListByUser returns the user's sessions newest first, at most limit.
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.GameSession, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, session *domain.GameSession) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Create(session).Error
}

func (sr *sessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.GameSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*domain.GameSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
