package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/domain"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

type CoinTransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, transaction *domain.CoinTransaction) error
	// ListByUser returns the user's ledger entries newest first, at most limit.
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.CoinTransaction, error)
	// SumByUser returns the signed sum of all ledger entries for one user.
	// It must equal the profile's total_coins at all times.
	SumByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
}

type coinTransactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoinTransactionRepo(db *gorm.DB, baseLog *logger.Logger) CoinTransactionRepo {
	repoLog := baseLog.With("repo", "CoinTransactionRepo")
	return &coinTransactionRepo{db: db, log: repoLog}
}

func (cr *coinTransactionRepo) Create(ctx context.Context, tx *gorm.DB, transaction *domain.CoinTransaction) error {
	t := tx
	if t == nil {
		t = cr.db
	}
	return t.WithContext(ctx).Create(transaction).Error
}

func (cr *coinTransactionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.CoinTransaction, error) {
	t := tx
	if t == nil {
		t = cr.db
	}

	var results []*domain.CoinTransaction
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *coinTransactionRepo) SumByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	t := tx
	if t == nil {
		t = cr.db
	}

	var sum int
	if err := t.WithContext(ctx).
		Model(&domain.CoinTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}
