package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/domain"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *domain.UserProfile) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.UserProfile, error)
	GetByUserIDWithUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.UserProfile, error)
	// IncrementCounters atomically adds one finished round to the lifetime
	// counters and raises highest_streak when streak exceeds it. Increments
	// are applied in SQL so concurrent rounds never overwrite each other.
	IncrementCounters(ctx context.Context, tx *gorm.DB, userID uuid.UUID, questionsAnswered, correctAnswers, streak int) error
	// AddCoins atomically increments total_coins by amount (may be negative
	// only via SpendCoins, which also enforces the balance check).
	AddCoins(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) error
	// SpendCoins issues a single conditional decrement:
	//   UPDATE ... SET total_coins = total_coins - ?
	//   WHERE user_id = ? AND total_coins >= ?
	// and reports how many rows were updated. Zero rows means the balance
	// check failed (or the profile does not exist); the balance is untouched.
	SpendCoins(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (int64, error)
	TopByCoins(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.UserProfile, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *domain.UserProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Create(profile).Error
}

func (pr *profileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result domain.UserProfile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (pr *profileRepo) GetByUserIDWithUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result domain.UserProfile
	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (pr *profileRepo) IncrementCounters(ctx context.Context, tx *gorm.DB, userID uuid.UUID, questionsAnswered, correctAnswers, streak int) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"games_played":          gorm.Expr("games_played + 1"),
			"total_correct_answers": gorm.Expr("total_correct_answers + ?", correctAnswers),
			"total_questions":       gorm.Expr("total_questions + ?", questionsAnswered),
		}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("user_id = ? AND highest_streak < ?", userID, streak).
		Update("highest_streak", streak).Error
}

func (pr *profileRepo) AddCoins(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("user_id = ?", userID).
		Update("total_coins", gorm.Expr("total_coins + ?", amount)).Error
}

func (pr *profileRepo) SpendCoins(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("user_id = ? AND total_coins >= ?", userID, amount).
		Update("total_coins", gorm.Expr("total_coins - ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (pr *profileRepo) TopByCoins(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*domain.UserProfile
	if err := transaction.WithContext(ctx).
		Preload("User").
		Order("total_coins DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
