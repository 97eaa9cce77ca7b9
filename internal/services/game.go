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

// RecordSessionInput is a finished round as reported by the client.
type RecordSessionInput struct {
	Difficulty        int
	QuestionsAnswered int
	CorrectAnswers    int
	CoinsEarned       int
	GameMode          string
}

// RecordSessionResult is everything the client needs after a round: the
// stored session, the profile after all rewards, and whatever achievements
// this round unlocked.
type RecordSessionResult struct {
	Session         *domain.GameSession   `json:"session"`
	Profile         *domain.UserProfile   `json:"profile"`
	NewAchievements []*domain.Achievement `json:"new_achievements"`
}

// GameService records completed rounds. A round updates the session log, the
// profile counters, and the coin ledger in one database transaction, then
// runs achievement evaluation on the committed stats.
type GameService interface {
	RecordSession(ctx context.Context, userID uuid.UUID, input RecordSessionInput) (*RecordSessionResult, error)
	ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.GameSession, error)
}

type gameService struct {
	db           *gorm.DB
	profiles     repos.ProfileRepo
	sessions     repos.SessionRepo
	wallet       WalletService
	achievements AchievementService
	board        LeaderboardService
	log          *logger.Logger
}

func NewGameService(db *gorm.DB, profiles repos.ProfileRepo, sessions repos.SessionRepo, wallet WalletService, achievements AchievementService, board LeaderboardService, baseLog *logger.Logger) GameService {
	return &gameService{
		db:           db,
		profiles:     profiles,
		sessions:     sessions,
		wallet:       wallet,
		achievements: achievements,
		board:        board,
		log:          baseLog.With("service", "game"),
	}
}

func (gs *gameService) RecordSession(ctx context.Context, userID uuid.UUID, input RecordSessionInput) (*RecordSessionResult, error) {
	if err := validateSessionInput(input); err != nil {
		return nil, err
	}
	mode := input.GameMode
	if mode == "" {
		mode = domain.GameModeStandard
	}

	session := &domain.GameSession{
		ID:                uuid.New(),
		UserID:            userID,
		Difficulty:        input.Difficulty,
		QuestionsAnswered: input.QuestionsAnswered,
		CorrectAnswers:    input.CorrectAnswers,
		CoinsEarned:       input.CoinsEarned,
		GameMode:          mode,
		CompletedAt:       time.Now().UTC(),
	}

	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := gs.profiles.GetByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := gs.sessions.Create(ctx, tx, session); err != nil {
			return err
		}

		// A clean round extends the running streak by this round's correct
		// answers; any miss resets it to zero. The repo only writes the
		// streak when it beats the stored highest.
		streak := 0
		if session.Clean() {
			streak = profile.HighestStreak + input.CorrectAnswers
		}

		if err := gs.profiles.IncrementCounters(ctx, tx, userID,
			input.QuestionsAnswered,
			input.CorrectAnswers,
			streak,
		); err != nil {
			return err
		}

		if input.CoinsEarned > 0 {
			desc := fmt.Sprintf("Game completed: %d/%d correct", input.CorrectAnswers, input.QuestionsAnswered)
			if _, err := gs.wallet.Credit(ctx, tx, userID, input.CoinsEarned, domain.TxTypeGameReward, desc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	profile, err := gs.profiles.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	newAchievements, err := gs.achievements.Evaluate(ctx, userID, profile)
	if err != nil {
		return nil, err
	}
	if len(newAchievements) > 0 {
		// Rewards changed the balance, pick up the final figure.
		profile, err = gs.profiles.GetByUserID(ctx, nil, userID)
		if err != nil {
			return nil, err
		}
	}
	if gs.board != nil {
		gs.board.RecordCoins(ctx, userID, profile.TotalCoins)
	}

	gs.log.Info("session recorded",
		"user_id", userID,
		"correct", input.CorrectAnswers,
		"answered", input.QuestionsAnswered,
		"new_achievements", len(newAchievements),
	)
	return &RecordSessionResult{
		Session:         session,
		Profile:         profile,
		NewAchievements: newAchievements,
	}, nil
}

func (gs *gameService) ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.GameSession, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return gs.sessions.ListByUser(ctx, nil, userID, limit)
}

func validateSessionInput(input RecordSessionInput) error {
	switch {
	case input.Difficulty < 1:
		return apperrors.ErrValidation
	case input.QuestionsAnswered < 0 || input.CorrectAnswers < 0 || input.CoinsEarned < 0:
		return apperrors.ErrValidation
	case input.CorrectAnswers > input.QuestionsAnswered:
		return apperrors.ErrValidation
	}
	return nil
}
