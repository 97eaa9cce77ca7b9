package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile holds the cumulative per-user counters. One row per user,
// created together with the user. Mutated only by the session recorder,
// the achievement evaluator and explicit coin spends; TotalCoins must
// always equal the sum of the user's coin transactions.
type UserProfile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	User                *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TotalCoins          int       `gorm:"not null;default:0;column:total_coins" json:"total_coins"`
	GamesPlayed         int       `gorm:"not null;default:0;column:games_played" json:"games_played"`
	TotalCorrectAnswers int       `gorm:"not null;default:0;column:total_correct_answers" json:"total_correct_answers"`
	TotalQuestions      int       `gorm:"not null;default:0;column:total_questions" json:"total_questions"`
	HighestStreak       int       `gorm:"not null;default:0;column:highest_streak" json:"highest_streak"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// Accuracy returns the all-time answer accuracy as a percentage,
// zero when no questions have been answered yet.
func (p *UserProfile) Accuracy() float64 {
	if p.TotalQuestions == 0 {
		return 0
	}
	return float64(p.TotalCorrectAnswers) / float64(p.TotalQuestions) * 100
}
