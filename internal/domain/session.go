package domain

import (
	"time"

	"github.com/google/uuid"
)

const GameModeStandard = "standard"

// GameSession is the immutable record of one completed quiz round.
type GameSession struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"index;not null;column:user_id" json:"user_id"`
	User              *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Difficulty        int       `gorm:"not null;column:difficulty" json:"difficulty"`
	QuestionsAnswered int       `gorm:"not null;column:questions_answered" json:"questions_answered"`
	CorrectAnswers    int       `gorm:"not null;column:correct_answers" json:"correct_answers"`
	CoinsEarned       int       `gorm:"not null;column:coins_earned" json:"coins_earned"`
	GameMode          string    `gorm:"size:50;not null;default:standard;column:game_mode" json:"game_mode"`
	CompletedAt       time.Time `gorm:"not null;index;column:completed_at" json:"completed_at"`
}

func (GameSession) TableName() string { return "game_sessions" }

// Clean reports whether every answered question was correct.
func (s *GameSession) Clean() bool {
	return s.QuestionsAnswered > 0 && s.CorrectAnswers == s.QuestionsAnswered
}

// Accuracy returns the per-session accuracy as a fraction in [0,1].
func (s *GameSession) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered)
}
