package domain

import (
	"time"

	"github.com/google/uuid"
)

// Achievement categories. "speed" and "daily_streak" are deliberate
// proxies over existing counters: no timing or per-day data is captured
// anywhere, so their predicates read totalCorrectAnswers and gamesPlayed
// respectively.
const (
	CategoryGames       = "games"
	CategoryCoins       = "coins"
	CategoryStreak      = "streak"
	CategoryAccuracy    = "accuracy"
	CategoryDifficulty  = "difficulty"
	CategorySpeed       = "speed"
	CategoryPerfectGame = "perfect_game"
	CategoryConsistency = "consistency"
	CategoryDailyStreak = "daily_streak"
)

// Achievement is one entry of the static unlockable catalog. The catalog
// is seed data: read-only at runtime.
type Achievement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"not null;column:description" json:"description"`
	Icon        string    `gorm:"size:50;not null;column:icon" json:"icon"`
	CoinReward  int       `gorm:"not null;default:0;column:coin_reward" json:"coin_reward"`
	Requirement int       `gorm:"not null;column:requirement" json:"requirement"`
	Category    string    `gorm:"size:50;not null;column:category" json:"category"`
}

func (Achievement) TableName() string { return "achievements" }

// UserAchievement records one unlock. The composite unique index makes
// unlocking idempotent under concurrent evaluation: the loser of a race
// observes a constraint violation and treats the achievement as already
// unlocked.
type UserAchievement struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID    `gorm:"not null;uniqueIndex:uniq_user_achievement;column:user_id" json:"user_id"`
	User          *User        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AchievementID uuid.UUID    `gorm:"not null;uniqueIndex:uniq_user_achievement;column:achievement_id" json:"achievement_id"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID;references:ID" json:"achievement,omitempty"`
	UnlockedAt    time.Time    `gorm:"not null;column:unlocked_at" json:"unlocked_at"`
}

func (UserAchievement) TableName() string { return "user_achievements" }
