package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coin transaction types.
const (
	TxTypeGameReward   = "game_reward"
	TxTypeAchievement  = "achievement"
	TxTypeShopPurchase = "shop_purchase"
)

// CoinTransaction is one append-only ledger movement. Amount is signed:
// positive for earnings, negative for spends.
type CoinTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"index;not null;column:user_id" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Amount      int       `gorm:"not null;column:amount" json:"amount"`
	Type        string    `gorm:"size:50;not null;column:type" json:"type"`
	Description string    `gorm:"not null;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;index;column:created_at" json:"created_at"`
}

func (CoinTransaction) TableName() string { return "coin_transactions" }
