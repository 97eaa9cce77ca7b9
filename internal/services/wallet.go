package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/data/repos"
	"github.com/frqgit/year-7-math/internal/domain"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

// WalletService owns every coin movement. Each movement writes a
// coin_transactions row and the matching user_profiles.total_coins delta in
// the same database transaction, so the ledger always sums to the balance.
type WalletService interface {
	Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int, txType, description string) (*domain.CoinTransaction, error)
	Spend(ctx context.Context, userID uuid.UUID, amount int, description string) (*domain.CoinTransaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.CoinTransaction, error)
}

type walletService struct {
	db       *gorm.DB
	profiles repos.ProfileRepo
	txs      repos.CoinTransactionRepo
	board    LeaderboardService
	log      *logger.Logger
}

func NewWalletService(db *gorm.DB, profiles repos.ProfileRepo, txs repos.CoinTransactionRepo, board LeaderboardService, baseLog *logger.Logger) WalletService {
	return &walletService{
		db:       db,
		profiles: profiles,
		txs:      txs,
		board:    board,
		log:      baseLog.With("service", "wallet"),
	}
}

// Credit adds coins to the user's balance and records the ledger entry. When
// tx is non-nil the work joins the caller's transaction, otherwise it opens
// its own.
func (ws *walletService) Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int, txType, description string) (*domain.CoinTransaction, error) {
	if amount <= 0 {
		return nil, apperrors.ErrValidation
	}
	record := &domain.CoinTransaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
	}
	run := func(tx *gorm.DB) error {
		if err := ws.txs.Create(ctx, tx, record); err != nil {
			return err
		}
		return ws.profiles.AddCoins(ctx, tx, userID, amount)
	}
	var err error
	if tx != nil {
		err = run(tx)
	} else {
		err = ws.db.WithContext(ctx).Transaction(run)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Spend debits the balance only when it covers the amount. The guard is a
// conditional UPDATE, so two concurrent spends against the same balance can
// never both win.
func (ws *walletService) Spend(ctx context.Context, userID uuid.UUID, amount int, description string) (*domain.CoinTransaction, error) {
	if amount <= 0 || strings.TrimSpace(description) == "" {
		return nil, apperrors.ErrValidation
	}
	record := &domain.CoinTransaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      -amount,
		Type:        domain.TxTypeShopPurchase,
		Description: description,
	}
	err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := ws.profiles.SpendCoins(ctx, tx, userID, amount)
		if err != nil {
			return err
		}
		if affected == 0 {
			if _, err := ws.profiles.GetByUserID(ctx, tx, userID); err != nil {
				return err
			}
			return apperrors.ErrInsufficientFunds
		}
		return ws.txs.Create(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	ws.log.Debug("coins spent", "user_id", userID, "amount", amount)
	if ws.board != nil {
		if profile, perr := ws.profiles.GetByUserID(ctx, nil, userID); perr == nil {
			ws.board.RecordCoins(ctx, userID, profile.TotalCoins)
		}
	}
	return record, nil
}

func (ws *walletService) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.CoinTransaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return ws.txs.ListByUser(ctx, nil, userID, limit)
}
