package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/frqgit/year-7-math/internal/data/repos/testutil"
	"github.com/frqgit/year-7-math/internal/domain"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
)

func TestSpendHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("wallet-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)
	if _, err := env.wallet.Credit(ctx, nil, user.ID, 100, domain.TxTypeGameReward, "Game completed: 10/10 correct"); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	record, err := env.wallet.Spend(ctx, user.ID, 60, "Avatar hat")
	if err != nil {
		t.Fatalf("Spend: %v", err)
	}
	if record.Amount != -60 || record.Type != domain.TxTypeShopPurchase {
		t.Fatalf("record = (%d, %s), want (-60, shop_purchase)", record.Amount, record.Type)
	}

	profile, err := env.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.TotalCoins != 40 {
		t.Fatalf("TotalCoins = %d, want 40", profile.TotalCoins)
	}

	sum, err := env.txs.SumByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("SumByUser: %v", err)
	}
	if sum != 40 {
		t.Fatalf("ledger sum = %d, want 40", sum)
	}
}

func TestSpendInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("wallet-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)
	if _, err := env.wallet.Credit(ctx, nil, user.ID, 30, domain.TxTypeGameReward, "Game completed: 3/10 correct"); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	if _, err := env.wallet.Spend(ctx, user.ID, 31, "Too pricey"); !errors.Is(err, apperrors.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	profile, err := env.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.TotalCoins != 30 {
		t.Fatalf("TotalCoins = %d after failed spend, want 30", profile.TotalCoins)
	}

	txs, err := env.wallet.ListTransactions(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	for _, tx := range txs {
		if tx.Type == domain.TxTypeShopPurchase {
			t.Fatal("failed spend left a ledger entry")
		}
	}
}

func TestSpendUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.wallet.Spend(ctx, uuid.New(), 10, "Ghost purchase"); !apperrors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestSpendValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("wallet-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)

	if _, err := env.wallet.Spend(ctx, user.ID, 0, "Zero"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("zero amount: err = %v, want ErrValidation", err)
	}
	if _, err := env.wallet.Spend(ctx, user.ID, -5, "Negative"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("negative amount: err = %v, want ErrValidation", err)
	}
	if _, err := env.wallet.Spend(ctx, user.ID, 5, "   "); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("blank description: err = %v, want ErrValidation", err)
	}
}

// Two spends race for a balance that only covers one of them. Exactly one
// must win; the loser must leave the balance untouched.
func TestSpendConcurrentSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("wallet-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)
	if _, err := env.wallet.Credit(ctx, nil, user.ID, 100, domain.TxTypeGameReward, "Game completed: 10/10 correct"); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.wallet.Spend(ctx, user.ID, 70, "Limited item")
		}(i)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			losses++
		default:
			t.Fatalf("unexpected spend error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("wins = %d, losses = %d, want exactly one of each", wins, losses)
	}

	profile, err := env.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.TotalCoins != 30 {
		t.Fatalf("TotalCoins = %d, want 30", profile.TotalCoins)
	}

	sum, err := env.txs.SumByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("SumByUser: %v", err)
	}
	if sum != 30 {
		t.Fatalf("ledger sum = %d, want 30", sum)
	}
}
