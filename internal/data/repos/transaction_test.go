package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/frqgit/year-7-math/internal/data/repos/testutil"
	"github.com/frqgit/year-7-math/internal/domain"
)

func TestCoinTransactionRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCoinTransactionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, db, "ledger-"+uuid.NewString()[:8])

	entries := []struct {
		amount int
		txType string
	}{
		{50, domain.TxTypeGameReward},
		{25, domain.TxTypeAchievement},
		{-30, domain.TxTypeShopPurchase},
	}
	base := time.Now().UTC().Add(-time.Minute)
	for i, e := range entries {
		err := repo.Create(ctx, nil, &domain.CoinTransaction{
			ID:          uuid.New(),
			UserID:      u.ID,
			Amount:      e.amount,
			Type:        e.txType,
			Description: "test entry",
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Create entry %d: %v", i, err)
		}
	}

	sum, err := repo.SumByUser(ctx, nil, u.ID)
	if err != nil {
		t.Fatalf("SumByUser: %v", err)
	}
	if sum != 45 {
		t.Fatalf("SumByUser: got %d, want 45", sum)
	}

	list, err := repo.ListByUser(ctx, nil, u.ID, 2)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByUser: got %d entries, want 2", len(list))
	}
	if list[0].Type != domain.TxTypeShopPurchase {
		t.Fatalf("ListByUser: expected newest first, got %s", list[0].Type)
	}

	sum, err = repo.SumByUser(ctx, nil, uuid.New())
	if err != nil {
		t.Fatalf("SumByUser (no entries): %v", err)
	}
	if sum != 0 {
		t.Fatalf("SumByUser (no entries): got %d, want 0", sum)
	}
}
