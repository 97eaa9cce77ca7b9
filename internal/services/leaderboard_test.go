package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/frqgit/year-7-math/internal/data/repos/testutil"
	"github.com/frqgit/year-7-math/internal/domain"
)

func TestLeaderboardTop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	coins := []int{500, 900, 100}
	ids := make([]uuid.UUID, len(coins))
	for i, c := range coins {
		user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("board-%d-%s", i, uuid.NewString()[:8]))
		testutil.SeedProfile(t, ctx, env.db, user.ID)
		if _, err := env.wallet.Credit(ctx, nil, user.ID, c, domain.TxTypeGameReward, "Game completed: 10/10 correct"); err != nil {
			t.Fatalf("Credit: %v", err)
		}
		ids[i] = user.ID
	}

	entries, err := env.board.Top(ctx, 100)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}

	// Ranks are dense and the order is by coins descending.
	position := make(map[uuid.UUID]int)
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("entry %d has rank %d", i, e.Rank)
		}
		if i > 0 && entries[i-1].TotalCoins < e.TotalCoins {
			t.Fatalf("entries out of order at %d: %d < %d", i, entries[i-1].TotalCoins, e.TotalCoins)
		}
		position[e.UserID] = i
	}

	p0, ok0 := position[ids[0]]
	p1, ok1 := position[ids[1]]
	p2, ok2 := position[ids[2]]
	if !ok0 || !ok1 || !ok2 {
		t.Fatal("seeded users missing from leaderboard")
	}
	if !(p1 < p0 && p0 < p2) {
		t.Fatalf("relative order wrong: positions = %d, %d, %d", p0, p1, p2)
	}
	if entries[p1].Username == "" {
		t.Fatal("username not hydrated")
	}
}

func TestLeaderboardLimitClamped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("board-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)

	entries, err := env.board.Top(ctx, -1)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) > 10 {
		t.Fatalf("default limit not applied, got %d entries", len(entries))
	}
}
