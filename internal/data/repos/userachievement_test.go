package repos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/frqgit/year-7-math/internal/data/repos/testutil"
	"github.com/frqgit/year-7-math/internal/domain"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
)

func TestUserAchievementRepoIdempotentUnlock(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserAchievementRepo(db, testutil.Logger(t))
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	u := testutil.SeedUser(t, ctx, db, "unlock-"+suffix)
	a := testutil.SeedAchievement(t, ctx, db, "First Game "+suffix, domain.CategoryGames, 1, 10)

	unlock := &domain.UserAchievement{
		ID:            uuid.New(),
		UserID:        u.ID,
		AchievementID: a.ID,
		UnlockedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, nil, unlock); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A second unlock of the same pair must trip the composite unique
	// index, which callers classify as already-unlocked.
	again := &domain.UserAchievement{
		ID:            uuid.New(),
		UserID:        u.ID,
		AchievementID: a.ID,
		UnlockedAt:    time.Now().UTC(),
	}
	err := repo.Create(ctx, nil, again)
	if err == nil {
		t.Fatalf("Create (duplicate unlock): expected error")
	}
	if !apperrors.IsUniqueViolation(err) {
		t.Fatalf("Create (duplicate unlock): got %v, want unique violation", err)
	}

	list, err := repo.ListByUser(ctx, nil, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListByUser: got %d unlocks, want 1", len(list))
	}
	if list[0].Achievement == nil || list[0].Achievement.ID != a.ID {
		t.Fatalf("ListByUser: expected preloaded achievement %s", a.ID)
	}

	ids, err := repo.UnlockedIDs(ctx, nil, u.ID)
	if err != nil {
		t.Fatalf("UnlockedIDs: %v", err)
	}
	if !ids[a.ID] {
		t.Fatalf("UnlockedIDs: missing %s", a.ID)
	}
}

func TestUserAchievementRepoDistinctUsers(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserAchievementRepo(db, testutil.Logger(t))
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	a := testutil.SeedAchievement(t, ctx, db, "Shared Goal "+suffix, domain.CategoryCoins, 100, 0)

	for i := 0; i < 2; i++ {
		u := testutil.SeedUser(t, ctx, db, fmt.Sprintf("shared%d-%s", i, suffix))
		unlock := &domain.UserAchievement{
			ID:            uuid.New(),
			UserID:        u.ID,
			AchievementID: a.ID,
			UnlockedAt:    time.Now().UTC(),
		}
		if err := repo.Create(ctx, nil, unlock); err != nil {
			t.Fatalf("Create for user %d: %v", i, err)
		}
	}
}
