package db

import (
	"testing"

	"github.com/frqgit/year-7-math/internal/data/repos/testutil"
	"github.com/frqgit/year-7-math/internal/domain"
)

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatal("empty achievement catalog")
	}

	categories := make(map[string]bool)
	names := make(map[string]bool)
	for _, a := range catalog {
		if a.Name == "" || a.Requirement <= 0 {
			t.Fatalf("invalid catalog entry %+v", a)
		}
		if names[a.Name] {
			t.Fatalf("duplicate achievement name %q", a.Name)
		}
		names[a.Name] = true
		categories[a.Category] = true
	}

	// Every category has at least one achievement to unlock.
	for _, c := range []string{
		domain.CategoryGames, domain.CategoryCoins, domain.CategoryStreak,
		domain.CategoryAccuracy, domain.CategoryDifficulty, domain.CategorySpeed,
		domain.CategoryPerfectGame, domain.CategoryConsistency, domain.CategoryDailyStreak,
	} {
		if !categories[c] {
			t.Fatalf("no catalog entry for category %q", c)
		}
	}
}

func TestSeedAchievementsIdempotent(t *testing.T) {
	if testutil.UsingPostgres() {
		t.Skip("seeding test runs against the isolated sqlite database only")
	}
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	if err := SeedAchievements(gdb, log); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	var first int64
	if err := gdb.Model(&domain.Achievement{}).Count(&first).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if first == 0 {
		t.Fatal("seed inserted nothing")
	}

	if err := SeedAchievements(gdb, log); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	var second int64
	if err := gdb.Model(&domain.Achievement{}).Count(&second).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if second != first {
		t.Fatalf("second seed changed row count: %d -> %d", first, second)
	}
}
