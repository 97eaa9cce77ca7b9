package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/frqgit/year-7-math/internal/data/repos/testutil"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
)

func TestRecordSessionCleanRound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("gamer-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)
	seeded := testutil.SeedAchievement(t, ctx, env.db, fmt.Sprintf("First Round %s", uuid.NewString()[:8]), "games", 1, 25)

	result, err := env.game.RecordSession(ctx, user.ID, RecordSessionInput{
		Difficulty:        1,
		QuestionsAnswered: 10,
		CorrectAnswers:    10,
		CoinsEarned:       10,
	})
	if err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	p := result.Profile
	if p.GamesPlayed != 1 || p.TotalCorrectAnswers != 10 || p.TotalQuestions != 10 {
		t.Fatalf("counters = (%d, %d, %d), want (1, 10, 10)", p.GamesPlayed, p.TotalCorrectAnswers, p.TotalQuestions)
	}
	if p.HighestStreak != 10 {
		t.Fatalf("HighestStreak = %d, want 10", p.HighestStreak)
	}

	// The games/1 achievement must unlock, and the final balance is the
	// round reward plus every unlocked achievement's coin reward.
	found := false
	wantCoins := 10
	for _, a := range result.NewAchievements {
		if a.ID == seeded.ID {
			found = true
		}
		wantCoins += a.CoinReward
	}
	if !found {
		t.Fatalf("achievement %q not unlocked", seeded.Name)
	}
	if p.TotalCoins != wantCoins {
		t.Fatalf("TotalCoins = %d, want %d", p.TotalCoins, wantCoins)
	}
	if result.Session.GameMode != "standard" {
		t.Fatalf("GameMode = %q, want standard", result.Session.GameMode)
	}

	sum, err := env.txs.SumByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("SumByUser: %v", err)
	}
	if sum != p.TotalCoins {
		t.Fatalf("ledger sum %d != balance %d", sum, p.TotalCoins)
	}
}

func TestRecordSessionStreakNotResetBelowMax(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("gamer-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)

	if _, err := env.game.RecordSession(ctx, user.ID, RecordSessionInput{
		Difficulty: 2, QuestionsAnswered: 10, CorrectAnswers: 10, CoinsEarned: 10,
	}); err != nil {
		t.Fatalf("first RecordSession: %v", err)
	}
	result, err := env.game.RecordSession(ctx, user.ID, RecordSessionInput{
		Difficulty: 2, QuestionsAnswered: 10, CorrectAnswers: 0, CoinsEarned: 0,
	})
	if err != nil {
		t.Fatalf("second RecordSession: %v", err)
	}

	p := result.Profile
	if p.HighestStreak != 10 {
		t.Fatalf("HighestStreak = %d, want 10 after a miss", p.HighestStreak)
	}
	if p.GamesPlayed != 2 || p.TotalQuestions != 20 {
		t.Fatalf("counters = (%d, %d), want (2, 20)", p.GamesPlayed, p.TotalQuestions)
	}
}

func TestRecordSessionStreakAccumulatesAcrossCleanRounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("gamer-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)

	for i := 0; i < 3; i++ {
		if _, err := env.game.RecordSession(ctx, user.ID, RecordSessionInput{
			Difficulty: 1, QuestionsAnswered: 5, CorrectAnswers: 5, CoinsEarned: 5,
		}); err != nil {
			t.Fatalf("RecordSession %d: %v", i, err)
		}
	}

	profile, err := env.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.HighestStreak != 15 {
		t.Fatalf("HighestStreak = %d, want 15 after three clean rounds of 5", profile.HighestStreak)
	}
}

func TestRecordSessionCounterSums(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("gamer-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)

	rounds := []RecordSessionInput{
		{Difficulty: 1, QuestionsAnswered: 10, CorrectAnswers: 7, CoinsEarned: 7},
		{Difficulty: 3, QuestionsAnswered: 8, CorrectAnswers: 8, CoinsEarned: 12},
		{Difficulty: 2, QuestionsAnswered: 12, CorrectAnswers: 3, CoinsEarned: 3},
	}
	wantCorrect, wantQuestions := 0, 0
	for i, r := range rounds {
		if _, err := env.game.RecordSession(ctx, user.ID, r); err != nil {
			t.Fatalf("RecordSession %d: %v", i, err)
		}
		wantCorrect += r.CorrectAnswers
		wantQuestions += r.QuestionsAnswered
	}

	profile, err := env.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.GamesPlayed != len(rounds) {
		t.Fatalf("GamesPlayed = %d, want %d", profile.GamesPlayed, len(rounds))
	}
	if profile.TotalCorrectAnswers != wantCorrect || profile.TotalQuestions != wantQuestions {
		t.Fatalf("totals = (%d, %d), want (%d, %d)",
			profile.TotalCorrectAnswers, profile.TotalQuestions, wantCorrect, wantQuestions)
	}

	sessions, err := env.game.ListSessions(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != len(rounds) {
		t.Fatalf("ListSessions = %d rows, want %d", len(sessions), len(rounds))
	}
}

// Counters are applied as SQL increments, so two rounds committing at the
// same time must both land in the lifetime totals.
func TestRecordSessionConcurrentRoundsKeepAllIncrements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("gamer-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.game.RecordSession(ctx, user.ID, RecordSessionInput{
				Difficulty:        1,
				QuestionsAnswered: 10,
				CorrectAnswers:    6,
			})
		}(i)
	}
	wg.Wait()
	for i, err := range results {
		if err != nil {
			t.Fatalf("RecordSession %d: %v", i, err)
		}
	}

	profile, err := env.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.GamesPlayed != 2 {
		t.Fatalf("GamesPlayed = %d, want 2", profile.GamesPlayed)
	}
	if profile.TotalCorrectAnswers != 12 || profile.TotalQuestions != 20 {
		t.Fatalf("totals = (%d, %d), want (12, 20)",
			profile.TotalCorrectAnswers, profile.TotalQuestions)
	}
}

func TestRecordSessionValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, env.db, fmt.Sprintf("gamer-%s", uuid.NewString()[:8]))
	testutil.SeedProfile(t, ctx, env.db, user.ID)

	cases := []struct {
		name  string
		input RecordSessionInput
	}{
		{"correct exceeds answered", RecordSessionInput{Difficulty: 1, QuestionsAnswered: 5, CorrectAnswers: 6}},
		{"zero difficulty", RecordSessionInput{Difficulty: 0, QuestionsAnswered: 5, CorrectAnswers: 5}},
		{"negative coins", RecordSessionInput{Difficulty: 1, QuestionsAnswered: 5, CorrectAnswers: 5, CoinsEarned: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.game.RecordSession(ctx, user.ID, tc.input); !errors.Is(err, apperrors.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}

	profile, err := env.profiles.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.GamesPlayed != 0 {
		t.Fatalf("GamesPlayed = %d after rejected inputs, want 0", profile.GamesPlayed)
	}
}

func TestRecordSessionUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.game.RecordSession(ctx, uuid.New(), RecordSessionInput{
		Difficulty: 1, QuestionsAnswered: 5, CorrectAnswers: 5,
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}
