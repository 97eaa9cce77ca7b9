package repos

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/frqgit/year-7-math/internal/data/repos/testutil"
	"github.com/frqgit/year-7-math/internal/domain"
	apperrors "github.com/frqgit/year-7-math/internal/pkg/errors"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	username := fmt.Sprintf("alice-%s", uuid.NewString()[:8])
	u := &domain.User{ID: uuid.New(), Username: username, Password: "hashed"}
	if err := repo.Create(ctx, nil, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Username != username {
		t.Fatalf("GetByID: got username %q, want %q", got.Username, username)
	}

	got, err = repo.GetByUsername(ctx, nil, username)
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("GetByUsername: got id %s, want %s", got.ID, u.ID)
	}

	if _, err := repo.GetByUsername(ctx, nil, "nobody-"+uuid.NewString()[:8]); !apperrors.IsNotFound(err) {
		t.Fatalf("GetByUsername (missing): got %v, want not-found", err)
	}

	exists, err := repo.UsernameExists(ctx, nil, username)
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Fatalf("UsernameExists: expected true")
	}

	dup := &domain.User{ID: uuid.New(), Username: username, Password: "other"}
	err = repo.Create(ctx, nil, dup)
	if err == nil {
		t.Fatalf("Create (duplicate username): expected error")
	}
	if !apperrors.IsUniqueViolation(err) {
		t.Fatalf("Create (duplicate username): got %v, want unique violation", err)
	}
}
