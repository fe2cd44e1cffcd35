package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ErlanBelekov/goals-api/internal/domain"
	"github.com/ErlanBelekov/goals-api/internal/infrastructure/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// setupPool migrates the database behind TEST_DATABASE_URL and empties it.
// Tests are skipped when the variable is unset.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if err := postgres.MigrateUp(url); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, url, postgres.PoolConfig{MaxConns: 4, MinConns: 0})
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE goals, users CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

func pendingUser(t *testing.T, email string) *domain.PendingUser {
	t.Helper()
	draft, err := domain.NewDraftUser("Alice Smith", email, "secret1", "555-123-4567")
	if err != nil {
		t.Fatalf("NewDraftUser: %v", err)
	}
	p, err := draft.WithPasswordHash("$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5")
	if err != nil {
		t.Fatalf("WithPasswordHash: %v", err)
	}
	return p
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	pool := setupPool(t)
	repo := postgres.NewUserRepository(pool)
	ctx := context.Background()

	if err := repo.Create(ctx, pendingUser(t, "alice@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.Name() != "Alice Smith" || byEmail.Phone() != "555-123-4567" || byEmail.PasswordHash() == "" {
		t.Errorf("unexpected user: %+v", byEmail)
	}

	byID, err := repo.FindByID(ctx, byEmail.ID())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Email() != byEmail.Email() {
		t.Errorf("FindByID email = %q, want %q", byID.Email(), byEmail.Email())
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	pool := setupPool(t)
	repo := postgres.NewUserRepository(pool)
	ctx := context.Background()

	if err := repo.Create(ctx, pendingUser(t, "dup@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, pendingUser(t, "dup@example.com"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("want ErrEmailTaken, got %v", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	pool := setupPool(t)
	repo := postgres.NewUserRepository(pool)
	ctx := context.Background()

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("FindByEmail: want ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, "4f9a4b63-8a6e-4c6e-9b1e-0c1b7c3c1aff"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("FindByID: want ErrUserNotFound, got %v", err)
	}
}

func TestGoalRepository_Lifecycle(t *testing.T) {
	pool := setupPool(t)
	users := postgres.NewUserRepository(pool)
	goals := postgres.NewGoalRepository(pool)
	ctx := context.Background()

	for _, email := range []string{"owner@example.com", "other@example.com"} {
		if err := users.Create(ctx, pendingUser(t, email)); err != nil {
			t.Fatalf("Create user: %v", err)
		}
	}
	owner, _ := users.FindByEmail(ctx, "owner@example.com")
	other, _ := users.FindByEmail(ctx, "other@example.com")

	empty, err := goals.ListByUserID(ctx, owner.ID())
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("want empty non-nil list, got %v", empty)
	}

	var created []*domain.Goal
	for _, text := range []string{"Run a marathon", "Read 20 books"} {
		draft, err := domain.NewDraftGoal(owner.ID(), text)
		if err != nil {
			t.Fatalf("NewDraftGoal: %v", err)
		}
		g, err := goals.Create(ctx, draft)
		if err != nil {
			t.Fatalf("Create goal: %v", err)
		}
		created = append(created, g)
	}

	list, err := goals.ListByUserID(ctx, owner.ID())
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(list) != 2 || list[0].Text != "Run a marathon" {
		t.Errorf("unexpected list: %v", list)
	}

	if err := goals.Delete(ctx, created[0].ID, other.ID()); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("delete by non-owner: want ErrGoalNotFound, got %v", err)
	}
	if err := goals.Delete(ctx, created[0].ID, owner.ID()); err != nil {
		t.Errorf("delete by owner: %v", err)
	}
	if err := goals.Delete(ctx, created[0].ID, owner.ID()); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("second delete: want ErrGoalNotFound, got %v", err)
	}
}
