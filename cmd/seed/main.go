// seed creates a demo account with a handful of goals in the local dev
// database, going through the same use cases as the API.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/goals-api/config"
	"github.com/ErlanBelekov/goals-api/internal/domain"
	"github.com/ErlanBelekov/goals-api/internal/email"
	"github.com/ErlanBelekov/goals-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/goals-api/internal/log"
	"github.com/ErlanBelekov/goals-api/internal/password"
	"github.com/ErlanBelekov/goals-api/internal/token"
	"github.com/ErlanBelekov/goals-api/internal/usecase"
)

var demo = usecase.SignUpInput{
	Name:     "Demo User",
	Email:    "demo@goals.local",
	Password: "demo-pass",
	Phone:    "555-010-0000",
}

var goals = []string{
	"Run a half marathon",
	"Read 24 books this year",
	"Learn to cook five new dishes",
	"Ship the side project",
	"Call grandparents every Sunday",
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	if err := postgres.MigrateUp(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolConfig{MaxConns: 2, MinConns: 0})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hasher, err := password.NewArgon2(password.DefaultConfig())
	if err != nil {
		log.Fatalf("password hasher: %v", err)
	}
	tokens, err := token.NewManager([]byte(cfg.JWTSecret))
	if err != nil {
		log.Fatalf("token manager: %v", err)
	}

	users := postgres.NewUserRepository(pool)
	auth := usecase.NewAuthUsecase(users, hasher, tokens, email.NewSender("local", "", "", logger), logger)
	goalUsecase := usecase.NewGoalUsecase(users, postgres.NewGoalRepository(pool))

	switch err := auth.SignUp(ctx, demo); {
	case err == nil:
		logger.Info("demo user created", "email", demo.Email)
	case errors.Is(err, domain.ErrEmailTaken):
		logger.Info("demo user already exists", "email", demo.Email)
	default:
		log.Fatalf("sign up: %v", err)
	}

	signed, err := auth.SignIn(ctx, usecase.SignInInput{Email: demo.Email, Password: demo.Password})
	if err != nil {
		log.Fatalf("sign in: %v", err)
	}

	existing, err := goalUsecase.ListGoals(ctx, signed.ID)
	if err != nil {
		log.Fatalf("list goals: %v", err)
	}
	if len(existing) > 0 {
		logger.Info("demo goals already present", "count", len(existing))
	} else {
		for _, text := range goals {
			if _, err := goalUsecase.CreateGoal(ctx, signed.ID, text); err != nil {
				log.Fatalf("create goal %q: %v", text, err)
			}
		}
		logger.Info("demo goals created", "count", len(goals))
	}

	report(os.Stdout, logger, signed)
}

// report prints the demo bearer token for use with curl. The token goes to w
// directly and never through the structured logger.
func report(w io.Writer, logger *slog.Logger, signed *usecase.SignedUser) {
	logger.Info("seed complete", "user_id", signed.ID)
	fmt.Fprintf(w, "Authorization: Bearer %s\n", signed.Token)
}
