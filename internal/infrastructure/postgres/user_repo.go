package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/goals-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.PendingUser) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (name, email, phone, password_hash) VALUES ($1, $2, $3, $4)`,
		u.Name(), u.Email(), u.Phone(), u.PasswordHash(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// A lost sign-up race is a conflict for the caller, not a store failure.
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, phone, created_at
		FROM users
		WHERE email = $1`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, phone, created_at
		FROM users
		WHERE id = $1`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id, name, email, hash, phone string
		createdAt                    time.Time
	)
	if err := row.Scan(&id, &name, &email, &hash, &phone, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u, err := domain.RestoreUser(id, name, email, hash, phone, createdAt)
	if err != nil {
		return nil, fmt.Errorf("restore user %s: %w", id, err)
	}
	return u, nil
}
