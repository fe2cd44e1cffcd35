package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/goals-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GoalRepository struct {
	pool *pgxpool.Pool
}

func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

func (r *GoalRepository) Create(ctx context.Context, g *domain.DraftGoal) (*domain.Goal, error) {
	query := `
		INSERT INTO goals (text, user_id)
		VALUES ($1, $2)
		RETURNING id, text, user_id, created_at`

	return scanGoal(r.pool.QueryRow(ctx, query, g.Text(), g.UserID()))
}

func (r *GoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	query := `
		SELECT id, text, user_id, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := []*domain.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

// Delete removes the goal only when it belongs to userID. A foreign or
// missing goal both report ErrGoalNotFound.
func (r *GoalRepository) Delete(ctx context.Context, goalID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		id, text, userID string
		createdAt        time.Time
	)
	if err := row.Scan(&id, &text, &userID, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	g, err := domain.RestoreGoal(id, text, userID, createdAt)
	if err != nil {
		return nil, fmt.Errorf("restore goal %s: %w", id, err)
	}
	return g, nil
}
