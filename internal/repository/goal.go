package repository

import (
	"context"

	"github.com/ErlanBelekov/goals-api/internal/domain"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *domain.DraftGoal) (*domain.Goal, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error)
	// Delete removes the goal only if it belongs to userID; otherwise
	// it returns domain.ErrGoalNotFound.
	Delete(ctx context.Context, goalID, userID string) error
}
