package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/goals-api/internal/domain"
	"github.com/ErlanBelekov/goals-api/internal/repository"
)

type GoalUsecase struct {
	users repository.UserRepository
	goals repository.GoalRepository
}

func NewGoalUsecase(users repository.UserRepository, goals repository.GoalRepository) *GoalUsecase {
	return &GoalUsecase{users: users, goals: goals}
}

func (u *GoalUsecase) CreateGoal(ctx context.Context, userID, text string) (*domain.Goal, error) {
	if err := u.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	draft, err := domain.NewDraftGoal(userID, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	goal, err := u.goals.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("%w: create goal: %w", domain.ErrDatabase, err)
	}
	return goal, nil
}

func (u *GoalUsecase) ListGoals(ctx context.Context, userID string) ([]*domain.Goal, error) {
	if err := u.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	goals, err := u.goals.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list goals: %w", domain.ErrDatabase, err)
	}
	return goals, nil
}

func (u *GoalUsecase) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if err := u.ensureUser(ctx, userID); err != nil {
		return err
	}

	if err := domain.ValidateID(goalID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	if err := u.goals.Delete(ctx, goalID, userID); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return fmt.Errorf("delete goal: %w", err)
		}
		return fmt.Errorf("%w: delete goal: %w", domain.ErrDatabase, err)
	}
	return nil
}

// ensureUser rejects tokens whose subject no longer exists, e.g. an account
// deleted after the token was issued.
func (u *GoalUsecase) ensureUser(ctx context.Context, userID string) error {
	if err := domain.ValidateUserID(userID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("find user by id: %w", err)
		}
		return fmt.Errorf("%w: find user by id: %w", domain.ErrDatabase, err)
	}
	return nil
}
