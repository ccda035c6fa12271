package services

import (
	"context"
	"strings"

	"tirelire/internal/core"
	"tirelire/internal/storage"
)

// GoalService manages savings goals. Goal progress is adjusted explicitly
// by the user, never derived from the ledger.
type GoalService struct {
	storage *storage.Repository
}

func NewGoalService(storage *storage.Repository) *GoalService {
	return &GoalService{storage: storage}
}

func (s *GoalService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	g.Title = strings.TrimSpace(g.Title)
	if g.CurrentAmount < 0 {
		return core.Goal{}, core.ErrInvalidAmount
	}
	return s.storage.CreateGoal(ctx, g)
}

func (s *GoalService) ListGoals(ctx context.Context, userID int64) ([]core.Goal, error) {
	return s.storage.ListGoals(ctx, userID)
}

func (s *GoalService) UpdateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.CurrentAmount < 0 {
		return core.ErrInvalidAmount
	}
	return s.storage.UpdateGoal(ctx, g)
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	return s.storage.DeleteGoal(ctx, userID, goalID)
}
