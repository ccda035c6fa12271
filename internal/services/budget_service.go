package services

import (
	"context"
	"fmt"

	"tirelire/internal/core"
	"tirelire/internal/storage"
)

// BudgetService manages budget declarations and computes their utilization
// against the transaction log. Nothing derived is ever persisted.
type BudgetService struct {
	storage *storage.Repository
}

func NewBudgetService(storage *storage.Repository) *BudgetService {
	return &BudgetService{storage: storage}
}

func (s *BudgetService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	return s.storage.CreateBudget(ctx, b)
}

func (s *BudgetService) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return s.storage.UpdateBudget(ctx, b)
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	return s.storage.DeleteBudget(ctx, userID, budgetID)
}

// EvaluateBudgets returns every budget of the user with its spent total
// recomputed over the budget's own window.
func (s *BudgetService) EvaluateBudgets(ctx context.Context, userID int64) ([]core.BudgetStatus, error) {
	statuses, err := s.storage.EvaluateBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("evaluate budgets: %w", err)
	}
	return statuses, nil
}

// FindOverruns filters the evaluation down to budgets whose spending
// strictly exceeds the allocation. Spending exactly at the limit is not
// an overrun.
func (s *BudgetService) FindOverruns(ctx context.Context, userID int64) ([]core.Overrun, error) {
	statuses, err := s.EvaluateBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	var overruns []core.Overrun
	for _, status := range statuses {
		if status.Spent > status.Amount {
			overruns = append(overruns, core.Overrun{
				Category:  status.Category,
				Allocated: status.Amount,
				Spent:     status.Spent,
				Overage:   status.Spent - status.Amount,
			})
		}
	}
	return overruns, nil
}
