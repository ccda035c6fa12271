package services

import (
	"context"
	"fmt"

	"tirelire/internal/core"
)

// InsightService turns budget evaluations into user-facing notices. It is
// a pure read over the ledger, so regenerating after any event is safe.
type InsightService struct {
	budgets *BudgetService
}

func NewInsightService(budgets *BudgetService) *InsightService {
	return &InsightService{budgets: budgets}
}

// Generate produces one warning per overrun budget, ordered by category
// name. Running it twice without a ledger change yields the same list.
func (s *InsightService) Generate(ctx context.Context, userID int64) ([]core.Insight, error) {
	overruns, err := s.budgets.FindOverruns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("generate insights: %w", err)
	}

	insights := make([]core.Insight, 0, len(overruns))
	for _, overrun := range overruns {
		insights = append(insights, overrunInsight(overrun))
	}
	return insights, nil
}

func overrunInsight(o core.Overrun) core.Insight {
	return core.Insight{
		Kind:     "budget_overrun",
		Title:    fmt.Sprintf("Dépassement budget %s", o.Category),
		Message:  fmt.Sprintf("Vous avez dépassé votre budget %s de %s CFA", o.Category, core.FormatAmount(o.Overage)),
		Severity: "warning",
		Icon:     "AlertTriangle",
		Color:    "text-orange-600",
	}
}
