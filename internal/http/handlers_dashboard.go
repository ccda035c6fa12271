package http

import (
	"net/http"
	"time"

	"tirelire/internal/core"
	"tirelire/internal/middleware/identity"
)

type dashboardStats struct {
	TotalBalance    int64 `json:"totalBalance"`
	MonthlyExpenses int64 `json:"monthlyExpenses"`
	Savings         int64 `json:"savings"`
}

type dashboardResponse struct {
	Accounts           []core.Account      `json:"accounts"`
	RecentTransactions []core.Transaction  `json:"recentTransactions"`
	Budgets            []core.BudgetStatus `json:"budgets"`
	Goals              []core.Goal         `json:"goals"`
	Stats              dashboardStats      `json:"stats"`
}

const recentTransactionCount = 10

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.FromContext(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	ctx := r.Context()

	accounts, err := s.ledger.ListAccounts(ctx, userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	recent, err := s.ledger.ListTransactions(ctx, userID, core.TransactionFilter{}, recentTransactionCount, 0)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	budgets, err := s.budgets.EvaluateBudgets(ctx, userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	goals, err := s.goals.ListGoals(ctx, userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	monthlyExpenses, err := s.analytics.MonthExpenseTotal(ctx, userID, core.DateOf(time.Now()))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	stats := dashboardStats{MonthlyExpenses: monthlyExpenses}
	for _, account := range accounts {
		stats.TotalBalance += account.Balance
		if account.Type == core.Savings {
			stats.Savings += account.Balance
		}
	}

	if accounts == nil {
		accounts = []core.Account{}
	}
	if recent == nil {
		recent = []core.Transaction{}
	}
	if budgets == nil {
		budgets = []core.BudgetStatus{}
	}
	if goals == nil {
		goals = []core.Goal{}
	}

	respondData(w, http.StatusOK, dashboardResponse{
		Accounts:           accounts,
		RecentTransactions: recent,
		Budgets:            budgets,
		Goals:              goals,
		Stats:              stats,
	})
}
