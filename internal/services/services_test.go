package services

import (
	"context"
	"path/filepath"
	"testing"

	"tirelire/internal/core"
	"tirelire/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	repo      *storage.Repository
	ledger    *LedgerService
	analytics *AnalyticsService
	budgets   *BudgetService
	goals     *GoalService
	insights  *InsightService

	userID    int64
	accountID int64
	salaire   int64
	food      int64
	transport int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	userID, err := repo.CreateUser(ctx, "Awa", "Diop", "awa@example.com", "Dakar", "Enseignante")
	require.NoError(t, err)

	acc, err := repo.CreateAccount(ctx, core.Account{
		UserID: userID, Name: "Compte courant", Bank: "Ecobank", Type: core.Checking,
	})
	require.NoError(t, err)

	budgets := NewBudgetService(repo)
	env := &testEnv{
		repo:      repo,
		ledger:    NewLedgerService(repo, nil), // no broker in tests
		analytics: NewAnalyticsService(repo),
		budgets:   budgets,
		goals:     NewGoalService(repo),
		insights:  NewInsightService(budgets),
		userID:    userID,
		accountID: acc.ID,
	}

	for _, c := range []struct {
		name string
		dst  *int64
	}{
		{"Salaire", &env.salaire},
		{"Alimentation", &env.food},
		{"Transport", &env.transport},
	} {
		cat, err := repo.GetCategoryByName(ctx, c.name)
		require.NoError(t, err)
		*c.dst = cat.ID
	}
	return env
}

func (e *testEnv) record(t *testing.T, categoryID, amount int64, date core.Date, desc string) core.Transaction {
	t.Helper()
	tx, err := e.ledger.RecordTransaction(context.Background(), core.Transaction{
		UserID:      e.userID,
		AccountID:   e.accountID,
		CategoryID:  categoryID,
		Description: desc,
		Amount:      amount,
		Date:        date,
	})
	require.NoError(t, err)
	return tx
}

func TestLedgerService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ledger.CreateAccount(ctx, core.Account{UserID: env.userID, Name: "  ", Type: core.Checking})
	assert.ErrorIs(t, err, core.ErrEmptyName)

	_, err = env.ledger.CreateAccount(ctx, core.Account{UserID: env.userID, Name: "Livret", Type: "offshore"})
	assert.ErrorIs(t, err, core.ErrInvalidType)

	_, err = env.ledger.RecordTransaction(ctx, core.Transaction{
		UserID: env.userID, AccountID: env.accountID, CategoryID: env.salaire,
		Description: "   ", Amount: 1000, Date: core.NewDate(2024, 1, 1),
	})
	assert.ErrorIs(t, err, core.ErrEmptyDescription)

	_, err = env.ledger.RecordTransaction(ctx, core.Transaction{
		UserID: env.userID, AccountID: env.accountID, CategoryID: env.salaire,
		Description: "Salaire", Amount: 1000,
	})
	assert.ErrorIs(t, err, core.ErrInvalidRange)

	_, err = env.ledger.ListTransactions(ctx, env.userID, core.TransactionFilter{
		From: core.NewDate(2024, 2, 1),
		To:   core.NewDate(2024, 1, 1),
	}, 0, 0)
	assert.ErrorIs(t, err, core.ErrInvalidRange)

	_, err = env.ledger.ListCategories(ctx, "misc")
	assert.ErrorIs(t, err, core.ErrInvalidType)
}

func TestLedgerService_RecordAndDeleteWithoutBroker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tx := env.record(t, env.salaire, 150000, core.NewDate(2024, 1, 5), "Salaire")

	acc, err := env.ledger.GetAccount(ctx, env.userID, env.accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), acc.Balance)

	require.NoError(t, env.ledger.DeleteTransaction(ctx, env.userID, tx.ID))
	acc, err = env.ledger.GetAccount(ctx, env.userID, env.accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), acc.Balance)
}

func TestAnalyticsService_CategoryBreakdownPercentages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.record(t, env.food, -75000, core.NewDate(2024, 1, 5), "Marché")
	env.record(t, env.transport, -25000, core.NewDate(2024, 1, 8), "Taxi")

	shares, err := env.analytics.CategoryExpenseBreakdown(ctx, env.userID,
		core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "Alimentation", shares[0].Category)
	assert.Equal(t, 75.0, shares[0].Percentage)
	assert.Equal(t, "Transport", shares[1].Category)
	assert.Equal(t, 25.0, shares[1].Percentage)
}

func TestAnalyticsService_BreakdownRoundsToOneDecimal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 1/3 splits produce 33.333..., must come back as 33.3
	env.record(t, env.food, -1000, core.NewDate(2024, 1, 5), "Un")
	env.record(t, env.transport, -2000, core.NewDate(2024, 1, 6), "Deux")

	shares, err := env.analytics.CategoryExpenseBreakdown(ctx, env.userID,
		core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, 66.7, shares[0].Percentage)
	assert.Equal(t, 33.3, shares[1].Percentage)
}

func TestAnalyticsService_BreakdownNoExpenses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.record(t, env.salaire, 100000, core.NewDate(2024, 1, 5), "Salaire")

	shares, err := env.analytics.CategoryExpenseBreakdown(ctx, env.userID,
		core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, shares)
}

func TestAnalyticsService_SummaryStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.record(t, env.salaire, 100, core.NewDate(2024, 1, 5), "Un")
	env.record(t, env.salaire, 201, core.NewDate(2024, 1, 6), "Deux")
	env.record(t, env.food, -50, core.NewDate(2024, 1, 7), "Marché")

	stats, err := env.analytics.SummaryStats(ctx, env.userID,
		core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(t, err)

	// 301 over two income rows rounds up to 151
	assert.Equal(t, core.SummaryStats{
		AvgIncome:    151,
		AvgExpense:   50,
		TotalIncome:  301,
		TotalExpense: 50,
	}, stats)
}

func TestAnalyticsService_SummaryStatsEmptyWindow(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.analytics.SummaryStats(context.Background(), env.userID,
		core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, core.SummaryStats{}, stats)
}

func TestAnalyticsService_InvalidRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	from, to := core.NewDate(2024, 2, 1), core.NewDate(2024, 1, 1)

	_, err := env.analytics.MonthlySeries(ctx, env.userID, from, to)
	assert.ErrorIs(t, err, core.ErrInvalidRange)
	_, err = env.analytics.CategoryExpenseBreakdown(ctx, env.userID, from, to)
	assert.ErrorIs(t, err, core.ErrInvalidRange)
	_, err = env.analytics.SummaryStats(ctx, env.userID, from, to)
	assert.ErrorIs(t, err, core.ErrInvalidRange)
}

func TestBudgetService_FindOverruns(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	window := func(categoryID, amount int64) core.Budget {
		return core.Budget{
			UserID:     env.userID,
			CategoryID: categoryID,
			Amount:     amount,
			Period:     core.Monthly,
			StartDate:  core.NewDate(2024, 3, 1),
			EndDate:    core.NewDate(2024, 3, 31),
		}
	}
	_, err := env.budgets.CreateBudget(ctx, window(env.food, 300000))
	require.NoError(t, err)
	_, err = env.budgets.CreateBudget(ctx, window(env.transport, 50000))
	require.NoError(t, err)

	env.record(t, env.food, -320000, core.NewDate(2024, 3, 15), "Gros mois")
	// Exactly at the limit, not an overrun
	env.record(t, env.transport, -50000, core.NewDate(2024, 3, 20), "Taxi")

	overruns, err := env.budgets.FindOverruns(ctx, env.userID)
	require.NoError(t, err)
	require.Len(t, overruns, 1)
	assert.Equal(t, core.Overrun{
		Category:  "Alimentation",
		Allocated: 300000,
		Spent:     320000,
		Overage:   20000,
	}, overruns[0])
}

func TestBudgetService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.budgets.CreateBudget(ctx, core.Budget{
		UserID: env.userID, CategoryID: env.food, Amount: -1,
		Period: core.Monthly, StartDate: core.NewDate(2024, 1, 1), EndDate: core.NewDate(2024, 1, 31),
	})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = env.budgets.CreateBudget(ctx, core.Budget{
		UserID: env.userID, CategoryID: env.food, Amount: 1000,
		Period: "daily", StartDate: core.NewDate(2024, 1, 1), EndDate: core.NewDate(2024, 1, 31),
	})
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)

	_, err = env.budgets.CreateBudget(ctx, core.Budget{
		UserID: env.userID, CategoryID: env.food, Amount: 1000,
		Period: core.Monthly, StartDate: core.NewDate(2024, 2, 1), EndDate: core.NewDate(2024, 1, 1),
	})
	assert.ErrorIs(t, err, core.ErrInvalidRange)
}

func TestInsightService_Generate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, categoryID := range []int64{env.transport, env.food} {
		_, err := env.budgets.CreateBudget(ctx, core.Budget{
			UserID:     env.userID,
			CategoryID: categoryID,
			Amount:     10000,
			Period:     core.Monthly,
			StartDate:  core.NewDate(2024, 3, 1),
			EndDate:    core.NewDate(2024, 3, 31),
		})
		require.NoError(t, err)
	}
	env.record(t, env.food, -30000, core.NewDate(2024, 3, 10), "Marché")
	env.record(t, env.transport, -12500, core.NewDate(2024, 3, 12), "Taxi")

	insights, err := env.insights.Generate(ctx, env.userID)
	require.NoError(t, err)
	require.Len(t, insights, 2)

	// Ordered by category name
	assert.Equal(t, core.Insight{
		Kind:     "budget_overrun",
		Title:    "Dépassement budget Alimentation",
		Message:  "Vous avez dépassé votre budget Alimentation de 20,000 CFA",
		Severity: "warning",
		Icon:     "AlertTriangle",
		Color:    "text-orange-600",
	}, insights[0])
	assert.Equal(t, "Dépassement budget Transport", insights[1].Title)

	// Regenerating without ledger changes yields the same list
	again, err := env.insights.Generate(ctx, env.userID)
	require.NoError(t, err)
	assert.Equal(t, insights, again)
}

func TestInsightService_NoBudgets(t *testing.T) {
	env := newTestEnv(t)

	insights, err := env.insights.Generate(context.Background(), env.userID)
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestGoalService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.goals.CreateGoal(ctx, core.Goal{UserID: env.userID, Title: " ", TargetAmount: 100})
	assert.ErrorIs(t, err, core.ErrEmptyTitle)

	_, err = env.goals.CreateGoal(ctx, core.Goal{UserID: env.userID, Title: "Voyage", TargetAmount: 0})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = env.goals.CreateGoal(ctx, core.Goal{
		UserID: env.userID, Title: "Voyage", TargetAmount: 100, CurrentAmount: -1,
	})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	g, err := env.goals.CreateGoal(ctx, core.Goal{
		UserID: env.userID, Title: "Voyage", TargetAmount: 800000,
	})
	require.NoError(t, err)

	g.CurrentAmount = 250000
	require.NoError(t, env.goals.UpdateGoal(ctx, g))

	goals, err := env.goals.ListGoals(ctx, env.userID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, int64(250000), goals[0].CurrentAmount)
}
