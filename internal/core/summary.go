package core

// MonthlyPoint is one bucket of the income/expense series. Expenses carry
// the absolute value of the bucket's negative amounts.
type MonthlyPoint struct {
	Month    string `json:"month"` // YYYY-MM
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
}

// CategoryShare is one row of the expense distribution for a window.
type CategoryShare struct {
	Category   string  `json:"category"`
	Color      string  `json:"color"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"` // of total expenses, one decimal
}

// SummaryStats aggregates a window across all of a user's transactions.
// Averages are taken over the sign-filtered population; an empty
// population yields zero.
type SummaryStats struct {
	AvgIncome    int64 `json:"avgIncome"`
	AvgExpense   int64 `json:"avgExpenses"`
	TotalIncome  int64 `json:"totalIncome"`
	TotalExpense int64 `json:"totalExpenses"`
}
