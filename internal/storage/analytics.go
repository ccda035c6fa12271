package storage

import (
	"context"

	"tirelire/internal/core"
)

// MonthlyTotals buckets the user's transactions in [from, to] by calendar
// month. Months with no transactions are absent from the result (sparse
// series); the order is chronological.
func (r *Repository) MonthlyTotals(ctx context.Context, userID int64, from, to core.Date) ([]core.MonthlyPoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', date) AS month,
		        COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS income,
		        COALESCE(SUM(CASE WHEN amount < 0 THEN ABS(amount) ELSE 0 END), 0) AS expenses
		 FROM transactions
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 GROUP BY month
		 ORDER BY month`, userID, from, to,
	)
	if err != nil {
		return nil, storageErr("query monthly totals", err)
	}
	defer rows.Close()

	var points []core.MonthlyPoint
	for rows.Next() {
		var p core.MonthlyPoint
		if err := rows.Scan(&p.Month, &p.Income, &p.Expenses); err != nil {
			return nil, storageErr("scan monthly totals", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate monthly totals", err)
	}

	return points, nil
}

// ExpenseTotalsByCategory sums the user's negative transactions in
// [from, to] per category, largest first. Percentages are left to the
// caller so money arithmetic stays integral in SQL.
func (r *Repository) ExpenseTotalsByCategory(ctx context.Context, userID int64, from, to core.Date) ([]core.CategoryShare, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.name, c.color, SUM(ABS(t.amount)) AS amount
		 FROM transactions t
		 JOIN categories c ON t.category_id = c.id
		 WHERE t.user_id = ? AND t.amount < 0 AND t.date >= ? AND t.date <= ?
		 GROUP BY c.id, c.name, c.color
		 ORDER BY amount DESC, c.name`, userID, from, to,
	)
	if err != nil {
		return nil, storageErr("query category totals", err)
	}
	defer rows.Close()

	var shares []core.CategoryShare
	for rows.Next() {
		var s core.CategoryShare
		if err := rows.Scan(&s.Category, &s.Color, &s.Amount); err != nil {
			return nil, storageErr("scan category totals", err)
		}
		shares = append(shares, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate category totals", err)
	}

	return shares, nil
}

// WindowTotals returns the sums and population counts needed for summary
// statistics over [from, to].
func (r *Repository) WindowTotals(ctx context.Context, userID int64, from, to core.Date) (totalIncome, totalExpense, incomeCount, expenseCount int64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN amount < 0 THEN ABS(amount) ELSE 0 END), 0),
		        COUNT(CASE WHEN amount > 0 THEN 1 END),
		        COUNT(CASE WHEN amount < 0 THEN 1 END)
		 FROM transactions
		 WHERE user_id = ? AND date >= ? AND date <= ?`, userID, from, to,
	).Scan(&totalIncome, &totalExpense, &incomeCount, &expenseCount)
	if err != nil {
		return 0, 0, 0, 0, storageErr("query window totals", err)
	}
	return totalIncome, totalExpense, incomeCount, expenseCount, nil
}

// ExpenseTotal sums the absolute value of the user's negative transactions
// in [from, to]. Used by the dashboard's current-month figure.
func (r *Repository) ExpenseTotal(ctx context.Context, userID int64, from, to core.Date) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(ABS(amount)), 0)
		 FROM transactions
		 WHERE user_id = ? AND amount < 0 AND date >= ? AND date <= ?`, userID, from, to,
	).Scan(&total)
	if err != nil {
		return 0, storageErr("query expense total", err)
	}
	return total, nil
}
