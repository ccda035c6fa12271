package storage

import (
	"context"
	"database/sql"

	"tirelire/internal/core"
)

func (r *Repository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	// The referenced category must exist; budgets may target any direction
	// but only expense transactions count toward spending.
	if _, err := r.GetCategory(ctx, b.CategoryID); err != nil {
		return core.Budget{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category_id, amount, period, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID, b.CategoryID, b.Amount, b.Period, b.StartDate, b.EndDate,
	)
	if err != nil {
		return core.Budget{}, storageErr("insert budget", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Budget{}, storageErr("budget id", err)
	}
	b.ID = id
	return b, nil
}

func (r *Repository) UpdateBudget(ctx context.Context, b core.Budget) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets
		 SET amount = ?, period = ?, start_date = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		b.Amount, b.Period, b.StartDate, b.EndDate, b.ID, b.UserID,
	)
	if err != nil {
		return storageErr("update budget", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update budget", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, budgetID, userID,
	)
	if err != nil {
		return storageErr("delete budget", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete budget", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// EvaluateBudgets derives spent-vs-allocated for every budget the user
// owns, ordered by category name. Spent is the absolute sum of the user's
// negative transactions in the budget's category whose date falls inside
// the budget window, endpoints inclusive. It is recomputed on every call;
// nothing is cached.
func (r *Repository) EvaluateBudgets(ctx context.Context, userID int64) ([]core.BudgetStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.user_id, b.category_id, b.amount, b.period, b.start_date, b.end_date,
		        c.name, c.color,
		        COALESCE(SUM(CASE WHEN t.amount < 0 THEN ABS(t.amount) ELSE 0 END), 0) AS spent
		 FROM budgets b
		 JOIN categories c ON b.category_id = c.id
		 LEFT JOIN transactions t ON t.category_id = b.category_id
		        AND t.user_id = b.user_id
		        AND t.date >= b.start_date
		        AND t.date <= b.end_date
		 WHERE b.user_id = ?
		 GROUP BY b.id
		 ORDER BY c.name, b.id`, userID,
	)
	if err != nil {
		return nil, storageErr("query budgets", err)
	}
	defer rows.Close()

	var statuses []core.BudgetStatus
	for rows.Next() {
		var s core.BudgetStatus
		if err := rows.Scan(&s.ID, &s.UserID, &s.CategoryID, &s.Amount, &s.Period,
			&s.StartDate, &s.EndDate, &s.Category, &s.Color, &s.Spent); err != nil {
			return nil, storageErr("scan budget", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate budgets", err)
	}

	return statuses, nil
}

// GetBudget fetches one budget, qualified by owner.
func (r *Repository) GetBudget(ctx context.Context, userID, budgetID int64) (core.Budget, error) {
	var b core.Budget
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, category_id, amount, period, start_date, end_date
		 FROM budgets WHERE id = ? AND user_id = ?`, budgetID, userID,
	).Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Period, &b.StartDate, &b.EndDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.Budget{}, core.ErrNotFound
		}
		return core.Budget{}, storageErr("query budget", err)
	}
	return b, nil
}
