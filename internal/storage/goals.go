package storage

import (
	"context"

	"tirelire/internal/core"
)

func (r *Repository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (user_id, title, description, target_amount, current_amount, deadline, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Title, g.Description, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Category,
	)
	if err != nil {
		return core.Goal{}, storageErr("insert goal", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Goal{}, storageErr("goal id", err)
	}
	g.ID = id

	if err := r.db.QueryRowContext(ctx,
		`SELECT created_at FROM goals WHERE id = ?`, id,
	).Scan(&g.CreatedAt); err != nil {
		return core.Goal{}, storageErr("read goal", err)
	}

	return g, nil
}

// ListGoals returns the user's goals ordered by deadline ascending, goals
// without a deadline last.
func (r *Repository) ListGoals(ctx context.Context, userID int64) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, target_amount, current_amount, deadline, category, created_at
		 FROM goals WHERE user_id = ?
		 ORDER BY deadline IS NULL, deadline, id`, userID,
	)
	if err != nil {
		return nil, storageErr("query goals", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		var g core.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetAmount,
			&g.CurrentAmount, &g.Deadline, &g.Category, &g.CreatedAt); err != nil {
			return nil, storageErr("scan goal", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate goals", err)
	}

	return goals, nil
}

// UpdateGoal rewrites a goal, including manual current-amount adjustments.
// Goal progress is never derived from the ledger.
func (r *Repository) UpdateGoal(ctx context.Context, g core.Goal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals
		 SET title = ?, description = ?, target_amount = ?, current_amount = ?, deadline = ?, category = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		g.Title, g.Description, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Category, g.ID, g.UserID,
	)
	if err != nil {
		return storageErr("update goal", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update goal", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, goalID, userID,
	)
	if err != nil {
		return storageErr("delete goal", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete goal", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
