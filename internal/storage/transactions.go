package storage

import (
	"context"
	"database/sql"
	"strings"

	"tirelire/internal/core"
)

// RecordTransaction appends a transaction and applies its amount to the
// owning account's balance as one indivisible unit. The account must belong
// to the transaction's user and the amount sign must agree with the
// category's direction; both are checked inside the same database
// transaction that performs the write, so no reader can observe a
// transaction without its balance effect or vice versa.
func (r *Repository) RecordTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var accountID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM accounts WHERE id = ? AND user_id = ?`, t.AccountID, t.UserID,
		).Scan(&accountID)
		if err != nil {
			return notFoundOr(err, "check account")
		}

		var kind core.CategoryKind
		err = tx.QueryRowContext(ctx,
			`SELECT type FROM categories WHERE id = ?`, t.CategoryID,
		).Scan(&kind)
		if err != nil {
			return notFoundOr(err, "check category")
		}

		if err := core.CheckAmountSign(kind, t.Amount); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (user_id, account_id, category_id, description, amount, date, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.UserID, t.AccountID, t.CategoryID, t.Description, t.Amount, t.Date, t.Notes,
		)
		if err != nil {
			return storageErr("insert transaction", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return storageErr("transaction id", err)
		}
		t.ID = id

		if _, err := tx.ExecContext(ctx,
			`UPDATE accounts SET balance = balance + ? WHERE id = ?`, t.Amount, t.AccountID,
		); err != nil {
			return storageErr("adjust balance", err)
		}

		if err := tx.QueryRowContext(ctx,
			`SELECT created_at FROM transactions WHERE id = ?`, id,
		).Scan(&t.CreatedAt); err != nil {
			return storageErr("read transaction", err)
		}

		return nil
	})
	if err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect
// in the same database transaction.
func (r *Repository) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var accountID, amount int64
		err := tx.QueryRowContext(ctx,
			`SELECT account_id, amount FROM transactions WHERE id = ? AND user_id = ?`,
			transactionID, userID,
		).Scan(&accountID, &amount)
		if err != nil {
			return notFoundOr(err, "check transaction")
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM transactions WHERE id = ?`, transactionID,
		); err != nil {
			return storageErr("delete transaction", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE accounts SET balance = balance - ? WHERE id = ?`, amount, accountID,
		); err != nil {
			return storageErr("reverse balance", err)
		}

		return nil
	})
}

// GetTransaction fetches one transaction, qualified by owner.
func (r *Repository) GetTransaction(ctx context.Context, userID, transactionID int64) (core.Transaction, error) {
	var t core.Transaction
	err := r.db.QueryRowContext(ctx,
		`SELECT t.id, t.user_id, t.account_id, t.category_id, t.description, t.amount, t.date, t.notes, t.created_at,
		        c.name, a.name
		 FROM transactions t
		 JOIN categories c ON t.category_id = c.id
		 JOIN accounts a ON t.account_id = a.id
		 WHERE t.id = ? AND t.user_id = ?`, transactionID, userID,
	).Scan(&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.Description, &t.Amount,
		&t.Date, &t.Notes, &t.CreatedAt, &t.Category, &t.Account)
	if err != nil {
		return core.Transaction{}, notFoundOr(err, "query transaction")
	}
	return t, nil
}

// ListTransactions returns a window over the user's transaction log,
// ordered by date descending with newest insertions first on date ties.
// The window is a plain limit/offset slice; callers tolerate drift when
// writes land between pages.
func (r *Repository) ListTransactions(ctx context.Context, userID int64, filter core.TransactionFilter, limit, offset int) ([]core.Transaction, error) {
	query := `SELECT t.id, t.user_id, t.account_id, t.category_id, t.description, t.amount, t.date, t.notes, t.created_at,
	                 c.name, a.name
	          FROM transactions t
	          JOIN categories c ON t.category_id = c.id
	          JOIN accounts a ON t.account_id = a.id
	          WHERE t.user_id = ?`
	args := []any{userID}

	if filter.CategoryName != "" && filter.CategoryName != "all" {
		query += " AND c.name = ?"
		args = append(args, filter.CategoryName)
	}
	if filter.Search != "" {
		query += " AND LOWER(t.description) LIKE ?"
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if !filter.From.IsZero() {
		query += " AND t.date >= ?"
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += " AND t.date <= ?"
		args = append(args, filter.To)
	}

	query += " ORDER BY t.date DESC, t.created_at DESC, t.id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("query transactions", err)
	}
	defer rows.Close()

	var transactions []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.Description,
			&t.Amount, &t.Date, &t.Notes, &t.CreatedAt, &t.Category, &t.Account); err != nil {
			return nil, storageErr("scan transaction", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate transactions", err)
	}

	return transactions, nil
}
