package storage

import (
	"context"

	"tirelire/internal/core"
)

// CreateAccount inserts an account with its opening balance. The balance
// column afterwards changes only through transaction application.
func (r *Repository) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (user_id, name, bank, type, balance) VALUES (?, ?, ?, ?, ?)`,
		a.UserID, a.Name, a.Bank, a.Type, a.Balance,
	)
	if err != nil {
		return core.Account{}, storageErr("insert account", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Account{}, storageErr("account id", err)
	}
	a.ID = id

	if err := r.db.QueryRowContext(ctx,
		`SELECT created_at FROM accounts WHERE id = ?`, id,
	).Scan(&a.CreatedAt); err != nil {
		return core.Account{}, storageErr("read account", err)
	}

	return a, nil
}

// ListAccounts returns the user's accounts ordered by name.
func (r *Repository) ListAccounts(ctx context.Context, userID int64) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, bank, type, balance, created_at
		 FROM accounts WHERE user_id = ? ORDER BY name`, userID,
	)
	if err != nil {
		return nil, storageErr("query accounts", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Bank, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
			return nil, storageErr("scan account", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate accounts", err)
	}

	return accounts, nil
}

// GetAccount fetches one account, qualified by owner.
func (r *Repository) GetAccount(ctx context.Context, userID, accountID int64) (core.Account, error) {
	var a core.Account
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, bank, type, balance, created_at
		 FROM accounts WHERE id = ? AND user_id = ?`, accountID, userID,
	).Scan(&a.ID, &a.UserID, &a.Name, &a.Bank, &a.Type, &a.Balance, &a.CreatedAt)
	if err != nil {
		return core.Account{}, notFoundOr(err, "query account")
	}
	return a, nil
}
