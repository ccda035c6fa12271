package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tirelire/internal/amqp"
	"tirelire/internal/core"
	"tirelire/internal/storage"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// LedgerService orchestrates account and transaction writes across SQLite
// and the AMQP event feed.
type LedgerService struct {
	storage    *storage.Repository
	amqpClient *amqp.Client
}

func NewLedgerService(storage *storage.Repository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

func (s *LedgerService) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	a.Name = strings.TrimSpace(a.Name)
	return s.storage.CreateAccount(ctx, a)
}

func (s *LedgerService) ListAccounts(ctx context.Context, userID int64) ([]core.Account, error) {
	return s.storage.ListAccounts(ctx, userID)
}

func (s *LedgerService) GetAccount(ctx context.Context, userID, accountID int64) (core.Account, error) {
	return s.storage.GetAccount(ctx, userID, accountID)
}

func (s *LedgerService) ListCategories(ctx context.Context, kind core.CategoryKind) ([]core.Category, error) {
	if kind != "" && !kind.Valid() {
		return nil, core.ErrInvalidType
	}
	return s.storage.ListCategories(ctx, kind)
}

// RecordTransaction appends to the ledger and adjusts the account balance
// in one step, then announces the change on the event feed. Publish
// failures are logged, never surfaced: the ledger write already succeeded.
func (s *LedgerService) RecordTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if strings.TrimSpace(t.Description) == "" {
		return core.Transaction{}, core.ErrEmptyDescription
	}
	if t.Date.IsZero() {
		return core.Transaction{}, core.ErrInvalidRange
	}

	saved, err := s.storage.RecordTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	s.publishLedgerEvent(ctx, amqp.EventTransactionRecorded, saved.ID, saved.UserID)
	return saved, nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, userID, transactionID int64) (core.Transaction, error) {
	return s.storage.GetTransaction(ctx, userID, transactionID)
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	if err := s.storage.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publishLedgerEvent(ctx, amqp.EventTransactionDeleted, transactionID, userID)
	return nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, userID int64, filter core.TransactionFilter, limit, offset int) ([]core.Transaction, error) {
	if err := core.ValidateRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.storage.ListTransactions(ctx, userID, filter, limit, offset)
}

func (s *LedgerService) publishLedgerEvent(ctx context.Context, event string, transactionID, userID int64) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping ledger event", "event", event)
		return
	}

	if err := s.amqpClient.PublishLedgerEvent(ctx, event, transactionID, userID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"event", event,
			"transaction_id", transactionID,
			"error", err)
	}
}
