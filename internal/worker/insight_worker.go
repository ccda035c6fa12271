package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tirelire/internal/amqp"
	"tirelire/internal/services"
	"tirelire/internal/storage"
)

// InsightWorker regenerates budget insights whenever the ledger changes.
// Insights are a pure function of the ledger, so handling the same event
// twice produces the same output.
type InsightWorker struct {
	storage  *storage.Repository
	insights *services.InsightService
}

func NewInsightWorker(storage *storage.Repository, insights *services.InsightService) *InsightWorker {
	return &InsightWorker{
		storage:  storage,
		insights: insights,
	}
}

// HandleLedgerEvent processes a single ledger event from AMQP.
func (w *InsightWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"event", msg.Event,
		"transaction_id", msg.TransactionID,
		"user_id", msg.UserID)

	return w.refreshUser(ctx, msg.UserID)
}

// RefreshAll sweeps every user. This is the backup mechanism for events
// lost while the worker was down.
func (w *InsightWorker) RefreshAll(ctx context.Context) error {
	userIDs, err := w.storage.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	for _, userID := range userIDs {
		if err := w.refreshUser(ctx, userID); err != nil {
			slog.ErrorContext(ctx, "Failed to refresh insights", "user_id", userID, "error", err)
		}
	}
	return nil
}

// RunPeriodicRefresh calls RefreshAll every interval until ctx is done.
func (w *InsightWorker) RunPeriodicRefresh(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic refresh", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.RefreshAll(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic refresh failed", "error", err)
			}
		}
	}
}

func (w *InsightWorker) refreshUser(ctx context.Context, userID int64) error {
	insights, err := w.insights.Generate(ctx, userID)
	if err != nil {
		return fmt.Errorf("generate insights for user %d: %w", userID, err)
	}

	for _, insight := range insights {
		slog.WarnContext(ctx, "Budget overrun detected",
			"user_id", userID,
			"title", insight.Title,
			"message", insight.Message)
	}

	slog.InfoContext(ctx, "Insights refreshed", "user_id", userID, "count", len(insights))
	return nil
}
