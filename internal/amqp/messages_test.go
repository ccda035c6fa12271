package amqp

import (
	"testing"
	"time"
)

func TestNewLedgerEventMessage(t *testing.T) {
	msg := NewLedgerEventMessage(EventTransactionRecorded, 42, 7)

	if msg.Event != EventTransactionRecorded {
		t.Errorf("Event = %v, want %v", msg.Event, EventTransactionRecorded)
	}
	if msg.TransactionID != 42 {
		t.Errorf("TransactionID = %v, want 42", msg.TransactionID)
	}
	if msg.UserID != 7 {
		t.Errorf("UserID = %v, want 7", msg.UserID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestLedgerEventMessage_JSON(t *testing.T) {
	msg := &LedgerEventMessage{
		Event:         EventTransactionDeleted,
		TransactionID: 42,
		UserID:        7,
		Timestamp:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := LedgerEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("LedgerEventMessageFromJSON() error = %v", err)
	}

	if parsed.Event != msg.Event || parsed.TransactionID != msg.TransactionID || parsed.UserID != msg.UserID {
		t.Errorf("round trip mismatch: got %+v, want %+v", parsed, msg)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestLedgerEventMessage_InvalidJSON(t *testing.T) {
	if _, err := LedgerEventMessageFromJSON([]byte(`{"transactionId": "nope"}`)); err == nil {
		t.Error("LedgerEventMessageFromJSON() should fail with invalid JSON")
	}
}
