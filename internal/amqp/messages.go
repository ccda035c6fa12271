package amqp

import (
	"encoding/json"
	"time"
)

const (
	EventTransactionRecorded = "transaction.recorded"
	EventTransactionDeleted  = "transaction.deleted"
)

// LedgerEventMessage is a lightweight notification that a user's ledger
// changed. It carries only identifiers; the worker re-reads the ledger
// itself, so replays and duplicates are harmless.
type LedgerEventMessage struct {
	Event         string    `json:"event"`
	TransactionID int64     `json:"transactionId"`
	UserID        int64     `json:"userId"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(event string, transactionID, userID int64) *LedgerEventMessage {
	return &LedgerEventMessage{
		Event:         event,
		TransactionID: transactionID,
		UserID:        userID,
		Timestamp:     time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
