package amqp

import (
	"encoding/json"
	"time"

	"ledger/internal/ledger"
)

// LedgerChangedMessage tells consumers that the stored ledger changed.
// It carries no expense data; consumers reload the ledger from the blob
// store.
type LedgerChangedMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id,omitempty"`
	Count     int       `json:"count"`
	Version   uint64    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerChangedMessage builds a message from a store change.
func NewLedgerChangedMessage(change ledger.Change) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		Op:        change.Op,
		ID:        change.ID,
		Count:     change.Count,
		Version:   change.Version,
		Timestamp: time.Now(),
	}
}

func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangedMessageFromJSON decodes a message body.
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
