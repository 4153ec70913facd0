// Package events publishes ledger change notifications so that other
// processes (notification workers, UIs) can react to committed mutations.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types. They double as AMQP routing keys.
const (
	GroupCreated      = "group.created"
	GroupDeleted      = "group.deleted"
	PersonAdded       = "person.added"
	PersonDeleted     = "person.deleted"
	ExpenseCreated    = "expense.created"
	ExpenseDeleted    = "expense.deleted"
	SettlementCreated = "settlement.created"
	SettlementDeleted = "settlement.deleted"
)

// LedgerEvent is a lightweight notification: consumers fetch the current
// state (or balances) of the group themselves.
type LedgerEvent struct {
	Type      string    `json:"type"`
	GroupID   string    `json:"group_id"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEvent creates an event stamped with the current time.
func NewLedgerEvent(eventType, groupID, entityID string) LedgerEvent {
	return LedgerEvent{
		Type:      eventType,
		GroupID:   groupID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (LedgerEvent, error) {
	var e LedgerEvent
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers ledger events. Publish is called after the mutation
// has been committed; a failed publish never rolls it back.
type Publisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, LedgerEvent) error { return nil }
func (Nop) Close() error                                { return nil }
