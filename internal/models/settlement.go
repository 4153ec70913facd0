package models

import "github.com/mmynk/groupledger/internal/money"

// Settlement represents a payment between group members to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromPersonID is the person who paid (debtor settling up).
	FromPersonID string

	// ToPersonID is the person who received payment (creditor being paid).
	ToPersonID string

	// Amount is the payment amount. Always positive.
	Amount money.Money

	// Note is an optional description for the settlement.
	Note string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
