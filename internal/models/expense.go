package models

import "github.com/mmynk/groupledger/internal/money"

// Expense is an amount advanced by one payer and shared by a set of debtors.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Name is the label of the expense (e.g., "Groceries").
	Name string

	// Amount is the total paid. Always positive.
	Amount money.Money

	// PayerID is the person who advanced the money.
	PayerID string

	// Debtors are the persons sharing the cost. The payer may be one of them.
	// Duplicates are ignored.
	Debtors []string

	// Weights optionally skews the split: a debtor with weight 2 pays twice
	// the share of a debtor with weight 1. Debtors missing from the map have
	// weight 1. A nil map means an even split.
	Weights map[string]int64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Weighted reports whether the expense uses a non-even split.
func (e *Expense) Weighted() bool {
	for _, w := range e.Weights {
		if w != 1 {
			return true
		}
	}
	return false
}
