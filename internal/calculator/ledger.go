// Package calculator implements the balance ledger engine: it normalizes
// expenses into postings, folds them into per-person balances and suggests
// the transfers that settle a group.
//
// Every function in this package is pure. Callers pass a point-in-time
// snapshot of a group and get either a fully consistent result or an error;
// nothing is cached, logged or persisted here, so concurrent calls on
// different snapshots need no coordination.
package calculator

import "github.com/mmynk/groupledger/internal/models"

// Summary is the balance sheet of a group together with the transfers that
// would settle it.
type Summary struct {
	Sheet     BalanceSheet `json:"balances"`
	Transfers []Transfer   `json:"transfers"`
}

// Summarize computes the balance sheet of a group and the transfers that
// settle it.
func Summarize(persons []models.Person, expenses []models.Expense, settlements []models.Settlement) (*Summary, error) {
	sheet, err := ComputeGroupBalances(persons, expenses, settlements)
	if err != nil {
		return nil, err
	}
	transfers, err := ComputeSettlement(sheet)
	if err != nil {
		return nil, err
	}
	return &Summary{Sheet: sheet, Transfers: transfers}, nil
}
