// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/groupledger/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersonInUse is returned when deleting a person who is still the
	// payer or a debtor of an expense, or a party of a settlement.
	ErrPersonInUse = errors.New("person is referenced by expenses or settlements")
)

// Snapshot is a point-in-time view of everything the balance engine needs
// for one group.
type Snapshot struct {
	Group       models.Group
	Persons     []models.Person
	Expenses    []models.Expense
	Settlements []models.Settlement
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group. ID and CreatedAt are filled in when empty.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	// DeleteGroup removes a group with its persons, expenses and settlements.
	DeleteGroup(ctx context.Context, groupID string) error

	AddPerson(ctx context.Context, person *models.Person) error
	GetPerson(ctx context.Context, personID string) (*models.Person, error)
	ListPersons(ctx context.Context, groupID string) ([]*models.Person, error)
	// DeletePerson returns ErrPersonInUse while the person is referenced.
	DeletePerson(ctx context.Context, personID string) error

	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error

	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error

	// LedgerSnapshot reads a group's persons, expenses and settlements in a
	// single transaction.
	LedgerSnapshot(ctx context.Context, groupID string) (*Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
