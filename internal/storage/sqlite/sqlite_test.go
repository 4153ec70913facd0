package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Nested path checks that New creates parent directories
	dbPath := filepath.Join(t.TempDir(), "data", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedGroup(t *testing.T, store *SQLiteStore, names ...string) (*models.Group, []*models.Person) {
	t.Helper()
	ctx := context.Background()

	group := &models.Group{Name: "Trip"}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	var persons []*models.Person
	for _, name := range names {
		p := &models.Person{GroupID: group.ID, Name: name}
		if err := store.AddPerson(ctx, p); err != nil {
			t.Fatalf("AddPerson(%s) failed: %v", name, err)
		}
		persons = append(persons, p)
	}
	return group, persons
}

func TestSQLiteStoreGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and timestamp", func(t *testing.T) {
		group := &models.Group{Name: "Flat"}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Flat" {
			t.Errorf("Expected name Flat, got %s", got.Name)
		}
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListGroups includes created groups", func(t *testing.T) {
		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) == 0 {
			t.Error("Expected at least one group")
		}
	})

	t.Run("DeleteGroup cascades", func(t *testing.T) {
		group, persons := seedGroup(t, store, "Alice", "Bob")
		expense := &models.Expense{
			GroupID: group.ID,
			Name:    "Taxi",
			Amount:  money.FromMinorUnits(1000),
			PayerID: persons[0].ID,
			Debtors: []string{persons[0].ID, persons[1].ID},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected expense to be deleted, got %v", err)
		}
		if _, err := store.GetPerson(ctx, persons[0].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected person to be deleted, got %v", err)
		}
		if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStorePersons(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("AddPerson requires existing group", func(t *testing.T) {
		err := store.AddPerson(ctx, &models.Person{GroupID: "missing", Name: "Ghost"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListPersons keeps insertion order", func(t *testing.T) {
		group, _ := seedGroup(t, store, "Alice", "Bob", "Carol")
		persons, err := store.ListPersons(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListPersons failed: %v", err)
		}
		if len(persons) != 3 {
			t.Fatalf("Expected 3 persons, got %d", len(persons))
		}
		for _, p := range persons {
			if p.GroupID != group.ID {
				t.Errorf("Expected group %s, got %s", group.ID, p.GroupID)
			}
		}
	})

	t.Run("DeletePerson rejects referenced person", func(t *testing.T) {
		group, persons := seedGroup(t, store, "Alice", "Bob", "Carol")
		expense := &models.Expense{
			GroupID: group.ID,
			Name:    "Lunch",
			Amount:  money.FromMinorUnits(1500),
			PayerID: persons[0].ID,
			Debtors: []string{persons[1].ID},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		for _, p := range persons[:2] {
			if err := store.DeletePerson(ctx, p.ID); !errors.Is(err, storage.ErrPersonInUse) {
				t.Errorf("Expected ErrPersonInUse for %s, got %v", p.Name, err)
			}
		}

		if err := store.DeletePerson(ctx, persons[2].ID); err != nil {
			t.Fatalf("DeletePerson of unreferenced person failed: %v", err)
		}
		if err := store.DeletePerson(ctx, persons[2].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group, persons := seedGroup(t, store, "Alice", "Bob", "Carol")

	t.Run("even split round trip", func(t *testing.T) {
		expense := &models.Expense{
			GroupID: group.ID,
			Name:    "Groceries",
			Amount:  money.FromMinorUnits(3000),
			PayerID: persons[0].ID,
			Debtors: []string{persons[2].ID, persons[1].ID, persons[0].ID, persons[1].ID},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount.MinorUnits() != 3000 {
			t.Errorf("Expected amount 3000, got %d", got.Amount.MinorUnits())
		}
		if len(got.Debtors) != 3 {
			t.Fatalf("Expected 3 distinct debtors, got %v", got.Debtors)
		}
		for i := 1; i < len(got.Debtors); i++ {
			if got.Debtors[i-1] >= got.Debtors[i] {
				t.Errorf("Expected debtors sorted, got %v", got.Debtors)
			}
		}
		if got.Weights != nil {
			t.Errorf("Expected nil weights for even split, got %v", got.Weights)
		}
	})

	t.Run("weighted split round trip", func(t *testing.T) {
		expense := &models.Expense{
			GroupID: group.ID,
			Name:    "Hotel",
			Amount:  money.FromMinorUnits(9000),
			PayerID: persons[1].ID,
			Debtors: []string{persons[0].ID, persons[1].ID},
			Weights: map[string]int64{persons[0].ID: 2},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Weights[persons[0].ID] != 2 || got.Weights[persons[1].ID] != 1 {
			t.Errorf("Unexpected weights: %v", got.Weights)
		}
	})

	t.Run("unknown payer violates foreign key", func(t *testing.T) {
		err := store.CreateExpense(ctx, &models.Expense{
			GroupID: group.ID,
			Name:    "Ghost dinner",
			Amount:  money.FromMinorUnits(100),
			PayerID: "ghost",
			Debtors: []string{persons[0].ID},
		})
		if err == nil {
			t.Error("Expected foreign key error")
		}
	})

	t.Run("ListExpensesByGroup and DeleteExpense", func(t *testing.T) {
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("Expected 2 expenses, got %d", len(expenses))
		}
		for _, e := range expenses {
			if len(e.Debtors) == 0 {
				t.Errorf("Expected debtors for %s", e.Name)
			}
		}

		if err := store.DeleteExpense(ctx, expenses[0].ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expenses[0].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStoreSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group, persons := seedGroup(t, store, "Alice", "Bob")

	settlement := &models.Settlement{
		GroupID:      group.ID,
		FromPersonID: persons[1].ID,
		ToPersonID:   persons[0].ID,
		Amount:       money.FromMinorUnits(1250),
		Note:         "Cash",
	}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	got, err := store.GetSettlement(ctx, settlement.ID)
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if got.Amount.MinorUnits() != 1250 || got.Note != "Cash" {
		t.Errorf("Unexpected settlement: %+v", got)
	}

	noNote := &models.Settlement{
		GroupID:      group.ID,
		FromPersonID: persons[1].ID,
		ToPersonID:   persons[0].ID,
		Amount:       money.FromMinorUnits(50),
	}
	if err := store.CreateSettlement(ctx, noNote); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	list, err := store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListSettlementsByGroup failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 settlements, got %d", len(list))
	}

	if err := store.DeleteSettlement(ctx, settlement.ID); err != nil {
		t.Fatalf("DeleteSettlement failed: %v", err)
	}
	if _, err := store.GetSettlement(ctx, settlement.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStoreLedgerSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group, persons := seedGroup(t, store, "Alice", "Bob", "Carol")
	other, _ := seedGroup(t, store, "Mallory")

	expense := &models.Expense{
		GroupID: group.ID,
		Name:    "Groceries",
		Amount:  money.FromMinorUnits(3000),
		PayerID: persons[0].ID,
		Debtors: []string{persons[0].ID, persons[1].ID, persons[2].ID},
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if err := store.CreateSettlement(ctx, &models.Settlement{
		GroupID:      group.ID,
		FromPersonID: persons[1].ID,
		ToPersonID:   persons[0].ID,
		Amount:       money.FromMinorUnits(1000),
	}); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	snap, err := store.LedgerSnapshot(ctx, group.ID)
	if err != nil {
		t.Fatalf("LedgerSnapshot failed: %v", err)
	}
	if snap.Group.ID != group.ID {
		t.Errorf("Expected group %s, got %s", group.ID, snap.Group.ID)
	}
	if len(snap.Persons) != 3 || len(snap.Expenses) != 1 || len(snap.Settlements) != 1 {
		t.Errorf("Unexpected snapshot sizes: %d persons, %d expenses, %d settlements",
			len(snap.Persons), len(snap.Expenses), len(snap.Settlements))
	}
	if len(snap.Expenses[0].Debtors) != 3 {
		t.Errorf("Expected 3 debtors, got %v", snap.Expenses[0].Debtors)
	}

	otherSnap, err := store.LedgerSnapshot(ctx, other.ID)
	if err != nil {
		t.Fatalf("LedgerSnapshot failed: %v", err)
	}
	if len(otherSnap.Persons) != 1 || len(otherSnap.Expenses) != 0 {
		t.Errorf("Expected other group to be isolated, got %+v", otherSnap)
	}

	if _, err := store.LedgerSnapshot(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestNewReopensExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	group := &models.Group{Name: "Persistent"}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Expected database file: %v", err)
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetGroup(context.Background(), group.ID); err != nil {
		t.Errorf("Expected group to survive reopen: %v", err)
	}
}
