package calculator

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

func roster(groupID string, names ...string) []models.Person {
	persons := make([]models.Person, len(names))
	for i, name := range names {
		persons[i] = models.Person{ID: fmt.Sprintf("p%d", i+1), GroupID: groupID, Name: name}
	}
	return persons
}

// randomGroup builds a consistent group with up to 8 persons and 40 expenses.
func randomGroup(r *rand.Rand) ([]models.Person, []models.Expense) {
	persons := roster("g", "Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi")[:2+r.IntN(7)]
	expenses := make([]models.Expense, r.IntN(40))
	for i := range expenses {
		var debtors []string
		for _, p := range persons {
			if r.IntN(2) == 0 {
				debtors = append(debtors, p.ID)
			}
		}
		if len(debtors) == 0 {
			debtors = []string{persons[r.IntN(len(persons))].ID}
		}
		var weights map[string]int64
		if r.IntN(4) == 0 {
			weights = map[string]int64{debtors[0]: 1 + r.Int64N(5)}
		}
		expenses[i] = models.Expense{
			ID:      fmt.Sprintf("e%d", i),
			GroupID: "g",
			Amount:  money.FromMinorUnits(1 + r.Int64N(100000)),
			PayerID: persons[r.IntN(len(persons))].ID,
			Debtors: debtors,
			Weights: weights,
		}
	}
	return persons, expenses
}

func TestComputeBalancesScenarioA(t *testing.T) {
	persons := roster("g", "Alice", "Bob", "Carol")
	expenses := []models.Expense{{
		ID:      "e1",
		GroupID: "g",
		Name:    "Groceries",
		Amount:  mustMoney(t, "30.00"),
		PayerID: "p1",
		Debtors: []string{"p1", "p2", "p3"},
	}}

	sheet, err := ComputeBalances(persons, expenses)
	require.NoError(t, err)

	assert.Equal(t, PersonBalance{Name: "Alice", Paid: mustMoney(t, "30.00"), Owes: mustMoney(t, "10.00"), Balance: mustMoney(t, "20.00")}, sheet["p1"])
	assert.Equal(t, "-10.00", sheet["p2"].Balance.String())
	assert.Equal(t, "-10.00", sheet["p3"].Balance.String())

	transfers, err := ComputeSettlement(sheet)
	require.NoError(t, err)
	assert.Equal(t, []Transfer{
		{From: "p2", To: "p1", Amount: mustMoney(t, "10.00")},
		{From: "p3", To: "p1", Amount: mustMoney(t, "10.00")},
	}, transfers)
}

func TestComputeBalancesScenarioC(t *testing.T) {
	persons := roster("g", "Alice", "Bob", "Carol")
	expenses := []models.Expense{
		{ID: "e1", GroupID: "g", Amount: mustMoney(t, "30.00"), PayerID: "p1", Debtors: []string{"p1", "p2", "p3"}},
		{ID: "e2", GroupID: "g", Amount: mustMoney(t, "10.00"), PayerID: "p2", Debtors: []string{"p1", "p2", "p3"}},
	}

	before, err := ComputeBalances(persons, expenses)
	require.NoError(t, err)
	assert.Equal(t, "-13.33", before["p3"].Balance.String())

	// Drop e2: what remains must equal a sheet computed from e1 alone.
	after, err := ComputeBalances(persons, expenses[:1])
	require.NoError(t, err)
	assert.Equal(t, "20.00", after["p1"].Balance.String())
	assert.Equal(t, "-10.00", after["p2"].Balance.String())
	assert.Equal(t, "-10.00", after["p3"].Balance.String())

	e2Only, err := ComputeBalances(persons, expenses[1:])
	require.NoError(t, err)
	for _, id := range before.PersonIDs() {
		diff, err := before[id].Balance.Subtract(after[id].Balance)
		require.NoError(t, err)
		assert.Equal(t, e2Only[id].Balance, diff, "contribution of e2 for %s", id)
	}

	total, err := after.Total()
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestComputeBalancesScenarioD(t *testing.T) {
	persons := roster("g", "Alice", "Bob", "Carol", "Dave")
	expenses := []models.Expense{
		{ID: "e1", GroupID: "g", Amount: mustMoney(t, "12.00"), PayerID: "p1", Debtors: []string{"p1", "p2"}},
	}

	sheet, err := ComputeBalances(persons, expenses)
	require.NoError(t, err)
	require.Len(t, sheet, 4)

	dave, ok := sheet["p4"]
	require.True(t, ok, "person without expenses must appear in the sheet")
	assert.Equal(t, PersonBalance{Name: "Dave"}, dave)

	empty, err := ComputeBalances(persons, nil)
	require.NoError(t, err)
	assert.Len(t, empty, 4)
}

func TestComputeBalancesErrors(t *testing.T) {
	persons := roster("g", "Alice", "Bob")
	tests := []struct {
		name     string
		persons  []models.Person
		expenses []models.Expense
		wantErr  error
	}{
		{
			name:     "unknown payer",
			persons:  persons,
			expenses: []models.Expense{{ID: "e1", GroupID: "g", Amount: money.FromMinorUnits(100), PayerID: "ghost", Debtors: []string{"p1"}}},
			wantErr:  ErrUnknownPersonReference,
		},
		{
			name:     "unknown debtor",
			persons:  persons,
			expenses: []models.Expense{{ID: "e1", GroupID: "g", Amount: money.FromMinorUnits(100), PayerID: "p1", Debtors: []string{"p1", "ghost"}}},
			wantErr:  ErrUnknownPersonReference,
		},
		{
			name:     "debtor from another group",
			persons:  append(roster("g", "Alice"), models.Person{ID: "x1", GroupID: "other", Name: "Mallory"}),
			expenses: []models.Expense{{ID: "e1", GroupID: "g", Amount: money.FromMinorUnits(100), PayerID: "p1", Debtors: []string{"x1"}}},
			wantErr:  ErrUnknownPersonReference,
		},
		{
			name:     "empty debtor set",
			persons:  persons,
			expenses: []models.Expense{{ID: "e1", GroupID: "g", Amount: money.FromMinorUnits(100), PayerID: "p1"}},
			wantErr:  ErrEmptyDebtorSet,
		},
		{
			name:     "zero amount",
			persons:  persons,
			expenses: []models.Expense{{ID: "e1", GroupID: "g", PayerID: "p1", Debtors: []string{"p2"}}},
			wantErr:  ErrInvalidAmount,
		},
		{
			name:    "duplicate person",
			persons: append(roster("g", "Alice"), models.Person{ID: "p1", GroupID: "g", Name: "Alice again"}),
			wantErr: ErrDuplicatePerson,
		},
		{
			name:     "overflowing totals",
			persons:  persons,
			expenses: []models.Expense{
				{ID: "e1", GroupID: "g", Amount: money.FromMinorUnits(1 << 62), PayerID: "p1", Debtors: []string{"p2"}},
				{ID: "e2", GroupID: "g", Amount: money.FromMinorUnits(1 << 62), PayerID: "p1", Debtors: []string{"p2"}},
			},
			wantErr: money.ErrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A valid expense first: a failure later on must still return nothing.
			expenses := append([]models.Expense{
				{ID: "ok", GroupID: "g", Amount: money.FromMinorUnits(100), PayerID: "p1", Debtors: []string{"p1"}},
			}, tt.expenses...)

			sheet, err := ComputeBalances(tt.persons, expenses)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, sheet)
		})
	}
}

func TestComputeGroupBalancesWithSettlements(t *testing.T) {
	persons := roster("g", "Alice", "Bob", "Carol")
	expenses := []models.Expense{
		{ID: "e1", GroupID: "g", Amount: mustMoney(t, "30.00"), PayerID: "p1", Debtors: []string{"p1", "p2", "p3"}},
	}
	settlements := []models.Settlement{
		{ID: "s1", GroupID: "g", FromPersonID: "p2", ToPersonID: "p1", Amount: mustMoney(t, "10.00")},
	}

	sheet, err := ComputeGroupBalances(persons, expenses, settlements)
	require.NoError(t, err)
	assert.Equal(t, "10.00", sheet["p1"].Balance.String())
	assert.True(t, sheet["p2"].Balance.IsZero())
	assert.Equal(t, "-10.00", sheet["p3"].Balance.String())

	transfers, err := ComputeSettlement(sheet)
	require.NoError(t, err)
	assert.Equal(t, []Transfer{{From: "p3", To: "p1", Amount: mustMoney(t, "10.00")}}, transfers)

	_, err = ComputeGroupBalances(persons, expenses, []models.Settlement{
		{ID: "s2", GroupID: "g", FromPersonID: "ghost", ToPersonID: "p1", Amount: mustMoney(t, "1.00")},
	})
	assert.ErrorIs(t, err, ErrUnknownPersonReference)
}

func TestComputeBalancesProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 42))
	for i := 0; i < 200; i++ {
		persons, expenses := randomGroup(r)

		sheet, err := ComputeBalances(persons, expenses)
		require.NoError(t, err)
		require.Len(t, sheet, len(persons))

		// Conservation: balances sum to exactly zero.
		total, err := sheet.Total()
		require.NoError(t, err)
		require.True(t, total.IsZero(), "run %d: balances sum to %s", i, total)

		for id, b := range sheet {
			diff, err := b.Paid.Subtract(b.Owes)
			require.NoError(t, err)
			require.Equal(t, diff, b.Balance, "balance of %s", id)
		}

		// Order independence.
		shuffled := append([]models.Expense(nil), expenses...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		reordered, err := ComputeBalances(persons, shuffled)
		require.NoError(t, err)
		require.Equal(t, sheet, reordered)

		// Idempotence.
		again, err := ComputeBalances(persons, expenses)
		require.NoError(t, err)
		require.Equal(t, sheet, again)
	}
}
