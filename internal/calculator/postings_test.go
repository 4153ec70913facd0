package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.FromDecimalString(s)
	require.NoError(t, err)
	return m
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		expense models.Expense
		want    []Posting
		wantErr error
	}{
		{
			name: "ten dollars three ways gives the extra cent to the lowest id",
			expense: models.Expense{
				ID:      "e1",
				Amount:  money.FromMinorUnits(1000),
				PayerID: "alice",
				Debtors: []string{"carol", "alice", "bob"},
			},
			want: []Posting{
				{SourceID: "e1", PersonID: "alice", Kind: Credit, Amount: money.FromMinorUnits(1000)},
				{SourceID: "e1", PersonID: "alice", Kind: Debit, Amount: money.FromMinorUnits(-334)},
				{SourceID: "e1", PersonID: "bob", Kind: Debit, Amount: money.FromMinorUnits(-333)},
				{SourceID: "e1", PersonID: "carol", Kind: Debit, Amount: money.FromMinorUnits(-333)},
			},
		},
		{
			name: "payer outside the debtor set",
			expense: models.Expense{
				ID:      "e2",
				Amount:  money.FromMinorUnits(500),
				PayerID: "alice",
				Debtors: []string{"bob"},
			},
			want: []Posting{
				{SourceID: "e2", PersonID: "alice", Kind: Credit, Amount: money.FromMinorUnits(500)},
				{SourceID: "e2", PersonID: "bob", Kind: Debit, Amount: money.FromMinorUnits(-500)},
			},
		},
		{
			name: "duplicate debtors collapse",
			expense: models.Expense{
				ID:      "e3",
				Amount:  money.FromMinorUnits(600),
				PayerID: "alice",
				Debtors: []string{"bob", "bob", "alice"},
			},
			want: []Posting{
				{SourceID: "e3", PersonID: "alice", Kind: Credit, Amount: money.FromMinorUnits(600)},
				{SourceID: "e3", PersonID: "alice", Kind: Debit, Amount: money.FromMinorUnits(-300)},
				{SourceID: "e3", PersonID: "bob", Kind: Debit, Amount: money.FromMinorUnits(-300)},
			},
		},
		{
			name: "weighted shares",
			expense: models.Expense{
				ID:      "e4",
				Amount:  money.FromMinorUnits(900),
				PayerID: "alice",
				Debtors: []string{"alice", "bob"},
				Weights: map[string]int64{"bob": 2},
			},
			want: []Posting{
				{SourceID: "e4", PersonID: "alice", Kind: Credit, Amount: money.FromMinorUnits(900)},
				{SourceID: "e4", PersonID: "alice", Kind: Debit, Amount: money.FromMinorUnits(-300)},
				{SourceID: "e4", PersonID: "bob", Kind: Debit, Amount: money.FromMinorUnits(-600)},
			},
		},
		{
			name:    "zero amount",
			expense: models.Expense{ID: "e5", PayerID: "alice", Debtors: []string{"bob"}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			expense: models.Expense{ID: "e6", Amount: money.FromMinorUnits(-100), PayerID: "alice", Debtors: []string{"bob"}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "no debtors",
			expense: models.Expense{ID: "e7", Amount: money.FromMinorUnits(100), PayerID: "alice"},
			wantErr: ErrEmptyDebtorSet,
		},
		{
			name: "non-positive weight",
			expense: models.Expense{
				ID:      "e8",
				Amount:  money.FromMinorUnits(100),
				PayerID: "alice",
				Debtors: []string{"alice", "bob"},
				Weights: map[string]int64{"bob": 0},
			},
			wantErr: ErrInvalidWeight,
		},
		{
			name: "negative weight",
			expense: models.Expense{
				ID:      "e9",
				Amount:  money.FromMinorUnits(100),
				PayerID: "alice",
				Debtors: []string{"alice", "bob"},
				Weights: map[string]int64{"alice": -3},
			},
			wantErr: ErrInvalidWeight,
		},
		{
			name: "weight for someone outside the debtors",
			expense: models.Expense{
				ID:      "e10",
				Amount:  money.FromMinorUnits(3000),
				PayerID: "alice",
				Debtors: []string{"alice", "bob"},
				Weights: map[string]int64{"bobb": 5},
			},
			wantErr: ErrInvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postings, err := Normalize(tt.expense)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, postings)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, postings)

			sum, err := SumPostings(postings)
			require.NoError(t, err)
			assert.True(t, sum.IsZero(), "postings sum to %s", sum)
		})
	}
}

func TestNormalizeScenarioB(t *testing.T) {
	postings, err := Normalize(models.Expense{
		ID:      "dinner",
		Amount:  mustMoney(t, "10.00"),
		PayerID: "p1",
		Debtors: []string{"p3", "p2", "p1"},
	})
	require.NoError(t, err)

	var shares []string
	for _, p := range postings {
		if p.Kind == Debit {
			shares = append(shares, p.Amount.Abs().String())
		}
	}
	assert.Equal(t, []string{"3.34", "3.33", "3.33"}, shares)
}

func TestNormalizeIsZeroSumForManySplits(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	for amount := int64(1); amount <= 2000; amount += 37 {
		for n := 1; n <= len(ids); n++ {
			postings, err := Normalize(models.Expense{
				ID:      "e",
				Amount:  money.FromMinorUnits(amount),
				PayerID: "a",
				Debtors: ids[:n],
			})
			require.NoError(t, err)
			require.Len(t, postings, n+1)

			sum, err := SumPostings(postings)
			require.NoError(t, err)
			require.True(t, sum.IsZero(), "amount %d split %d ways sums to %s", amount, n, sum)
		}
	}
}

func TestNormalizeSettlement(t *testing.T) {
	postings, err := NormalizeSettlement(models.Settlement{
		ID:           "s1",
		FromPersonID: "bob",
		ToPersonID:   "alice",
		Amount:       money.FromMinorUnits(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, []Posting{
		{SourceID: "s1", PersonID: "bob", Kind: Credit, Amount: money.FromMinorUnits(1000)},
		{SourceID: "s1", PersonID: "alice", Kind: Debit, Amount: money.FromMinorUnits(-1000)},
	}, postings)

	_, err = NormalizeSettlement(models.Settlement{ID: "s2", FromPersonID: "bob", ToPersonID: "bob", Amount: money.FromMinorUnits(1)})
	assert.ErrorIs(t, err, ErrSelfSettlement)

	_, err = NormalizeSettlement(models.Settlement{ID: "s3", FromPersonID: "bob", ToPersonID: "alice"})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
