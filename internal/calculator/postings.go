package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

var (
	// ErrInvalidAmount is returned for a missing or non-positive amount.
	ErrInvalidAmount = money.ErrInvalidAmount

	// ErrPrecisionOverflow is returned when an amount cannot be split into shares.
	ErrPrecisionOverflow = money.ErrPrecisionOverflow

	// ErrEmptyDebtorSet is returned for an expense without debtors.
	ErrEmptyDebtorSet = errors.New("expense has no debtors")

	// ErrUnknownPersonReference is returned when an expense or settlement
	// references a person that is not part of the group.
	ErrUnknownPersonReference = errors.New("unknown person reference")

	// ErrDuplicatePerson is returned when the roster lists the same id twice.
	ErrDuplicatePerson = errors.New("duplicate person")

	// ErrSelfSettlement is returned for a settlement paid to oneself.
	ErrSelfSettlement = errors.New("settlement between the same person")

	// ErrInvalidWeight is returned for a weight below 1 or a weight given for
	// someone who is not a debtor of the expense.
	ErrInvalidWeight = errors.New("invalid weight")
)

// PostingKind tells whether a posting credits or debits a person.
type PostingKind int

const (
	// Credit increases what a person has paid.
	Credit PostingKind = iota
	// Debit increases what a person owes.
	Debit
)

func (k PostingKind) String() string {
	if k == Credit {
		return "credit"
	}
	return "debit"
}

// Posting is one atomic credit or debit derived from an expense or settlement.
// Credits carry a positive amount and debits a negative one, so the postings
// of a single record always sum to zero.
type Posting struct {
	SourceID string
	PersonID string
	Kind     PostingKind
	Amount   money.Money
}

// Normalize turns an expense into one credit for the payer and one debit per
// distinct debtor.
//
// Debtors are ordered by ascending id before splitting, so the minor units
// left over by an uneven split always go to the same debtors. A payer who
// is also a debtor gets a debit like everybody else.
func Normalize(expense models.Expense) ([]Posting, error) {
	if !expense.Amount.IsPositive() {
		return nil, fmt.Errorf("expense %s: %w: %s", expense.ID, ErrInvalidAmount, expense.Amount)
	}

	debtors := distinctSorted(expense.Debtors)
	if len(debtors) == 0 {
		return nil, fmt.Errorf("expense %s: %w", expense.ID, ErrEmptyDebtorSet)
	}

	if err := checkWeights(expense, debtors); err != nil {
		return nil, err
	}

	var shares []money.Money
	var err error
	if expense.Weighted() {
		weights := make([]int64, len(debtors))
		for i, id := range debtors {
			weights[i] = 1
			if w, ok := expense.Weights[id]; ok {
				weights[i] = w
			}
		}
		shares, err = expense.Amount.Allocate(weights)
	} else {
		shares, err = expense.Amount.DivideEvenly(len(debtors))
	}
	if err != nil {
		return nil, fmt.Errorf("expense %s: %w", expense.ID, err)
	}

	postings := make([]Posting, 0, len(debtors)+1)
	postings = append(postings, Posting{
		SourceID: expense.ID,
		PersonID: expense.PayerID,
		Kind:     Credit,
		Amount:   expense.Amount,
	})
	for i, id := range debtors {
		// Shares are never negative, so negating cannot overflow.
		debit, err := shares[i].Negate()
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", expense.ID, err)
		}
		postings = append(postings, Posting{
			SourceID: expense.ID,
			PersonID: id,
			Kind:     Debit,
			Amount:   debit,
		})
	}
	return postings, nil
}

// NormalizeSettlement turns a recorded settlement into a credit for the person
// who paid and a debit for the person who received the money.
func NormalizeSettlement(settlement models.Settlement) ([]Posting, error) {
	if !settlement.Amount.IsPositive() {
		return nil, fmt.Errorf("settlement %s: %w: %s", settlement.ID, ErrInvalidAmount, settlement.Amount)
	}
	if settlement.FromPersonID == settlement.ToPersonID {
		return nil, fmt.Errorf("settlement %s: %w", settlement.ID, ErrSelfSettlement)
	}
	debit, err := settlement.Amount.Negate()
	if err != nil {
		return nil, fmt.Errorf("settlement %s: %w", settlement.ID, err)
	}
	return []Posting{
		{SourceID: settlement.ID, PersonID: settlement.FromPersonID, Kind: Credit, Amount: settlement.Amount},
		{SourceID: settlement.ID, PersonID: settlement.ToPersonID, Kind: Debit, Amount: debit},
	}, nil
}

// SumPostings adds the signed amounts of postings. For the postings of one
// expense or settlement the result is always zero.
func SumPostings(postings []Posting) (money.Money, error) {
	total := money.Zero
	for _, p := range postings {
		var err error
		if total, err = total.Add(p.Amount); err != nil {
			return money.Zero, err
		}
	}
	return total, nil
}

// checkWeights rejects weights below 1 and weights keyed by anyone outside
// the distinct debtor set. Keys are checked in ascending order so the
// reported error does not depend on map iteration.
func checkWeights(expense models.Expense, debtors []string) error {
	if len(expense.Weights) == 0 {
		return nil
	}
	isDebtor := make(map[string]bool, len(debtors))
	for _, id := range debtors {
		isDebtor[id] = true
	}
	keys := make([]string, 0, len(expense.Weights))
	for id := range expense.Weights {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	for _, id := range keys {
		if !isDebtor[id] {
			return fmt.Errorf("expense %s: %w: %q is not a debtor", expense.ID, ErrInvalidWeight, id)
		}
		if w := expense.Weights[id]; w < 1 {
			return fmt.Errorf("expense %s: %w: %q has weight %d, must be at least 1", expense.ID, ErrInvalidWeight, id, w)
		}
	}
	return nil
}

func distinctSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
