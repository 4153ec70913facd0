package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

// PersonBalance is the balance information for one group member.
type PersonBalance struct {
	Name    string      `json:"name"`
	Paid    money.Money `json:"paid"`    // Total amount advanced across all expenses
	Owes    money.Money `json:"owes"`    // Total of this person's shares
	Balance money.Money `json:"balance"` // Positive = owed money, Negative = owes money
}

// BalanceSheet maps person id to balance. Every person of the roster has an
// entry, including those without any expense.
type BalanceSheet map[string]PersonBalance

// PersonIDs returns the ids of the sheet in ascending order.
func (s BalanceSheet) PersonIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Total returns the sum of all balances. It is zero for every sheet produced
// by ComputeBalances.
func (s BalanceSheet) Total() (money.Money, error) {
	total := money.Zero
	for _, id := range s.PersonIDs() {
		var err error
		if total, err = total.Add(s[id].Balance); err != nil {
			return money.Zero, err
		}
	}
	return total, nil
}

// ComputeBalances computes per-person paid, owed and net amounts from a
// group's roster and expenses.
func ComputeBalances(persons []models.Person, expenses []models.Expense) (BalanceSheet, error) {
	return ComputeGroupBalances(persons, expenses, nil)
}

// ComputeGroupBalances computes balances across expenses and recorded
// settlements.
//
// Algorithm:
//   - Every person in the roster starts at zero
//   - For each expense: payer is credited the amount, each debtor is debited their share
//   - For each settlement: payer's paid total grows, receiver's owed total grows
//   - Aggregate: balance = paid - owed
//
// Money addition is exact, so the result does not depend on the order of
// expenses or settlements. Any invalid record fails the whole computation and
// no sheet is returned.
func ComputeGroupBalances(persons []models.Person, expenses []models.Expense, settlements []models.Settlement) (BalanceSheet, error) {
	roster := make(map[string]models.Person, len(persons))
	for _, p := range persons {
		if _, exists := roster[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePerson, p.ID)
		}
		roster[p.ID] = p
	}

	type account struct {
		paid money.Money
		owes money.Money
	}
	accounts := make(map[string]*account, len(persons))
	for id := range roster {
		accounts[id] = &account{}
	}

	post := func(groupID string, postings []Posting) error {
		for _, p := range postings {
			person, ok := roster[p.PersonID]
			if !ok {
				return fmt.Errorf("%s: %w: %q", p.SourceID, ErrUnknownPersonReference, p.PersonID)
			}
			if groupID != "" && person.GroupID != "" && person.GroupID != groupID {
				return fmt.Errorf("%s: %w: %q belongs to group %s", p.SourceID, ErrUnknownPersonReference, p.PersonID, person.GroupID)
			}

			acc := accounts[p.PersonID]
			var err error
			switch p.Kind {
			case Credit:
				acc.paid, err = acc.paid.Add(p.Amount)
			case Debit:
				acc.owes, err = acc.owes.Subtract(p.Amount)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", p.SourceID, err)
			}
		}
		return nil
	}

	for _, expense := range expenses {
		postings, err := Normalize(expense)
		if err != nil {
			return nil, err
		}
		if err := post(expense.GroupID, postings); err != nil {
			return nil, err
		}
	}

	for _, settlement := range settlements {
		postings, err := NormalizeSettlement(settlement)
		if err != nil {
			return nil, err
		}
		if err := post(settlement.GroupID, postings); err != nil {
			return nil, err
		}
	}

	sheet := make(BalanceSheet, len(accounts))
	for id, acc := range accounts {
		balance, err := acc.paid.Subtract(acc.owes)
		if err != nil {
			return nil, fmt.Errorf("person %s: %w", id, err)
		}
		sheet[id] = PersonBalance{
			Name:    roster[id].Name,
			Paid:    acc.paid,
			Owes:    acc.owes,
			Balance: balance,
		}
	}
	return sheet, nil
}
