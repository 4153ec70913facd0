package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/groupledger/internal/money"
)

// ErrUnbalancedSheet is returned when the balances of a sheet do not sum to zero.
var ErrUnbalancedSheet = errors.New("balance sheet does not sum to zero")

// Transfer is one suggested payment that moves balances toward zero.
type Transfer struct {
	From   string      `json:"from"` // Person who owes
	To     string      `json:"to"`   // Person who is owed
	Amount money.Money `json:"amount"`
}

type party struct {
	id     string
	amount int64 // magnitude, always > 0 while the party is open
}

// largest returns the index of the party with the largest amount, preferring
// the smaller id on ties.
func largest(parties []party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		p, b := parties[i], parties[best]
		if p.amount > b.amount || (p.amount == b.amount && p.id < b.id) {
			best = i
		}
	}
	return best
}

func remove(parties []party, i int) []party {
	parties[i] = parties[len(parties)-1]
	return parties[:len(parties)-1]
}

// ComputeSettlement suggests transfers that zero every balance of the sheet.
//
// Greedy algorithm: the debtor with the largest debt pays the creditor with
// the largest credit min(debt, credit), and whoever reaches zero drops out.
// Each step closes at least one person and the last step closes two, so at
// most n-1 transfers are produced for n persons with a nonzero balance.
func ComputeSettlement(sheet BalanceSheet) ([]Transfer, error) {
	total, err := sheet.Total()
	if err != nil {
		return nil, err
	}
	if !total.IsZero() {
		return nil, fmt.Errorf("%w: off by %s", ErrUnbalancedSheet, total)
	}

	var creditors, debtors []party
	for _, id := range sheet.PersonIDs() {
		balance := sheet[id].Balance
		switch balance.Sign() {
		case 1:
			creditors = append(creditors, party{id: id, amount: balance.MinorUnits()})
		case -1:
			debtors = append(debtors, party{id: id, amount: balance.Abs().MinorUnits()})
		}
	}

	transfers := make([]Transfer, 0, len(creditors)+len(debtors))
	for len(debtors) > 0 && len(creditors) > 0 {
		d, c := largest(debtors), largest(creditors)

		amount := debtors[d].amount
		if creditors[c].amount < amount {
			amount = creditors[c].amount
		}
		transfers = append(transfers, Transfer{
			From:   debtors[d].id,
			To:     creditors[c].id,
			Amount: money.FromMinorUnits(amount),
		})

		debtors[d].amount -= amount
		creditors[c].amount -= amount
		if debtors[d].amount == 0 {
			debtors = remove(debtors, d)
		}
		if creditors[c].amount == 0 {
			creditors = remove(creditors, c)
		}
	}
	return transfers, nil
}

// ApplyTransfers returns the balances left after every transfer is paid.
// A transfer raises the payer's balance and lowers the receiver's.
func ApplyTransfers(sheet BalanceSheet, transfers []Transfer) (map[string]money.Money, error) {
	balances := make(map[string]money.Money, len(sheet))
	for id, b := range sheet {
		balances[id] = b.Balance
	}
	for _, t := range transfers {
		from, ok := balances[t.From]
		if !ok {
			return nil, fmt.Errorf("transfer: %w: %q", ErrUnknownPersonReference, t.From)
		}
		to, ok := balances[t.To]
		if !ok {
			return nil, fmt.Errorf("transfer: %w: %q", ErrUnknownPersonReference, t.To)
		}
		var err error
		if balances[t.From], err = from.Add(t.Amount); err != nil {
			return nil, err
		}
		if balances[t.To], err = to.Subtract(t.Amount); err != nil {
			return nil, err
		}
	}
	return balances, nil
}
