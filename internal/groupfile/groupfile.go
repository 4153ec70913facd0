// Package groupfile reads a group ledger described in YAML, so balances can
// be computed offline without a server.
//
// Example:
//
//	name: Lisbon trip
//	persons:
//	  - id: alice
//	    name: Alice
//	  - id: bob
//	    name: Bob
//	expenses:
//	  - name: Groceries
//	    amount: "30.00"
//	    payer: alice
//	    debtors: [alice, bob]
//	    weights: {bob: 2}
//	settlements:
//	  - from: bob
//	    to: alice
//	    amount: "5.00"
package groupfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

type file struct {
	Name        string            `yaml:"name"`
	Persons     []personEntry     `yaml:"persons"`
	Expenses    []expenseEntry    `yaml:"expenses"`
	Settlements []settlementEntry `yaml:"settlements"`
}

type personEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type expenseEntry struct {
	ID      string           `yaml:"id"`
	Name    string           `yaml:"name"`
	Amount  string           `yaml:"amount"`
	Payer   string           `yaml:"payer"`
	Debtors []string         `yaml:"debtors"`
	Weights map[string]int64 `yaml:"weights"`
}

type settlementEntry struct {
	ID     string `yaml:"id"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Amount string `yaml:"amount"`
	Note   string `yaml:"note"`
}

// Ledger is a group read from a file, ready for the calculator.
type Ledger struct {
	Name        string
	Persons     []models.Person
	Expenses    []models.Expense
	Settlements []models.Settlement
}

// Load reads and parses the file at path.
func Load(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ledger, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if ledger.Name == "" {
		ledger.Name = path
	}
	return ledger, nil
}

// Parse decodes a YAML group. Unknown keys are rejected so that typos do not
// silently drop data.
func Parse(r io.Reader) (*Ledger, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty group file")
		}
		return nil, fmt.Errorf("decode: %w", err)
	}

	groupID := f.Name
	ledger := &Ledger{Name: f.Name}

	for i, p := range f.Persons {
		if p.ID == "" {
			return nil, fmt.Errorf("person %d: id required", i+1)
		}
		name := p.Name
		if name == "" {
			name = p.ID
		}
		ledger.Persons = append(ledger.Persons, models.Person{ID: p.ID, GroupID: groupID, Name: name})
	}

	for i, e := range f.Expenses {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("expense-%d", i+1)
		}
		amount, err := money.FromPositiveDecimalString(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", id, err)
		}
		ledger.Expenses = append(ledger.Expenses, models.Expense{
			ID:      id,
			GroupID: groupID,
			Name:    e.Name,
			Amount:  amount,
			PayerID: e.Payer,
			Debtors: e.Debtors,
			Weights: e.Weights,
		})
	}

	for i, s := range f.Settlements {
		id := s.ID
		if id == "" {
			id = fmt.Sprintf("settlement-%d", i+1)
		}
		amount, err := money.FromPositiveDecimalString(s.Amount)
		if err != nil {
			return nil, fmt.Errorf("settlement %s: %w", id, err)
		}
		ledger.Settlements = append(ledger.Settlements, models.Settlement{
			ID:           id,
			GroupID:      groupID,
			FromPersonID: s.From,
			ToPersonID:   s.To,
			Amount:       amount,
			Note:         s.Note,
		})
	}

	return ledger, nil
}

// Summarize computes the balance sheet and settling transfers of the group.
func (l *Ledger) Summarize() (*calculator.Summary, error) {
	summary, err := calculator.Summarize(l.Persons, l.Expenses, l.Settlements)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Name, err)
	}
	return summary, nil
}
