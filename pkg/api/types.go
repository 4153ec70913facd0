// Package api defines the wire messages of the groupledger Connect services
// together with their handler and client constructors.
//
// Money crosses the wire as a decimal string with two fractional digits
// ("12.50"), never as a float.
package api

type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

type Person struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

type Expense struct {
	ID      string   `json:"id"`
	GroupID string   `json:"group_id"`
	Name    string   `json:"name"`
	Amount  string   `json:"amount"`
	PayerID string   `json:"payer_id"`
	Debtors []string `json:"debtors"`
	// Weights is omitted for evenly split expenses.
	Weights   map[string]int64 `json:"weights,omitempty"`
	CreatedAt int64            `json:"created_at"`
}

type Settlement struct {
	ID           string `json:"id"`
	GroupID      string `json:"group_id"`
	FromPersonID string `json:"from_person_id"`
	ToPersonID   string `json:"to_person_id"`
	Amount       string `json:"amount"`
	Note         string `json:"note,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

// PersonBalance is one row of a group's balance sheet.
type PersonBalance struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Paid     string `json:"paid"`
	Owes     string `json:"owes"`
	Balance  string `json:"balance"` // Positive = owed money, Negative = owes money
}

// Transfer is a suggested payment that moves a group towards zero balances.
type Transfer struct {
	FromPersonID string `json:"from_person_id"`
	FromName     string `json:"from_name"`
	ToPersonID   string `json:"to_person_id"`
	ToName       string `json:"to_name"`
	Amount       string `json:"amount"`
}

// GroupService messages

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group   *Group    `json:"group"`
	Persons []*Person `json:"persons"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type AddPersonRequest struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
}

type AddPersonResponse struct {
	Person *Person `json:"person"`
}

type ListPersonsRequest struct {
	GroupID string `json:"group_id"`
}

type ListPersonsResponse struct {
	Persons []*Person `json:"persons"`
}

type DeletePersonRequest struct {
	PersonID string `json:"person_id"`
}

type DeletePersonResponse struct{}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	// Balances are ordered by person id.
	Balances  []*PersonBalance `json:"balances"`
	Transfers []*Transfer      `json:"transfers"`
}

// ExpenseService messages

type CreateExpenseRequest struct {
	GroupID string           `json:"group_id"`
	Name    string           `json:"name"`
	Amount  string           `json:"amount"`
	PayerID string           `json:"payer_id"`
	Debtors []string         `json:"debtors"`
	Weights map[string]int64 `json:"weights,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type RecordSettlementRequest struct {
	GroupID      string `json:"group_id"`
	FromPersonID string `json:"from_person_id"`
	ToPersonID   string `json:"to_person_id"`
	Amount       string `json:"amount"`
	Note         string `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}
