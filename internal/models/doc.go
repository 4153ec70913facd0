// Package models defines the core domain models for the group ledger.
//
// # Models
//
//   - Group: a set of persons sharing expenses
//   - Person: a member of exactly one group, referenced by expenses
//   - Expense: one payment by a payer, shared among a set of debtors
//   - Settlement: a payment made between two persons to clear debts
//
// Balances are never stored. They are derived from the expenses and
// settlements of a group by the calculator package on every query.
//
// # Design Principles
//
// 1. **Group ownership**: persons, expenses and settlements belong to one group
// 2. **Exact money**: every amount is a money.Money in minor units
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
// 4. **Immutable records**: expenses and settlements are created and deleted, never edited
package models
