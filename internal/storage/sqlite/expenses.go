package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/storage"
)

// CreateExpense persists an expense and its debtors in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, name, amount_minor, payer_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Name, expense.Amount.MinorUnits(), expense.PayerID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	seen := make(map[string]bool, len(expense.Debtors))
	for _, debtorID := range expense.Debtors {
		if seen[debtorID] {
			continue
		}
		seen[debtorID] = true

		weight := int64(1)
		if w, ok := expense.Weights[debtorID]; ok {
			weight = w
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_debtors (expense_id, person_id, weight) VALUES (?, ?, ?)",
			expense.ID, debtorID, weight,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debtor: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its debtors.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, name, amount_minor, payer_id, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Name, &amount, &expense.PayerID, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = money.FromMinorUnits(amount)

	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, person_id, weight FROM expense_debtors WHERE expense_id = ? ORDER BY person_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get debtors: %w", err)
	}
	defer rows.Close()

	if err := attachDebtors(rows, map[string]*models.Expense{expense.ID: expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup retrieves all expenses of a group, oldest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, groupID)
}

func listExpenses(ctx context.Context, q querier, groupID string) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, group_id, name, amount_minor, payer_id, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		expense := &models.Expense{}
		var amount int64
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Name, &amount, &expense.PayerID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = money.FromMinorUnits(amount)
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	debtorRows, err := q.QueryContext(ctx,
		`SELECT d.expense_id, d.person_id, d.weight
		 FROM expense_debtors d JOIN expenses e ON e.id = d.expense_id
		 WHERE e.group_id = ? ORDER BY d.expense_id, d.person_id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debtors: %w", err)
	}
	defer debtorRows.Close()

	if err := attachDebtors(debtorRows, byID); err != nil {
		return nil, err
	}
	return expenses, nil
}

// attachDebtors fills Debtors and Weights from expense_debtors rows.
// Weights stays nil for evenly split expenses.
func attachDebtors(rows *sql.Rows, byID map[string]*models.Expense) error {
	weights := make(map[string]map[string]int64)
	for rows.Next() {
		var expenseID, personID string
		var weight int64
		if err := rows.Scan(&expenseID, &personID, &weight); err != nil {
			return fmt.Errorf("failed to scan debtor: %w", err)
		}
		expense, ok := byID[expenseID]
		if !ok {
			continue
		}
		expense.Debtors = append(expense.Debtors, personID)
		if weights[expenseID] == nil {
			weights[expenseID] = make(map[string]int64)
		}
		weights[expenseID][personID] = weight
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate debtors: %w", err)
	}

	for id, w := range weights {
		expense := byID[id]
		expense.Weights = w
		if !expense.Weighted() {
			expense.Weights = nil
		}
		sort.Strings(expense.Debtors)
	}
	return nil
}

// DeleteExpense removes an expense. Its debtor rows go with it.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(res, "expense", expenseID)
}
