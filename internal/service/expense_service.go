package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/events"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/storage"
	"github.com/mmynk/groupledger/pkg/api"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	store     storage.Store
	publisher events.Publisher
}

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates a new ExpenseService with the given storage
// backend and event publisher.
func NewExpenseService(store storage.Store, publisher events.Publisher) *ExpenseService {
	return &ExpenseService{store: store, publisher: publisher}
}

// groupRoster returns the ids of the persons of an existing group.
func (s *ExpenseService) groupRoster(ctx context.Context, groupID string) (map[string]bool, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	persons, err := s.store.ListPersons(ctx, groupID)
	if err != nil {
		return nil, err
	}
	roster := make(map[string]bool, len(persons))
	for _, p := range persons {
		roster[p.ID] = true
	}
	return roster, nil
}

// parseAmount parses a positive decimal amount.
func parseAmount(s string) (money.Money, error) {
	return money.FromPositiveDecimalString(s)
}

// CreateExpense records an expense paid by one person and shared by others.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Name,
		"amount", req.Msg.Amount,
		"payer_id", req.Msg.PayerID,
		"debtors_count", len(req.Msg.Debtors),
	)

	if req.Msg.GroupID == "" {
		return nil, invalidArgument("group_id required")
	}

	amount, err := parseAmount(req.Msg.Amount)
	if err != nil {
		return nil, connectError(err)
	}

	roster, err := s.groupRoster(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("CreateExpense failed - could not load group", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	if !roster[req.Msg.PayerID] {
		return nil, connectError(fmt.Errorf("payer: %w: %q", calculator.ErrUnknownPersonReference, req.Msg.PayerID))
	}
	for _, id := range req.Msg.Debtors {
		if !roster[id] {
			return nil, connectError(fmt.Errorf("debtor: %w: %q", calculator.ErrUnknownPersonReference, id))
		}
	}

	debtorSet := make(map[string]bool, len(req.Msg.Debtors))
	for _, id := range req.Msg.Debtors {
		debtorSet[id] = true
	}
	for id, w := range req.Msg.Weights {
		if !debtorSet[id] {
			return nil, connectError(fmt.Errorf("%w: given for %q who is not a debtor", calculator.ErrInvalidWeight, id))
		}
		if w < 1 {
			return nil, connectError(fmt.Errorf("%w: %q has weight %d, must be at least 1", calculator.ErrInvalidWeight, id, w))
		}
	}

	expense := &models.Expense{
		GroupID: req.Msg.GroupID,
		Name:    strings.TrimSpace(req.Msg.Name),
		Amount:  amount,
		PayerID: req.Msg.PayerID,
		Debtors: req.Msg.Debtors,
		Weights: req.Msg.Weights,
	}

	// Reject expenses the ledger could not split before they are stored.
	if _, err := calculator.Normalize(*expense); err != nil {
		slog.Warn("CreateExpense rejected", "group_id", expense.GroupID, "error", err)
		return nil, connectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", expense.GroupID, "error", err)
		return nil, connectError(err)
	}

	// Read back to return the stored, normalized debtor set.
	stored, err := s.store.GetExpense(ctx, expense.ID)
	if err != nil {
		slog.Error("Failed to fetch created expense", "expense_id", expense.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense created", "group_id", stored.GroupID, "expense_id", stored.ID)
	publish(ctx, s.publisher, events.ExpenseCreated, stored.GroupID, stored.ID)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(stored)}), nil
}

// ListExpenses retrieves all expenses of a group.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("ListExpenses failed - group not found", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	apiExpenses := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		apiExpenses[i] = toAPIExpense(e)
	}

	slog.Info("ListExpenses successful", "group_id", req.Msg.GroupID, "count", len(expenses))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: apiExpenses}), nil
}

// DeleteExpense removes an expense. Its contribution disappears from every
// later balance computation.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connectError(err)
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense deleted", "group_id", expense.GroupID, "expense_id", expense.ID)
	publish(ctx, s.publisher, events.ExpenseDeleted, expense.GroupID, expense.ID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// RecordSettlement records a payment made between two persons of a group.
func (s *ExpenseService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	slog.Info("RecordSettlement request received",
		"group_id", req.Msg.GroupID,
		"from_person_id", req.Msg.FromPersonID,
		"to_person_id", req.Msg.ToPersonID,
		"amount", req.Msg.Amount,
	)

	if req.Msg.GroupID == "" {
		return nil, invalidArgument("group_id required")
	}

	amount, err := parseAmount(req.Msg.Amount)
	if err != nil {
		return nil, connectError(err)
	}

	roster, err := s.groupRoster(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("RecordSettlement failed - could not load group", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}
	for _, id := range []string{req.Msg.FromPersonID, req.Msg.ToPersonID} {
		if !roster[id] {
			return nil, connectError(fmt.Errorf("settlement: %w: %q", calculator.ErrUnknownPersonReference, id))
		}
	}

	settlement := &models.Settlement{
		GroupID:      req.Msg.GroupID,
		FromPersonID: req.Msg.FromPersonID,
		ToPersonID:   req.Msg.ToPersonID,
		Amount:       amount,
		Note:         strings.TrimSpace(req.Msg.Note),
	}
	if _, err := calculator.NormalizeSettlement(*settlement); err != nil {
		return nil, connectError(err)
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "group_id", settlement.GroupID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Settlement recorded", "group_id", settlement.GroupID, "settlement_id", settlement.ID)
	publish(ctx, s.publisher, events.SettlementCreated, settlement.GroupID, settlement.ID)

	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements retrieves all settlements of a group.
func (s *ExpenseService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	slog.Info("ListSettlements request received", "group_id", req.Msg.GroupID)

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("ListSettlements failed - group not found", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListSettlements failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	apiSettlements := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		apiSettlements[i] = toAPISettlement(st)
	}

	slog.Info("ListSettlements successful", "group_id", req.Msg.GroupID, "count", len(settlements))

	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: apiSettlements}), nil
}

// DeleteSettlement removes a recorded settlement.
func (s *ExpenseService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	slog.Info("DeleteSettlement request received", "settlement_id", req.Msg.SettlementID)

	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", req.Msg.SettlementID, "error", err)
		return nil, connectError(err)
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Settlement deleted", "group_id", settlement.GroupID, "settlement_id", settlement.ID)
	publish(ctx, s.publisher, events.SettlementDeleted, settlement.GroupID, settlement.ID)

	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}
