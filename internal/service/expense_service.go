package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/internal/models"
	"github.com/mmynk/moneysplits/internal/storage"
	"github.com/mmynk/moneysplits/pkg/api"
	"github.com/mmynk/moneysplits/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store storage.Store
	mu    *sync.Mutex
	now   func() time.Time
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend. mu is the write lock shared with the other services.
func NewExpenseService(store storage.Store, mu *sync.Mutex) *ExpenseService {
	return &ExpenseService{store: store, mu: mu, now: time.Now}
}

// AddExpense records a new expense in a group.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount.String(),
		"participants_count", len(req.Msg.Participants),
	)

	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description:  models.SanitizeInput(req.Msg.Description),
		Amount:       req.Msg.Amount,
		PaidBy:       req.Msg.PaidBy,
		Participants: req.Msg.Participants,
		Category:     models.Category(req.Msg.Category),
		Date:         req.Msg.Date,
	}
	if expense.Category == "" {
		expense.Category = models.CategoryOther
	}
	if expense.Date == "" {
		expense.Date = s.now().UTC().Format(models.DateLayout)
	}
	if err := models.ValidateExpense(expense); err != nil {
		return nil, toConnectError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !group.IsActiveMember(expense.PaidBy) {
		return nil, toConnectError(models.NewValidationError("paidBy", "payer not found or inactive"))
	}
	expense.Participants = activeParticipants(group, expense.Participants)
	if len(expense.Participants) == 0 {
		return nil, toConnectError(models.NewValidationError("participants", "no valid participants selected"))
	}

	payer := "Someone"
	if m := group.FindMember(expense.PaidBy); m != nil {
		payer = m.Name
	}
	event := &models.HistoryEvent{Message: fmt.Sprintf("%s added \"%s\" ₹%s split between %d member(s)",
		payer, expense.Description, expense.Amount.String(), len(expense.Participants))}

	if err := s.store.CreateExpense(ctx, group.ID, expense, event); err != nil {
		slog.Error("AddExpense failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "group_id", group.ID, "expense_id", expense.ID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// UpdateExpense applies the fields set in the request to an expense. Only
// the provided fields are validated.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := requireID("expenseId", req.Msg.ExpenseID); err != nil {
		return nil, err
	}
	if req.Msg.Description != nil {
		description := models.SanitizeInput(*req.Msg.Description)
		req.Msg.Description = &description
	}
	if err := validateExpenseUpdate(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	existing := group.FindExpense(req.Msg.ExpenseID)
	if existing == nil {
		return nil, toConnectError(fmt.Errorf("%w: %s", models.ErrExpenseNotFound, req.Msg.ExpenseID))
	}
	expense := *existing

	if req.Msg.Description != nil {
		expense.Description = *req.Msg.Description
	}
	if req.Msg.Amount != nil {
		expense.Amount = *req.Msg.Amount
	}
	if req.Msg.PaidBy != nil {
		if !group.IsActiveMember(*req.Msg.PaidBy) {
			return nil, toConnectError(models.NewValidationError("paidBy", "payer not found or inactive"))
		}
		expense.PaidBy = *req.Msg.PaidBy
	}
	if req.Msg.Participants != nil {
		expense.Participants = activeParticipants(group, req.Msg.Participants)
		if len(expense.Participants) == 0 {
			return nil, toConnectError(models.NewValidationError("participants", "no valid participants selected"))
		}
	}
	if req.Msg.Category != nil {
		expense.Category = models.Category(*req.Msg.Category)
	}
	if req.Msg.Date != nil {
		expense.Date = *req.Msg.Date
	}

	event := &models.HistoryEvent{Message: fmt.Sprintf("Expense \"%s\" was modified", expense.Description)}
	if err := s.store.UpdateExpense(ctx, group.ID, &expense, event); err != nil {
		slog.Error("UpdateExpense failed", "group_id", group.ID, "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(&expense)}), nil
}

// DeleteExpense removes an expense from a group.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := requireID("expenseId", req.Msg.ExpenseID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	expense := group.FindExpense(req.Msg.ExpenseID)
	if expense == nil {
		return nil, toConnectError(fmt.Errorf("%w: %s", models.ErrExpenseNotFound, req.Msg.ExpenseID))
	}

	event := &models.HistoryEvent{Message: fmt.Sprintf("Expense \"%s\" was deleted", expense.Description)}
	if err := s.store.DeleteExpense(ctx, group.ID, expense.ID, event); err != nil {
		slog.Error("DeleteExpense failed", "group_id", group.ID, "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "group_id", group.ID, "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses returns a group's expenses that match every filter set in the
// request.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if err := requireID("groupId", req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	filter := ExpenseFilter{
		Query:     req.Msg.Query,
		StartDate: req.Msg.StartDate,
		EndDate:   req.Msg.EndDate,
		MinAmount: req.Msg.MinAmount,
		MaxAmount: req.Msg.MaxAmount,
	}
	matched := filter.Apply(group.Expenses)

	slog.Debug("ListExpenses", "group_id", group.ID, "total", len(group.Expenses), "matched", len(matched))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(matched)}), nil
}

// validateExpenseUpdate checks only the fields present in the request.
func validateExpenseUpdate(req *api.UpdateExpenseRequest) error {
	if req.Description != nil {
		if err := models.ValidateDescription(*req.Description); err != nil {
			return err
		}
	}
	if req.Amount != nil {
		if err := models.ValidateAmount(*req.Amount); err != nil {
			return err
		}
	}
	if req.PaidBy != nil && *req.PaidBy == "" {
		return models.NewValidationError("paidBy", "please select who paid")
	}
	if req.Participants != nil && len(req.Participants) == 0 {
		return models.NewValidationError("participants", "please select at least one participant")
	}
	if req.Category != nil {
		if err := models.ValidateCategory(models.Category(*req.Category)); err != nil {
			return err
		}
	}
	if req.Date != nil {
		if err := models.ValidateDate(*req.Date); err != nil {
			return err
		}
	}
	return nil
}

// activeParticipants keeps the ids that name active members, in order,
// without duplicates.
func activeParticipants(group *models.Group, ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] || !group.IsActiveMember(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
