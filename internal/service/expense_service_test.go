package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/moneysplits/pkg/api"
)

func TestAddExpense(t *testing.T) {
	c := setupTestServer(t)
	group := c.createGroup(t, "Trip", "Alice", "Bob", "Chandra")
	alice, bob := group.Members[0].ID, group.Members[1].ID

	expense := c.addExpense(t, group.ID, "Dinner <b>", "1200.50", alice, bob, alice, bob, "ghost")

	assert.NotEmpty(t, expense.ID)
	assert.NotZero(t, expense.CreatedAt)
	assert.Equal(t, "Dinner b", expense.Description)
	assert.Equal(t, "1200.5", expense.Amount.String())
	// Unknown ids and duplicates are dropped, order kept
	assert.Equal(t, []string{bob, alice}, expense.Participants)

	got := c.getGroup(t, group.ID)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, expense.ID, got.Expenses[0].ID)
	assert.Equal(t, `Alice added "Dinner b" ₹1200.5 split between 2 member(s)`, lastHistory(got))
}

func TestAddExpense_Defaults(t *testing.T) {
	c := setupTestServer(t)
	c.expenseImpl.now = func() time.Time {
		return time.Date(2024, 7, 16, 2, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	}
	group := c.createGroup(t, "Trip", "Alice")
	alice := group.Members[0].ID

	resp, err := c.expenses.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		GroupID:      group.ID,
		Description:  "Tea",
		Amount:       decimal.NewFromInt(20),
		PaidBy:       alice,
		Participants: []string{alice},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Other", resp.Msg.Expense.Category)
	assert.Equal(t, "2024-07-15", resp.Msg.Expense.Date)
}

func TestAddExpense_Validation(t *testing.T) {
	c := setupTestServer(t)
	group := c.createGroup(t, "Trip", "Alice", "Bob")
	alice, bob := group.Members[0].ID, group.Members[1].ID
	_, err := c.groups.RemoveMember(context.Background(), connect.NewRequest(&api.RemoveMemberRequest{GroupID: group.ID, MemberID: bob}))
	require.NoError(t, err)

	valid := func() *api.AddExpenseRequest {
		return &api.AddExpenseRequest{
			GroupID:      group.ID,
			Description:  "Cab",
			Amount:       decimal.NewFromInt(100),
			PaidBy:       alice,
			Participants: []string{alice},
			Category:     "Travel",
			Date:         "2024-01-31",
		}
	}

	tests := []struct {
		name   string
		mutate func(r *api.AddExpenseRequest)
		code   connect.Code
	}{
		{"missing description", func(r *api.AddExpenseRequest) { r.Description = "  " }, connect.CodeInvalidArgument},
		{"zero amount", func(r *api.AddExpenseRequest) { r.Amount = decimal.Zero }, connect.CodeInvalidArgument},
		{"negative amount", func(r *api.AddExpenseRequest) { r.Amount = decimal.NewFromInt(-5) }, connect.CodeInvalidArgument},
		{"huge amount", func(r *api.AddExpenseRequest) { r.Amount = decimal.NewFromInt(10_000_001) }, connect.CodeInvalidArgument},
		{"no payer", func(r *api.AddExpenseRequest) { r.PaidBy = "" }, connect.CodeInvalidArgument},
		{"no participants", func(r *api.AddExpenseRequest) { r.Participants = nil }, connect.CodeInvalidArgument},
		{"unknown category", func(r *api.AddExpenseRequest) { r.Category = "Gadgets" }, connect.CodeInvalidArgument},
		{"bad date", func(r *api.AddExpenseRequest) { r.Date = "31/01/2024" }, connect.CodeInvalidArgument},
		{"inactive payer", func(r *api.AddExpenseRequest) { r.PaidBy = bob }, connect.CodeInvalidArgument},
		{"only inactive participants", func(r *api.AddExpenseRequest) { r.Participants = []string{bob, "ghost"} }, connect.CodeInvalidArgument},
		{"missing group", func(r *api.AddExpenseRequest) { r.GroupID = "missing" }, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			_, err := c.expenses.AddExpense(context.Background(), connect.NewRequest(req))
			requireCode(t, err, tt.code)
		})
	}

	assert.Empty(t, c.getGroup(t, group.ID).Expenses)
}

func TestUpdateExpense(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Trip", "Alice", "Bob", "Chandra")
	alice, bob, chandra := group.Members[0].ID, group.Members[1].ID, group.Members[2].ID
	expense := c.addExpense(t, group.ID, "Dinner", "90", alice, alice, bob, chandra)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		resp, err := c.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
			GroupID:   group.ID,
			ExpenseID: expense.ID,
			Amount:    ptr(decimal.RequireFromString("120")),
		}))
		require.NoError(t, err)
		updated := resp.Msg.Expense
		assert.Equal(t, "120", updated.Amount.String())
		assert.Equal(t, "Dinner", updated.Description)
		assert.Equal(t, alice, updated.PaidBy)
		assert.Equal(t, []string{alice, bob, chandra}, updated.Participants)
		assert.Equal(t, "Food", updated.Category)
		assert.Equal(t, expense.CreatedAt, updated.CreatedAt)

		got := c.getGroup(t, group.ID)
		assert.Equal(t, "120", got.Expenses[0].Amount.String())
		assert.Equal(t, `Expense "Dinner" was modified`, lastHistory(got))
	})

	t.Run("payer and participants are revalidated", func(t *testing.T) {
		resp, err := c.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
			GroupID:      group.ID,
			ExpenseID:    expense.ID,
			Description:  ptr("Late dinner"),
			PaidBy:       ptr(bob),
			Participants: []string{chandra, "ghost", chandra},
			Category:     ptr("Entertainment"),
			Date:         ptr("2024-02-29"),
		}))
		require.NoError(t, err)
		updated := resp.Msg.Expense
		assert.Equal(t, "Late dinner", updated.Description)
		assert.Equal(t, bob, updated.PaidBy)
		assert.Equal(t, []string{chandra}, updated.Participants)
		assert.Equal(t, "Entertainment", updated.Category)
		assert.Equal(t, "2024-02-29", updated.Date)
	})

	tests := []struct {
		name string
		req  *api.UpdateExpenseRequest
		code connect.Code
	}{
		{"empty description", &api.UpdateExpenseRequest{Description: ptr("")}, connect.CodeInvalidArgument},
		{"zero amount", &api.UpdateExpenseRequest{Amount: ptr(decimal.Zero)}, connect.CodeInvalidArgument},
		{"unknown payer", &api.UpdateExpenseRequest{PaidBy: ptr("ghost")}, connect.CodeInvalidArgument},
		{"no active participants", &api.UpdateExpenseRequest{Participants: []string{"ghost"}}, connect.CodeInvalidArgument},
		{"bad category", &api.UpdateExpenseRequest{Category: ptr("Misc")}, connect.CodeInvalidArgument},
		{"bad date", &api.UpdateExpenseRequest{Date: ptr("2024-02-30")}, connect.CodeInvalidArgument},
		{"missing expense", &api.UpdateExpenseRequest{ExpenseID: "missing", Amount: ptr(decimal.NewFromInt(1))}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.GroupID = group.ID
			if tt.req.ExpenseID == "" {
				tt.req.ExpenseID = expense.ID
			}
			_, err := c.expenses.UpdateExpense(ctx, connect.NewRequest(tt.req))
			requireCode(t, err, tt.code)
		})
	}
}

func TestUpdateExpense_UntouchedFieldsNotRevalidated(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Trip", "Alice", "Bob")
	alice, bob := group.Members[0].ID, group.Members[1].ID
	expense := c.addExpense(t, group.ID, "Dinner", "50", bob, alice, bob)

	// Bob becomes inactive but stays the payer
	_, err := c.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: group.ID, MemberID: bob}))
	require.NoError(t, err)

	resp, err := c.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		GroupID:     group.ID,
		ExpenseID:   expense.ID,
		Description: ptr("Dinner for two"),
	}))
	require.NoError(t, err)
	assert.Equal(t, bob, resp.Msg.Expense.PaidBy)
}

func TestDeleteExpense(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Trip", "Alice")
	alice := group.Members[0].ID
	expense := c.addExpense(t, group.ID, "Snacks", "10", alice, alice)

	_, err := c.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{GroupID: group.ID, ExpenseID: expense.ID}))
	require.NoError(t, err)

	got := c.getGroup(t, group.ID)
	assert.Empty(t, got.Expenses)
	assert.Equal(t, `Expense "Snacks" was deleted`, lastHistory(got))

	_, err = c.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{GroupID: group.ID, ExpenseID: expense.ID}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestListExpenses(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Trip", "Alice", "Bob")
	alice, bob := group.Members[0].ID, group.Members[1].ID

	add := func(description, amount, category, date string) {
		_, err := c.expenses.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
			GroupID:      group.ID,
			Description:  description,
			Amount:       decimal.RequireFromString(amount),
			PaidBy:       alice,
			Participants: []string{alice, bob},
			Category:     category,
			Date:         date,
		}))
		require.NoError(t, err)
	}
	add("Pizza night", "40", "Food", "2024-01-05")
	add("Train tickets", "150", "Travel", "2024-01-10")
	add("Movie", "25.50", "Entertainment", "2024-02-01")

	list := func(req *api.ListExpensesRequest) []string {
		t.Helper()
		req.GroupID = group.ID
		resp, err := c.expenses.ListExpenses(ctx, connect.NewRequest(req))
		require.NoError(t, err)
		out := make([]string, len(resp.Msg.Expenses))
		for i, e := range resp.Msg.Expenses {
			out[i] = e.Description
		}
		return out
	}

	assert.Equal(t, []string{"Pizza night", "Train tickets", "Movie"}, list(&api.ListExpensesRequest{}))
	assert.Equal(t, []string{"Pizza night"}, list(&api.ListExpensesRequest{Query: "PIZZA"}))
	assert.Equal(t, []string{"Train tickets"}, list(&api.ListExpensesRequest{Query: "travel"}))
	assert.Equal(t, []string{"Pizza night", "Train tickets"},
		list(&api.ListExpensesRequest{StartDate: "2024-01-05", EndDate: "2024-01-10"}))
	assert.Equal(t, []string{"Pizza night", "Train tickets"},
		list(&api.ListExpensesRequest{MinAmount: ptr(decimal.RequireFromString("40"))}))
	assert.Equal(t, []string{"Pizza night", "Movie"},
		list(&api.ListExpensesRequest{MaxAmount: ptr(decimal.NewFromInt(40))}))
	assert.Empty(t, list(&api.ListExpensesRequest{Query: "nothing matches"}))

	_, err := c.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: "missing"}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestExpenseDescriptionValidatedAfterSanitising(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "Flat", "Alice", "Bob")
	alice := group.Members[0].ID

	_, err := c.expenses.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
		GroupID:      group.ID,
		Description:  "<>",
		Amount:       decimal.NewFromInt(10),
		PaidBy:       alice,
		Participants: []string{alice},
	}))
	requireCode(t, err, connect.CodeInvalidArgument)

	expense := c.addExpense(t, group.ID, "Milk", "40", alice, alice)
	_, err = c.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		GroupID:     group.ID,
		ExpenseID:   expense.ID,
		Description: ptr(" <> "),
	}))
	requireCode(t, err, connect.CodeInvalidArgument)

	got := c.getGroup(t, group.ID)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, "Milk", got.Expenses[0].Description)
}
