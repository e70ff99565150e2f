package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/moneysplits/internal/storage/sqlstore"
	"github.com/mmynk/moneysplits/pkg/api"
	"github.com/mmynk/moneysplits/pkg/api/apiconnect"
)

type testClients struct {
	groups      apiconnect.GroupServiceClient
	expenses    apiconnect.ExpenseServiceClient
	calculator  apiconnect.CalculatorServiceClient
	expenseImpl *ExpenseService
	baseURL     string
}

// setupTestServer serves all three services from a fresh SQLite store.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlstore.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	var mu sync.Mutex
	expenseSvc := NewExpenseService(store, &mu)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, &mu)))
	mux.Handle(apiconnect.NewExpenseServiceHandler(expenseSvc))
	mux.Handle(apiconnect.NewCalculatorServiceHandler(NewCalculatorService()))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		groups:      apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses:    apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		calculator:  apiconnect.NewCalculatorServiceClient(http.DefaultClient, server.URL),
		expenseImpl: expenseSvc,
		baseURL:     server.URL,
	}
}

// createGroup creates a group and returns it with member IDs in input order.
func (c *testClients) createGroup(t *testing.T, name string, members ...string) *api.Group {
	t.Helper()
	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:        name,
		MemberNames: members,
	}))
	require.NoError(t, err)
	return resp.Msg.Group
}

func (c *testClients) addExpense(t *testing.T, groupID, description, amount, paidBy string, participants ...string) *api.Expense {
	t.Helper()
	resp, err := c.expenses.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		GroupID:      groupID,
		Description:  description,
		Amount:       decimal.RequireFromString(amount),
		PaidBy:       paidBy,
		Participants: participants,
		Category:     "Food",
		Date:         "2024-03-01",
	}))
	require.NoError(t, err)
	return resp.Msg.Expense
}

func (c *testClients) getGroup(t *testing.T, groupID string) *api.Group {
	t.Helper()
	resp, err := c.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: groupID}))
	require.NoError(t, err)
	return resp.Msg.Group
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connect.CodeOf(err), "unexpected error: %v", err)
}

func lastHistory(g *api.Group) string {
	if len(g.History) == 0 {
		return ""
	}
	return g.History[len(g.History)-1].Message
}

func ptr[T any](v T) *T {
	return &v
}
