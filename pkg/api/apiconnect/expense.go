package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService.
const ExpenseServiceName = Package + ".ExpenseService"

// Procedure paths, one per RPC.
const (
	ExpenseServiceAddExpenseProcedure    = "/" + ExpenseServiceName + "/AddExpense"
	ExpenseServiceUpdateExpenseProcedure = "/" + ExpenseServiceName + "/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = "/" + ExpenseServiceName + "/DeleteExpense"
	ExpenseServiceListExpensesProcedure  = "/" + ExpenseServiceName + "/ListExpenses"
)

// ExpenseServiceClient is a client for the ExpenseService.
type ExpenseServiceClient interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
}

// NewExpenseServiceClient constructs a client for the ExpenseService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &expenseServiceClient{
		addExpense:    connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+ExpenseServiceAddExpenseProcedure, opts...),
		updateExpense: connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
	}
}

type expenseServiceClient struct {
	addExpense    *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	updateExpense *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listExpenses  *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
}

func (c *expenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// ExpenseServiceHandler is implemented by the server side of the ExpenseService, which records, edits and searches expenses.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceAddExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(ExpenseServiceUpdateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.ExpenseService.AddExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.ExpenseService.UpdateExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.ExpenseService.DeleteExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.ExpenseService.ListExpenses is not implemented"))
}
