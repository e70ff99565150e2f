package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/pkg/api"
)

// CalculatorServiceName is the fully-qualified name of the CalculatorService.
const CalculatorServiceName = Package + ".CalculatorService"

// Procedure paths, one per RPC.
const (
	CalculatorServiceCalculateBalancesProcedure    = "/" + CalculatorServiceName + "/CalculateBalances"
	CalculatorServiceCalculateSettlementsProcedure = "/" + CalculatorServiceName + "/CalculateSettlements"
)

// CalculatorServiceClient is a client for the CalculatorService.
type CalculatorServiceClient interface {
	CalculateBalances(context.Context, *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error)
	CalculateSettlements(context.Context, *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error)
}

// NewCalculatorServiceClient constructs a client for the CalculatorService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewCalculatorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CalculatorServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &calculatorServiceClient{
		calculateBalances:    connect.NewClient[api.CalculateBalancesRequest, api.CalculateBalancesResponse](httpClient, baseURL+CalculatorServiceCalculateBalancesProcedure, opts...),
		calculateSettlements: connect.NewClient[api.CalculateSettlementsRequest, api.CalculateSettlementsResponse](httpClient, baseURL+CalculatorServiceCalculateSettlementsProcedure, opts...),
	}
}

type calculatorServiceClient struct {
	calculateBalances    *connect.Client[api.CalculateBalancesRequest, api.CalculateBalancesResponse]
	calculateSettlements *connect.Client[api.CalculateSettlementsRequest, api.CalculateSettlementsResponse]
}

func (c *calculatorServiceClient) CalculateBalances(ctx context.Context, req *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error) {
	return c.calculateBalances.CallUnary(ctx, req)
}

func (c *calculatorServiceClient) CalculateSettlements(ctx context.Context, req *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error) {
	return c.calculateSettlements.CallUnary(ctx, req)
}

// CalculatorServiceHandler is implemented by the server side of the CalculatorService, which exposes the stateless balance and settlement calculators.
type CalculatorServiceHandler interface {
	CalculateBalances(context.Context, *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error)
	CalculateSettlements(context.Context, *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error)
}

// NewCalculatorServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewCalculatorServiceHandler(svc CalculatorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(CalculatorServiceCalculateBalancesProcedure, connect.NewUnaryHandler(CalculatorServiceCalculateBalancesProcedure, svc.CalculateBalances, opts...))
	mux.Handle(CalculatorServiceCalculateSettlementsProcedure, connect.NewUnaryHandler(CalculatorServiceCalculateSettlementsProcedure, svc.CalculateSettlements, opts...))
	return "/" + CalculatorServiceName + "/", mux
}

// UnimplementedCalculatorServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCalculatorServiceHandler struct{}

func (UnimplementedCalculatorServiceHandler) CalculateBalances(context.Context, *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.CalculatorService.CalculateBalances is not implemented"))
}

func (UnimplementedCalculatorServiceHandler) CalculateSettlements(context.Context, *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("moneysplits.v1.CalculatorService.CalculateSettlements is not implemented"))
}
