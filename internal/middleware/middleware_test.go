package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/moneysplits/pkg/api"
	"github.com/mmynk/moneysplits/pkg/api/apiconnect"
)

// stubCalculator fails CalculateSettlements and answers CalculateBalances.
type stubCalculator struct {
	apiconnect.UnimplementedCalculatorServiceHandler
}

func (stubCalculator) CalculateBalances(context.Context, *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error) {
	return connect.NewResponse(&api.CalculateBalancesResponse{Balances: []*api.Balance{}}), nil
}

func (stubCalculator) CalculateSettlements(context.Context, *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad balances"))
}

func TestInterceptors(t *testing.T) {
	metrics := NewMetrics()

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewCalculatorServiceHandler(stubCalculator{},
		connect.WithInterceptors(LoggingInterceptor(), metrics.Interceptor()),
	))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewCalculatorServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.CalculateBalances(ctx, connect.NewRequest(&api.CalculateBalancesRequest{}))
		require.NoError(t, err)
	}
	_, err := client.CalculateSettlements(ctx, connect.NewRequest(&api.CalculateSettlementsRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	assert.Equal(t, 2.0, testutil.ToFloat64(
		metrics.requests.WithLabelValues(apiconnect.CalculatorServiceCalculateBalancesProcedure, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.requests.WithLabelValues(apiconnect.CalculatorServiceCalculateSettlementsProcedure, "invalid_argument")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.duration, "moneysplits_rpc_duration_seconds"))
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/export", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called, "preflight must not reach the handler")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export", nil))
	assert.True(t, called)
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}
