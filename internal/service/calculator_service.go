package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/internal/calculator"
	"github.com/mmynk/moneysplits/pkg/api"
	"github.com/mmynk/moneysplits/pkg/api/apiconnect"
)

// CalculatorService implements the Connect CalculatorService. It works on
// the snapshot in each request and never touches storage.
type CalculatorService struct {
	apiconnect.UnimplementedCalculatorServiceHandler
}

// NewCalculatorService creates a new CalculatorService.
func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

// CalculateBalances computes each active member's net balance.
func (s *CalculatorService) CalculateBalances(ctx context.Context, req *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error) {
	balances := calculator.CalculateBalances(fromAPIMembers(req.Msg.Members), fromAPIExpenses(req.Msg.Expenses))
	return connect.NewResponse(&api.CalculateBalancesResponse{Balances: toAPIBalances(balances)}), nil
}

// CalculateSettlements plans the transfers that zero the given balances.
func (s *CalculatorService) CalculateSettlements(ctx context.Context, req *connect.Request[api.CalculateSettlementsRequest]) (*connect.Response[api.CalculateSettlementsResponse], error) {
	settlements := calculator.CalculateSettlements(fromAPIBalances(req.Msg.Balances))
	return connect.NewResponse(&api.CalculateSettlementsResponse{Settlements: toAPISettlements(settlements)}), nil
}
