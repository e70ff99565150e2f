package api

import "encoding/json"

// CalculateBalancesRequest carries a ledger snapshot to compute balances for.
type CalculateBalancesRequest struct {
	Members  []*Member  `json:"members"`
	Expenses []*Expense `json:"expenses"`
}

// UnmarshalJSON drops expenses that do not decode instead of rejecting the
// whole request. A malformed expense only ever removes itself from the sum.
func (r *CalculateBalancesRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Members  []*Member         `json:"members"`
		Expenses []json.RawMessage `json:"expenses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Members = raw.Members
	r.Expenses = nil
	for _, msg := range raw.Expenses {
		var e *Expense
		if err := json.Unmarshal(msg, &e); err != nil {
			continue
		}
		r.Expenses = append(r.Expenses, e)
	}
	return nil
}

type CalculateBalancesResponse struct {
	Balances []*Balance `json:"balances"`
}

type CalculateSettlementsRequest struct {
	Balances []*Balance `json:"balances"`
}

type CalculateSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}
