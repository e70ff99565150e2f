package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/moneysplits/internal/models"
)

// CalculateBalances computes the net balance of every active member.
// Positive means the member is owed money, negative means the member owes.
//
// Algorithm:
//   - Only active members receive a balance, in input order, zeros included
//   - Malformed expenses (amount <= 0, no payer, no participants) are skipped
//   - An expense whose payer is not active is skipped entirely
//   - Participants are restricted to active members; none left skips the expense
//   - Payer is credited the full amount, each participant debited amount/n
//   - Final balances are rounded to cents
//
// Nil or empty members yields an empty, non-nil slice. The function never
// fails: a bad record only drops that record.
func CalculateBalances(members []models.Member, expenses []models.Expense) []models.Balance {
	net, active := netBalances(members, expenses)

	balances := make([]models.Balance, 0, len(active))
	for _, m := range active {
		balances = append(balances, models.Balance{
			MemberID:   m.ID,
			MemberName: m.Name,
			Balance:    Round2(net[m.ID]),
		})
	}
	return balances
}

// netBalances returns the unrounded balance per active member ID together
// with the active members in input order.
func netBalances(members []models.Member, expenses []models.Expense) (map[string]decimal.Decimal, []models.Member) {
	active := make([]models.Member, 0, len(members))
	net := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		if !m.IsActive {
			continue
		}
		active = append(active, m)
		net[m.ID] = decimal.Zero
	}

	for _, e := range expenses {
		if !isWellFormed(e) {
			continue
		}

		// Payer must still be part of the ledger
		if _, ok := net[e.PaidBy]; !ok {
			continue
		}

		participants := activeParticipants(e.Participants, net)
		if len(participants) == 0 {
			continue
		}

		split := e.Amount.Div(decimal.NewFromInt(int64(len(participants))))

		net[e.PaidBy] = net[e.PaidBy].Add(e.Amount)
		for _, p := range participants {
			net[p] = net[p].Sub(split)
		}
	}

	return net, active
}

func isWellFormed(e models.Expense) bool {
	return e.Amount.IsPositive() && e.PaidBy != "" && len(e.Participants) > 0
}

// activeParticipants filters ids to those present in net, dropping duplicates.
func activeParticipants(ids []string, net map[string]decimal.Decimal) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := net[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
