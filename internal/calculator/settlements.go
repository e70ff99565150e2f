package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/moneysplits/internal/models"
)

// CalculateSettlements turns net balances into a short list of payments that
// bring every balance to zero.
//
// Greedy matching: debtors sorted most negative first, creditors most
// positive first, then two cursors walk both lists. Each step moves
// min(|debt|, credit) from the current debtor to the current creditor and
// advances whichever side is settled (within Epsilon). Produces at most
// len(debtors)+len(creditors)-1 payments; not always the global minimum.
//
// The input is expected to sum to zero (CalculateBalances guarantees it).
// Any residual left when one side runs out is dropped.
func CalculateSettlements(balances []models.Balance) []models.Settlement {
	settlements := []models.Settlement{}

	// Copies, so the caller's balances are never touched
	var debtors, creditors []models.Balance
	for _, b := range balances {
		switch {
		case b.Balance.LessThan(negEpsilon):
			debtors = append(debtors, b)
		case b.Balance.GreaterThan(Epsilon):
			creditors = append(creditors, b)
		}
	}

	slices.SortStableFunc(debtors, func(a, b models.Balance) int {
		return a.Balance.Cmp(b.Balance)
	})
	slices.SortStableFunc(creditors, func(a, b models.Balance) int {
		return b.Balance.Cmp(a.Balance)
	})

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.Balance.Abs(), creditor.Balance)

		if amount.GreaterThan(Epsilon) {
			settlements = append(settlements, models.Settlement{
				From:   debtor.MemberName,
				To:     creditor.MemberName,
				Amount: Round2(amount),
			})
		}

		// Always move the amount so at least one side reaches zero
		debtor.Balance = debtor.Balance.Add(amount)
		creditor.Balance = creditor.Balance.Sub(amount)

		if debtor.Balance.Abs().LessThan(Epsilon) {
			i++
		}
		if creditor.Balance.Abs().LessThan(Epsilon) {
			j++
		}
	}

	return settlements
}
