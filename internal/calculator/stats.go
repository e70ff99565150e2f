package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/moneysplits/internal/models"
)

// GroupStats summarises spending in a group.
type GroupStats struct {
	TotalExpenses     decimal.Decimal                     `json:"totalExpenses"`
	AvgExpense        decimal.Decimal                     `json:"avgExpense"`
	PerPersonSpent    decimal.Decimal                     `json:"perPersonSpent"`
	ExpenseCount      int                                 `json:"expenseCount"`
	CategoryBreakdown map[models.Category]decimal.Decimal `json:"categoryBreakdown"`
	TopSpender        string                              `json:"topSpender"`
	TopSpenderAmount  decimal.Decimal                     `json:"topSpenderAmount"`
}

// NoTopSpender is reported when a group has no expenses.
const NoTopSpender = "N/A"

// CalculateGroupStats aggregates every expense of g. Per-person spend divides
// by active members only. Ties for top spender go to the payer seen last.
func CalculateGroupStats(g *models.Group) GroupStats {
	stats := GroupStats{
		CategoryBreakdown: make(map[models.Category]decimal.Decimal),
		TopSpender:        NoTopSpender,
	}
	if g == nil {
		return stats
	}

	total := decimal.Zero
	spent := make(map[string]decimal.Decimal)
	var payers []string
	for _, e := range g.Expenses {
		total = total.Add(e.Amount)
		stats.CategoryBreakdown[e.Category] = stats.CategoryBreakdown[e.Category].Add(e.Amount)
		if _, ok := spent[e.PaidBy]; !ok {
			payers = append(payers, e.PaidBy)
		}
		spent[e.PaidBy] = spent[e.PaidBy].Add(e.Amount)
	}

	stats.ExpenseCount = len(g.Expenses)
	stats.TotalExpenses = Round2(total)
	if stats.ExpenseCount > 0 {
		stats.AvgExpense = Round2(total.Div(decimal.NewFromInt(int64(stats.ExpenseCount))))
	}
	if active := len(g.ActiveMembers()); active > 0 {
		stats.PerPersonSpent = Round2(total.Div(decimal.NewFromInt(int64(active))))
	}

	var topID string
	for _, id := range payers {
		if topID == "" || spent[id].GreaterThanOrEqual(spent[topID]) {
			topID = id
		}
	}
	if topID != "" {
		stats.TopSpenderAmount = Round2(spent[topID])
		if m := g.FindMember(topID); m != nil {
			stats.TopSpender = m.Name
		}
	}

	return stats
}
