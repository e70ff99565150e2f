package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/moneysplits/internal/calculator"
	"github.com/mmynk/moneysplits/internal/models"
	"github.com/mmynk/moneysplits/pkg/api"
)

func toAPIGroup(g *models.Group) *api.Group {
	out := &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Members:     make([]*api.Member, len(g.Members)),
		Expenses:    make([]*api.Expense, len(g.Expenses)),
		History:     make([]*api.HistoryEvent, len(g.History)),
		CreatedAt:   g.CreatedAt,
	}
	for i := range g.Members {
		out.Members[i] = toAPIMember(&g.Members[i])
	}
	for i := range g.Expenses {
		out.Expenses[i] = toAPIExpense(&g.Expenses[i])
	}
	for i, h := range g.History {
		out.History[i] = &api.HistoryEvent{ID: h.ID, Timestamp: h.Timestamp, Message: h.Message}
	}
	return out
}

func toAPIMember(m *models.Member) *api.Member {
	return &api.Member{ID: m.ID, Name: m.Name, IsActive: m.IsActive}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	participants := make([]string, len(e.Participants))
	copy(participants, e.Participants)
	return &api.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		Participants: participants,
		Category:     string(e.Category),
		Date:         e.Date,
		CreatedAt:    e.CreatedAt,
	}
}

func toAPIExpenses(expenses []models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i := range expenses {
		out[i] = toAPIExpense(&expenses[i])
	}
	return out
}

func toAPIBalances(balances []models.Balance) []*api.Balance {
	out := make([]*api.Balance, len(balances))
	for i, b := range balances {
		out[i] = &api.Balance{MemberID: b.MemberID, MemberName: b.MemberName, Balance: b.Balance}
	}
	return out
}

func toAPISettlements(settlements []models.Settlement) []*api.Settlement {
	out := make([]*api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = &api.Settlement{From: s.From, To: s.To, Amount: s.Amount}
	}
	return out
}

func toAPIStats(stats calculator.GroupStats) *api.GroupStats {
	out := &api.GroupStats{
		TotalExpenses:     stats.TotalExpenses,
		AvgExpense:        stats.AvgExpense,
		PerPersonSpent:    stats.PerPersonSpent,
		ExpenseCount:      stats.ExpenseCount,
		CategoryBreakdown: make(map[string]decimal.Decimal, len(stats.CategoryBreakdown)),
		TopSpender:        stats.TopSpender,
		TopSpenderAmount:  stats.TopSpenderAmount,
	}
	for c, amount := range stats.CategoryBreakdown {
		out.CategoryBreakdown[string(c)] = calculator.Round2(amount)
	}
	return out
}

// fromAPIMembers and fromAPIExpenses tolerate nil entries so the stateless
// calculator can accept whatever a client sends.
func fromAPIMembers(members []*api.Member) []models.Member {
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		out = append(out, models.Member{ID: m.ID, Name: m.Name, IsActive: m.IsActive})
	}
	return out
}

func fromAPIExpenses(expenses []*api.Expense) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e == nil {
			continue
		}
		out = append(out, models.Expense{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			PaidBy:       e.PaidBy,
			Participants: e.Participants,
			Category:     models.Category(e.Category),
			Date:         e.Date,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out
}

func fromAPIBalances(balances []*api.Balance) []models.Balance {
	out := make([]models.Balance, 0, len(balances))
	for _, b := range balances {
		if b == nil {
			continue
		}
		out = append(out, models.Balance{MemberID: b.MemberID, MemberName: b.MemberName, Balance: b.Balance})
	}
	return out
}
