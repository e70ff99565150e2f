// Package api defines the wire messages of the moneysplits Connect services.
// Amounts travel as decimal strings ("12.50") so no precision is lost.
package api

import "github.com/shopspring/decimal"

// Group is the wire form of a group ledger.
type Group struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Members     []*Member       `json:"members"`
	Expenses    []*Expense      `json:"expenses"`
	History     []*HistoryEvent `json:"history"`
	CreatedAt   int64           `json:"createdAt"`
}

// Member is one person in a group.
type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// Expense is one payment shared between participants.
type Expense struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	PaidBy       string          `json:"paidBy"`
	Participants []string        `json:"participants"`
	Category     string          `json:"category"`
	Date         string          `json:"date"`
	CreatedAt    int64           `json:"createdAt"`
}

// HistoryEvent is one entry of a group's audit log.
type HistoryEvent struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// Balance is a member's net position. Positive means they are owed money.
type Balance struct {
	MemberID   string          `json:"memberId"`
	MemberName string          `json:"memberName"`
	Balance    decimal.Decimal `json:"balance"`
}

// Settlement is a single transfer from a debtor to a creditor.
type Settlement struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// GroupStats summarises spending in a group.
type GroupStats struct {
	TotalExpenses     decimal.Decimal            `json:"totalExpenses"`
	AvgExpense        decimal.Decimal            `json:"avgExpense"`
	PerPersonSpent    decimal.Decimal            `json:"perPersonSpent"`
	ExpenseCount      int                        `json:"expenseCount"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	TopSpender        string                     `json:"topSpender"`
	TopSpenderAmount  decimal.Decimal            `json:"topSpenderAmount"`
}
