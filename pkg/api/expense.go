package api

import "github.com/shopspring/decimal"

// AddExpenseRequest records a new expense. Empty Category means Other and
// empty Date means today (UTC).
type AddExpenseRequest struct {
	GroupID      string          `json:"groupId"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	PaidBy       string          `json:"paidBy"`
	Participants []string        `json:"participants"`
	Category     string          `json:"category,omitempty"`
	Date         string          `json:"date,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// UpdateExpenseRequest changes only the fields that are set. A nil
// Participants slice leaves participants unchanged.
type UpdateExpenseRequest struct {
	GroupID      string           `json:"groupId"`
	ExpenseID    string           `json:"expenseId"`
	Description  *string          `json:"description,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	PaidBy       *string          `json:"paidBy,omitempty"`
	Participants []string         `json:"participants,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Date         *string          `json:"date,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

// ListExpensesRequest filters a group's expenses. Every filter is optional.
type ListExpensesRequest struct {
	GroupID   string           `json:"groupId"`
	Query     string           `json:"query,omitempty"`
	StartDate string           `json:"startDate,omitempty"`
	EndDate   string           `json:"endDate,omitempty"`
	MinAmount *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}
