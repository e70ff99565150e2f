package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/moneysplits/internal/models"
)

// ExpenseFilter selects expenses. Zero-valued fields match everything.
type ExpenseFilter struct {
	// Query is matched case-insensitively against description and category.
	Query string

	// StartDate and EndDate bound the expense date, inclusive. The range is
	// ignored unless both parse as YYYY-MM-DD.
	StartDate string
	EndDate   string

	// MinAmount and MaxAmount bound the amount, inclusive.
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Apply returns the expenses matching every filter, in their original order.
func (f ExpenseFilter) Apply(expenses []models.Expense) []models.Expense {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	start, end, useDates := f.dateRange()

	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Description), query) &&
			!strings.Contains(strings.ToLower(string(e.Category)), query) {
			continue
		}
		if useDates {
			d, err := time.Parse(models.DateLayout, e.Date)
			if err != nil || d.Before(start) || d.After(end) {
				continue
			}
		}
		if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
			continue
		}
		if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (f ExpenseFilter) dateRange() (start, end time.Time, ok bool) {
	if f.StartDate == "" || f.EndDate == "" {
		return start, end, false
	}
	start, err := time.Parse(models.DateLayout, f.StartDate)
	if err != nil {
		return start, end, false
	}
	end, err = time.Parse(models.DateLayout, f.EndDate)
	if err != nil {
		return start, end, false
	}
	return start, end, true
}
