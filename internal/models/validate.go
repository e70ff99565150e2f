package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxGroupNameLen   = 50
	maxMemberNameLen  = 30
	minNameLen        = 2
	maxDescriptionLen = 100
	maxSanitizedLen   = 200
)

// MaxExpenseAmount is the largest amount a single expense may carry.
var MaxExpenseAmount = decimal.NewFromInt(10_000_000)

// ValidateGroupName checks the display name of a group.
func ValidateGroupName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return NewValidationError("name", "group name is required")
	case utf8.RuneCountInString(trimmed) < minNameLen:
		return NewValidationError("name", "group name must be at least 2 characters")
	case utf8.RuneCountInString(name) > maxGroupNameLen:
		return NewValidationError("name", "group name must be less than 50 characters")
	}
	return nil
}

// ValidateMemberName checks the display name of a member.
func ValidateMemberName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return NewValidationError("member", "member name is required")
	case utf8.RuneCountInString(trimmed) < minNameLen:
		return NewValidationError("member", "member name must be at least 2 characters")
	case utf8.RuneCountInString(name) > maxMemberNameLen:
		return NewValidationError("member", "member name must be less than 30 characters")
	}
	return nil
}

// ValidateDescription checks an expense description.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return NewValidationError("description", "description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return NewValidationError("description", "description must be less than 100 characters")
	}
	return nil
}

// ValidateAmount checks an expense amount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewValidationError("amount", "amount must be greater than 0")
	}
	if amount.GreaterThan(MaxExpenseAmount) {
		return NewValidationError("amount", "amount must be less than ₹1,00,00,000")
	}
	return nil
}

// ValidateCategory checks an expense category.
func ValidateCategory(c Category) error {
	if !c.IsValid() {
		return NewValidationError("category", "unknown category "+string(c))
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD calendar date.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return NewValidationError("date", "date must be formatted as YYYY-MM-DD")
	}
	return nil
}

// ValidateExpense checks every user-supplied field of e. Membership of the
// payer and participants is checked by the caller against the group.
func ValidateExpense(e *Expense) error {
	if err := ValidateDescription(e.Description); err != nil {
		return err
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if e.PaidBy == "" {
		return NewValidationError("paidBy", "please select who paid")
	}
	if len(e.Participants) == 0 {
		return NewValidationError("participants", "please select at least one participant")
	}
	if err := ValidateCategory(e.Category); err != nil {
		return err
	}
	return ValidateDate(e.Date)
}

// ValidateImportedGroup checks the minimal shape of a group read from a
// backup document.
func ValidateImportedGroup(g *Group) error {
	if g == nil {
		return NewValidationError("group", "group is empty")
	}
	if g.ID == "" {
		return NewValidationError("id", "group id is required")
	}
	if g.Name == "" {
		return NewValidationError("name", "group name is required")
	}
	if g.Members == nil || g.Expenses == nil {
		return NewValidationError("group", "members and expenses are required")
	}
	return nil
}

// SanitizeInput trims s, strips angle brackets and caps its length.
func SanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if utf8.RuneCountInString(s) > maxSanitizedLen {
		s = string([]rune(s)[:maxSanitizedLen])
	}
	return s
}
