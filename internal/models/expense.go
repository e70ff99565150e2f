package models

import "github.com/shopspring/decimal"

// DateLayout is the calendar date format used for Expense.Date.
const DateLayout = "2006-01-02"

// Category classifies an expense.
type Category string

// Expense categories.
const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryRent          Category = "Rent"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryOther         Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategoryRent,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryOther,
}

// IsValid reports whether c is one of Categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense represents one payment made by a member and shared equally by a
// set of participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is a short human-readable label ("Dinner", "Cab").
	Description string `json:"description"`

	// Amount is the total paid. Always positive for stored expenses.
	Amount decimal.Decimal `json:"amount"`

	// PaidBy is the ID of the member who paid. It was active when the
	// expense was created; it is not revalidated afterwards.
	PaidBy string `json:"paidBy"`

	// Participants are the IDs of the members sharing the expense,
	// deduplicated, in the order they were given.
	Participants []string `json:"participants"`

	// Category classifies the expense.
	Category Category `json:"category"`

	// Date is the calendar date of the expense (YYYY-MM-DD).
	Date string `json:"date"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}
