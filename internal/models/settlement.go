package models

import "github.com/shopspring/decimal"

// Balance is a member's derived net position within a group.
// It is recomputed on every read and never stored.
type Balance struct {
	// MemberID is the member this balance belongs to.
	MemberID string `json:"memberId"`

	// MemberName is copied from the member for display.
	MemberName string `json:"memberName"`

	// Balance is positive when the member is owed money and negative when
	// the member owes money. Rounded to cents.
	Balance decimal.Decimal `json:"balance"`
}

// Settlement is a suggested payment between two members that reduces
// outstanding balances. Derived, never stored.
type Settlement struct {
	// From is the name of the member who pays (debtor).
	From string `json:"from"`

	// To is the name of the member who receives (creditor).
	To string `json:"to"`

	// Amount is the payment amount, positive and rounded to cents.
	Amount decimal.Decimal `json:"amount"`
}
