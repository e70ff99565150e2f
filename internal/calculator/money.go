// Package calculator derives balances, settlement suggestions and summary
// statistics from a group's members and expenses.
//
// Every function here is pure: inputs are never mutated and nothing is
// cached between calls, so results are always computed from current state.
package calculator

import "github.com/shopspring/decimal"

// Epsilon is one cent. Balances within Epsilon of zero count as settled.
var Epsilon = decimal.New(1, -2)

var negEpsilon = Epsilon.Neg()

// Round2 rounds d to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
