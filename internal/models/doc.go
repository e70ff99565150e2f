// Package models defines the core domain models for Money Splits.
//
// # Stored Models
//
// The following models are persisted by the storage layer:
//   - Group: a named ledger shared by a set of members
//   - Member: a person inside one group
//   - Expense: a payment made by one member on behalf of some members
//   - HistoryEvent: an append-only audit line attached to a group
//
// # Derived Models
//
// Balance and Settlement are never stored. They are recomputed from the
// current members and expenses on every read (see package calculator).
//
// # Design Principles
//
//  1. **Soft deactivation**: a member referenced by any expense is never
//     deleted, only marked inactive, so old expenses stay intact.
//  2. **Decimal money**: every amount is a decimal.Decimal, never a float.
//  3. **Avoid circular references**: use ID strings instead of pointers for
//     relationships (Expense.PaidBy, Expense.Participants).
package models
