// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/moneysplits/internal/models"
)

// Store defines the interface for group ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
//
// Lookups of a missing group, member or expense return an error wrapping
// models.ErrGroupNotFound, models.ErrMemberNotFound or
// models.ErrExpenseNotFound.
//
// Mutations that take an event append it to the group's history in the same
// transaction as the change. A nil event records nothing.
type Store interface {
	// CreateGroup persists a group together with its members, expenses and
	// history. Empty IDs and a zero CreatedAt are filled in by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// CreateGroups persists several groups in one transaction. Either all of
	// them are stored or none is.
	CreateGroups(ctx context.Context, groups []*models.Group) error

	// GetGroup retrieves a group with members, expenses and history.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves every group, oldest first, fully loaded.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// GroupExists reports whether a group with the given ID is stored.
	GroupExists(ctx context.Context, groupID string) (bool, error)

	// UpdateGroup updates the name and description of an existing group.
	UpdateGroup(ctx context.Context, group *models.Group, event *models.HistoryEvent) error

	// DeleteGroup removes a group and everything attached to it.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember appends a member to a group.
	AddMember(ctx context.Context, groupID string, member *models.Member, event *models.HistoryEvent) error

	// UpdateMember updates the name and active flag of a member.
	UpdateMember(ctx context.Context, groupID string, member *models.Member, event *models.HistoryEvent) error

	// DeleteMember physically removes a member. Callers must only do this
	// for members no expense refers to.
	DeleteMember(ctx context.Context, groupID, memberID string, event *models.HistoryEvent) error

	// CreateExpense records a new expense in a group.
	CreateExpense(ctx context.Context, groupID string, expense *models.Expense, event *models.HistoryEvent) error

	// UpdateExpense replaces every field of an existing expense.
	UpdateExpense(ctx context.Context, groupID string, expense *models.Expense, event *models.HistoryEvent) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, groupID, expenseID string, event *models.HistoryEvent) error

	// Close releases any resources held by the store.
	Close() error
}
