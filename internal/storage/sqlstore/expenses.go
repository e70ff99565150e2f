package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/moneysplits/internal/models"
)

// CreateExpense records a new expense in an existing group.
func (s *Store) CreateExpense(ctx context.Context, groupID string, expense *models.Expense, event *models.HistoryEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.requireGroup(ctx, tx, groupID); err != nil {
			return err
		}
		if err := s.insertExpense(ctx, tx, groupID, expense); err != nil {
			return err
		}
		return s.recordHistory(ctx, tx, groupID, event)
	})
}

// UpdateExpense overwrites an expense and replaces its participants.
func (s *Store) UpdateExpense(ctx context.Context, groupID string, expense *models.Expense, event *models.HistoryEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			s.q(`UPDATE expenses SET description = ?, amount = ?, paid_by = ?, category = ?, date = ?
				WHERE id = ? AND group_id = ?`),
			expense.Description, expense.Amount, expense.PaidBy, string(expense.Category), expense.Date,
			expense.ID, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		if err := checkAffected(res, models.ErrExpenseNotFound, expense.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			s.q("DELETE FROM expense_participants WHERE expense_id = ?"),
			expense.ID,
		); err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		if err := s.insertParticipants(ctx, tx, expense); err != nil {
			return err
		}
		return s.recordHistory(ctx, tx, groupID, event)
	})
}

// DeleteExpense removes an expense and its participants.
func (s *Store) DeleteExpense(ctx context.Context, groupID, expenseID string, event *models.HistoryEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			s.q("DELETE FROM expenses WHERE id = ? AND group_id = ?"),
			expenseID, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		if err := checkAffected(res, models.ErrExpenseNotFound, expenseID); err != nil {
			return err
		}
		return s.recordHistory(ctx, tx, groupID, event)
	})
}

func (s *Store) insertExpense(ctx context.Context, q querier, groupID string, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := q.ExecContext(ctx,
		s.q(`INSERT INTO expenses (id, group_id, description, amount, paid_by, category, date, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		expense.ID, groupID, expense.Description, expense.Amount, expense.PaidBy,
		string(expense.Category), expense.Date, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return s.insertParticipants(ctx, q, expense)
}

func (s *Store) insertParticipants(ctx context.Context, q querier, expense *models.Expense) error {
	for i, memberID := range expense.Participants {
		_, err := q.ExecContext(ctx,
			s.q("INSERT INTO expense_participants (expense_id, member_id, position) VALUES (?, ?, ?)"),
			expense.ID, memberID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

func (s *Store) loadExpenses(ctx context.Context, groupID string, groups map[string]*models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT id, group_id, description, amount, paid_by, category, date, created_at
			FROM expenses WHERE (? = '' OR group_id = ?) ORDER BY seq`),
		groupID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}

	type ref struct {
		group *models.Group
		index int
	}
	byID := make(map[string]ref)
	for rows.Next() {
		var e models.Expense
		var gid, category string
		if err := rows.Scan(&e.ID, &gid, &e.Description, &e.Amount, &e.PaidBy, &category, &e.Date, &e.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Category = models.Category(category)
		e.Participants = []string{}
		g, ok := groups[gid]
		if !ok {
			continue
		}
		g.Expenses = append(g.Expenses, e)
		byID[e.ID] = ref{group: g, index: len(g.Expenses) - 1}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(byID) == 0 {
		return nil
	}

	partRows, err := s.db.QueryContext(ctx,
		s.q(`SELECT ep.expense_id, ep.member_id
			FROM expense_participants ep
			JOIN expenses e ON e.id = ep.expense_id
			WHERE (? = '' OR e.group_id = ?)
			ORDER BY e.seq, ep.position`),
		groupID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var expenseID, memberID string
		if err := partRows.Scan(&expenseID, &memberID); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		if r, ok := byID[expenseID]; ok {
			e := &r.group.Expenses[r.index]
			e.Participants = append(e.Participants, memberID)
		}
	}
	if err := partRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}
