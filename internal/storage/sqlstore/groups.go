package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/moneysplits/internal/models"
)

// CreateGroup persists a new group along with any members, expenses and
// history it already carries.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.insertGroup(ctx, tx, group)
	})
}

// CreateGroups persists every group in a single transaction.
func (s *Store) CreateGroups(ctx context.Context, groups []*models.Group) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, group := range groups {
			if err := s.insertGroup(ctx, tx, group); err != nil {
				return fmt.Errorf("group %s: %w", group.ID, err)
			}
		}
		return nil
	})
}

// GetGroup retrieves a group by ID with its members, expenses and history.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	groups, err := s.loadGroups(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrGroupNotFound, groupID)
	}
	return groups[0], nil
}

// ListGroups retrieves every group, oldest first.
func (s *Store) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.loadGroups(ctx, "")
}

// GroupExists reports whether a group with the given ID is stored.
func (s *Store) GroupExists(ctx context.Context, groupID string) (bool, error) {
	return s.groupExists(ctx, s.db, groupID)
}

// UpdateGroup updates the name and description of a group.
func (s *Store) UpdateGroup(ctx context.Context, group *models.Group, event *models.HistoryEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			s.q("UPDATE split_groups SET name = ?, description = ? WHERE id = ?"),
			group.Name, group.Description, group.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		if err := checkAffected(res, models.ErrGroupNotFound, group.ID); err != nil {
			return err
		}
		return s.recordHistory(ctx, tx, group.ID, event)
	})
}

// DeleteGroup removes a group. Members, expenses and history cascade.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM split_groups WHERE id = ?"), groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return checkAffected(res, models.ErrGroupNotFound, groupID)
}

func (s *Store) insertGroup(ctx context.Context, q querier, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := q.ExecContext(ctx,
		s.q("INSERT INTO split_groups (id, name, description, created_at) VALUES (?, ?, ?, ?)"),
		group.ID, group.Name, group.Description, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		if err := s.insertMember(ctx, q, group.ID, &group.Members[i]); err != nil {
			return err
		}
	}
	for i := range group.Expenses {
		if err := s.insertExpense(ctx, q, group.ID, &group.Expenses[i]); err != nil {
			return err
		}
	}
	for i := range group.History {
		if err := s.insertHistory(ctx, q, group.ID, &group.History[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) groupExists(ctx context.Context, q querier, groupID string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, s.q("SELECT 1 FROM split_groups WHERE id = ?"), groupID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return true, nil
}

// requireGroup returns ErrGroupNotFound when groupID is not stored.
func (s *Store) requireGroup(ctx context.Context, q querier, groupID string) error {
	ok, err := s.groupExists(ctx, q, groupID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrGroupNotFound, groupID)
	}
	return nil
}

// loadGroups reads groups and their children. An empty groupID loads all.
// Each query is drained before the next one starts so a single-connection
// pool never blocks on itself.
func (s *Store) loadGroups(ctx context.Context, groupID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q("SELECT id, name, description, created_at FROM split_groups WHERE (? = '' OR id = ?) ORDER BY seq"),
		groupID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}
	var groups []*models.Group
	byID := make(map[string]*models.Group)
	for rows.Next() {
		g := &models.Group{
			Members:  []models.Member{},
			Expenses: []models.Expense{},
			History:  []models.HistoryEvent{},
		}
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
		byID[g.ID] = g
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	if len(groups) == 0 {
		return []*models.Group{}, nil
	}

	if err := s.loadMembers(ctx, groupID, byID); err != nil {
		return nil, err
	}
	if err := s.loadExpenses(ctx, groupID, byID); err != nil {
		return nil, err
	}
	if err := s.loadHistory(ctx, groupID, byID); err != nil {
		return nil, err
	}
	return groups, nil
}
