package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/moneysplits/internal/models"
)

// AddMember appends a member to an existing group.
func (s *Store) AddMember(ctx context.Context, groupID string, member *models.Member, event *models.HistoryEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.requireGroup(ctx, tx, groupID); err != nil {
			return err
		}
		if err := s.insertMember(ctx, tx, groupID, member); err != nil {
			return err
		}
		return s.recordHistory(ctx, tx, groupID, event)
	})
}

// UpdateMember updates a member's name and active flag.
func (s *Store) UpdateMember(ctx context.Context, groupID string, member *models.Member, event *models.HistoryEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			s.q("UPDATE members SET name = ?, is_active = ? WHERE id = ? AND group_id = ?"),
			member.Name, member.IsActive, member.ID, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to update member: %w", err)
		}
		if err := checkAffected(res, models.ErrMemberNotFound, member.ID); err != nil {
			return err
		}
		return s.recordHistory(ctx, tx, groupID, event)
	})
}

// DeleteMember physically removes a member from a group.
func (s *Store) DeleteMember(ctx context.Context, groupID, memberID string, event *models.HistoryEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			s.q("DELETE FROM members WHERE id = ? AND group_id = ?"),
			memberID, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		if err := checkAffected(res, models.ErrMemberNotFound, memberID); err != nil {
			return err
		}
		return s.recordHistory(ctx, tx, groupID, event)
	})
}

func (s *Store) insertMember(ctx context.Context, q querier, groupID string, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	_, err := q.ExecContext(ctx,
		s.q("INSERT INTO members (id, group_id, name, is_active) VALUES (?, ?, ?, ?)"),
		member.ID, groupID, member.Name, member.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func (s *Store) loadMembers(ctx context.Context, groupID string, groups map[string]*models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		s.q("SELECT id, group_id, name, is_active FROM members WHERE (? = '' OR group_id = ?) ORDER BY seq"),
		groupID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Member
		var gid string
		if err := rows.Scan(&m.ID, &gid, &m.Name, &m.IsActive); err != nil {
			return fmt.Errorf("failed to scan member: %w", err)
		}
		if g, ok := groups[gid]; ok {
			g.Members = append(g.Members, m)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate members: %w", err)
	}
	return nil
}
