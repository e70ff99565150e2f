package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/moneysplits/internal/models"
)

// recordHistory appends event to the group's audit log when it is set.
func (s *Store) recordHistory(ctx context.Context, q querier, groupID string, event *models.HistoryEvent) error {
	if event == nil {
		return nil
	}
	return s.insertHistory(ctx, q, groupID, event)
}

func (s *Store) insertHistory(ctx context.Context, q querier, groupID string, event *models.HistoryEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	_, err := q.ExecContext(ctx,
		s.q("INSERT INTO history (id, group_id, timestamp, message) VALUES (?, ?, ?, ?)"),
		event.ID, groupID, event.Timestamp, event.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}
	return nil
}

func (s *Store) loadHistory(ctx context.Context, groupID string, groups map[string]*models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		s.q("SELECT id, group_id, timestamp, message FROM history WHERE (? = '' OR group_id = ?) ORDER BY seq"),
		groupID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.HistoryEvent
		var gid string
		if err := rows.Scan(&h.ID, &gid, &h.Timestamp, &h.Message); err != nil {
			return fmt.Errorf("failed to scan history: %w", err)
		}
		if g, ok := groups[gid]; ok {
			g.History = append(g.History, h)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate history: %w", err)
	}
	return nil
}
