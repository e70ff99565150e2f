package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmynk/moneysplits/internal/models"
)

// ImportResult counts the groups an import created and the ones it left
// alone because their ID or name was already taken.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ParseBackup decodes and checks a backup document. Every group must carry
// an id, a name and member and expense arrays. Member, expense and history
// IDs must be unique across the document. Repeated participants of an
// expense are collapsed.
func ParseBackup(r io.Reader) (*Backup, error) {
	var backup Backup
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, models.NewValidationError("body", "invalid backup document: "+err.Error())
	}
	if backup.Groups == nil {
		return nil, models.NewValidationError("groups", "backup has no groups array")
	}

	ids := newIDSet()
	for i, g := range backup.Groups {
		if err := models.ValidateImportedGroup(g); err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		normalize(g)
		if err := ids.claim(g); err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
	}
	return &backup, nil
}

// Import stores every group of backup whose ID and name are both free. The
// new groups are written in a single transaction, so a failure stores none.
func (e *Exporter) Import(ctx context.Context, backup *Backup) (ImportResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, err := e.store.ListGroups(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	taken := newIDSet()
	names := make(map[string]bool, len(stored))
	for _, g := range stored {
		taken.add(g)
		names[nameKey(g.Name)] = true
	}

	var result ImportResult
	var fresh []*models.Group
	for _, g := range backup.Groups {
		if taken.groups[g.ID] {
			slog.Info("Import skipped existing group", "group_id", g.ID)
			result.Skipped++
			continue
		}
		if names[nameKey(g.Name)] {
			slog.Info("Import skipped group with a taken name", "group_id", g.ID, "name", g.Name)
			result.Skipped++
			continue
		}
		if err := taken.claim(g); err != nil {
			return ImportResult{}, fmt.Errorf("group %s: %w", g.ID, err)
		}
		names[nameKey(g.Name)] = true
		fresh = append(fresh, g)
	}

	if len(fresh) > 0 {
		if err := e.store.CreateGroups(ctx, fresh); err != nil {
			return ImportResult{}, fmt.Errorf("failed to import groups: %w", err)
		}
	}
	result.Imported = len(fresh)

	slog.Info("Import finished", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// normalize fills in empty history and drops repeated participants.
func normalize(g *models.Group) {
	if g.History == nil {
		g.History = []models.HistoryEvent{}
	}
	for i := range g.Expenses {
		e := &g.Expenses[i]
		seen := make(map[string]bool, len(e.Participants))
		participants := make([]string, 0, len(e.Participants))
		for _, id := range e.Participants {
			if seen[id] {
				continue
			}
			seen[id] = true
			participants = append(participants, id)
		}
		e.Participants = participants
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// idSet tracks the IDs already in use. Empty child IDs are generated by the
// store and never collide.
type idSet struct {
	groups, members, expenses, history map[string]bool
}

func newIDSet() *idSet {
	return &idSet{
		groups:   make(map[string]bool),
		members:  make(map[string]bool),
		expenses: make(map[string]bool),
		history:  make(map[string]bool),
	}
}

func (s *idSet) add(g *models.Group) {
	s.groups[g.ID] = true
	for _, m := range g.Members {
		s.members[m.ID] = true
	}
	for _, e := range g.Expenses {
		s.expenses[e.ID] = true
	}
	for _, h := range g.History {
		s.history[h.ID] = true
	}
}

// claim records the IDs of g, failing when any of them is already in use.
func (s *idSet) claim(g *models.Group) error {
	if s.groups[g.ID] {
		return models.NewValidationError("id", "duplicate group id "+g.ID)
	}
	seen := newIDSet()
	for _, m := range g.Members {
		if m.ID != "" && (s.members[m.ID] || seen.members[m.ID]) {
			return models.NewValidationError("members", "member id "+m.ID+" is already in use")
		}
		seen.members[m.ID] = true
	}
	for _, e := range g.Expenses {
		if e.ID != "" && (s.expenses[e.ID] || seen.expenses[e.ID]) {
			return models.NewValidationError("expenses", "expense id "+e.ID+" is already in use")
		}
		seen.expenses[e.ID] = true
	}
	for _, h := range g.History {
		if h.ID != "" && (s.history[h.ID] || seen.history[h.ID]) {
			return models.NewValidationError("history", "history id "+h.ID+" is already in use")
		}
		seen.history[h.ID] = true
	}
	s.add(g)
	return nil
}
