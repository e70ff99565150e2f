// Package export renders groups as downloadable JSON and CSV documents and
// restores them from a JSON backup.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/mmynk/moneysplits/internal/models"
	"github.com/mmynk/moneysplits/internal/storage"
)

// BackupVersion is written into every backup document.
const BackupVersion = "1.0.0"

// Backup is the full-data export document.
type Backup struct {
	Version    string          `json:"version"`
	ExportDate time.Time       `json:"exportDate"`
	Groups     []*models.Group `json:"groups"`
}

// Document is a rendered export ready to be sent as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter reads groups from a store and renders them. Imports hold mu, the
// write lock shared with the Connect services.
type Exporter struct {
	store storage.Store
	mu    *sync.Mutex
	now   func() time.Time
}

// NewExporter creates an Exporter over store.
func NewExporter(store storage.Store, mu *sync.Mutex) *Exporter {
	return &Exporter{store: store, mu: mu, now: time.Now}
}

// GroupJSON renders one group, with members, expenses and history, as
// indented JSON.
func (e *Exporter) GroupJSON(ctx context.Context, groupID string) (*Document, error) {
	group, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(group, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode group: %w", err)
	}

	return &Document{
		Filename:    fmt.Sprintf("%s-%s.json", Slug(group.Name), e.today()),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// GroupCSV renders a group's expenses as CSV. A group without expenses
// returns models.ErrNothingToExport.
func (e *Exporter) GroupCSV(ctx context.Context, groupID string) (*Document, error) {
	group, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if err := WriteCSV(&b, group); err != nil {
		return nil, err
	}

	return &Document{
		Filename:    fmt.Sprintf("%s-expenses-%s.csv", Slug(group.Name), e.today()),
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte(b.String()),
	}, nil
}

// Backup renders every stored group into a single backup document. An empty
// store returns models.ErrNothingToExport.
func (e *Exporter) Backup(ctx context.Context) (*Document, error) {
	groups, err := e.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no groups", models.ErrNothingToExport)
	}

	data, err := json.MarshalIndent(Backup{
		Version:    BackupVersion,
		ExportDate: e.now().UTC(),
		Groups:     groups,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	return &Document{
		Filename:    fmt.Sprintf("money-splits-backup-%s.json", e.today()),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

func (e *Exporter) today() string {
	return e.now().UTC().Format(models.DateLayout)
}

// Slug lowercases name and replaces every character that is not an ASCII
// letter or digit with "-".
func Slug(name string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToLower(r)
		}
		return '-'
	}, name)
}
