package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/moneysplits/internal/models"
)

// csvDateLayout is how expense dates appear in CSV exports.
const csvDateLayout = "02 Jan 2006"

// unknownMember stands in for ids that no longer resolve to a member.
const unknownMember = "Unknown"

var csvHeader = []string{
	"Date",
	"Description",
	"Amount",
	"Paid By",
	"Category",
	"Participants",
	"Split Amount",
}

// WriteCSV writes one row per expense of g, preceded by a header row.
func WriteCSV(w io.Writer, g *models.Group) error {
	if g == nil || len(g.Expenses) == 0 {
		return fmt.Errorf("%w: no expenses", models.ErrNothingToExport)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range g.Expenses {
		names := make([]string, len(e.Participants))
		for i, id := range e.Participants {
			names[i] = memberName(g, id)
		}

		split := decimal.Zero
		if len(e.Participants) > 0 {
			split = e.Amount.Div(decimal.NewFromInt(int64(len(e.Participants))))
		}

		row := []string{
			formatDate(e.Date),
			e.Description,
			e.Amount.StringFixed(2),
			memberName(g, e.PaidBy),
			string(e.Category),
			strings.Join(names, "; "),
			split.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func memberName(g *models.Group, id string) string {
	if m := g.FindMember(id); m != nil {
		return m.Name
	}
	return unknownMember
}

// formatDate renders a YYYY-MM-DD date for humans and leaves anything
// unparseable as is.
func formatDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(csvDateLayout)
}
