package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lrocha/leetboard/internal/models"
)

// TextRenderer writes a batch of records as a plain-text table.
type TextRenderer struct {
	noColor bool
}

// NewTextRenderer creates a TextRenderer. With noColor set the output is
// plain ASCII, suitable for piping.
func NewTextRenderer(noColor bool) *TextRenderer {
	return &TextRenderer{noColor: noColor}
}

// Render writes the table to w, sorted by rank. An empty batch renders a
// visible "no data" line rather than a bare header.
func (r *TextRenderer) Render(w io.Writer, records []models.ProfileRecord) error {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No data to display.")
		return nil
	}

	rows := Rows(records)

	// Calculate column widths
	indexWidth := len("#")
	usernameWidth := len("USERNAME")
	rankWidth := len("RANK")
	solvedWidth := len("SOLVED")
	badgesWidth := len("BADGES")

	for _, row := range rows {
		if w := len(strconv.Itoa(row.Index)); w > indexWidth {
			indexWidth = w
		}
		if len(row.Username) > usernameWidth {
			usernameWidth = len(row.Username)
		}
		if len(row.Rank) > rankWidth {
			rankWidth = len(row.Rank)
		}
		if len(row.Solved) > solvedWidth {
			solvedWidth = len(row.Solved)
		}
		if len(row.Badges) > badgesWidth {
			badgesWidth = len(row.Badges)
		}
	}

	// Widths are computed on the raw cells; styles wrap the padded line so
	// ANSI escapes never skew the alignment.
	header := fmt.Sprintf("%*s  %-*s  %*s  %*s  %-*s",
		indexWidth, "#",
		usernameWidth, "USERNAME",
		rankWidth, "RANK",
		solvedWidth, "SOLVED",
		badgesWidth, "BADGES",
	)
	if !r.noColor {
		header = tableHeaderStyle.Render(header)
	}
	_, _ = fmt.Fprintln(w, header)

	for _, row := range rows {
		line := fmt.Sprintf("%*d  %-*s  %*s  %*s  %-*s",
			indexWidth, row.Index,
			usernameWidth, row.Username,
			rankWidth, row.Rank,
			solvedWidth, row.Solved,
			badgesWidth, row.Badges,
		)
		if row.Failed && !r.noColor {
			line = failedRowStyle.Render(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}

	return nil
}
