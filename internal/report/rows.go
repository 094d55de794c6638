package report

import (
	"strconv"
	"strings"

	"github.com/lrocha/leetboard/internal/models"
)

// Placeholders shared by the text and web renderers.
const (
	placeholderNoRank   = "N/A"
	placeholderError    = "Error"
	placeholderMissing  = "-"
	placeholderNoBadges = "None"
)

// Row is one display-ready table row. Index is the 1-based post-sort
// position, not the platform rank.
type Row struct {
	Index     int
	Username  string
	RealName  string
	AvatarURL string
	Rank      string
	Solved    string
	Badges    string
	Failed    bool
	Detail    string
}

// Rows sorts records by rank and maps each one onto its display cells.
// Failure rows keep the username and show placeholders for everything else.
func Rows(records []models.ProfileRecord) []Row {
	sorted := SortByRank(records)
	rows := make([]Row, 0, len(sorted))
	for i, rec := range sorted {
		rows = append(rows, toRow(i+1, rec))
	}
	return rows
}

func toRow(index int, rec models.ProfileRecord) Row {
	row := Row{
		Index:     index,
		Username:  rec.Username,
		RealName:  rec.RealName,
		AvatarURL: rec.AvatarURL,
		Failed:    rec.Failed(),
		Detail:    rec.ErrDetail,
	}

	if rec.Failed() {
		row.Rank = placeholderError
		row.Solved = placeholderMissing
		row.Badges = placeholderMissing
		return row
	}

	if rec.Rank != nil {
		row.Rank = strconv.Itoa(*rec.Rank)
	} else {
		row.Rank = placeholderNoRank
	}
	row.Solved = strconv.Itoa(rec.ProblemsSolved)
	if len(rec.Badges) > 0 {
		row.Badges = strings.Join(rec.Badges, ", ")
	} else {
		row.Badges = placeholderNoBadges
	}
	return row
}
