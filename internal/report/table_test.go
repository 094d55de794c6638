package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSortByRank(t *testing.T) {
	records := []models.ProfileRecord{
		models.SuccessRecord("bob", "", "", intPtr(1000), 5, nil),
		models.FailureRecord("ghost", "User not found."),
		models.SuccessRecord("carol", "", "", nil, 9, nil),
		models.SuccessRecord("alice", "", "", intPtr(50), 12, nil),
		models.FailureRecord("broken", "API error: 500"),
	}

	sorted := report.SortByRank(records)

	var order []string
	for _, rec := range sorted {
		order = append(order, rec.Username)
	}
	// Ranked ascending first, then the rank-less in original fetch order.
	assert.Equal(t, []string{"alice", "bob", "ghost", "carol", "broken"}, order)

	// Input order is untouched.
	assert.Equal(t, "bob", records[0].Username)
	assert.Equal(t, "broken", records[4].Username)
}

func TestSortByRank_TiesAreStable(t *testing.T) {
	records := []models.ProfileRecord{
		models.SuccessRecord("first", "", "", intPtr(77), 1, nil),
		models.SuccessRecord("second", "", "", intPtr(77), 2, nil),
	}

	sorted := report.SortByRank(records)
	assert.Equal(t, "first", sorted[0].Username)
	assert.Equal(t, "second", sorted[1].Username)
}

func TestRows(t *testing.T) {
	records := []models.ProfileRecord{
		models.SuccessRecord("alice", "Alice Liddell", "https://a.png", intPtr(50), 12, []string{"Annual Badge", "50 Days Badge"}),
		models.SuccessRecord("carol", "", "", nil, 9, nil),
		models.FailureRecord("ghost", "User not found."),
	}

	rows := report.Rows(records)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, "50", rows[0].Rank)
	assert.Equal(t, "12", rows[0].Solved)
	assert.Equal(t, "Annual Badge, 50 Days Badge", rows[0].Badges)
	assert.False(t, rows[0].Failed)

	// Success without a rank shows N/A, empty badges show None.
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, "N/A", rows[1].Rank)
	assert.Equal(t, "9", rows[1].Solved)
	assert.Equal(t, "None", rows[1].Badges)

	// Failure keeps the username and shows placeholders.
	assert.Equal(t, 3, rows[2].Index)
	assert.Equal(t, "ghost", rows[2].Username)
	assert.Equal(t, "Error", rows[2].Rank)
	assert.Equal(t, "-", rows[2].Solved)
	assert.Equal(t, "-", rows[2].Badges)
	assert.True(t, rows[2].Failed)
	assert.Equal(t, "User not found.", rows[2].Detail)
}

func TestTextRenderer_Render(t *testing.T) {
	records := []models.ProfileRecord{
		models.SuccessRecord("bob", "", "", intPtr(1000), 5, nil),
		models.SuccessRecord("alice", "", "", intPtr(50), 12, []string{"Annual Badge"}),
		models.FailureRecord("ghost", "User not found."),
	}

	var buf bytes.Buffer
	require.NoError(t, report.NewTextRenderer(true).Render(&buf, records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "USERNAME")
	assert.Contains(t, lines[0], "RANK")
	assert.Contains(t, lines[0], "SOLVED")
	assert.Contains(t, lines[0], "BADGES")

	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[1], "50")
	assert.Contains(t, lines[2], "bob")
	assert.Contains(t, lines[3], "ghost")
	assert.Contains(t, lines[3], "Error")

	// Row numbers reflect post-sort position.
	assert.True(t, strings.HasPrefix(lines[1], "1"))
	assert.True(t, strings.HasPrefix(lines[2], "2"))
	assert.True(t, strings.HasPrefix(lines[3], "3"))
}

func TestTextRenderer_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewTextRenderer(true).Render(&buf, nil))
	assert.Equal(t, "No data to display.\n", buf.String())
}
