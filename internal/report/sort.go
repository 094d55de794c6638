// Package report turns a batch of profile records into display output: a
// rank-sorted ordering shared by every renderer, plus a plain-text table for
// the CLI. The web handlers consume the same rows so both front ends agree.
package report

import (
	"sort"

	"github.com/lrocha/leetboard/internal/models"
)

// SortByRank returns a new slice ordered by ascending rank. Records without a
// usable rank (failures and successes the platform has not ranked) sort after
// all ranked records, keeping their original fetch order among themselves.
// The input is left untouched.
func SortByRank(records []models.ProfileRecord) []models.ProfileRecord {
	sorted := make([]models.ProfileRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		iRanked, jRanked := sorted[i].HasRank(), sorted[j].HasRank()
		switch {
		case iRanked && jRanked:
			return *sorted[i].Rank < *sorted[j].Rank
		case iRanked:
			return true
		default:
			return false
		}
	})

	return sorted
}
