package leetcode

// ProblemsSolved derives the number of distinct solved problems from the
// accepted-submission buckets. The API reports every per-difficulty bucket
// plus an aggregated "All" bucket, so the raw sum counts each problem twice
// and halving it recovers the true total.
func ProblemsSolved(counts []SubmissionCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total / 2
}

// BadgeNames extracts the display names of badges, preserving order.
func BadgeNames(badges []Badge) []string {
	names := make([]string, 0, len(badges))
	for _, b := range badges {
		names = append(names, b.DisplayName)
	}
	return names
}
