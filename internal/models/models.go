package models

// ProfileRecord is the normalized outcome of fetching one user's public
// profile stats. A record is either a success (stats populated, ErrDetail
// empty) or a failure (ErrDetail set, stats zero); never both.
type ProfileRecord struct {
	Username       string   `json:"username"`
	RealName       string   `json:"real_name,omitempty"`
	AvatarURL      string   `json:"avatar_url,omitempty"`
	Rank           *int     `json:"rank"`
	ProblemsSolved int      `json:"problems_solved"`
	Badges         []string `json:"badges"`
	ErrDetail      string   `json:"error,omitempty"`
}

// SuccessRecord builds a success record. rank may be nil when the platform
// reports no ranking for the user; it is carried through as-is.
func SuccessRecord(username, realName, avatarURL string, rank *int, solved int, badges []string) ProfileRecord {
	return ProfileRecord{
		Username:       username,
		RealName:       realName,
		AvatarURL:      avatarURL,
		Rank:           rank,
		ProblemsSolved: solved,
		Badges:         badges,
	}
}

// FailureRecord builds a failure record carrying a human-readable detail.
func FailureRecord(username, detail string) ProfileRecord {
	return ProfileRecord{
		Username:  username,
		ErrDetail: detail,
	}
}

// Failed reports whether the record is a failure.
func (r ProfileRecord) Failed() bool {
	return r.ErrDetail != ""
}

// HasRank reports whether the record is a success with a known rank.
func (r ProfileRecord) HasRank() bool {
	return !r.Failed() && r.Rank != nil
}
