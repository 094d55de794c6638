package models

import "time"

// Roster is a saved list of usernames that can be re-run against the stats
// fetcher. Only the input list is stored; fetched stats are never persisted.
type Roster struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Usernames []string  `json:"usernames"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RosterFilter narrows roster listings.
type RosterFilter struct {
	NameContains string
	Limit        int
	Offset       int
}
