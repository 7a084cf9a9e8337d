package domain

import "time"

// Snapshot is the profile and repository list captured by one fetch.
// It is the unit stored per username in the local cache.
type Snapshot struct {
	Username     string       `json:"username"`
	FetchedAt    time.Time    `json:"ts"`
	Profile      Profile      `json:"profile"`
	Repositories []Repository `json:"repositories"`
}
