package domain

import "time"

// UnknownLanguage buckets repositories GitHub could not classify.
const UnknownLanguage = "Unknown"

// Repository is one repository owned by a Profile.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	StarCount       int       `json:"stargazers_count"`
	ForkCount       int       `json:"forks_count"`
	OpenIssueCount  int       `json:"open_issues_count"`
	PrimaryLanguage *string   `json:"language"`
	Description     string    `json:"description,omitempty"`
	PushedAt        time.Time `json:"pushed_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	IsPrivate       bool      `json:"private"`
	IsArchived      bool      `json:"archived"`
	HTMLURL         string    `json:"html_url"`
}

// Language returns the primary language, or UnknownLanguage when GitHub
// reported none.
func (r Repository) Language() string {
	if r.PrimaryLanguage == nil || *r.PrimaryLanguage == "" {
		return UnknownLanguage
	}
	return *r.PrimaryLanguage
}

// SortMode selects the ordering of a repository list.
type SortMode int

const (
	SortByRecency SortMode = iota
	SortByStars
)

func (s SortMode) String() string {
	if s == SortByStars {
		return "stars"
	}
	return "recent"
}

// Toggle flips between the two sort modes.
func (s SortMode) Toggle() SortMode {
	if s == SortByStars {
		return SortByRecency
	}
	return SortByStars
}
