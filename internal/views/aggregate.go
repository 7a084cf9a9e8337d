package views

import (
	"math"
	"slices"

	"github.com/naveenspark/gitone/pkg/domain"
)

// DefaultLanguageLimit is how many languages the dashboard shows.
const DefaultLanguageLimit = 3

// Totals are the KPI sums across a repository list.
type Totals struct {
	Stars      int
	Forks      int
	OpenIssues int
}

// AggregateTotals sums stars, forks and open issues. An empty list yields zeros.
func AggregateTotals(repos []domain.Repository) Totals {
	var t Totals
	for _, r := range repos {
		t.Stars += r.StarCount
		t.Forks += r.ForkCount
		t.OpenIssues += r.OpenIssueCount
	}
	return t
}

// LanguageShare is one row of the language breakdown.
type LanguageShare struct {
	Language   string
	Count      int
	Percentage int
}

// TopLanguages counts repositories per primary language and returns the
// limit most common, highest first. Ties keep the order in which the
// languages were first seen. Percentages are of the whole list, rounded and
// capped at 100. A limit below 1 means DefaultLanguageLimit.
func TopLanguages(repos []domain.Repository, limit int) []LanguageShare {
	if len(repos) == 0 {
		return []LanguageShare{}
	}
	if limit < 1 {
		limit = DefaultLanguageLimit
	}

	index := make(map[string]int)
	var shares []LanguageShare
	for _, r := range repos {
		lang := r.Language()
		i, ok := index[lang]
		if !ok {
			i = len(shares)
			index[lang] = i
			shares = append(shares, LanguageShare{Language: lang})
		}
		shares[i].Count++
	}

	slices.SortStableFunc(shares, func(a, b LanguageShare) int {
		return b.Count - a.Count
	})
	if len(shares) > limit {
		shares = shares[:limit]
	}

	total := float64(len(repos))
	for i := range shares {
		pct := int(math.Round(float64(shares[i].Count) / total * 100))
		shares[i].Percentage = min(pct, 100)
	}
	return shares
}
