// Package suggest debounces login autocomplete. Every keystroke supersedes
// the previous search through an explicit cancellation token; a superseded
// search is aborted whether it is still waiting out the delay or already
// talking to GitHub.
package suggest

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/naveenspark/gitone/pkg/domain"
)

const (
	// MinQueryLength is the shortest query that triggers a search.
	MinQueryLength = 2
	// DefaultDelay is the debounce window.
	DefaultDelay = 300 * time.Millisecond
	// Limit caps the number of suggestions kept.
	Limit = 6
)

// Searcher looks up logins.
type Searcher interface {
	SearchUsers(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// Token identifies one scheduled search and carries its cancellation.
type Token struct {
	ID     uuid.UUID
	Query  string
	ctx    context.Context
	cancel context.CancelFunc
}

// Cancelled reports whether the token was superseded or cancelled.
func (t *Token) Cancelled() bool {
	return t.ctx.Err() != nil
}

// Result is the outcome of one Run.
type Result struct {
	TokenID     uuid.UUID
	Query       string
	Suggestions []domain.Suggestion
	Err         error
}

// Debouncer schedules searches. Schedule, Accept and Cancel belong to one
// goroutine (the UI loop); Run may be called from any goroutine.
type Debouncer struct {
	searcher Searcher
	delay    time.Duration
	logger   *log.Logger
	current  *Token
}

// New returns a Debouncer with DefaultDelay.
func New(s Searcher, logger *log.Logger) *Debouncer {
	if logger == nil {
		logger = log.Default()
	}
	return &Debouncer{searcher: s, delay: DefaultDelay, logger: logger}
}

// WithDelay overrides the debounce window.
func (d *Debouncer) WithDelay(delay time.Duration) *Debouncer {
	d.delay = delay
	return d
}

// Schedule cancels any pending or running search and, when the trimmed
// query is long enough, returns a token for a new one. ok is false for
// short queries; the caller should clear its suggestions.
func (d *Debouncer) Schedule(ctx context.Context, query string) (tok *Token, ok bool) {
	d.Cancel()
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return nil, false
	}
	tctx, cancel := context.WithCancel(ctx)
	d.current = &Token{ID: uuid.New(), Query: query, ctx: tctx, cancel: cancel}
	return d.current, true
}

// Run waits out the delay and then searches, unless tok is cancelled first.
// A cancelled run returns a Result with Err set to the context error.
func (d *Debouncer) Run(tok *Token) Result {
	res := Result{TokenID: tok.ID, Query: tok.Query}

	timer := time.NewTimer(d.delay)
	defer timer.Stop()
	select {
	case <-tok.ctx.Done():
		res.Err = tok.ctx.Err()
		return res
	case <-timer.C:
	}

	found, err := d.searcher.SearchUsers(tok.ctx, tok.Query)
	if err != nil {
		if tok.ctx.Err() == nil {
			d.logger.Warn("user search failed", "query", tok.Query, "err", err)
		}
		res.Err = err
		return res
	}
	if len(found) > Limit {
		found = found[:Limit]
	}
	res.Suggestions = found
	return res
}

// Accept reports whether res belongs to the latest live token.
func (d *Debouncer) Accept(res Result) bool {
	if d.current == nil || d.current.ID != res.TokenID || d.current.Cancelled() {
		return false
	}
	d.current.cancel()
	d.current = nil
	return true
}

// Cancel aborts the current token, if any.
func (d *Debouncer) Cancel() {
	if d.current != nil {
		d.current.cancel()
		d.current = nil
	}
}
