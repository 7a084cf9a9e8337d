// Package dashboard holds the state behind the dashboard view: which user is
// shown, the repository sequence after sort and filter, and the current page.
//
// The Controller is single-writer. A lookup is split in three so the UI can run
// the network part off its event loop:
//
//	req, _ := c.RequestUser(ctx, name)   // reset state, consult the cache
//	if req.NeedsFetch {
//		res := c.Fetch(ctx, req)         // safe to run in a goroutine
//		c.Complete(ctx, res)             // back on the owning goroutine
//	}
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/naveenspark/gitone/internal/views"
	"github.com/naveenspark/gitone/pkg/client"
	"github.com/naveenspark/gitone/pkg/domain"
)

// ErrEmptyUsername is returned for a blank lookup.
var ErrEmptyUsername = errors.New("username is empty")

// ActivityLimit is how many repositories the activity feed shows.
const ActivityLimit = 6

// Status is the lifecycle of the current lookup.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	}
	return "idle"
}

// Tab selects which subset of the held repositories the list pages through.
type Tab int

const (
	TabPopular Tab = iota
	TabPrivate
	TabArchived
)

// Tabs in display order.
var Tabs = []Tab{TabPopular, TabPrivate, TabArchived}

func (t Tab) String() string {
	switch t {
	case TabPrivate:
		return "private"
	case TabArchived:
		return "archived"
	}
	return "popular"
}

// Fetcher loads a profile and its repositories.
type Fetcher interface {
	FetchProfileAndRepos(ctx context.Context, username string) (*domain.Profile, []domain.Repository, error)
}

// Cache is the snapshot cache the controller reads through and writes to.
type Cache interface {
	Get(ctx context.Context, username string) (*domain.Snapshot, bool)
	Put(ctx context.Context, username string, profile domain.Profile, repos []domain.Repository) error
	LastKnown(ctx context.Context, username string) []domain.Repository
	Evict(ctx context.Context, username string) error
}

// Request identifies one lookup.
type Request struct {
	Seq        uint64
	TraceID    string
	Username   string
	NeedsFetch bool
}

// Result is the outcome of Fetch, handed back to Complete.
type Result struct {
	Request
	Profile      *domain.Profile
	Repositories []domain.Repository
	Err          error
	Took         time.Duration
}

// State is a read-only copy of the controller's state.
type State struct {
	Status       Status
	Username     string
	Profile      *domain.Profile
	Repositories []domain.Repository
	Filter       string
	Sort         domain.SortMode
	Tab          Tab
	Page         int
	Err          error
	FetchedAt    time.Time
	FromCache    bool
}

// Controller owns the dashboard state.
type Controller struct {
	fetcher Fetcher
	cache   Cache
	logger  *log.Logger
	now     func() time.Time

	seq       uint64
	status    Status
	username  string
	profile   *domain.Profile
	all       []domain.Repository
	repos     []domain.Repository
	filter    string
	sort      domain.SortMode
	tab       Tab
	page      int
	err       error
	fetchedAt time.Time
	fromCache bool
	// cached is set while the cache record for username holds exactly c.all.
	cached bool
}

// New builds an idle controller.
func New(f Fetcher, c Cache, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{fetcher: f, cache: c, logger: logger, now: time.Now, page: 1}
}

// RequestUser starts a lookup for username. State is reset first. On a cache
// hit the controller is Ready when this returns and the request needs no
// fetch; otherwise it is Loading until Complete receives the matching Result.
func (c *Controller) RequestUser(ctx context.Context, username string) (Request, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Request{}, ErrEmptyUsername
	}

	c.seq++
	req := Request{Seq: c.seq, TraceID: uuid.NewString(), Username: username}

	c.status = Loading
	c.username = username
	c.profile = nil
	c.all = nil
	c.repos = nil
	c.filter = ""
	c.tab = TabPopular
	c.page = 1
	c.err = nil
	c.fromCache = false
	c.cached = false

	if snap, ok := c.cache.Get(ctx, username); ok {
		c.logger.Debug("cache hit", "user", username, "seq", req.Seq, "trace", req.TraceID)
		profile := snap.Profile
		c.profile = &profile
		c.setRepositories(snap.Repositories)
		c.fetchedAt = snap.FetchedAt
		c.fromCache = true
		c.cached = true
		c.status = Ready
		return req, nil
	}

	c.logger.Debug("cache miss", "user", username, "seq", req.Seq, "trace", req.TraceID)
	req.NeedsFetch = true
	return req, nil
}

// Fetch runs the network part of req. It does not touch controller state.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	start := time.Now()
	profile, repos, err := c.fetcher.FetchProfileAndRepos(ctx, req.Username)
	return Result{Request: req, Profile: profile, Repositories: repos, Err: err, Took: time.Since(start)}
}

// Complete applies res unless a newer request has started since. It reports
// whether res was applied.
func (c *Controller) Complete(ctx context.Context, res Result) bool {
	if res.Seq != c.seq {
		c.logger.Debug("discarding stale result", "user", res.Username, "seq", res.Seq, "latest", c.seq)
		return false
	}

	if res.Err != nil {
		c.logger.Warn("fetch failed", "user", res.Username, "seq", res.Seq, "trace", res.TraceID,
			"took", res.Took, "err", res.Err)
		c.status = Failed
		c.err = res.Err
		c.profile = nil
		c.all = nil
		c.repos = nil
		return true
	}

	c.logger.Info("fetched", "user", res.Username, "seq", res.Seq, "trace", res.TraceID,
		"repos", len(res.Repositories), "took", res.Took)

	var profile domain.Profile
	if res.Profile != nil {
		profile = *res.Profile
	}
	repos := res.Repositories
	if repos == nil {
		repos = []domain.Repository{}
	}
	c.profile = &profile
	c.setRepositories(repos)
	c.fetchedAt = c.now()
	c.status = Ready
	c.err = nil

	if err := c.cache.Put(ctx, res.Username, profile, repos); err != nil {
		c.logger.Warn("cache write failed", "user", res.Username, "err", err)
	} else {
		c.cached = true
	}
	return true
}

// Load runs a whole lookup synchronously.
func (c *Controller) Load(ctx context.Context, username string) error {
	req, err := c.RequestUser(ctx, username)
	if err != nil {
		return fmt.Errorf("dashboard.Load: %w", err)
	}
	if req.NeedsFetch {
		c.Complete(ctx, c.Fetch(ctx, req))
	}
	if c.err != nil {
		return fmt.Errorf("dashboard.Load: %w", c.err)
	}
	return nil
}

// Refresh repeats the lookup for the current user. With bypassCache the
// cached snapshot is evicted first so the lookup always fetches.
func (c *Controller) Refresh(ctx context.Context, bypassCache bool) (Request, error) {
	if c.username == "" {
		return Request{}, ErrEmptyUsername
	}
	if bypassCache {
		if err := c.cache.Evict(ctx, c.username); err != nil {
			c.logger.Warn("cache evict failed", "user", c.username, "err", err)
		}
	}
	return c.RequestUser(ctx, c.username)
}

// ToggleSort flips between recency and stars and reorders the held sequence.
func (c *Controller) ToggleSort() domain.SortMode {
	c.sort = c.sort.Toggle()
	c.repos = views.Sort(c.repos, c.sort)
	c.clampPage()
	return c.sort
}

// ApplyFilter narrows the held sequence to names containing text. An empty
// text restores the full cached list, or the held list when the cache write
// for it failed. The page is kept when still in range.
func (c *Controller) ApplyFilter(ctx context.Context, text string) {
	c.filter = text
	if strings.TrimSpace(text) == "" {
		if c.cached {
			if known := c.cache.LastKnown(ctx, c.username); len(known) > 0 {
				c.all = known
			}
		}
		c.repos = views.Sort(c.all, c.sort)
	} else {
		c.repos = views.FilterByName(views.Sort(c.all, c.sort), strings.TrimSpace(text))
	}
	c.clampPage()
}

// SetTab switches the list subset and returns to the first page.
func (c *Controller) SetTab(t Tab) {
	c.tab = t
	c.page = 1
}

// NextTab cycles through Tabs.
func (c *Controller) NextTab() Tab {
	c.SetTab(Tabs[(int(c.tab)+1)%len(Tabs)])
	return c.tab
}

// SetPage moves to page, clamped into range.
func (c *Controller) SetPage(page int) int {
	c.page = page
	c.clampPage()
	return c.page
}

func (c *Controller) NextPage() int { return c.SetPage(c.page + 1) }
func (c *Controller) PrevPage() int { return c.SetPage(c.page - 1) }

// Page returns the current page of the active tab.
func (c *Controller) Page() views.Page {
	return views.Paginate(c.tabRepositories(), views.PageSize, c.page)
}

// Totals sums the KPI counters over the held sequence.
func (c *Controller) Totals() views.Totals {
	return views.AggregateTotals(c.repos)
}

// Languages returns the top languages of the held sequence.
func (c *Controller) Languages() []views.LanguageShare {
	return views.TopLanguages(c.repos, views.DefaultLanguageLimit)
}

// Activity returns the head of the held sequence for the activity feed.
func (c *Controller) Activity() []domain.Repository {
	return views.Recent(c.repos, ActivityLimit)
}

// ErrorMessage is the user-facing text of the last error, or "".
func (c *Controller) ErrorMessage() string {
	return client.Describe(c.err)
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := State{
		Status:       c.status,
		Username:     c.username,
		Repositories: append([]domain.Repository(nil), c.repos...),
		Filter:       c.filter,
		Sort:         c.sort,
		Tab:          c.tab,
		Page:         c.page,
		Err:          c.err,
		FetchedAt:    c.fetchedAt,
		FromCache:    c.fromCache,
	}
	if c.profile != nil {
		p := *c.profile
		s.Profile = &p
	}
	return s
}

func (c *Controller) setRepositories(repos []domain.Repository) {
	c.all = repos
	c.repos = views.Sort(repos, c.sort)
}

func (c *Controller) tabRepositories() []domain.Repository {
	switch c.tab {
	case TabPrivate:
		return views.Private(c.repos)
	case TabArchived:
		return views.Archived(c.repos)
	}
	return c.repos
}

func (c *Controller) clampPage() {
	c.page = views.ClampPage(c.page, len(c.tabRepositories()), views.PageSize)
}
