package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/gitone/internal/cache"
	"github.com/naveenspark/gitone/internal/kv"
	"github.com/naveenspark/gitone/pkg/client"
	"github.com/naveenspark/gitone/pkg/domain"
)

type fakeFetcher struct {
	calls atomic.Int32
	repos map[string][]domain.Repository
	err   error
}

func (f *fakeFetcher) FetchProfileAndRepos(_ context.Context, username string) (*domain.Profile, []domain.Repository, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, nil, f.err
	}
	repos, ok := f.repos[username]
	if !ok {
		return nil, nil, fmt.Errorf("client.FetchProfileAndRepos: %w", client.ErrUserNotFound)
	}
	return &domain.Profile{Login: username, PublicRepoCount: len(repos)}, repos, nil
}

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func makeRepos(n int) []domain.Repository {
	repos := make([]domain.Repository, n)
	for i := range repos {
		repos[i] = domain.Repository{
			ID:        int64(i + 1),
			Name:      fmt.Sprintf("repo-%02d", i+1),
			StarCount: i,
			PushedAt:  base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return repos
}

type harness struct {
	ctrl    *Controller
	fetcher *fakeFetcher
	cache   *cache.Store
	now     *time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	now := base
	clock := func() time.Time { return now }
	logger := log.New(io.Discard)
	f := &fakeFetcher{repos: map[string][]domain.Repository{
		"octocat": makeRepos(13),
		"torvalds": {
			{ID: 100, Name: "linux", StarCount: 1000, PushedAt: base},
		},
	}}
	c := cache.New(kv.NewMemory(), logger, cache.WithClock(clock))
	ctrl := New(f, c, logger)
	ctrl.now = clock
	return &harness{ctrl: ctrl, fetcher: f, cache: c, now: &now}
}

func (h *harness) load(t *testing.T, user string) {
	t.Helper()
	require.NoError(t, h.ctrl.Load(context.Background(), user))
}

func TestRequestUserMissFetchesAndWritesThrough(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	req, err := h.ctrl.RequestUser(ctx, "  octocat ")
	require.NoError(t, err)
	assert.True(t, req.NeedsFetch)
	assert.Equal(t, "octocat", req.Username)
	assert.NotEmpty(t, req.TraceID)
	assert.Equal(t, Loading, h.ctrl.State().Status)

	assert.True(t, h.ctrl.Complete(ctx, h.ctrl.Fetch(ctx, req)))

	st := h.ctrl.State()
	assert.Equal(t, Ready, st.Status)
	require.NotNil(t, st.Profile)
	assert.Equal(t, "octocat", st.Profile.Login)
	assert.Len(t, st.Repositories, 13)
	assert.False(t, st.FromCache)

	snap, ok := h.cache.Get(ctx, "OCTOCAT")
	require.True(t, ok, "successful fetch is written to the cache")
	assert.Len(t, snap.Repositories, 13)
}

func TestRequestUserHitSkipsFetch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.load(t, "octocat")
	require.EqualValues(t, 1, h.fetcher.calls.Load())

	*h.now = base.Add(4 * time.Minute)
	req, err := h.ctrl.RequestUser(ctx, "OctoCat")
	require.NoError(t, err)
	assert.False(t, req.NeedsFetch)
	assert.EqualValues(t, 1, h.fetcher.calls.Load())

	st := h.ctrl.State()
	assert.Equal(t, Ready, st.Status)
	assert.True(t, st.FromCache)
	assert.Equal(t, base, st.FetchedAt, "hit does not restamp the cache")

	*h.now = base.Add(5 * time.Minute)
	req, err = h.ctrl.RequestUser(ctx, "octocat")
	require.NoError(t, err)
	assert.True(t, req.NeedsFetch, "expired entry is refetched")
}

func TestStaleResultIsDiscarded(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.ctrl.RequestUser(ctx, "octocat")
	require.NoError(t, err)
	second, err := h.ctrl.RequestUser(ctx, "torvalds")
	require.NoError(t, err)
	require.Greater(t, second.Seq, first.Seq)

	firstRes := h.ctrl.Fetch(ctx, first)
	secondRes := h.ctrl.Fetch(ctx, second)

	assert.True(t, h.ctrl.Complete(ctx, secondRes))
	assert.False(t, h.ctrl.Complete(ctx, firstRes), "late result for an older request is ignored")

	st := h.ctrl.State()
	assert.Equal(t, "torvalds", st.Username)
	require.Len(t, st.Repositories, 1)
	assert.Equal(t, "linux", st.Repositories[0].Name)

	_, cached := h.cache.Get(ctx, "octocat")
	assert.False(t, cached, "discarded result is not written through")
}

func TestFailureClearsDataAndNextRequestClearsError(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.load(t, "octocat")

	err := h.ctrl.Load(ctx, "ghost-user-xyz")
	require.ErrorIs(t, err, client.ErrUserNotFound)

	st := h.ctrl.State()
	assert.Equal(t, Failed, st.Status)
	assert.Nil(t, st.Profile)
	assert.Empty(t, st.Repositories)
	assert.Equal(t, "user not found", h.ctrl.ErrorMessage())

	req, err := h.ctrl.RequestUser(ctx, "torvalds")
	require.NoError(t, err)
	assert.NoError(t, h.ctrl.State().Err, "new request resets the error")
	h.ctrl.Complete(ctx, h.ctrl.Fetch(ctx, req))
	assert.Equal(t, Ready, h.ctrl.State().Status)
}

func TestRequestUserRejectsBlank(t *testing.T) {
	h := newHarness(t)
	_, err := h.ctrl.RequestUser(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyUsername)
	assert.Equal(t, Idle, h.ctrl.State().Status)
}

func TestRequestUserResetsPageAndFilter(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.load(t, "octocat")
	h.ctrl.NextPage()
	h.ctrl.ApplyFilter(ctx, "repo-1")

	_, err := h.ctrl.RequestUser(ctx, "octocat")
	require.NoError(t, err)
	st := h.ctrl.State()
	assert.Equal(t, 1, st.Page)
	assert.Empty(t, st.Filter)
	assert.Len(t, st.Repositories, 13)
}

func TestToggleSort(t *testing.T) {
	h := newHarness(t)
	h.load(t, "octocat")

	assert.Equal(t, domain.SortByStars, h.ctrl.ToggleSort())
	repos := h.ctrl.State().Repositories
	assert.Equal(t, "repo-13", repos[0].Name, "most stars first")

	assert.Equal(t, domain.SortByRecency, h.ctrl.ToggleSort())
	repos = h.ctrl.State().Repositories
	assert.Equal(t, "repo-01", repos[0].Name, "most recently pushed first")
}

func TestApplyFilter(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.load(t, "octocat")

	assert.Equal(t, 3, h.ctrl.SetPage(3))

	h.ctrl.ApplyFilter(ctx, "REPO-1")
	st := h.ctrl.State()
	// repo-10..repo-13
	assert.Len(t, st.Repositories, 4)
	assert.Equal(t, 1, st.Page, "page clamped to the single remaining page")

	h.ctrl.ApplyFilter(ctx, "repo-12")
	assert.Len(t, h.ctrl.State().Repositories, 1)

	h.ctrl.ApplyFilter(ctx, "repo-1")
	assert.Len(t, h.ctrl.State().Repositories, 4, "widening the query widens the result")

	h.ctrl.ApplyFilter(ctx, "")
	assert.Equal(t, names(h.cache.LastKnown(ctx, "octocat")), names(h.ctrl.State().Repositories),
		"empty filter restores the cached list in cached order")
}

func TestApplyFilterClearReappliesStarOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.load(t, "octocat")
	h.ctrl.ToggleSort()

	h.ctrl.ApplyFilter(ctx, "repo-0")
	h.ctrl.ApplyFilter(ctx, "")

	want := make([]string, 0, 13)
	for i := 13; i >= 1; i-- {
		want = append(want, fmt.Sprintf("repo-%02d", i))
	}
	assert.Equal(t, want, names(h.ctrl.State().Repositories))
}

// flakyKV fails every Put once failPut is set.
type flakyKV struct {
	kv.Store
	failPut bool
}

func (f *flakyKV) Put(ctx context.Context, key, value string) error {
	if f.failPut {
		return errors.New("disk full")
	}
	return f.Store.Put(ctx, key, value)
}

func TestApplyFilterClearKeepsFreshListWhenCacheWriteFailed(t *testing.T) {
	ctx := context.Background()
	now := base
	clock := func() time.Time { return now }
	logger := log.New(io.Discard)
	store := &flakyKV{Store: kv.NewMemory()}
	f := &fakeFetcher{repos: map[string][]domain.Repository{"octocat": makeRepos(2)}}
	ctrl := New(f, cache.New(store, logger, cache.WithClock(clock)), logger)
	ctrl.now = clock

	require.NoError(t, ctrl.Load(ctx, "octocat"))

	now = base.Add(10 * time.Minute)
	f.repos["octocat"] = makeRepos(13)
	store.failPut = true
	require.NoError(t, ctrl.Load(ctx, "octocat"))
	require.Len(t, ctrl.State().Repositories, 13)

	ctrl.ApplyFilter(ctx, "repo")
	ctrl.ApplyFilter(ctx, "")
	assert.Equal(t, names(makeRepos(13)), names(ctrl.State().Repositories),
		"an older cached snapshot must not replace the freshly fetched list")
}

func names(repos []domain.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.Name
	}
	return out
}

func TestApplyFilterKeepsPageInRange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.load(t, "octocat")
	h.ctrl.SetPage(2)

	h.ctrl.ApplyFilter(ctx, "repo")
	assert.Equal(t, 2, h.ctrl.State().Page)
}

func TestPagination(t *testing.T) {
	h := newHarness(t)
	h.load(t, "octocat")

	p := h.ctrl.Page()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Items, 6)

	assert.Equal(t, 2, h.ctrl.NextPage())
	assert.Equal(t, 3, h.ctrl.NextPage())
	assert.Equal(t, 3, h.ctrl.NextPage(), "clamped at the last page")
	assert.Len(t, h.ctrl.Page().Items, 1)

	assert.Equal(t, 1, h.ctrl.SetPage(-2))
	assert.Equal(t, 1, h.ctrl.PrevPage())
}

func TestTabs(t *testing.T) {
	h := newHarness(t)
	h.fetcher.repos["mixed"] = []domain.Repository{
		{ID: 1, Name: "pub"},
		{ID: 2, Name: "secret", IsPrivate: true},
		{ID: 3, Name: "dusty", IsArchived: true},
	}
	h.load(t, "mixed")

	assert.Equal(t, TabPrivate, h.ctrl.NextTab())
	page := h.ctrl.Page()
	require.Len(t, page.Items, 1)
	assert.Equal(t, "secret", page.Items[0].Name)

	assert.Equal(t, TabArchived, h.ctrl.NextTab())
	require.Len(t, h.ctrl.Page().Items, 1)
	assert.Equal(t, "dusty", h.ctrl.Page().Items[0].Name)

	assert.Equal(t, TabPopular, h.ctrl.NextTab())
	assert.Len(t, h.ctrl.Page().Items, 3)
}

func TestDerivedViews(t *testing.T) {
	h := newHarness(t)
	h.load(t, "octocat")

	assert.Equal(t, 78, h.ctrl.Totals().Stars) // 0+1+...+12
	assert.Len(t, h.ctrl.Activity(), ActivityLimit)
	langs := h.ctrl.Languages()
	require.Len(t, langs, 1)
	assert.Equal(t, domain.UnknownLanguage, langs[0].Language)
	assert.Equal(t, 100, langs[0].Percentage)
}

func TestRefresh(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.ctrl.Refresh(ctx, false)
	assert.ErrorIs(t, err, ErrEmptyUsername)

	h.load(t, "octocat")
	req, err := h.ctrl.Refresh(ctx, false)
	require.NoError(t, err)
	assert.False(t, req.NeedsFetch, "plain refresh honours the cache")

	req, err = h.ctrl.Refresh(ctx, true)
	require.NoError(t, err)
	assert.True(t, req.NeedsFetch, "hard refresh bypasses the cache")
}

func TestStatusAndTabStrings(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "error", Failed.String())
	assert.Equal(t, "popular", TabPopular.String())
	assert.Equal(t, "archived", TabArchived.String())
}
