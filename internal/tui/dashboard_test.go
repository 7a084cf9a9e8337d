package tui

import (
	"errors"
	"strings"
	"testing"
)

func pageNames(e *testEnv) []string {
	var names []string
	for _, r := range e.app.deps.Controller.Page().Items {
		names = append(names, r.Name)
	}
	return names
}

func TestDashboardSortToggle(t *testing.T) {
	e := newTestEnv(t)
	e.openUser(t, "octocat")

	if got := pageNames(e)[0]; got != "repo-01" {
		t.Fatalf("first by recency = %q, want repo-01", got)
	}
	e.send(t, key("s"))
	if got := pageNames(e)[0]; got != "repo-08" {
		t.Errorf("first by stars = %q, want repo-08", got)
	}
	if !strings.Contains(e.app.View(), "sort: stars") {
		t.Error("sort label not updated")
	}
	e.send(t, key("s"))
	if got := pageNames(e)[0]; got != "repo-01" {
		t.Errorf("first after second toggle = %q, want repo-01", got)
	}
}

func TestDashboardFilter(t *testing.T) {
	e := newTestEnv(t)
	e.openUser(t, "octocat")

	e.send(t, key("/"))
	e.typeText(t, "07")
	if got := pageNames(e); len(got) != 1 || got[0] != "repo-07" {
		t.Fatalf("filtered page = %v, want [repo-07]", got)
	}

	e.send(t, key("enter"))
	if e.app.dash.filtering {
		t.Fatal("enter should leave filter editing")
	}
	if !strings.Contains(e.app.View(), "filter: 07") {
		t.Error("kept filter not shown")
	}

	e.send(t, key("/"))
	e.send(t, key("esc"))
	if got := len(pageNames(e)); got != 6 {
		t.Errorf("page size after clearing filter = %d, want 6", got)
	}
	if e.app.deps.Controller.State().Filter != "" {
		t.Error("esc did not clear the filter")
	}
}

func TestDashboardPagination(t *testing.T) {
	e := newTestEnv(t)
	e.openUser(t, "octocat")

	if !strings.Contains(e.app.View(), "page 1/2") {
		t.Fatal("expected page 1/2")
	}
	e.send(t, key("n"))
	if got := pageNames(e); len(got) != 2 || got[0] != "repo-07" {
		t.Errorf("page 2 = %v, want [repo-07 repo-08]", got)
	}
	e.send(t, key("n"))
	if !strings.Contains(e.app.View(), "page 2/2") {
		t.Error("next past the last page should clamp")
	}
	e.send(t, key("p"))
	e.send(t, key("p"))
	if !strings.Contains(e.app.View(), "page 1/2") {
		t.Error("prev past the first page should clamp")
	}
}

func TestDashboardTabs(t *testing.T) {
	e := newTestEnv(t)
	e.openUser(t, "octocat")

	e.send(t, key("tab"))
	if !strings.Contains(e.app.View(), "no repositories") {
		t.Error("private tab should be empty")
	}
	e.send(t, key("tab"))
	e.send(t, key("tab"))
	if got := len(pageNames(e)); got != 6 {
		t.Errorf("popular tab page = %d items, want 6", got)
	}
}

func TestDashboardCopySelected(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	e := newTestEnv(t)
	e.openUser(t, "octocat")
	e.send(t, key("j"))
	e.settle(t, e.send(t, key("c")))

	want := "https://github.com/octocat/repo-02"
	if copied != want {
		t.Fatalf("copied %q, want %q", copied, want)
	}
	if !strings.Contains(e.app.View(), "copied "+want) {
		t.Error("copy notice not shown")
	}
}

func TestDashboardCopyFailure(t *testing.T) {
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { copyToClipboard = orig })

	e := newTestEnv(t)
	e.openUser(t, "octocat")
	e.settle(t, e.send(t, key("c")))
	if !strings.Contains(e.app.View(), "copy failed") {
		t.Error("copy failure not reported")
	}
}

func TestDashboardOpenSelected(t *testing.T) {
	var opened string
	orig := openURL
	openURL = func(u string) error { opened = u; return nil }
	t.Cleanup(func() { openURL = orig })

	e := newTestEnv(t)
	e.openUser(t, "octocat")
	e.settle(t, e.send(t, key("o")))
	if opened != "https://github.com/octocat/repo-01" {
		t.Errorf("opened %q, want repo-01 URL", opened)
	}
}

func TestDashboardUserNotFound(t *testing.T) {
	e := newTestEnv(t)
	e.openUser(t, "ghost")

	out := e.app.View()
	if !strings.Contains(out, "user not found") {
		t.Errorf("failed view missing error: %q", out)
	}
	if !strings.Contains(out, "@ghost") {
		t.Error("failed view should name the user")
	}
}

func TestDashboardLoadingView(t *testing.T) {
	e := newTestEnv(t)
	cmd := e.send(t, openUserMsg{login: "octocat"})
	if cmd == nil {
		t.Fatal("expected a fetch command on cache miss")
	}
	if !strings.Contains(e.app.View(), "loading @octocat") {
		t.Error("loading view not shown")
	}
}

func TestDashboardRefresh(t *testing.T) {
	e := newTestEnv(t)
	e.openUser(t, "octocat")

	if cmd := e.send(t, key("r")); cmd != nil {
		t.Error("refresh within the TTL should be served from cache")
	}
	if !e.app.deps.Controller.State().FromCache {
		t.Error("expected FromCache after a cached refresh")
	}
	if !strings.Contains(e.app.View(), "cached ") {
		t.Error("cached marker not shown")
	}

	e.gh.repos["octocat"] = testRepos(2)
	cmd := e.send(t, key("R"))
	if cmd == nil {
		t.Fatal("forced refresh should fetch")
	}
	e.settle(t, cmd)
	if got := len(pageNames(e)); got != 2 {
		t.Errorf("after forced refresh page = %d items, want 2", got)
	}
	if e.app.deps.Controller.State().FromCache {
		t.Error("forced refresh result should not be marked cached")
	}
}

func TestDashboardRefreshDropsFilterInput(t *testing.T) {
	e := newTestEnv(t)
	e.openUser(t, "octocat")

	e.send(t, key("/"))
	e.typeText(t, "07")
	e.send(t, key("enter"))
	e.settle(t, e.send(t, key("r")))

	if e.app.dash.filter != "" || e.app.dash.filtering {
		t.Fatalf("after refresh filter = %q, filtering = %v", e.app.dash.filter, e.app.dash.filtering)
	}

	e.send(t, key("/"))
	e.typeText(t, "1")
	if got := e.app.deps.Controller.State().Filter; got != "1" {
		t.Errorf("filter after refresh and typing = %q, want %q", got, "1")
	}
	if got := pageNames(e); len(got) != 1 || got[0] != "repo-01" {
		t.Errorf("filtered page = %v, want [repo-01]", got)
	}
}
