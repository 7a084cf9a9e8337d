package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Where gitone releases are published.
const (
	releaseOwner = "naveenspark"
	releaseRepo  = "gitone"
)

// ReleaseChecker looks up the newest release tag of a repository.
type ReleaseChecker interface {
	LatestRelease(ctx context.Context, owner, repo string) (string, error)
}

// versionCheckMsg carries the result of a background release check.
type versionCheckMsg struct {
	latestVersion string
	hasUpdate     bool
}

// checkVersion asks rc whether a newer release than current exists. Dev
// builds and a missing checker skip the check.
func checkVersion(ctx context.Context, rc ReleaseChecker, current string) tea.Cmd {
	if rc == nil || current == "" || current == "dev" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		tag, err := rc.LatestRelease(ctx, releaseOwner, releaseRepo)
		if err != nil {
			return versionCheckMsg{}
		}
		latest := strings.TrimPrefix(tag, "v")
		if isNewerVersion(latest, current) {
			return versionCheckMsg{latestVersion: "v" + latest, hasUpdate: true}
		}
		return versionCheckMsg{}
	}
}

// isNewerVersion reports whether latest is a higher major.minor.patch than
// current. Unparseable parts count as zero.
func isNewerVersion(latest, current string) bool {
	l, c := semverParts(latest), semverParts(current)
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func semverParts(v string) [3]int {
	var out [3]int
	v, _, _ = strings.Cut(strings.TrimPrefix(v, "v"), "-")
	for i, p := range strings.SplitN(v, ".", 3) {
		n, _ := strconv.Atoi(p) //nolint:errcheck
		out[i] = n
	}
	return out
}
