package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/naveenspark/gitone/internal/dashboard"
	"github.com/naveenspark/gitone/internal/views"
)

// runPlain loads user and prints the dashboard as text.
func runPlain(ctx context.Context, w io.Writer, ctrl *dashboard.Controller, user string) error {
	if err := ctrl.Load(ctx, user); err != nil {
		if msg := ctrl.ErrorMessage(); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	printPlain(w, ctrl, time.Now())
	return nil
}

func printPlain(w io.Writer, ctrl *dashboard.Controller, now time.Time) {
	st := ctrl.State()
	p := st.Profile
	if p == nil {
		return
	}

	fmt.Fprintf(w, "%s (@%s)\n", p.Name(), p.Login)
	fmt.Fprintf(w, "%s · %s followers · %s following\n", dash(p.Location), humanize.Comma(int64(p.Followers)), humanize.Comma(int64(p.Following)))
	fmt.Fprintln(w, p.ProfileURL)
	if st.FromCache {
		fmt.Fprintf(w, "cached %s\n", views.RelativeAge(st.FetchedAt, now))
	}

	t := ctrl.Totals()
	fmt.Fprintf(w, "\nrepositories %s  stars %s  forks %s  open issues %s\n",
		humanize.Comma(int64(p.PublicRepoCount)), humanize.Comma(int64(t.Stars)), humanize.Comma(int64(t.Forks)), humanize.Comma(int64(t.OpenIssues)))

	if langs := ctrl.Languages(); len(langs) > 0 {
		parts := make([]string, len(langs))
		for i, l := range langs {
			parts[i] = fmt.Sprintf("%s %d%%", l.Language, l.Percentage)
		}
		fmt.Fprintf(w, "languages    %s\n", strings.Join(parts, ", "))
	}

	page := ctrl.Page()
	fmt.Fprintf(w, "\nrepositories (%s, page %d/%d)\n", st.Sort, page.Number, page.TotalPages)
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, r := range page.Items {
		lang := "—"
		if r.PrimaryLanguage != nil && *r.PrimaryLanguage != "" {
			lang = *r.PrimaryLanguage
		}
		fmt.Fprintf(w, "  %-32s ★%-7s ⑂%-6s %-12s %s\n",
			r.Name, humanize.Comma(int64(r.StarCount)), humanize.Comma(int64(r.ForkCount)), lang, views.RelativeAge(r.PushedAt, now))
	}
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
