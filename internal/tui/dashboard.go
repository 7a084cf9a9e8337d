package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/gitone/internal/dashboard"
	"github.com/naveenspark/gitone/internal/views"
	"github.com/naveenspark/gitone/pkg/domain"
)

// fetchResultMsg carries a finished profile + repositories fetch.
type fetchResultMsg struct {
	res dashboard.Result
}

// actionResultMsg reports the outcome of open/copy.
type actionResultMsg struct {
	notice string
	err    error
}

type dashboardModel struct {
	ctx       context.Context
	ctrl      *dashboard.Controller
	spinner   spinner.Model
	filtering bool
	filter    string
	cursor    int
	notice    string
	width     int
	height    int
	now       func() time.Time
}

func newDashboardModel(ctx context.Context, ctrl *dashboard.Controller) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle
	return dashboardModel{ctx: ctx, ctrl: ctrl, spinner: s, now: time.Now}
}

// open starts a lookup for login.
func (m dashboardModel) open(login string) (dashboardModel, tea.Cmd) {
	m.filtering = false
	m.filter = ""
	m.cursor = 0
	m.notice = ""
	req, err := m.ctrl.RequestUser(m.ctx, login)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	return m, m.fetch(req)
}

// refresh repeats the lookup. The controller drops the filter on every
// request, so the local filter input is dropped too.
func (m dashboardModel) refresh(bypassCache bool) (dashboardModel, tea.Cmd) {
	m.filtering = false
	m.filter = ""
	m.cursor = 0
	m.notice = ""
	req, err := m.ctrl.Refresh(m.ctx, bypassCache)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	return m, m.fetch(req)
}

func (m dashboardModel) fetch(req dashboard.Request) tea.Cmd {
	if !req.NeedsFetch {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	fetchCmd := func() tea.Msg {
		return fetchResultMsg{res: ctrl.Fetch(ctx, req)}
	}
	return tea.Batch(fetchCmd, m.spinner.Tick)
}

func (m dashboardModel) loading() bool {
	return m.ctrl.State().Status == dashboard.Loading
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		if m.ctrl.Complete(m.ctx, msg.res) {
			m.cursor = 0
		}
		return m, nil

	case actionResultMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = msg.notice
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m dashboardModel) handleFilterKey(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		return m, nil
	case "esc":
		m.filtering = false
		m.filter = ""
		m.ctrl.ApplyFilter(m.ctx, "")
		m.cursor = 0
		return m, nil
	}
	next := editRune(m.filter, msg.String())
	if next != m.filter {
		m.filter = next
		m.ctrl.ApplyFilter(m.ctx, next)
		m.cursor = 0
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "/":
		if m.ctrl.State().Status == dashboard.Ready {
			m.filtering = true
		}
	case "s":
		m.ctrl.ToggleSort()
		m.cursor = 0
	case "tab":
		m.ctrl.NextTab()
		m.cursor = 0
	case "n", "right", "l":
		m.ctrl.NextPage()
		m.cursor = 0
	case "p", "left":
		m.ctrl.PrevPage()
		m.cursor = 0
	case "j", "down":
		if m.cursor < len(m.ctrl.Page().Items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		return m.refresh(false)
	case "R":
		return m.refresh(true)
	case "o":
		if url := m.selectedURL(); url != "" {
			return m, func() tea.Msg {
				if err := openURL(url); err != nil {
					return actionResultMsg{err: err}
				}
				return actionResultMsg{notice: "opened " + url}
			}
		}
	case "c":
		if url := m.selectedURL(); url != "" {
			return m, func() tea.Msg {
				if err := copyToClipboard(url); err != nil {
					return actionResultMsg{err: fmt.Errorf("copy failed: %w", err)}
				}
				return actionResultMsg{notice: "copied " + url}
			}
		}
	}
	return m, nil
}

// selectedURL is the highlighted repository's URL, or the profile URL when
// the page is empty.
func (m dashboardModel) selectedURL() string {
	items := m.ctrl.Page().Items
	if m.cursor >= 0 && m.cursor < len(items) && items[m.cursor].HTMLURL != "" {
		return items[m.cursor].HTMLURL
	}
	if p := m.ctrl.State().Profile; p != nil {
		return p.ProfileURL
	}
	return ""
}

func (m dashboardModel) helpKeys() string {
	if m.filtering {
		return helpBar("enter", "keep", "esc", "clear")
	}
	switch m.ctrl.State().Status {
	case dashboard.Failed:
		return helpBar("r", "retry", "esc", "back", "ctrl+t", "token", "q", "quit")
	case dashboard.Loading:
		return helpBar("esc", "back", "q", "quit")
	}
	return helpBar("j/k", "nav", "n/p", "page", "tab", "tabs", "s", "sort", "/", "filter",
		"o", "open", "c", "copy", "r", "refresh", "h", "help", "esc", "back", "q", "quit")
}

func (m dashboardModel) View() string {
	st := m.ctrl.State()
	switch st.Status {
	case dashboard.Loading:
		return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), dimStyle.Render("loading @"+st.Username+"…"))
	case dashboard.Failed:
		return fmt.Sprintf("\n  %s\n\n  %s\n",
			errorStyle.Render("✗ "+m.ctrl.ErrorMessage()),
			metaStyle.Render("while loading @"+st.Username))
	case dashboard.Idle:
		return "\n  " + dimStyle.Render("no user selected") + "\n"
	}

	now := m.now()
	var b strings.Builder
	b.WriteString(m.renderProfile(st, now))
	b.WriteString("\n")
	b.WriteString(m.renderKPIs(st))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderLanguages(), "  ", m.renderActivity(now)))
	b.WriteString("\n")
	b.WriteString(m.renderRepos(st, now))
	if m.notice != "" {
		b.WriteString("\n " + metaStyle.Render(m.notice))
	}
	return b.String()
}

func (m dashboardModel) renderProfile(st dashboard.State, now time.Time) string {
	p := st.Profile
	if p == nil {
		return ""
	}
	line1 := selectedStyle.Render(p.Name()) + "  " + dimStyle.Render("@"+p.Login)
	line2 := metaStyle.Render("⌖ "+orDash(p.Location)) + "  " +
		normalStyle.Render(formatNum(p.Followers)) + dimStyle.Render(" followers") + "  " +
		normalStyle.Render(formatNum(p.Following)) + dimStyle.Render(" following")
	line3 := metaStyle.Render(p.ProfileURL)
	if st.FromCache {
		line3 += "  " + metaStyle.Render("cached "+views.RelativeAge(st.FetchedAt, now))
	}
	return "\n" + cardStyle.Render(line1+"\n"+line2+"\n"+line3)
}

func (m dashboardModel) renderKPIs(st dashboard.State) string {
	totals := m.ctrl.Totals()
	repoCount := "—"
	if st.Profile != nil {
		repoCount = formatNum(st.Profile.PublicRepoCount)
	}
	tile := func(label, value string) string {
		return cardStyle.Width(16).Render(dimStyle.Render(label) + "\n" + selectedStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Forks", formatNum(totals.Forks)),
		tile("Open issues", formatNum(totals.OpenIssues)),
		tile("Repositories", repoCount),
		tile("Stars", starStyle.Render("★ ")+selectedStyle.Render(formatNum(totals.Stars))),
	)
}

func (m dashboardModel) renderLanguages() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("── LANGUAGES ──") + "\n")
	langs := m.ctrl.Languages()
	if len(langs) == 0 {
		b.WriteString(dimStyle.Render("no data") + "\n")
	}
	const barWidth = 20
	for _, l := range langs {
		filled := l.Percentage * barWidth / 100
		bar := LanguageStyle(l.Language).Render(strings.Repeat("█", filled)) +
			metaStyle.Render(strings.Repeat("░", barWidth-filled))
		fmt.Fprintf(&b, "%-12s %s %3d%%\n", truncStr(l.Language, 12), bar, l.Percentage)
	}
	return b.String()
}

func (m dashboardModel) renderActivity(now time.Time) string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("── RECENT ACTIVITY ──") + "\n")
	for _, r := range m.ctrl.Activity() {
		fmt.Fprintf(&b, "%s %s\n", normalStyle.Render(truncStr(r.Name, 28)), metaStyle.Render("pushed "+views.RelativeAge(r.PushedAt, now)))
	}
	return b.String()
}

func (m dashboardModel) renderRepos(st dashboard.State, now time.Time) string {
	var b strings.Builder

	var tabs []string
	for _, t := range dashboard.Tabs {
		if t == st.Tab {
			tabs = append(tabs, accentStyle.Render(t.String()))
		} else {
			tabs = append(tabs, dimStyle.Render(t.String()))
		}
	}
	b.WriteString(sectionHeaderStyle.Render("── REPOSITORIES ── ") + strings.Join(tabs, metaStyle.Render(" · ")))
	b.WriteString("  " + metaStyle.Render("sort: "+sortLabel(st.Sort)))
	switch {
	case m.filtering:
		b.WriteString("  " + inputPromptStyle.Render("/") + searchStyle.Render(m.filter) + accentStyle.Render("█"))
	case st.Filter != "":
		b.WriteString("  " + metaStyle.Render("filter: "+st.Filter))
	}
	b.WriteString("\n")

	page := m.ctrl.Page()
	if len(page.Items) == 0 {
		b.WriteString("  " + dimStyle.Render("no repositories") + "\n")
	}
	nameWidth := max(16, min(32, m.width/4))
	descWidth := max(10, m.width-nameWidth-48)
	for i, r := range page.Items {
		lang := orDash(stringOr(r.PrimaryLanguage))
		row := fmt.Sprintf("%-*s %s %s %s %s",
			nameWidth, truncStr(r.Name, nameWidth),
			starStyle.Render(fmt.Sprintf("★%6s", formatNum(r.StarCount))),
			dimStyle.Render(fmt.Sprintf("⑂%5s", formatNum(r.ForkCount))),
			LanguageStyle(lang).Render(fmt.Sprintf("%-10s", truncStr(lang, 10))),
			metaStyle.Render(fmt.Sprintf("%-8s", views.RelativeAge(r.PushedAt, now))),
		)
		if r.Description != "" {
			row += " " + dimStyle.Render(truncStr(singleLine(r.Description), descWidth))
		}
		if i == m.cursor {
			b.WriteString(accentStyle.Render("▸ ") + selectedRowBg.Render(row) + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}
	fmt.Fprintf(&b, "  %s\n", metaStyle.Render(fmt.Sprintf("page %d/%d", page.Number, page.TotalPages)))
	return b.String()
}

func sortLabel(mode domain.SortMode) string {
	if mode == domain.SortByStars {
		return "stars"
	}
	return "recent push"
}

func stringOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
