package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/naveenspark/gitone/internal/browser"
	"github.com/naveenspark/gitone/internal/dashboard"
	"github.com/naveenspark/gitone/internal/suggest"
	"github.com/naveenspark/gitone/internal/token"
)

// Swapped out in tests.
var (
	openURL         = browser.Open
	copyToClipboard = clipboard.WriteAll
)

type view int

const (
	viewConnect view = iota
	viewDashboard
)

// TokenSetter receives the active token whenever it changes.
type TokenSetter interface {
	SetToken(token string)
}

// Deps are the collaborators the TUI drives.
type Deps struct {
	Controller *dashboard.Controller
	Suggest    *suggest.Debouncer
	Tokens     *token.Store
	Auth       TokenSetter
	Releases   ReleaseChecker
	Logger     *log.Logger
	Version    string
}

// App is the root Bubbletea model.
type App struct {
	ctx         context.Context
	deps        Deps
	view        view
	connect     connectModel
	dash        dashboardModel
	tokenDlg    tokenModel
	tokenOpen   bool
	helpOpen    bool
	helpCursor  int
	initialUser string
	width       int
	height      int
	frame       int  // logo shimmer animation frame
	ticking     bool // a shimmer tick is pending
	latest      string
}

// NewApp creates a new TUI application. A non-empty user opens the
// dashboard straight away.
func NewApp(ctx context.Context, deps Deps, user string) App {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return App{
		ctx:         ctx,
		deps:        deps,
		connect:     newConnectModel(ctx, deps.Suggest),
		dash:        newDashboardModel(ctx, deps.Controller),
		tokenDlg:    newTokenModel(ctx, deps.Tokens),
		initialUser: strings.TrimSpace(user),
		ticking:     true,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), checkVersion(a.ctx, a.deps.Releases, a.deps.Version)}
	if a.initialUser != "" {
		login := a.initialUser
		cmds = append(cmds, func() tea.Msg { return openUserMsg{login: login} })
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(1) + help(1)
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		a.connect, _ = a.connect.Update(bodyMsg)
		a.dash, _ = a.dash.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		if a.view != viewConnect {
			a.ticking = false
			return a, nil
		}
		return a, shimmerTickCmd()

	case versionCheckMsg:
		if msg.hasUpdate {
			a.latest = msg.latestVersion
		}
		return a, nil

	case openUserMsg:
		a.view = viewDashboard
		a.deps.Logger.Info("opening dashboard", "user", msg.login)
		var cmd tea.Cmd
		a.dash, cmd = a.dash.open(msg.login)
		return a, cmd

	case suggestResultMsg:
		var cmd tea.Cmd
		a.connect, cmd = a.connect.Update(msg)
		return a, cmd

	case fetchResultMsg, actionResultMsg:
		var cmd tea.Cmd
		a.dash, cmd = a.dash.Update(msg)
		return a, cmd

	case tokenLoadedMsg:
		var cmd tea.Cmd
		a.tokenDlg, cmd = a.tokenDlg.Update(msg)
		return a, cmd

	case tokenChangedMsg:
		if msg.err == nil && a.deps.Auth != nil {
			a.deps.Auth.SetToken(msg.active)
			a.deps.Logger.Info("token changed", "source", msg.source, "cleared", msg.cleared)
		}
		var cmd tea.Cmd
		a.tokenDlg, cmd = a.tokenDlg.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Token dialog captures all keys when open
		if a.tokenOpen {
			var cmd tea.Cmd
			a.tokenDlg, cmd = a.tokenDlg.Update(msg)
			if a.tokenDlg.closed {
				a.tokenOpen = false
			}
			return a, cmd
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				url := helpItems[a.helpCursor].url
				return a, func() tea.Msg {
					openURL(url) //nolint:errcheck // best-effort browser open
					return nil
				}
			}
			return a, nil
		}

		if msg.String() == "ctrl+t" {
			a.tokenOpen = true
			a.tokenDlg = newTokenModel(a.ctx, a.deps.Tokens)
			return a, a.tokenDlg.load()
		}

		// Global keys (only when not editing)
		if a.view == viewDashboard && !a.isEditing() {
			switch msg.String() {
			case "h", "?":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q":
				return a, tea.Quit
			case "esc":
				a.view = viewConnect
				if a.ticking {
					return a, nil
				}
				a.ticking = true
				return a, shimmerTickCmd()
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewConnect:
		a.connect, cmd = a.connect.Update(msg)
	case viewDashboard:
		a.dash, cmd = a.dash.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	return a.tokenOpen || a.view == viewConnect || a.dash.filtering
}

func (a App) View() string {
	title := accentStyle.Render("gitone")
	if a.deps.Version != "" {
		title += " " + metaStyle.Render(a.deps.Version)
	}
	if a.view == viewDashboard {
		if st := a.deps.Controller.State(); st.Username != "" {
			title += metaStyle.Render(" · ") + dimStyle.Render("@"+st.Username)
		}
	}
	if a.latest != "" {
		title += "  " + starStyle.Render(a.latest+" available")
	}
	header := " " + title

	var body, help string
	switch a.view {
	case viewConnect:
		body = a.connect.View(a.frame)
		help = helpBar("enter", "open", "↑/↓", "pick", "esc", "clear", "ctrl+t", "token", "ctrl+c", "quit")
	case viewDashboard:
		body = a.dash.View()
		help = a.dash.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = helpBar("j/k", "nav", "enter", "open", "esc", "close")
	}
	if a.tokenOpen {
		body = a.tokenDlg.View()
		help = helpBar("enter", "save", "ctrl+x", "clear", "ctrl+r", "reveal", "esc", "close")
	}

	chrome := 2
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	// Pad so the help bar sits on the last line.
	if a.height > 0 {
		used := lipgloss.Height(header) + lipgloss.Height(body) + 1
		if gap := a.height - used; gap > 0 {
			body += strings.Repeat("\n", gap)
		}
	}
	return fmt.Sprintf("%s\n%s\n%s", header, body, help)
}
