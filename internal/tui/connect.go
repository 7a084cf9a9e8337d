package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/gitone/internal/suggest"
	"github.com/naveenspark/gitone/pkg/domain"
)

// suggestResultMsg carries the outcome of a debounced user search.
type suggestResultMsg struct {
	res suggest.Result
}

// openUserMsg asks the app to show the dashboard for login.
type openUserMsg struct {
	login string
}

// connectModel is the landing view: a username prompt with autocomplete.
type connectModel struct {
	ctx         context.Context
	debouncer   *suggest.Debouncer
	input       string
	suggestions []domain.Suggestion
	cursor      int // -1 means the typed value
	searching   bool
	status      string
	err         string
	width       int
}

func newConnectModel(ctx context.Context, d *suggest.Debouncer) connectModel {
	return connectModel{ctx: ctx, debouncer: d, cursor: -1}
}

func (m connectModel) Update(msg tea.Msg) (connectModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case suggestResultMsg:
		if m.debouncer == nil || !m.debouncer.Accept(msg.res) {
			return m, nil
		}
		m.searching = false
		m.cursor = -1
		if msg.res.Err != nil {
			m.suggestions = nil
			m.status = "could not load suggestions"
			return m, nil
		}
		m.suggestions = msg.res.Suggestions
		m.status = ""
		if len(m.suggestions) == 0 {
			m.status = "no suggestions"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m connectModel) handleKey(msg tea.KeyMsg) (connectModel, tea.Cmd) {
	switch msg.String() {
	case "down", "ctrl+n":
		if len(m.suggestions) > 0 {
			m.cursor = (m.cursor + 1) % len(m.suggestions)
		}
		return m, nil
	case "up", "ctrl+p":
		if len(m.suggestions) > 0 {
			if m.cursor <= 0 {
				m.cursor = len(m.suggestions) - 1
			} else {
				m.cursor--
			}
		}
		return m, nil
	case "esc":
		m.clearSuggestions()
		return m, nil
	case "enter":
		login := strings.TrimSpace(m.input)
		if m.cursor >= 0 && m.cursor < len(m.suggestions) {
			login = m.suggestions[m.cursor].Login
		}
		if login == "" {
			m.err = "enter a GitHub username"
			return m, nil
		}
		m.err = ""
		m.input = login
		m.clearSuggestions()
		return m, func() tea.Msg { return openUserMsg{login: login} }
	}

	next := editRune(m.input, msg.String())
	if next == m.input {
		return m, nil
	}
	m.input = next
	m.err = ""
	return m, m.schedule()
}

// schedule supersedes any pending search and starts a new one for the input.
func (m *connectModel) schedule() tea.Cmd {
	if m.debouncer == nil {
		return nil
	}
	tok, ok := m.debouncer.Schedule(m.ctx, m.input)
	if !ok {
		m.suggestions = nil
		m.cursor = -1
		m.searching = false
		m.status = ""
		return nil
	}
	m.searching = true
	d := m.debouncer
	return func() tea.Msg {
		return suggestResultMsg{res: d.Run(tok)}
	}
}

func (m *connectModel) clearSuggestions() {
	if m.debouncer != nil {
		m.debouncer.Cancel()
	}
	m.suggestions = nil
	m.cursor = -1
	m.searching = false
	m.status = ""
}

func (m connectModel) View(frame int) string {
	var b strings.Builder
	b.WriteString("\n\n  " + renderShimmerLogo(frame) + "\n\n")
	b.WriteString("  " + dimStyle.Render("a GitHub profile and repository dashboard") + "\n\n")

	prompt := inputPromptStyle.Render("> ")
	if m.input == "" {
		b.WriteString("  " + prompt + inputPlaceholderStyle.Render("GitHub username") + "\n")
	} else {
		b.WriteString("  " + prompt + searchStyle.Render(m.input) + accentStyle.Render("█") + "\n")
	}

	if m.err != "" {
		b.WriteString("  " + errorStyle.Render(m.err) + "\n")
	}

	switch {
	case m.searching:
		b.WriteString("  " + metaStyle.Render("searching…") + "\n")
	case m.status != "":
		b.WriteString("  " + metaStyle.Render(m.status) + "\n")
	}

	for i, s := range m.suggestions {
		line := fmt.Sprintf("@%s", s.Login)
		if i == m.cursor {
			b.WriteString("  " + accentStyle.Render("▸ ") + selectedRowBg.Render(selectedStyle.Render(line)) + "\n")
		} else {
			b.WriteString("    " + normalStyle.Render(line) + "\n")
		}
	}
	return b.String()
}
