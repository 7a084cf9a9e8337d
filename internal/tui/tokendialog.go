package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/gitone/internal/token"
)

// tokenLoadedMsg carries the token state when the dialog opens.
type tokenLoadedMsg struct {
	stored string
	source token.Source
	err    error
}

// tokenChangedMsg reports a save or clear. active is the token that should
// now be attached to requests.
type tokenChangedMsg struct {
	cleared bool
	stored  string
	active  string
	source  token.Source
	err     error
}

type tokenModel struct {
	ctx    context.Context
	store  *token.Store
	input  textinput.Model
	stored string
	source token.Source
	reveal bool
	msg    string
	closed bool
}

func newTokenModel(ctx context.Context, store *token.Store) tokenModel {
	ti := textinput.New()
	ti.Placeholder = "ghp_…"
	ti.CharLimit = 255
	ti.Width = 48
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Prompt = "> "
	ti.PromptStyle = inputPromptStyle
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return tokenModel{ctx: ctx, store: store, input: ti, source: token.SourceNone}
}

func (m tokenModel) load() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		stored, err := store.Stored(ctx)
		_, src := store.Resolve(ctx)
		return tokenLoadedMsg{stored: stored, source: src, err: err}
	}
}

func (m tokenModel) save(value string) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		if err := store.Save(ctx, value); err != nil {
			return tokenChangedMsg{err: err}
		}
		stored, err := store.Stored(ctx)
		active, src := store.Resolve(ctx)
		return tokenChangedMsg{stored: stored, active: active, source: src, err: err}
	}
}

func (m tokenModel) clear() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		if err := store.Clear(ctx); err != nil {
			return tokenChangedMsg{err: err}
		}
		active, src := store.Resolve(ctx)
		return tokenChangedMsg{cleared: true, active: active, source: src}
	}
}

func (m tokenModel) Update(msg tea.Msg) (tokenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tokenLoadedMsg:
		if msg.err != nil {
			m.msg = msg.err.Error()
		}
		m.stored = msg.stored
		m.source = msg.source
		return m, nil

	case tokenChangedMsg:
		switch {
		case errors.Is(msg.err, token.ErrEmpty):
			m.msg = "token is empty"
		case msg.err != nil:
			m.msg = msg.err.Error()
		case msg.cleared:
			m.stored = ""
			m.source = msg.source
			m.msg = "token cleared"
		default:
			m.stored = msg.stored
			m.source = msg.source
			m.input.SetValue("")
			m.msg = "token saved"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.closed = true
			return m, nil
		case "enter":
			return m, m.save(m.input.Value())
		case "ctrl+x":
			return m, m.clear()
		case "ctrl+r":
			m.reveal = !m.reveal
			if m.reveal {
				m.input.EchoMode = textinput.EchoNormal
			} else {
				m.input.EchoMode = textinput.EchoPassword
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tokenModel) View() string {
	current := dimStyle.Render("none")
	if m.stored != "" {
		shown := token.Mask(m.stored)
		if m.reveal {
			shown = m.stored
		}
		current = normalStyle.Render(shown)
	}

	body := selectedStyle.Render("GitHub token") + "\n\n" +
		dimStyle.Render("stored: ") + current + "\n"
	if m.source == token.SourceEnv {
		body += metaStyle.Render("a token from the environment takes precedence") + "\n"
	}
	body += "\n" + m.input.View() + "\n"
	if m.msg != "" {
		body += "\n" + accentStyle.Render(m.msg) + "\n"
	}
	body += "\n" + metaStyle.Render("raises the API rate limit and shows private repositories you can access")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(64)
	return "\n" + box.Render(body)
}
