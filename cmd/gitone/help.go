package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("G I T O N E")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("a GitHub profile and repository dashboard")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"gitone", "Open the dashboard (interactive TUI)"},
		{"gitone <user>", "Open the dashboard for a user"},
		{"gitone --plain <user>", "Print a user's dashboard as text"},
		{"gitone token set <t>", "Store a GitHub token"},
		{"gitone token clear", "Remove the stored token"},
		{"gitone token status", "Show which token is in use"},
		{"gitone --version", "Show version"},
		{"gitone help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	env := []struct{ name, desc string }{
		{"GITONE_TOKEN, GITHUB_TOKEN", "token (overrides the stored one)"},
		{"GITONE_API_URL", "API base URL"},
		{"GITONE_DATA_DIR", "cache, token and log directory (~/.gitone)"},
		{"GITONE_CACHE_TTL", "snapshot lifetime, e.g. 5m"},
		{"GITONE_STORE", "sqlite or memory"},
		{"GITONE_LOG_LEVEL", "debug, info, warn or error"},
	}
	fmt.Fprintf(w, "\n  Environment (also read from .env):\n")
	for _, e := range env {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-26s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(w)
}
