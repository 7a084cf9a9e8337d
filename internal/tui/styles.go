package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the GITONE logo on the connect view.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "G I T O N E" as a flowing wave of green light.
// Deep green (#0e4429) -> contribution green (#39d353).
func renderShimmerLogo(frame int) string {
	const text = "GITONE"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18
		b = math.Min(1, math.Max(0.05, b))

		r := clampByte(14 + b*(57-14))
		g := clampByte(68 + b*(211-68))
		bl := clampByte(41 + b*(83-41))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Search / accent
	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#39d353")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	// Surface colors
	borderColor = lipgloss.Color("#30363d")

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#34d474")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	// Colors follow github-linguist where they are distinct enough on a dark terminal.
	languageColors = map[string]lipgloss.Color{
		"Go":         lipgloss.Color("#00ADD8"),
		"Rust":       lipgloss.Color("#dea584"),
		"Python":     lipgloss.Color("#3572A5"),
		"JavaScript": lipgloss.Color("#f1e05a"),
		"TypeScript": lipgloss.Color("#3178c6"),
		"Java":       lipgloss.Color("#b07219"),
		"C":          lipgloss.Color("#8890a0"),
		"C++":        lipgloss.Color("#f34b7d"),
		"C#":         lipgloss.Color("#178600"),
		"Ruby":       lipgloss.Color("#cc342d"),
		"PHP":        lipgloss.Color("#4F5D95"),
		"Shell":      lipgloss.Color("#89e051"),
		"HTML":       lipgloss.Color("#e34c26"),
		"CSS":        lipgloss.Color("#663399"),
		"Kotlin":     lipgloss.Color("#A97BFF"),
		"Swift":      lipgloss.Color("#F05138"),
		"Lua":        lipgloss.Color("#6c7cd8"),
		"Nix":        lipgloss.Color("#7e7eff"),
	}
)

// LanguageStyle returns a style colored for the given language.
func LanguageStyle(lang string) lipgloss.Style {
	if c, ok := languageColors[lang]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878"))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins key/label pairs into one help line.
func helpBar(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Personal access tokens", "github.com/settings/tokens", "https://github.com/settings/tokens"},
	{"REST API rate limits", "docs.github.com", "https://docs.github.com/en/rest/using-the-rest-api/rate-limits-for-the-rest-api"},
	{"User search syntax", "docs.github.com", "https://docs.github.com/en/search-github/searching-on-github/searching-users"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#39d353")).
		Bold(true).
		Render("G I T O N E")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#39d353"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	keys := []struct{ key, desc string }{
		{"j/k", "move through the repository page"},
		{"n/p  ←/→", "next / previous page"},
		{"tab", "cycle popular / private / archived"},
		{"s", "sort by recent push or stars"},
		{"/", "filter by name (esc clears)"},
		{"o", "open repository or profile in the browser"},
		{"c", "copy its URL"},
		{"r / R", "refresh / refresh bypassing the cache"},
		{"ctrl+t", "GitHub token"},
		{"esc", "back to user search"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-10s", k.key)), descStyle.Render(k.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-24s", item.label))
		prefix := "    "
		if i == cursor {
			label = selectedStyle.Render(fmt.Sprintf("%-24s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
