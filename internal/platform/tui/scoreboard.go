package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/counterflow/internal/games/counterflow"
	"github.com/vovakirdan/counterflow/internal/storage"
)

// Leaderboard layout constants
const (
	rankWidth   = 6
	scoreWidth  = 10
	nameWidth   = 16
	boardChrome = 10 // Title, borders, help and margins
)

// BoardEntry is one leaderboard line, independent of where it came from.
type BoardEntry struct {
	Rank    int
	Name    string
	Score   int
	Current bool
}

// EntriesFromRows converts frame rows.
func EntriesFromRows(rows []counterflow.Row) []BoardEntry {
	out := make([]BoardEntry, len(rows))
	for i, r := range rows {
		out[i] = BoardEntry{Rank: r.Rank, Name: r.Name, Score: r.Score, Current: r.Current}
	}
	return out
}

// EntriesFromPlayers converts stored players already in rank order.
func EntriesFromPlayers(players []storage.Player) []BoardEntry {
	out := make([]BoardEntry, len(players))
	for i, p := range players {
		out[i] = BoardEntry{Rank: i + 1, Name: p.Username, Score: p.Score}
	}
	return out
}

// newBoardTable creates a table sized for height terminal rows.
func newBoardTable(entries []BoardEntry, height int, focused bool) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: rankWidth},
		{Title: "Player", Width: nameWidth},
		{Title: "Score", Width: scoreWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(boardRows(entries)),
		table.WithFocused(focused),
		table.WithHeight(max(min(height-boardChrome, len(entries)+2), 2)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if focused {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
	} else {
		s.Selected = s.Cell
	}
	t.SetStyles(s)

	for i, e := range entries {
		if e.Current {
			t.SetCursor(i)
			break
		}
	}
	return t
}

func boardRows(entries []BoardEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		name := runewidth.Truncate(e.Name, nameWidth, "…")
		if e.Current {
			name = runewidth.Truncate("* "+e.Name, nameWidth, "…")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.Rank),
			name,
			fmt.Sprintf("%d", e.Score),
		}
	}
	return rows
}

// boardView renders the leaderboard screen around an existing table.
func boardView(t table.Model, empty bool, width int, footer string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	frameStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("LEADERBOARD"), width))
	b.WriteString("\n\n")

	body := t.View()
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		body = emptyStyle.Render("No scores recorded yet.\nPlay a run to set a high score!")
	}
	for _, line := range strings.Split(frameStyle.Render(body), "\n") {
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	if footer != "" {
		b.WriteString("\n")
		b.WriteString(centerText(footer, width))
	}
	return b.String()
}

// RenderLeaderboard returns a static leaderboard for printing outside the
// TUI.
func RenderLeaderboard(players []storage.Player, width int) string {
	entries := EntriesFromPlayers(players)
	t := newBoardTable(entries, len(entries)+boardChrome+1, false)
	return boardView(t, len(entries) == 0, width, "")
}

// centerText centers text within given width, measuring display width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
