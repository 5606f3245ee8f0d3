package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/archview/pkg/live"
)

var (
	dashLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
	dashErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	dashOKStyle    = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// DashboardModel - live status view for serve --dashboard
// =============================================================================

// statusMsg carries a controller status update into the model.
type statusMsg live.Status

// tickMsg refreshes relative times.
type tickMsg time.Time

// DashboardModel is the bubbletea model for `serve --dashboard`.
type DashboardModel struct {
	URL    string
	Status live.Status
	Now    time.Time

	updates <-chan live.Status
}

// newDashboard creates a dashboard showing initial until updates arrive.
func newDashboard(url string, initial live.Status, updates <-chan live.Status) DashboardModel {
	return DashboardModel{URL: url, Status: initial, Now: time.Now(), updates: updates}
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(waitForStatus(m.updates), tick())
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case statusMsg:
		m.Status = live.Status(msg)
		return m, waitForStatus(m.updates)
	case tickMsg:
		m.Now = time.Time(msg)
		return m, tick()
	}
	return m, nil
}

func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("archview serve"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.URL))
	b.WriteString("\n\n")

	s := m.Status
	health := dashOKStyle.Render("ok")
	if s.LastError != "" {
		health = dashErrorStyle.Render("failing")
	}
	rows := [][]string{
		{"Source", filepath.Base(s.Source)},
		{"State", health},
		{"Rendered", formatAgo(s.Generated, m.Now)},
		{"Elements", fmt.Sprint(s.Elements)},
		{"Relations", fmt.Sprint(s.Relations)},
		{"Size", formatBytes(s.Bytes)},
		{"Viewers", fmt.Sprint(s.Subscribers)},
		{"Reloads", fmt.Sprint(s.Regenerated)},
		{"Failures", fmt.Sprint(s.Failures)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return dashLabelStyle.Width(12)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if s.LastError != "" {
		b.WriteString("\n")
		b.WriteString(dashErrorStyle.Render(iconError + " " + s.LastError))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("  serving the last good diagram"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	return b.String()
}

func waitForStatus(ch <-chan live.Status) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg(s)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// Helpers
// =============================================================================

func formatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	diff := now.Sub(t)
	switch {
	case diff < 5*time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2 15:04")
	}
}
