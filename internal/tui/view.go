package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/podlanding/podcast-discovery/internal/dateutil"
	"github.com/podlanding/podcast-discovery/internal/genres"
	"github.com/podlanding/podcast-discovery/internal/models"
	"github.com/podlanding/podcast-discovery/internal/render"
)

const (
	appTitle = "Podcast Discovery"

	// chromeLines counts the header, search, filter and help rows.
	chromeLines = 8
	cardLines   = 3
	cardIndent  = "    "
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	activeTab    = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	inactiveTab  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cardTitle    = lipgloss.NewStyle().Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	genreTag     = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(1, 2)
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.view.Selected != nil {
		return m.detailView(*m.view.Selected)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(appTitle) + "\n\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.filterBar() + "\n\n")
	b.WriteString(m.body())
	b.WriteString("\n" + helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m model) filterBar() string {
	tabs := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		if c == m.view.Category {
			tabs = append(tabs, activeTab.Render(c.Label()))
		} else {
			tabs = append(tabs, inactiveTab.Render(c.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) body() string {
	if m.view.Err != nil {
		return errorTitle.Render(m.view.Err.Message) + "\n" +
			m.view.Err.Details + "\n\n" +
			"Press r to try again.\n"
	}
	if m.view.Loading {
		return m.spinner.View() + " " + render.LoadingMessage + "\n"
	}
	if msg := m.view.EmptyMessage(); msg != "" {
		return msg + "\n\nPress r to refresh podcasts.\n"
	}

	visible := m.view.Visible()
	end := m.offset + m.pageSize()
	if end > len(visible) {
		end = len(visible)
	}

	now := m.now()
	var b strings.Builder
	for i := m.offset; i < end; i++ {
		b.WriteString(m.card(visible[i], i == m.cursor, now))
	}
	fmt.Fprintf(&b, "%s\n", metaStyle.Render(fmt.Sprintf("%d of %d podcasts", len(visible), len(m.view.Shows))))
	return b.String()
}

// card renders one show over cardLines rows.
func (m model) card(show models.Show, selected bool, now time.Time) string {
	name := show.Title
	if m.width > 0 {
		name = render.Truncate(name, m.width-len(cardIndent))
	}

	marker := "  "
	title := cardTitle.Render(name)
	if selected {
		marker = cursorStyle.Render("▸ ")
		title = cursorStyle.Render(name)
	}

	tags := make([]string, 0, len(show.GenreIDs))
	for _, genre := range genres.NamesFor(show.GenreIDs) {
		tags = append(tags, genreTag.Render(genre))
	}

	meta := metaStyle.Render(render.SeasonLabel(show.Seasons) + " · " + dateutil.TimeSince(show.UpdatedAt, now))
	if badges := render.Tags(show); len(badges) > 0 {
		meta += " " + badgeStyle.Render("★ "+strings.Join(badges, ", "))
	}

	return marker + title + "\n" +
		cardIndent + meta + "\n" +
		cardIndent + strings.Join(tags, " ") + "\n"
}

func (m model) helpLine() string {
	if m.input.Focused() {
		return "enter/esc: done typing • ctrl+c: quit"
	}
	return "/: search • 1-3/tab: filter • ↑/↓: move • enter: details • r: refresh • q: quit"
}

func (m model) detailView(show models.Show) string {
	content := render.Detail(show, m.now(), false)
	width := m.width - 4
	if width > 0 {
		return modalStyle.Width(width).Render(content) + "\n" + helpStyle.Render("esc: close")
	}
	return modalStyle.Render(content) + "\n" + helpStyle.Render("esc: close")
}
