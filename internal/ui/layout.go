package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var viewTitles = map[View]string{
	ViewDiary:     "Diary",
	ViewCatalogue: "Catalogue",
	ViewStats:     "Stats",
	ViewSettings:  "Settings",
}

// renderMain composes header, active view, and footer.
func (m Model) renderMain() string {
	content := ""
	switch m.currentView {
	case ViewDiary:
		content = m.renderDiary()
	case ViewCatalogue:
		content = m.renderCatalogue()
	case ViewStats:
		content = m.renderStats()
	case ViewSettings:
		content = m.renderSettings()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)
}

// renderHeader draws the tab strip. Tabs of a disabled chapter are hidden.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var tabs []string
	for _, v := range []View{ViewDiary, ViewCatalogue, ViewStats, ViewSettings} {
		if v != ViewSettings && !m.snap.settings.ChapterFood {
			continue
		}
		title := viewTitles[v]
		if v == m.currentView {
			tabs = append(tabs, styles.Title.Render("["+title+"]"))
		} else {
			tabs = append(tabs, styles.MutedText.Render(" "+title+" "))
		}
	}

	name := m.snap.settings.UserName
	if name != "" {
		name = "  " + name
	}
	line := strings.Join(tabs, " ") + styles.MutedText.Render(name)
	return styles.Header.Width(max(m.width, lipgloss.Width(line))).Render(line)
}

// renderFooter shows the last status message and key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	hint := "tab views · ? help · q quit"
	if m.busy {
		hint = "saving..."
	}

	status := ""
	switch {
	case m.status.isErr:
		status = styles.DangerText.Render(m.status.text) + "  "
	case m.status.text != "":
		status = styles.SuccessText.Render(m.status.text) + "  "
	}

	return styles.Footer.Width(max(m.width, 0)).Render(status + hint)
}
