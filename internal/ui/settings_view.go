package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Settings rows, in display order.
const (
	settingDarkTheme = iota
	settingChapterFood
	settingChapterMoney
	settingHeight
	settingUserName
	settingCount
)

// handleSettingsKey processes keys for the settings view. Toggles apply
// immediately; the store debounces the server sync behind the scenes.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.settingsRow > 0 {
			m.settingsRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.settingsRow < settingCount-1 {
			m.settingsRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm), msg.String() == " ":
		return m.activateSetting()
	}
	return m, nil
}

func (m Model) activateSetting() (tea.Model, tea.Cmd) {
	current := m.snap.settings

	switch m.settingsRow {
	case settingDarkTheme:
		m.settings.SetDarkTheme(!current.DarkTheme)
	case settingChapterFood:
		m.settings.SetChapterFood(!current.ChapterFood)
	case settingChapterMoney:
		m.settings.SetChapterMoney(!current.ChapterMoney)
	case settingHeight:
		value := ""
		if current.HeightCm > 0 {
			value = strconv.Itoa(current.HeightCm)
		}
		m.form = newForm(formHeight, "Height", []string{"Height (cm)"}, []string{value})
		return m, nil
	case settingUserName:
		m.form = newForm(formUserName, "Name", []string{"Name"}, []string{current.UserName})
		return m, nil
	}

	m.snap.settings = m.settings.Current()
	m.theme = ThemeFor(m.snap.settings.DarkTheme)
	return m, nil
}

// renderSettings draws the settings list.
func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	current := m.snap.settings

	rows := []struct {
		label string
		value string
	}{
		{"Dark theme", onOff(current.DarkTheme)},
		{"Food chapter", onOff(current.ChapterFood)},
		{"Money chapter", onOff(current.ChapterMoney)},
		{"Height", heightLabel(current.HeightCm)},
		{"Name", nameLabel(current.UserName)},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Settings") + "\n\n")
	for i, row := range rows {
		line := fmt.Sprintf("  %s %s", padRight(row.label, 20), row.value)
		if i == m.settingsRow {
			b.WriteString(styles.Selected.Render(line) + "\n")
		} else {
			b.WriteString(styles.Text.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + styles.MutedText.Render("enter/space toggle or edit · changes sync automatically") + "\n")

	body := styles.Panel.Render(b.String())
	if m.form != nil {
		return body + "\n" + m.renderForm()
	}
	return body
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func heightLabel(cm int) string {
	if cm <= 0 {
		return "not set"
	}
	return fmt.Sprintf("%d cm", cm)
}

func nameLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return "not set"
	}
	return name
}
