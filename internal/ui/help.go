package ui

import (
	"strings"
)

type helpItem struct {
	keys string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"tab", "Cycle views"},
				{"d/c/s/o", "Diary/Catalogue/Stats/Settings"},
				{"j/k", "Move up/down"},
				{"esc", "Back to diary"},
			},
		},
		{
			title: "Diary",
			items: []helpItem{
				{"h/l", "Previous/next day"},
				{"t", "Jump to today"},
				{"a", "Add entry"},
				{"enter", "Edit entry"},
				{"x", "Delete entry"},
				{"w", "Set body weight"},
			},
		},
		{
			title: "Catalogue",
			items: []helpItem{
				{"a", "Add food"},
				{"enter", "Edit food"},
				{"p", "Pick / dismiss food"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString("  ")
			b.WriteString(styles.Text.Render(padRight(item.keys, 12)))
			b.WriteString(styles.MutedText.Render(item.desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to close"))

	return styles.PanelFocus.Render(b.String())
}
