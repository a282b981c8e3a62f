package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleCatalogueKey processes keys for the catalogue view.
func (m Model) handleCatalogueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.snap.catalogue.Sorted()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.catalogueRow > 0 {
			m.catalogueRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.catalogueRow < len(items)-1 {
			m.catalogueRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.NewFood):
		if m.busy {
			return m, nil
		}
		m.form = newForm(formNewFood, "Add food",
			[]string{"Name", "Kcal per 100 g"}, nil)
		return m, nil

	case key.Matches(msg, m.keys.EditFood):
		if m.busy || m.catalogueRow >= len(items) {
			return m, nil
		}
		entry := items[m.catalogueRow]
		f := newForm(formEditFood, "Edit "+entry.Name,
			[]string{"Name", "Kcal per 100 g"},
			[]string{entry.Name, fmt.Sprintf("%d", entry.KcalPer100g)})
		f.foodID = entry.ID
		m.form = f
		return m, nil

	case key.Matches(msg, m.keys.Pick):
		if m.busy || m.catalogueRow >= len(items) {
			return m, nil
		}
		entry := items[m.catalogueRow]
		m.busy = true
		if m.snap.catalogue.Owned[entry.ID] {
			return m, m.dismissFoodCmd(entry.ID)
		}
		return m, m.pickFoodCmd(entry.ID)
	}
	return m, nil
}

// renderCatalogue draws the shared catalogue with ownership markers.
func (m Model) renderCatalogue() string {
	styles := m.theme.Styles()
	items := m.snap.catalogue.Sorted()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Food catalogue"))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("   %d foods, %d picked", len(items), len(m.snap.catalogue.OwnedSorted()))))
	b.WriteString("\n\n")

	if !m.snap.catalogue.Loaded() {
		b.WriteString(styles.MutedText.Render("Loading catalogue...") + "\n")
	} else {
		head := fmt.Sprintf("  %s %s %s",
			padRight("Food", 32), padLeft("Kcal/100g", 10), padLeft("Picked", 8))
		b.WriteString(styles.MutedText.Render(head) + "\n")

		for i, entry := range items {
			mark := ""
			if m.snap.catalogue.Owned[entry.ID] {
				mark = "✓"
			}
			row := fmt.Sprintf("  %s %s %s",
				padRight(truncate(entry.Name, 32), 32),
				padLeft(fmt.Sprintf("%d", entry.KcalPer100g), 10),
				padLeft(mark, 8))
			if i == m.catalogueRow {
				b.WriteString(styles.Selected.Render(row) + "\n")
			} else {
				b.WriteString(styles.Text.Render(row) + "\n")
			}
		}
	}

	body := styles.Panel.Render(b.String())
	if m.form != nil {
		return body + "\n" + m.renderForm()
	}
	return body
}
