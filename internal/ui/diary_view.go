package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvlko/daybook/internal/dates"
)

// handleDiaryKey processes keys for the diary view.
func (m Model) handleDiaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevDay):
		m.selectDate(m.selectedDate.Add(-1))
		return m, nil

	case key.Matches(msg, m.keys.NextDay):
		m.selectDate(m.selectedDate.Add(1))
		return m, nil

	case key.Matches(msg, m.keys.Today):
		m.selectDate(dates.Today())
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.diaryRow > 0 {
			m.diaryRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.diaryRow < len(m.currentDay().Entries)-1 {
			m.diaryRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.NewEntry):
		if m.busy {
			return m, nil
		}
		if !m.snap.catalogue.Loaded() {
			m.status = statusLine{text: "Catalogue is still loading", isErr: true}
			return m, nil
		}
		f := newForm(formNewEntry, "Add entry for "+m.selectedDate.ISO(),
			[]string{"Food", "Weight (g)"}, nil)
		f.day = m.selectedDate
		m.form = f
		return m, nil

	case key.Matches(msg, m.keys.EditEntry):
		if m.busy {
			return m, nil
		}
		entries := m.currentDay().Entries
		if m.diaryRow >= len(entries) {
			return m, nil
		}
		entry := entries[m.diaryRow]
		f := newForm(formEditEntry, "Edit "+entry.FoodName,
			[]string{"Weight (g)"}, []string{fmt.Sprintf("%d", entry.WeightGrams)})
		f.day = m.selectedDate
		f.entryID = entry.ID
		m.form = f
		return m, nil

	case key.Matches(msg, m.keys.DeleteItem):
		if m.busy {
			return m, nil
		}
		entries := m.currentDay().Entries
		if m.diaryRow >= len(entries) {
			return m, nil
		}
		m.busy = true
		return m, m.deleteEntryCmd(m.selectedDate, entries[m.diaryRow].ID)

	case key.Matches(msg, m.keys.BodyWeight):
		if m.busy {
			return m, nil
		}
		current := ""
		if kg := m.currentDay().BodyWeightKg; kg > 0 {
			current = fmt.Sprintf("%.1f", kg)
		}
		f := newForm(formBodyWeight, "Body weight for "+m.selectedDate.ISO(),
			[]string{"Weight (kg)"}, []string{current})
		f.day = m.selectedDate
		m.form = f
		return m, nil
	}
	return m, nil
}

// selectDate moves the diary cursor to a new day and notifies the store so
// it can prefetch when the day nears a loaded-range edge.
func (m *Model) selectDate(day dates.Day) {
	m.selectedDate = day
	m.diaryRow = 0
	m.diary.SelectDate(day)
}

// renderDiary draws the day table with its totals row.
func (m Model) renderDiary() string {
	styles := m.theme.Styles()
	day := m.currentDay()

	var b strings.Builder

	header := fmt.Sprintf("%s  %s", m.selectedDate.ISO(), weekdayName(m.selectedDate))
	b.WriteString(styles.Title.Render(header))
	if day.BodyWeightKg > 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("   body %.1f kg", day.BodyWeightKg)))
	}
	b.WriteString("\n\n")

	if len(day.Entries) == 0 {
		b.WriteString(styles.MutedText.Render("No entries. Press a to add one.") + "\n")
	} else {
		head := fmt.Sprintf("  %s %s %s %s",
			padRight("Food", 28), padLeft("Grams", 7), padLeft("Kcal", 7), padLeft("%", 7))
		b.WriteString(styles.MutedText.Render(head) + "\n")

		for i, entry := range day.Entries {
			row := fmt.Sprintf("  %s %s %s %s",
				padRight(truncate(entry.FoodName, 28), 28),
				padLeft(fmt.Sprintf("%d", entry.WeightGrams), 7),
				padLeft(fmt.Sprintf("%d", entry.Kcal), 7),
				padLeft(formatPercent(entry.PercentOfTarget, day.TargetKcal > 0), 7))
			if i == m.diaryRow {
				b.WriteString(styles.Selected.Render(row) + "\n")
			} else {
				b.WriteString(styles.Text.Render(row) + "\n")
			}
		}

		total := fmt.Sprintf("  %s %s %s %s",
			padRight("Total", 28), padLeft("", 7),
			padLeft(fmt.Sprintf("%d", day.TotalKcal), 7),
			padLeft(formatPercent(day.TotalPercent, day.TargetKcal > 0), 7))
		b.WriteString("\n" + styles.AccentText.Render(total) + "\n")
	}

	if day.TargetKcal > 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("\nTarget: %d kcal", day.TargetKcal)) + "\n")
	}

	body := styles.Panel.Render(b.String())
	if m.form != nil {
		return body + "\n" + m.renderForm()
	}
	return body
}
