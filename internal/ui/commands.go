package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvlko/daybook/internal/catalogue"
	"github.com/nvlko/daybook/internal/dates"
)

type tickMsg time.Time

// mutationMsg reports a finished store mutation back to the Update loop.
type mutationMsg struct {
	err  error
	note string
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) createEntryCmd(day dates.Day, catalogueID int64, grams int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.diary.CreateEntry(m.ctx, day, catalogueID, grams)
		return mutationMsg{err: err, note: "Entry added"}
	}
}

func (m Model) updateEntryCmd(day dates.Day, id int64, grams int) tea.Cmd {
	return func() tea.Msg {
		err := m.diary.UpdateEntry(m.ctx, day, id, grams)
		return mutationMsg{err: err, note: "Entry updated"}
	}
}

func (m Model) deleteEntryCmd(day dates.Day, id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.diary.DeleteEntry(m.ctx, day, id)
		return mutationMsg{err: err, note: "Entry deleted"}
	}
}

func (m Model) setBodyWeightCmd(day dates.Day, kg float64) tea.Cmd {
	return func() tea.Msg {
		if err := m.diary.SetBodyWeight(m.ctx, day, kg); err != nil {
			return mutationMsg{err: err}
		}
		m.stats.ReportWeight(day, kg)
		return mutationMsg{note: fmt.Sprintf("Body weight set to %.1f kg", kg)}
	}
}

func (m Model) createFoodCmd(name string, kcalPer100g int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.catalogue.Create(m.ctx, name, kcalPer100g)
		return mutationMsg{err: err, note: "Food added to catalogue"}
	}
}

func (m Model) updateFoodCmd(entry catalogue.Entry) tea.Cmd {
	return func() tea.Msg {
		err := m.catalogue.Update(m.ctx, entry)
		return mutationMsg{err: err, note: "Food updated"}
	}
}

func (m Model) pickFoodCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.catalogue.Pick(m.ctx, id)
		return mutationMsg{err: err, note: "Food picked"}
	}
}

func (m Model) dismissFoodCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.catalogue.Dismiss(m.ctx, id)
		return mutationMsg{err: err, note: "Food dismissed"}
	}
}
