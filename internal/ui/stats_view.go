package ui

import (
	"fmt"
	"strings"

	"github.com/nvlko/daybook/internal/dates"
	"github.com/nvlko/daybook/internal/stats"
)

const weightBarWidth = 30

// renderStats draws calorie averages, the recent weight series, and BMI.
func (m Model) renderStats() string {
	styles := m.theme.Styles()
	snap := m.snap.stats
	today := dates.Today()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Statistics") + "\n\n")

	b.WriteString(styles.MutedText.Render("Calories") + "\n")
	b.WriteString(fmt.Sprintf("  Today:         %s kcal\n", styles.AccentText.Render(fmt.Sprintf("%d", snap.KcalByDay[today.ISO()]))))
	b.WriteString(fmt.Sprintf("  7-day average:  %d kcal\n", snap.WeekAverage(today)))
	b.WriteString(fmt.Sprintf("  30-day average: %d kcal\n", snap.MonthAverage(today)))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render("Body weight") + "\n")
	if len(snap.Weights) == 0 {
		b.WriteString(styles.MutedText.Render("  No weigh-ins recorded yet.") + "\n")
	} else {
		b.WriteString(renderWeightSeries(snap.Weights, styles))
		if latest, ok := snap.LatestWeight(); ok {
			b.WriteString(fmt.Sprintf("\n  Latest: %.1f kg (%s)\n", latest.Kg, latest.Day.ISO()))
			if height := m.snap.settings.HeightCm; height > 0 {
				if bmi, ok := stats.BMI(latest.Kg, height); ok {
					b.WriteString(fmt.Sprintf("  BMI:    %.1f (height %d cm)\n", bmi, height))
				}
			}
		}
	}

	return styles.Panel.Render(b.String())
}

// renderWeightSeries draws the last weigh-ins as horizontal bars scaled
// between the series minimum and maximum.
func renderWeightSeries(points []stats.WeightPoint, styles Styles) string {
	const maxRows = 10
	if len(points) > maxRows {
		points = points[len(points)-maxRows:]
	}

	lo, hi := points[0].Kg, points[0].Kg
	for _, p := range points {
		if p.Kg < lo {
			lo = p.Kg
		}
		if p.Kg > hi {
			hi = p.Kg
		}
	}

	var b strings.Builder
	for _, p := range points {
		bar := weightBar(p.Kg, lo, hi, weightBarWidth)
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styles.MutedText.Render(p.Day.ISO()),
			styles.AccentText.Render(bar),
			styles.Text.Render(fmt.Sprintf("%.1f", p.Kg))))
	}
	return b.String()
}

// weightBar maps a value inside [lo, hi] to a bar of 1..width cells. A flat
// series renders full bars rather than dividing by zero.
func weightBar(value, lo, hi float64, width int) string {
	if width < 1 {
		width = 1
	}
	cells := width
	if hi > lo {
		scaled := (value - lo) / (hi - lo)
		cells = 1 + int(scaled*float64(width-1)+0.5)
	}
	if cells < 1 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	return strings.Repeat("█", cells)
}
