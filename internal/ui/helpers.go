package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nvlko/daybook/internal/dates"
)

// padRight pads s with spaces to width runes, truncating when longer.
// Widths count runes, like truncate, so non-ASCII names stay aligned.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft pads s with leading spaces to width runes.
func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// truncate cuts s to at most width runes, ending with an ellipsis when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// formatPercent renders a share of the daily target with one decimal.
// Days without a target render a dash; a genuine 0% stays 0.0%.
func formatPercent(v float64, hasTarget bool) string {
	if !hasTarget {
		return "–"
	}
	return fmt.Sprintf("%.1f%%", v)
}

// weekdayName returns the weekday of a diary day for the view header.
func weekdayName(day dates.Day) string {
	return day.Time().Weekday().String()
}
