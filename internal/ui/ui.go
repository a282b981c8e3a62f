// Package ui provides a Bubble Tea-based TUI for Daybook.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvlko/daybook/internal/catalogue"
	"github.com/nvlko/daybook/internal/diary"
	"github.com/nvlko/daybook/internal/settings"
	"github.com/nvlko/daybook/internal/stats"
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Diary     *diary.Store
	Catalogue *catalogue.Store
	Settings  *settings.Store
	Stats     *stats.Aggregator
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Diary == nil || opts.Catalogue == nil || opts.Settings == nil || opts.Stats == nil {
		return fmt.Errorf("ui requires all stores")
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
