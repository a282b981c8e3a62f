// Package ui implements the Daybook terminal interface on Bubble Tea.
//
// # Overview
//
// The UI is a single root Model with four views: the diary (day table with
// entry forms), the food catalogue, statistics, and settings. Views render
// from store snapshots that the Update loop refreshes on a short tick, so
// background prefetches and debounced saves show up without any explicit
// wiring from the stores back into the UI.
//
// # Mutations
//
// Every mutating action runs as a tea.Cmd that calls the matching store
// method and reports back through mutationMsg. While one is in flight the
// model sets busy and ignores further mutating keys; forms stay open on
// failure so typed input is not lost.
//
// # Chapters
//
// The food chapter can be disabled in settings. Its views are then hidden
// from the tab strip and unreachable from the keyboard; settings always
// stays reachable so the chapter can be turned back on.
//
// # Components
//
//   - app.go: root model, key routing, snapshot refresh
//   - ui.go: program entry point
//   - form.go: modal input forms with inline validation
//   - commands.go: tea.Cmd wrappers around store mutations
//   - diary_view.go, catalogue_view.go, stats_view.go, settings_view.go
//   - theme.go, keys.go, help.go, layout.go, helpers.go
package ui
