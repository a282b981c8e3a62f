// Package app provides the orchestration layer for the Daybook application.
//
// # Overview
//
// This package wires together configuration, preferences, the API client,
// the domain stores, and the UI to create the complete Daybook TUI
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/daybook/config.toml
//  2. Route the standard logger to a rotating debug log file
//  3. Open local preferences (tokens, cached settings)
//  4. Initialize the HTTP client for tracker API communication
//  5. Create the stats aggregator, catalogue, diary, and settings stores
//  6. Hydrate the stores (cache first, then network)
//  7. Launch the background stats refresher goroutine
//  8. Start the TUI and block until the user exits or the context cancels
//
// # Components
//
//   - app.go: Main Run function and store hydration
//   - poller.go: Background goroutine that refreshes server aggregates with
//     exponential backoff on failure
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read configuration
//	       ├─────> prefs.Open()       Tokens + cached settings
//	       ├─────> api.NewClient()    Create HTTP client
//	       ├─────> stats.New()        Aggregate figures
//	       ├─────> catalogue.NewStore() Shared food catalogue
//	       ├─────> diary.NewStore()   Day records + prefetch
//	       ├─────> settings.NewStore() Debounced settings sync
//	       ├─────> StartRefresher()   Launch background refresh
//	       └─────> ui.Run()           Start TUI (blocks)
//
// Store hydration happens before the UI starts so the first frame already
// has data: settings come from the local cache immediately and are
// reconciled against the server, the catalogue and the diary window around
// today are fetched, and the stats aggregator pulls its initial figures.
// Each hydration step degrades independently; a network failure logs and
// leaves the store on cached or empty data instead of aborting startup.
package app
