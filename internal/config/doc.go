// Package config handles loading and parsing the Daybook configuration file.
//
// # Overview
//
// This package reads a small TOML file to discover the tracker API endpoint,
// the debug log location, and a few tuning knobs for the diary prefetcher
// and the settings saver.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/daybook/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/daybook/config.toml
//   - API endpoint: 127.0.0.1:8880
//   - Log directory: ~/.local/state/daybook
//   - Debug log: <log_dir>/daybook.log
//
// # Configuration Fields
//
//   - APIBase: HTTP API endpoint (host:port) of the tracking server
//   - LogDir: directory for the rotating debug log
//   - EdgeThresholdDays: how close to a loaded-range edge triggers prefetch
//   - FetchOffsetDays: how far a diary window reaches from its anchor
//   - SaveDelayMS: debounce delay for settings sync
//
// Zero values for the tuning knobs mean the owning package's defaults.
//
// # Error Handling
//
// A missing file is not an error: the zero configuration is usable and
// points at a local server. A file that exists but fails to parse is an
// error, on the theory that a broken config the user wrote deserves a
// loud failure rather than silently ignored settings.
package config
