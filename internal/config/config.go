package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the client-side knobs daybook reads at startup.
type Config struct {
	APIBase string
	LogDir  string

	// Diary prefetch tuning. Zero means package defaults.
	EdgeThresholdDays int
	FetchOffsetDays   int

	// Settings save debounce in milliseconds. Zero means default.
	SaveDelayMS int
}

const (
	defaultConfigPath = "~/.config/daybook/config.toml"
	defaultLogDir     = "~/.local/state/daybook"
	defaultAPIBase    = "127.0.0.1:8880"
)

// Load locates and parses the daybook config, falling back to defaults
// when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBase: defaultAPIBase, LogDir: defaultLogDir}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogDir = mustExpand(defaultLogDir)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase           string `toml:"api_base"`
		LogDir            string `toml:"log_dir"`
		EdgeThresholdDays int    `toml:"edge_threshold_days"`
		FetchOffsetDays   int    `toml:"fetch_offset_days"`
		SaveDelayMS       int    `toml:"save_delay_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = strings.TrimSpace(raw.APIBase)
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}

	cfg.LogDir = strings.TrimSpace(raw.LogDir)
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
	cfg.LogDir = mustExpand(cfg.LogDir)

	cfg.EdgeThresholdDays = raw.EdgeThresholdDays
	cfg.FetchOffsetDays = raw.FetchOffsetDays
	cfg.SaveDelayMS = raw.SaveDelayMS

	return cfg, nil
}

// DebugLogPath returns the path of the rotating debug log file.
func (c Config) DebugLogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/daybook.log")
	}
	return filepath.Join(c.LogDir, "daybook.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
