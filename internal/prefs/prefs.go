// Package prefs handles daybook's local persisted state: the auth tokens
// and the last accepted settings value, stored in
// ~/.config/daybook/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/nvlko/daybook/internal/settings"
)

// Prefs is the on-disk shape of the local state file.
type Prefs struct {
	AccessToken  string          `toml:"access_token"`
	RefreshToken string          `toml:"refresh_token"`
	Settings     *cachedSettings `toml:"settings"`
}

type cachedSettings struct {
	DarkTheme    bool   `toml:"dark_theme"`
	ChapterFood  bool   `toml:"chapter_food"`
	ChapterMoney bool   `toml:"chapter_money"`
	HeightCm     int    `toml:"height_cm"`
	UserName     string `toml:"user_name"`
}

const defaultPrefsPath = "~/.config/daybook/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Store is the mutable handle over the prefs file. It implements
// api.TokenSource and settings.Cache.
type Store struct {
	mu    sync.RWMutex
	path  string
	prefs Prefs
}

// Open loads the prefs file at path (default path when empty). Missing or
// unreadable files degrade to empty prefs; the first save recreates them.
func Open(path string) *Store {
	s := &Store{path: path}
	s.prefs = load(path)
	return s
}

// AccessToken returns the stored bearer token, empty when logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.AccessToken
}

// RefreshToken returns the stored refresh token.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.RefreshToken
}

// SetTokens stores a token pair and persists the file.
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	s.prefs.AccessToken = access
	s.prefs.RefreshToken = refresh
	snapshot := s.prefs
	path := s.path
	s.mu.Unlock()
	return save(path, snapshot)
}

// CachedSettings returns the last accepted settings value, if any.
func (s *Store) CachedSettings() (settings.Settings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.prefs.Settings == nil {
		return settings.Settings{}, false
	}
	c := *s.prefs.Settings
	return settings.Settings{
		DarkTheme:    c.DarkTheme,
		ChapterFood:  c.ChapterFood,
		ChapterMoney: c.ChapterMoney,
		HeightCm:     c.HeightCm,
		UserName:     c.UserName,
	}, true
}

// StoreSettings caches an accepted settings value and persists the file.
func (s *Store) StoreSettings(v settings.Settings) error {
	s.mu.Lock()
	s.prefs.Settings = &cachedSettings{
		DarkTheme:    v.DarkTheme,
		ChapterFood:  v.ChapterFood,
		ChapterMoney: v.ChapterMoney,
		HeightCm:     v.HeightCm,
		UserName:     v.UserName,
	}
	snapshot := s.prefs
	path := s.path
	s.mu.Unlock()
	return save(path, snapshot)
}

func load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Prefs{}
		}
		return Prefs{} // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Prefs{}
	}

	var prefs Prefs
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{}
	}
	return prefs
}

func save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	// Tokens live in this file; keep it owner-readable only.
	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
