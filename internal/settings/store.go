// Package settings holds user preferences synced between a local cache
// and the server.
//
// Access-control decisions (which chapters are enabled) must not block on
// network latency, so the store hydrates from the local cache first and
// reconciles with the server value when it arrives. Edits apply to the
// snapshot immediately and reach the server through a debounced saver
// that never runs two saves concurrently; the last edit wins.
package settings

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nvlko/daybook/internal/api"
	"github.com/nvlko/daybook/internal/debounce"
)

// Settings is the process-wide user preferences value.
type Settings struct {
	DarkTheme    bool
	ChapterFood  bool
	ChapterMoney bool
	HeightCm     int
	UserName     string
}

// Cache persists the last accepted settings value locally for fast
// next-launch startup. Implemented by *prefs.Store.
type Cache interface {
	CachedSettings() (Settings, bool)
	StoreSettings(Settings) error
}

// DefaultSaveDelay is the debounce window between an edit and its save.
const DefaultSaveDelay = 500 * time.Millisecond

// Store owns the settings value and its persistence.
type Store struct {
	mu       sync.RWMutex
	current  Settings
	hydrated bool

	client api.Tracker
	cache  Cache
	ctx    context.Context
	saver  *debounce.Debouncer
}

// NewStore builds a settings store seeded from the local cache when one
// exists. saveDelay <= 0 uses DefaultSaveDelay.
func NewStore(ctx context.Context, client api.Tracker, cache Cache, saveDelay time.Duration) *Store {
	if ctx == nil {
		ctx = context.Background()
	}
	if saveDelay <= 0 {
		saveDelay = DefaultSaveDelay
	}

	s := &Store{
		// Food chapter is on for a fresh profile; everything else opt-in.
		current: Settings{ChapterFood: true},
		client:  client,
		cache:   cache,
		ctx:     ctx,
	}
	if cache != nil {
		if cached, ok := cache.CachedSettings(); ok {
			s.current = cached
		}
	}
	s.saver = debounce.New(saveDelay, s.save)
	return s
}

// Current returns the settings value as of now.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Hydrated reports whether the server value has been reconciled yet.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Hydrate reconciles the store with the server value and refreshes the
// local cache. Failures keep the cache-seeded value.
func (s *Store) Hydrate(ctx context.Context) error {
	payload, err := s.client.FetchSettings(ctx)
	if err != nil {
		return fmt.Errorf("fetch settings: %w", err)
	}
	value := fromPayload(payload)

	s.mu.Lock()
	s.current = value
	s.hydrated = true
	s.mu.Unlock()

	s.persist(value)
	return nil
}

// Apply mutates the settings value and schedules a debounced save.
func (s *Store) Apply(mutate func(*Settings)) {
	s.mu.Lock()
	mutate(&s.current)
	s.mu.Unlock()
	s.saver.Trigger()
}

// SetDarkTheme toggles the dark theme.
func (s *Store) SetDarkTheme(on bool) { s.Apply(func(v *Settings) { v.DarkTheme = on }) }

// SetChapterFood toggles the food chapter.
func (s *Store) SetChapterFood(on bool) { s.Apply(func(v *Settings) { v.ChapterFood = on }) }

// SetChapterMoney toggles the money chapter.
func (s *Store) SetChapterMoney(on bool) { s.Apply(func(v *Settings) { v.ChapterMoney = on }) }

// SetHeight records the user's height in centimeters.
func (s *Store) SetHeight(cm int) { s.Apply(func(v *Settings) { v.HeightCm = cm }) }

// SetUserName records the display name.
func (s *Store) SetUserName(name string) { s.Apply(func(v *Settings) { v.UserName = name }) }

// save runs on the debouncer goroutine, at most once in flight.
func (s *Store) save() {
	value := s.Current()
	if err := s.client.SaveSettings(s.ctx, toPayload(value)); err != nil {
		log.Printf("settings save failed: %v", err)
		return
	}
	s.persist(value)
}

func (s *Store) persist(value Settings) {
	if s.cache == nil {
		return
	}
	if err := s.cache.StoreSettings(value); err != nil {
		log.Printf("settings cache write failed: %v", err)
	}
}

func fromPayload(p api.SettingsPayload) Settings {
	return Settings{
		DarkTheme:    p.DarkTheme,
		ChapterFood:  p.ChapterFood,
		ChapterMoney: p.ChapterMoney,
		HeightCm:     p.Height,
		UserName:     p.UserName,
	}
}

func toPayload(v Settings) api.SettingsPayload {
	return api.SettingsPayload{
		DarkTheme:    v.DarkTheme,
		ChapterFood:  v.ChapterFood,
		ChapterMoney: v.ChapterMoney,
		Height:       v.HeightCm,
		UserName:     v.UserName,
	}
}
