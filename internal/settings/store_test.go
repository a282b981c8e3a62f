package settings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nvlko/daybook/internal/api"
)

type fakeTracker struct {
	api.Tracker

	mu        sync.Mutex
	server    api.SettingsPayload
	saves     []api.SettingsPayload
	fetchFail error
	saveFail  error
	block     chan struct{} // when non-nil, SaveSettings waits on it
}

func (f *fakeTracker) FetchSettings(ctx context.Context) (api.SettingsPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.server, f.fetchFail
}

func (f *fakeTracker) SaveSettings(ctx context.Context, payload api.SettingsPayload) error {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveFail != nil {
		return f.saveFail
	}
	f.saves = append(f.saves, payload)
	return nil
}

func (f *fakeTracker) saved() []api.SettingsPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.SettingsPayload(nil), f.saves...)
}

type fakeCache struct {
	mu     sync.Mutex
	value  Settings
	loaded bool
	writes int
}

func (f *fakeCache) CachedSettings() (Settings, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.loaded
}

func (f *fakeCache) StoreSettings(v Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
	f.loaded = true
	f.writes++
	return nil
}

func TestNewStore_SeedsFromCacheBeforeNetwork(t *testing.T) {
	cache := &fakeCache{value: Settings{DarkTheme: true, ChapterMoney: true}, loaded: true}
	s := NewStore(context.Background(), &fakeTracker{}, cache, time.Hour)

	got := s.Current()
	if !got.DarkTheme || !got.ChapterMoney {
		t.Fatalf("Current() = %#v, want cache-seeded value", got)
	}
	if s.Hydrated() {
		t.Fatalf("Hydrated() = true before any server round trip")
	}
}

func TestNewStore_DefaultsWithoutCache(t *testing.T) {
	s := NewStore(context.Background(), &fakeTracker{}, nil, time.Hour)
	got := s.Current()
	if !got.ChapterFood || got.ChapterMoney || got.DarkTheme {
		t.Fatalf("Current() = %#v, want food chapter only", got)
	}
}

func TestHydrate_ReconcilesAndRefreshesCache(t *testing.T) {
	tracker := &fakeTracker{server: api.SettingsPayload{
		DarkTheme: true, ChapterFood: true, Height: 180, UserName: "sam",
	}}
	cache := &fakeCache{}
	s := NewStore(context.Background(), tracker, cache, time.Hour)

	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate returned error: %v", err)
	}
	got := s.Current()
	if !got.DarkTheme || got.HeightCm != 180 || got.UserName != "sam" {
		t.Fatalf("Current() = %#v, want server value", got)
	}
	if !s.Hydrated() {
		t.Fatalf("Hydrated() = false after Hydrate")
	}
	if cache.writes != 1 {
		t.Fatalf("cache writes = %d, want 1", cache.writes)
	}
}

func TestHydrate_FailureKeepsCachedValue(t *testing.T) {
	cache := &fakeCache{value: Settings{ChapterFood: true, UserName: "cached"}, loaded: true}
	tracker := &fakeTracker{fetchFail: errors.New("down")}
	s := NewStore(context.Background(), tracker, cache, time.Hour)

	if err := s.Hydrate(context.Background()); err == nil {
		t.Fatalf("Hydrate returned nil error, want failure")
	}
	if got := s.Current(); got.UserName != "cached" {
		t.Fatalf("Current() = %#v, want cached value kept", got)
	}
}

func TestApply_DebouncesToSingleSaveWithLatestValue(t *testing.T) {
	tracker := &fakeTracker{}
	cache := &fakeCache{}
	s := NewStore(context.Background(), tracker, cache, 30*time.Millisecond)

	s.SetUserName("a")
	time.Sleep(5 * time.Millisecond)
	s.SetUserName("ab")
	time.Sleep(5 * time.Millisecond)
	s.SetUserName("abc")

	time.Sleep(100 * time.Millisecond)

	saves := tracker.saved()
	if len(saves) != 1 {
		t.Fatalf("saves = %d, want exactly 1 for edits inside the window", len(saves))
	}
	if saves[0].UserName != "abc" {
		t.Fatalf("saved value = %#v, want the latest edit", saves[0])
	}
	if cached, _ := cache.CachedSettings(); cached.UserName != "abc" {
		t.Fatalf("cache = %#v, want accepted value persisted", cached)
	}
}

func TestApply_EditDuringInFlightSaveIsDeferredNotConcurrent(t *testing.T) {
	tracker := &fakeTracker{block: make(chan struct{})}
	s := NewStore(context.Background(), tracker, &fakeCache{}, 10*time.Millisecond)

	s.SetDarkTheme(true)
	time.Sleep(30 * time.Millisecond) // save now blocked in flight

	s.SetUserName("late edit")
	time.Sleep(30 * time.Millisecond) // window elapses mid-flight

	if len(tracker.saved()) != 0 {
		t.Fatalf("a save completed while the first was still in flight")
	}

	close(tracker.block)
	time.Sleep(80 * time.Millisecond)

	saves := tracker.saved()
	if len(saves) != 2 {
		t.Fatalf("saves = %d, want blocked save plus deferred save", len(saves))
	}
	last := saves[len(saves)-1]
	if !last.DarkTheme || last.UserName != "late edit" {
		t.Fatalf("final save = %#v, want the last edit to win", last)
	}
}

func TestSave_FailureDoesNotTouchCache(t *testing.T) {
	tracker := &fakeTracker{saveFail: errors.New("boom")}
	cache := &fakeCache{}
	s := NewStore(context.Background(), tracker, cache, 10*time.Millisecond)

	s.SetDarkTheme(true)
	time.Sleep(60 * time.Millisecond)

	if cache.writes != 0 {
		t.Fatalf("cache writes = %d after failed save, want 0", cache.writes)
	}
	// The snapshot keeps the optimistic edit; only persistence waits.
	if !s.Current().DarkTheme {
		t.Fatalf("Current() lost the edit after a failed save")
	}
}
