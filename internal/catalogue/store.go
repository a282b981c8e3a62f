// Package catalogue holds the food catalogue and the user's picked subset.
package catalogue

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/nvlko/daybook/internal/api"
)

// Entry is one food catalogue row.
type Entry struct {
	ID          int64
	Name        string
	KcalPer100g int
}

// Snapshot is an immutable view of the catalogue state.
type Snapshot struct {
	Items map[int64]Entry
	Owned map[int64]bool
}

// Loaded reports whether the catalogue has been fetched yet. Derived views
// that join against the catalogue skip formatting until it is.
func (s Snapshot) Loaded() bool {
	return len(s.Items) > 0
}

// Sorted returns all items ordered by name.
func (s Snapshot) Sorted() []Entry {
	items := make([]Entry, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items
}

// OwnedSorted returns the user's picked items ordered by name.
func (s Snapshot) OwnedSorted() []Entry {
	items := s.Sorted()
	owned := items[:0]
	for _, item := range items {
		if s.Owned[item.ID] {
			owned = append(owned, item)
		}
	}
	return owned
}

// Store coordinates catalogue state between API calls and the UI.
type Store struct {
	mu    sync.RWMutex
	items map[int64]Entry
	owned map[int64]bool

	client api.Tracker
}

// NewStore builds an empty catalogue store backed by client.
func NewStore(client api.Tracker) *Store {
	return &Store{
		items:  map[int64]Entry{},
		owned:  map[int64]bool{},
		client: client,
	}
}

// Snapshot returns a cloned view of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Items: make(map[int64]Entry, len(s.items)),
		Owned: make(map[int64]bool, len(s.owned)),
	}
	for id, item := range s.items {
		snap.Items[id] = item
	}
	for id, ok := range s.owned {
		snap.Owned[id] = ok
	}
	return snap
}

// Load fetches the full catalogue and the user's picked set.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.client.FetchCatalogue(ctx)
	if err != nil {
		return fmt.Errorf("load catalogue: %w", err)
	}
	owned, err := s.client.FetchUserCatalogue(ctx)
	if err != nil {
		return fmt.Errorf("load user catalogue: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[int64]Entry, len(items))
	for _, item := range items {
		s.items[item.ID] = Entry{ID: item.ID, Name: item.Name, KcalPer100g: item.KcalPer100g}
	}
	s.owned = make(map[int64]bool, len(owned))
	for _, id := range owned {
		s.owned[id] = true
	}
	return nil
}

// NameTaken reports whether a food with this name already exists,
// comparing case-insensitively on trimmed names. Purely a UX convenience;
// the server remains the authority on uniqueness. excludeID skips the row
// being edited.
func (s *Store) NameTaken(name string, excludeID int64) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, item := range s.items {
		if id == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(item.Name)) == needle {
			return true
		}
	}
	return false
}

// Create submits a new catalogue row and applies the accepted result with
// the server-assigned id. New foods are picked for the user automatically.
func (s *Store) Create(ctx context.Context, name string, kcalPer100g int) (int64, error) {
	payload := api.CatalogueEntryPayload{Name: strings.TrimSpace(name), KcalPer100g: kcalPer100g}
	id, err := s.client.CreateCatalogueEntry(ctx, payload)
	if err != nil {
		return 0, fmt.Errorf("create catalogue entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = Entry{ID: id, Name: payload.Name, KcalPer100g: kcalPer100g}
	s.owned[id] = true
	return id, nil
}

// Update edits an existing row in place after the server accepts it.
func (s *Store) Update(ctx context.Context, entry Entry) error {
	payload := api.CatalogueEntryPayload{
		ID:          entry.ID,
		Name:        strings.TrimSpace(entry.Name),
		KcalPer100g: entry.KcalPer100g,
	}
	if err := s.client.UpdateCatalogueEntry(ctx, payload); err != nil {
		return fmt.Errorf("update catalogue entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[entry.ID] = Entry{ID: entry.ID, Name: payload.Name, KcalPer100g: entry.KcalPer100g}
	return nil
}

// Pick adds a catalogue id to the user's set.
func (s *Store) Pick(ctx context.Context, id int64) error {
	if err := s.client.PickCatalogueEntry(ctx, id); err != nil {
		return fmt.Errorf("pick catalogue entry: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owned[id] = true
	return nil
}

// Dismiss removes a catalogue id from the user's set.
func (s *Store) Dismiss(ctx context.Context, id int64) error {
	if err := s.client.DismissCatalogueEntry(ctx, id); err != nil {
		return fmt.Errorf("dismiss catalogue entry: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.owned, id)
	return nil
}
