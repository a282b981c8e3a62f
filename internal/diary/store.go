package diary

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/nvlko/daybook/internal/api"
	"github.com/nvlko/daybook/internal/catalogue"
	"github.com/nvlko/daybook/internal/dates"
	"github.com/nvlko/daybook/internal/debounce"
)

// Entry is one logged food instance on a given day.
type Entry struct {
	ID          int64
	Date        dates.Day
	CatalogueID int64
	WeightGrams int
	History     []api.HistoryRecord
}

// DayRecord is everything the server holds for one calendar day.
type DayRecord struct {
	Date         dates.Day
	BodyWeightKg float64
	TargetKcal   int
	Entries      map[int64]Entry
}

// Snapshot is a cloned view of the diary state.
type Snapshot struct {
	Days   map[string]DayRecord
	Loaded []dates.Range
}

// Cataloguer supplies the food catalogue for joins and delta computation.
// Implemented by *catalogue.Store.
type Cataloguer interface {
	Snapshot() catalogue.Snapshot
}

// Reporter receives calorie deltas from accepted diary mutations so the
// statistics aggregator stays in sync without re-deriving from the diary.
type Reporter interface {
	ReportKcalDelta(day dates.Day, deltaKcal int)
}

// Options tune the range tracker and prefetch behaviour. Zero values use
// the defaults.
type Options struct {
	EdgeThresholdDays int           // prefetch when this close to a range edge
	FetchOffsetDays   int           // how far a window reaches from its anchor
	PrefetchDelay     time.Duration // coalescing window for prefetch triggers
}

const (
	defaultEdgeThreshold = 3
	defaultFetchOffset   = 7
	defaultPrefetchDelay = 300 * time.Millisecond
)

// Store holds the day map and the loaded-range cache, and mediates every
// diary mutation through the API.
type Store struct {
	mu       sync.RWMutex
	days     map[string]DayRecord
	loaded   []dates.Range
	selected dates.Day

	client    api.Tracker
	catalogue Cataloguer
	reporter  Reporter

	ctx       context.Context
	threshold int
	offset    int
	prefetch  *debounce.Debouncer
}

// NewStore builds a diary store. ctx bounds background prefetches and is
// normally the application root context. reporter may be nil.
func NewStore(ctx context.Context, client api.Tracker, cat Cataloguer, reporter Reporter, opts Options) *Store {
	if ctx == nil {
		ctx = context.Background()
	}
	threshold := opts.EdgeThresholdDays
	if threshold <= 0 {
		threshold = defaultEdgeThreshold
	}
	offset := opts.FetchOffsetDays
	if offset <= 0 {
		offset = defaultFetchOffset
	}
	delay := opts.PrefetchDelay
	if delay <= 0 {
		delay = defaultPrefetchDelay
	}

	s := &Store{
		days:      map[string]DayRecord{},
		client:    client,
		catalogue: cat,
		reporter:  reporter,
		ctx:       ctx,
		threshold: threshold,
		offset:    offset,
	}
	s.prefetch = debounce.New(delay, s.prefetchRun)
	return s
}

// Snapshot returns a cloned view of the diary state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Days:   make(map[string]DayRecord, len(s.days)),
		Loaded: make([]dates.Range, len(s.loaded)),
	}
	for iso, record := range s.days {
		snap.Days[iso] = cloneDay(record)
	}
	copy(snap.Loaded, s.loaded)
	return snap
}

// Day returns the record for one day and whether it is materialized.
func (s *Store) Day(day dates.Day) (DayRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.days[day.ISO()]
	if !ok {
		return DayRecord{}, false
	}
	return cloneDay(record), true
}

// SelectDate records the day the user is looking at and schedules a
// prefetch when the selection is near the edge of loaded data.
func (s *Store) SelectDate(day dates.Day) {
	s.mu.Lock()
	s.selected = day
	s.mu.Unlock()

	if s.ShouldLoadMore(day) {
		s.prefetch.Trigger()
	}
}

// ShouldLoadMore reports whether more diary data should be fetched for the
// given selection. It is a proximity trigger, not a containment check: a
// day already inside a loaded range still answers true when it sits within
// the threshold of that range's edge, so adjacent data is prefetched
// before the user reaches it.
func (s *Store) ShouldLoadMore(day dates.Day) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shouldLoadMoreLocked(day)
}

func (s *Store) shouldLoadMoreLocked(day dates.Day) bool {
	if len(s.loaded) == 0 {
		return true
	}
	nearest := s.nearestRangeLocked(day)
	return nearest.DistanceTo(day) <= s.threshold
}

// loadAnchor picks the date the next window fetch should center on: the
// selection itself when nothing is loaded yet, otherwise the nearer
// endpoint of the nearest range pushed outward by the fetch offset.
func (s *Store) loadAnchor(day dates.Day) dates.Day {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.loaded) == 0 {
		return day
	}
	nearest := s.nearestRangeLocked(day)
	toStart := absDays(day, nearest.Start)
	toEnd := absDays(day, nearest.End)
	if toStart <= toEnd {
		return nearest.Start.Add(-s.offset)
	}
	return nearest.End.Add(s.offset)
}

func (s *Store) nearestRangeLocked(day dates.Day) dates.Range {
	nearest := s.loaded[0]
	best := nearest.DistanceTo(day)
	for _, r := range s.loaded[1:] {
		if d := r.DistanceTo(day); d < best {
			nearest, best = r, d
		}
	}
	return nearest
}

// prefetchRun executes on the debouncer's goroutine after a quiet window.
// It re-evaluates the trigger condition so stale coalesced triggers become
// no-ops once the data has arrived.
func (s *Store) prefetchRun() {
	s.mu.RLock()
	day := s.selected
	s.mu.RUnlock()
	if day.IsZero() || !s.ShouldLoadMore(day) {
		return
	}
	if err := s.LoadWindow(s.ctx, s.loadAnchor(day)); err != nil {
		log.Printf("diary prefetch failed: %v", err)
	}
}

// LoadWindow fetches a window of days around anchor and merges the covered
// span into the loaded-range cache.
func (s *Store) LoadWindow(ctx context.Context, anchor dates.Day) error {
	window, err := s.client.FetchDiaryWindow(ctx, anchor.ISO(), s.offset)
	if err != nil {
		return fmt.Errorf("load diary window: %w", err)
	}

	covered := dates.NewRange(anchor.Add(-s.offset), anchor.Add(s.offset))

	s.mu.Lock()
	defer s.mu.Unlock()
	for iso, payload := range window {
		day, err := dates.ParseISO(iso)
		if err != nil {
			log.Printf("diary window: skipping bad date key %q: %v", iso, err)
			continue
		}
		s.days[iso] = dayFromPayload(day, payload)
		if day.Before(covered.Start) {
			covered.Start = day
		}
		if day.After(covered.End) {
			covered.End = day
		}
	}
	s.loaded = dates.MergeRanges(append(s.loaded, covered))
	return nil
}

// CreateEntry logs a food entry for a day. The server assigns the id; the
// local transform applies the echoed result, never a placeholder.
func (s *Store) CreateEntry(ctx context.Context, day dates.Day, catalogueID int64, grams int) (int64, error) {
	id, err := s.client.CreateDiaryEntry(ctx, api.CreateDiaryEntryRequest{
		Date:            day.ISO(),
		FoodCatalogueID: catalogueID,
		FoodWeight:      grams,
	})
	if err != nil {
		return 0, fmt.Errorf("create diary entry: %w", err)
	}

	s.mu.Lock()
	record := s.ensureDayLocked(day)
	record.Entries[id] = Entry{
		ID:          id,
		Date:        day,
		CatalogueID: catalogueID,
		WeightGrams: grams,
		History:     []api.HistoryRecord{{Action: api.HistoryInit, Value: grams}},
	}
	s.days[day.ISO()] = record
	s.mu.Unlock()

	s.reportDelta(day, catalogueID, grams)
	return id, nil
}

// UpdateEntry changes an entry's weight. Server-issued history records are
// appended to the entry's audit trail, never replacing it.
func (s *Store) UpdateEntry(ctx context.Context, day dates.Day, id int64, grams int) error {
	s.mu.RLock()
	record, ok := s.days[day.ISO()]
	var prev Entry
	if ok {
		prev, ok = record.Entries[id]
	}
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("diary entry %d not found on %s", id, day.ISO())
	}

	appended, err := s.client.UpdateDiaryEntry(ctx, api.UpdateDiaryEntryRequest{ID: id, FoodWeight: grams})
	if err != nil {
		return fmt.Errorf("update diary entry: %w", err)
	}

	s.mu.Lock()
	record = s.days[day.ISO()]
	entry, ok := record.Entries[id]
	if ok {
		entry.WeightGrams = grams
		entry.History = append(entry.History, appended...)
		record.Entries[id] = entry
		s.days[day.ISO()] = record
	}
	s.mu.Unlock()

	if ok {
		s.reportDelta(day, entry.CatalogueID, grams-prev.WeightGrams)
	}
	return nil
}

// DeleteEntry removes an entry from a day. An id not present locally is a
// no-op, not an error.
func (s *Store) DeleteEntry(ctx context.Context, day dates.Day, id int64) error {
	s.mu.RLock()
	record, ok := s.days[day.ISO()]
	var prev Entry
	if ok {
		prev, ok = record.Entries[id]
	}
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	if err := s.client.DeleteDiaryEntry(ctx, id); err != nil {
		return fmt.Errorf("delete diary entry: %w", err)
	}

	s.mu.Lock()
	record = s.days[day.ISO()]
	delete(record.Entries, id)
	s.days[day.ISO()] = record
	s.mu.Unlock()

	s.reportDelta(day, prev.CatalogueID, -prev.WeightGrams)
	return nil
}

// SetBodyWeight records a day's body weight.
func (s *Store) SetBodyWeight(ctx context.Context, day dates.Day, kg float64) error {
	err := s.client.SetBodyWeight(ctx, api.SetBodyWeightRequest{Date: day.ISO(), BodyWeight: kg})
	if err != nil {
		return fmt.Errorf("set body weight: %w", err)
	}

	s.mu.Lock()
	record := s.ensureDayLocked(day)
	record.BodyWeightKg = kg
	s.days[day.ISO()] = record
	s.mu.Unlock()
	return nil
}

// ensureDayLocked must be called with the write lock held.
func (s *Store) ensureDayLocked(day dates.Day) DayRecord {
	record, ok := s.days[day.ISO()]
	if !ok {
		record = DayRecord{Date: day, Entries: map[int64]Entry{}}
	}
	if record.Entries == nil {
		record.Entries = map[int64]Entry{}
	}
	return record
}

func (s *Store) reportDelta(day dates.Day, catalogueID int64, deltaGrams int) {
	if s.reporter == nil || deltaGrams == 0 {
		return
	}
	item, ok := s.catalogue.Snapshot().Items[catalogueID]
	if !ok {
		return
	}
	delta := int(math.Round(float64(item.KcalPer100g) * float64(deltaGrams) / 100))
	s.reporter.ReportKcalDelta(day, delta)
}

func dayFromPayload(day dates.Day, payload api.DiaryDayPayload) DayRecord {
	record := DayRecord{
		Date:         day,
		BodyWeightKg: payload.BodyWeight,
		TargetKcal:   payload.TargetCalories,
		Entries:      make(map[int64]Entry, len(payload.Food)),
	}
	for _, raw := range payload.Food {
		history := make([]api.HistoryRecord, len(raw.History))
		copy(history, raw.History)
		record.Entries[raw.ID] = Entry{
			ID:          raw.ID,
			Date:        day,
			CatalogueID: raw.FoodCatalogueID,
			WeightGrams: raw.FoodWeight,
			History:     history,
		}
	}
	return record
}

func cloneDay(record DayRecord) DayRecord {
	dup := record
	dup.Entries = make(map[int64]Entry, len(record.Entries))
	for id, entry := range record.Entries {
		history := make([]api.HistoryRecord, len(entry.History))
		copy(history, entry.History)
		entry.History = history
		dup.Entries[id] = entry
	}
	return dup
}

func absDays(a, b dates.Day) int {
	n := dates.DaysBetween(a, b)
	if n < 0 {
		return -n
	}
	return n
}
