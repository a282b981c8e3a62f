package diary

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nvlko/daybook/internal/api"
	"github.com/nvlko/daybook/internal/catalogue"
	"github.com/nvlko/daybook/internal/dates"
)

func day(iso string) dates.Day {
	d, err := dates.ParseISO(iso)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeTracker implements the diary API surface; untouched methods panic
// through the embedded nil interface.
type fakeTracker struct {
	api.Tracker

	mu           sync.Mutex
	window       api.DiaryWindow
	windowCalls  int
	windowDates  []string
	nextID       int64
	history      []api.HistoryRecord
	deleteCalls  int
	fail         error
	weightCalls  int
	lastWeight   api.SetBodyWeightRequest
	createBodies []api.CreateDiaryEntryRequest
}

func (f *fakeTracker) FetchDiaryWindow(ctx context.Context, date string, offset int) (api.DiaryWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windowCalls++
	f.windowDates = append(f.windowDates, date)
	return f.window, f.fail
}

func (f *fakeTracker) CreateDiaryEntry(ctx context.Context, req api.CreateDiaryEntryRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return 0, f.fail
	}
	f.createBodies = append(f.createBodies, req)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeTracker) UpdateDiaryEntry(ctx context.Context, req api.UpdateDiaryEntryRequest) ([]api.HistoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history, f.fail
}

func (f *fakeTracker) DeleteDiaryEntry(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.fail
}

func (f *fakeTracker) SetBodyWeight(ctx context.Context, req api.SetBodyWeightRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.weightCalls++
	f.lastWeight = req
	return nil
}

func (f *fakeTracker) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.windowCalls
}

type fakeCatalogue struct {
	snap catalogue.Snapshot
}

func (f fakeCatalogue) Snapshot() catalogue.Snapshot { return f.snap }

func eggCatalogue() fakeCatalogue {
	return fakeCatalogue{snap: catalogue.Snapshot{
		Items: map[int64]catalogue.Entry{
			1: {ID: 1, Name: "Egg", KcalPer100g: 155},
		},
	}}
}

type fakeReporter struct {
	mu     sync.Mutex
	deltas []int
}

func (f *fakeReporter) ReportKcalDelta(d dates.Day, delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deltas = append(f.deltas, delta)
}

func (f *fakeReporter) all() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.deltas...)
}

func newTestStore(tracker *fakeTracker, cat Cataloguer, reporter Reporter) *Store {
	return NewStore(context.Background(), tracker, cat, reporter, Options{
		PrefetchDelay: 10 * time.Millisecond,
	})
}

func TestShouldLoadMore_ProximityTrigger(t *testing.T) {
	s := newTestStore(&fakeTracker{}, eggCatalogue(), nil)

	if !s.ShouldLoadMore(day("2024-01-05")) {
		t.Fatalf("ShouldLoadMore = false with no loaded ranges, want true")
	}

	s.mu.Lock()
	s.loaded = []dates.Range{dates.NewRange(day("2024-01-01"), day("2024-01-10"))}
	s.mu.Unlock()

	tests := []struct {
		day  string
		want bool
	}{
		{"2024-01-09", true},  // inside, 1 day from the end
		{"2024-01-05", false}, // inside, 4 from both edges
		{"2024-01-02", true},  // inside, 1 day from the start
		{"2024-01-12", true},  // outside, 2 past the end
		{"2024-01-20", false}, // far outside
	}
	for _, tt := range tests {
		if got := s.ShouldLoadMore(day(tt.day)); got != tt.want {
			t.Errorf("ShouldLoadMore(%s) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestLoadAnchor_ExtendsNearerEndpoint(t *testing.T) {
	s := newTestStore(&fakeTracker{}, eggCatalogue(), nil)

	if got := s.loadAnchor(day("2024-01-05")); !got.Equal(day("2024-01-05")) {
		t.Fatalf("loadAnchor with no ranges = %s, want the selection", got.ISO())
	}

	s.mu.Lock()
	s.loaded = []dates.Range{
		dates.NewRange(day("2024-01-01"), day("2024-01-10")),
		dates.NewRange(day("2024-03-01"), day("2024-03-05")),
	}
	s.mu.Unlock()

	// Near the end of the January range: extend past the end.
	if got := s.loadAnchor(day("2024-01-09")); !got.Equal(day("2024-01-17")) {
		t.Fatalf("loadAnchor(2024-01-09) = %s, want 2024-01-17", got.ISO())
	}
	// Near the start: extend before the start.
	if got := s.loadAnchor(day("2024-01-02")); !got.Equal(day("2023-12-25")) {
		t.Fatalf("loadAnchor(2024-01-02) = %s, want 2023-12-25", got.ISO())
	}
	// Closer to the March range than the January one.
	if got := s.loadAnchor(day("2024-02-28")); !got.Equal(day("2024-02-23")) {
		t.Fatalf("loadAnchor(2024-02-28) = %s, want 2024-02-23", got.ISO())
	}
}

func TestLoadWindow_MaterializesDaysAndMergesRanges(t *testing.T) {
	tracker := &fakeTracker{window: api.DiaryWindow{
		"2024-01-05": {
			TargetCalories: 2000,
			BodyWeight:     71.5,
			Food: map[string]api.DiaryEntryPayload{
				"11": {ID: 11, Date: "2024-01-05", FoodCatalogueID: 1, FoodWeight: 50,
					History: []api.HistoryRecord{{Action: api.HistoryInit, Value: 50}}},
			},
		},
		"2024-01-06": {TargetCalories: 2000},
	}}
	s := newTestStore(tracker, eggCatalogue(), nil)

	if err := s.LoadWindow(context.Background(), day("2024-01-05")); err != nil {
		t.Fatalf("LoadWindow returned error: %v", err)
	}

	snap := s.Snapshot()
	record, ok := snap.Days["2024-01-05"]
	if !ok || record.TargetKcal != 2000 || record.BodyWeightKg != 71.5 {
		t.Fatalf("day record = %#v, want target 2000 weight 71.5", record)
	}
	if len(record.Entries) != 1 || record.Entries[11].WeightGrams != 50 {
		t.Fatalf("entries = %#v, want entry 11 at 50g", record.Entries)
	}
	if len(snap.Loaded) != 1 {
		t.Fatalf("loaded ranges = %v, want one merged range", snap.Loaded)
	}
	// Default offset is 7: the anchored window covers at least anchor±7.
	if snap.Loaded[0].Start.After(day("2023-12-29")) || snap.Loaded[0].End.Before(day("2024-01-12")) {
		t.Fatalf("loaded range = %s..%s, want to cover 2023-12-29..2024-01-12",
			snap.Loaded[0].Start.ISO(), snap.Loaded[0].End.ISO())
	}

	// A second overlapping window keeps the range set minimal.
	if err := s.LoadWindow(context.Background(), day("2024-01-12")); err != nil {
		t.Fatalf("LoadWindow returned error: %v", err)
	}
	snap = s.Snapshot()
	if len(snap.Loaded) != 1 {
		t.Fatalf("loaded ranges after overlap = %v, want one", snap.Loaded)
	}
}

func TestCreateEntry_UsesServerIDAndReportsDelta(t *testing.T) {
	tracker := &fakeTracker{nextID: 100}
	reporter := &fakeReporter{}
	s := newTestStore(tracker, eggCatalogue(), reporter)

	id, err := s.CreateEntry(context.Background(), day("2024-01-05"), 1, 50)
	if err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}
	if id != 101 {
		t.Fatalf("entry id = %d, want server-assigned 101", id)
	}

	record, ok := s.Day(day("2024-01-05"))
	if !ok {
		t.Fatalf("day not materialized after create")
	}
	entry := record.Entries[101]
	if entry.WeightGrams != 50 || entry.CatalogueID != 1 {
		t.Fatalf("entry = %#v, want 50g of catalogue 1", entry)
	}
	if len(entry.History) != 1 || entry.History[0].Action != api.HistoryInit {
		t.Fatalf("history = %#v, want single init record", entry.History)
	}

	// 155 kcal/100g * 50g = 77.5, rounded to 78.
	if deltas := reporter.all(); len(deltas) != 1 || deltas[0] != 78 {
		t.Fatalf("reported deltas = %v, want [78]", deltas)
	}
}

func TestUpdateEntry_AppendsHistoryNeverReplaces(t *testing.T) {
	tracker := &fakeTracker{
		nextID:  10,
		history: []api.HistoryRecord{{Action: api.HistorySet, Value: 120}},
	}
	reporter := &fakeReporter{}
	s := newTestStore(tracker, eggCatalogue(), reporter)

	id, err := s.CreateEntry(context.Background(), day("2024-01-05"), 1, 50)
	if err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}

	if err := s.UpdateEntry(context.Background(), day("2024-01-05"), id, 120); err != nil {
		t.Fatalf("UpdateEntry returned error: %v", err)
	}

	record, _ := s.Day(day("2024-01-05"))
	entry := record.Entries[id]
	if entry.WeightGrams != 120 {
		t.Fatalf("weight = %d, want 120", entry.WeightGrams)
	}
	if len(entry.History) != 2 {
		t.Fatalf("history = %#v, want init plus appended set", entry.History)
	}
	if entry.History[0].Action != api.HistoryInit || entry.History[1].Action != api.HistorySet {
		t.Fatalf("history order = %#v, want init then set", entry.History)
	}

	// Delta for +70g of egg: 155*0.7 = 108.5 → 109 (after the create's 78).
	deltas := reporter.all()
	if len(deltas) != 2 || deltas[1] != 109 {
		t.Fatalf("reported deltas = %v, want [78 109]", deltas)
	}
}

func TestUpdateEntry_UnknownIDFails(t *testing.T) {
	s := newTestStore(&fakeTracker{}, eggCatalogue(), nil)
	if err := s.UpdateEntry(context.Background(), day("2024-01-05"), 999, 10); err == nil {
		t.Fatalf("UpdateEntry on unknown id returned nil error")
	}
}

func TestDeleteEntry_MissingIDIsNoOp(t *testing.T) {
	tracker := &fakeTracker{}
	s := newTestStore(tracker, eggCatalogue(), nil)

	before := s.Snapshot()
	if err := s.DeleteEntry(context.Background(), day("2024-01-05"), 12345); err != nil {
		t.Fatalf("DeleteEntry on missing id returned error: %v", err)
	}
	if tracker.deleteCalls != 0 {
		t.Fatalf("DeleteEntry on missing id hit the API %d times, want 0", tracker.deleteCalls)
	}
	after := s.Snapshot()
	if len(before.Days) != len(after.Days) {
		t.Fatalf("state changed by a no-op delete")
	}
}

func TestDeleteEntry_RemovesAndReportsNegativeDelta(t *testing.T) {
	tracker := &fakeTracker{nextID: 0}
	reporter := &fakeReporter{}
	s := newTestStore(tracker, eggCatalogue(), reporter)

	id, err := s.CreateEntry(context.Background(), day("2024-01-05"), 1, 100)
	if err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}
	if err := s.DeleteEntry(context.Background(), day("2024-01-05"), id); err != nil {
		t.Fatalf("DeleteEntry returned error: %v", err)
	}

	record, _ := s.Day(day("2024-01-05"))
	if len(record.Entries) != 0 {
		t.Fatalf("entries after delete = %#v, want none", record.Entries)
	}
	deltas := reporter.all()
	if len(deltas) != 2 || deltas[1] != -155 {
		t.Fatalf("reported deltas = %v, want [155 -155]", deltas)
	}
}

func TestMutationFailureLeavesStateUnchanged(t *testing.T) {
	tracker := &fakeTracker{nextID: 0}
	s := newTestStore(tracker, eggCatalogue(), nil)

	id, err := s.CreateEntry(context.Background(), day("2024-01-05"), 1, 100)
	if err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}
	before := s.Snapshot()

	tracker.mu.Lock()
	tracker.fail = errors.New("boom")
	tracker.mu.Unlock()

	if err := s.UpdateEntry(context.Background(), day("2024-01-05"), id, 500); err == nil {
		t.Fatalf("UpdateEntry returned nil error, want failure")
	}
	if err := s.DeleteEntry(context.Background(), day("2024-01-05"), id); err == nil {
		t.Fatalf("DeleteEntry returned nil error, want failure")
	}

	after := s.Snapshot()
	entryBefore := before.Days["2024-01-05"].Entries[id]
	entryAfter := after.Days["2024-01-05"].Entries[id]
	if entryAfter.WeightGrams != entryBefore.WeightGrams || len(entryAfter.History) != len(entryBefore.History) {
		t.Fatalf("entry changed after failed mutations: %#v vs %#v", entryAfter, entryBefore)
	}
}

func TestSetBodyWeight(t *testing.T) {
	tracker := &fakeTracker{}
	s := newTestStore(tracker, eggCatalogue(), nil)

	if err := s.SetBodyWeight(context.Background(), day("2024-01-05"), 71.5); err != nil {
		t.Fatalf("SetBodyWeight returned error: %v", err)
	}
	record, ok := s.Day(day("2024-01-05"))
	if !ok || record.BodyWeightKg != 71.5 {
		t.Fatalf("day = %#v, want body weight 71.5", record)
	}
	if tracker.lastWeight.Date != "2024-01-05" || tracker.lastWeight.BodyWeight != 71.5 {
		t.Fatalf("request = %#v, want date+weight", tracker.lastWeight)
	}
}

func TestSelectDate_CoalescesPrefetchBurst(t *testing.T) {
	tracker := &fakeTracker{window: api.DiaryWindow{}}
	s := newTestStore(tracker, eggCatalogue(), nil)

	// A burst of navigation near the edge of nothing-loaded should fetch once.
	for i := 0; i < 5; i++ {
		s.SelectDate(day("2024-01-05").Add(i))
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(80 * time.Millisecond)

	if got := tracker.calls(); got != 1 {
		t.Fatalf("window fetches = %d, want 1 for a coalesced burst", got)
	}
}

func TestSelectDate_NoPrefetchDeepInsideLoadedRange(t *testing.T) {
	tracker := &fakeTracker{window: api.DiaryWindow{}}
	s := newTestStore(tracker, eggCatalogue(), nil)

	s.mu.Lock()
	s.loaded = []dates.Range{dates.NewRange(day("2024-01-01"), day("2024-01-31"))}
	s.mu.Unlock()

	s.SelectDate(day("2024-01-15"))
	time.Sleep(50 * time.Millisecond)

	if got := tracker.calls(); got != 0 {
		t.Fatalf("window fetches = %d, want 0 deep inside loaded data", got)
	}
}
