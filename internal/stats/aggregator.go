// Package stats aggregates day, week and month calorie statistics and the
// body-weight series used by the chart view.
//
// The diary store reports a calorie delta for every accepted mutation, so
// this aggregator stays in sync without re-deriving totals from the diary.
// Server refreshes replace the window they cover; local deltas tweak it
// in between.
package stats

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nvlko/daybook/internal/api"
	"github.com/nvlko/daybook/internal/dates"
)

// WeightPoint is one body-weight measurement in the chart series.
type WeightPoint struct {
	Day dates.Day
	Kg  float64
}

// Snapshot is a cloned view of the aggregated statistics.
type Snapshot struct {
	KcalByDay map[string]int
	Weights   []WeightPoint
}

// WeekAverage returns the mean kcal over the 7 days ending at day,
// counting only days with data. Zero when no data falls in the window.
func (s Snapshot) WeekAverage(day dates.Day) int {
	return s.trailingAverage(day, 7)
}

// MonthAverage returns the mean kcal over the 30 days ending at day.
func (s Snapshot) MonthAverage(day dates.Day) int {
	return s.trailingAverage(day, 30)
}

func (s Snapshot) trailingAverage(day dates.Day, span int) int {
	total, count := 0, 0
	for d := day.Add(-(span - 1)); !d.After(day); d = d.Add(1) {
		if kcal, ok := s.KcalByDay[d.ISO()]; ok {
			total += kcal
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / count
}

// LatestWeight returns the most recent weight point, if any.
func (s Snapshot) LatestWeight() (WeightPoint, bool) {
	if len(s.Weights) == 0 {
		return WeightPoint{}, false
	}
	return s.Weights[len(s.Weights)-1], true
}

// Aggregator accumulates calorie and weight statistics.
type Aggregator struct {
	mu        sync.RWMutex
	kcalByDay map[string]int
	weights   map[string]float64

	client api.Tracker
}

// New builds an empty aggregator backed by client.
func New(client api.Tracker) *Aggregator {
	return &Aggregator{
		kcalByDay: map[string]int{},
		weights:   map[string]float64{},
		client:    client,
	}
}

// ReportKcalDelta applies a calorie delta from an accepted diary mutation.
// Implements diary.Reporter.
func (a *Aggregator) ReportKcalDelta(day dates.Day, delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := a.kcalByDay[day.ISO()] + delta
	if total < 0 {
		total = 0
	}
	a.kcalByDay[day.ISO()] = total
}

// ReportWeight records a body-weight measurement locally.
func (a *Aggregator) ReportWeight(day dates.Day, kg float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.weights[day.ISO()] = kg
}

// Refresh pulls the server's aggregated stats around date and overlays
// them on the local state.
func (a *Aggregator) Refresh(ctx context.Context, date dates.Day) error {
	payload, err := a.client.FetchStats(ctx, date.ISO())
	if err != nil {
		return fmt.Errorf("refresh stats: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for iso, kcal := range payload.KcalPerDay {
		a.kcalByDay[iso] = kcal
	}
	for iso, kg := range payload.Weights {
		a.weights[iso] = kg
	}
	return nil
}

// Snapshot returns a cloned view with the weight series sorted by day.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := Snapshot{KcalByDay: make(map[string]int, len(a.kcalByDay))}
	for iso, kcal := range a.kcalByDay {
		snap.KcalByDay[iso] = kcal
	}

	snap.Weights = make([]WeightPoint, 0, len(a.weights))
	for iso, kg := range a.weights {
		day, err := dates.ParseISO(iso)
		if err != nil {
			continue
		}
		snap.Weights = append(snap.Weights, WeightPoint{Day: day, Kg: kg})
	}
	sort.Slice(snap.Weights, func(i, j int) bool {
		return snap.Weights[i].Day.Before(snap.Weights[j].Day)
	})
	return snap
}

// BMI computes the body mass index for a weight and height. ok is false
// when either measurement is missing or implausible.
func BMI(weightKg float64, heightCm int) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	meters := float64(heightCm) / 100
	return weightKg / (meters * meters), true
}
