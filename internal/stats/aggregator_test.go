package stats

import (
	"context"
	"math"
	"testing"

	"github.com/nvlko/daybook/internal/api"
	"github.com/nvlko/daybook/internal/dates"
)

func day(iso string) dates.Day {
	d, err := dates.ParseISO(iso)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeTracker struct {
	api.Tracker

	stats api.FoodStatsPayload
	fail  error
	dates []string
}

func (f *fakeTracker) FetchStats(ctx context.Context, date string) (api.FoodStatsPayload, error) {
	f.dates = append(f.dates, date)
	return f.stats, f.fail
}

func TestReportKcalDelta_AccumulatesAndClampsAtZero(t *testing.T) {
	a := New(&fakeTracker{})

	a.ReportKcalDelta(day("2024-01-05"), 300)
	a.ReportKcalDelta(day("2024-01-05"), 150)
	a.ReportKcalDelta(day("2024-01-05"), -100)

	snap := a.Snapshot()
	if snap.KcalByDay["2024-01-05"] != 350 {
		t.Fatalf("kcal = %d, want 350", snap.KcalByDay["2024-01-05"])
	}

	a.ReportKcalDelta(day("2024-01-05"), -9999)
	if got := a.Snapshot().KcalByDay["2024-01-05"]; got != 0 {
		t.Fatalf("kcal after huge negative delta = %d, want clamped 0", got)
	}
}

func TestRefresh_OverlaysServerWindow(t *testing.T) {
	tracker := &fakeTracker{stats: api.FoodStatsPayload{
		KcalPerDay: map[string]int{"2024-01-04": 1800, "2024-01-05": 2100},
		Weights:    map[string]float64{"2024-01-04": 72.0},
	}}
	a := New(tracker)
	a.ReportKcalDelta(day("2024-01-05"), 500) // stale local figure

	if err := a.Refresh(context.Background(), day("2024-01-05")); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if tracker.dates[0] != "2024-01-05" {
		t.Fatalf("stats request date = %q, want 2024-01-05", tracker.dates[0])
	}

	snap := a.Snapshot()
	if snap.KcalByDay["2024-01-05"] != 2100 {
		t.Fatalf("server value did not replace local figure: %d", snap.KcalByDay["2024-01-05"])
	}
	if snap.KcalByDay["2024-01-04"] != 1800 {
		t.Fatalf("missing overlaid day: %#v", snap.KcalByDay)
	}
}

func TestSnapshot_TrailingAverages(t *testing.T) {
	a := New(&fakeTracker{})
	a.ReportKcalDelta(day("2024-01-05"), 2000)
	a.ReportKcalDelta(day("2024-01-06"), 1000)
	a.ReportKcalDelta(day("2023-12-01"), 9000) // before the 30-day window starting 2023-12-09

	snap := a.Snapshot()
	if got := snap.WeekAverage(day("2024-01-07")); got != 1500 {
		t.Fatalf("WeekAverage = %d, want 1500", got)
	}
	if got := snap.MonthAverage(day("2024-01-07")); got != 1500 {
		t.Fatalf("MonthAverage = %d, want 1500", got)
	}
	if got := snap.WeekAverage(day("2020-01-01")); got != 0 {
		t.Fatalf("WeekAverage with no data = %d, want 0", got)
	}
}

func TestSnapshot_WeightSeriesSorted(t *testing.T) {
	a := New(&fakeTracker{})
	a.ReportWeight(day("2024-01-10"), 71.0)
	a.ReportWeight(day("2024-01-05"), 72.5)
	a.ReportWeight(day("2024-01-07"), 71.8)

	snap := a.Snapshot()
	if len(snap.Weights) != 3 {
		t.Fatalf("weights = %#v, want 3 points", snap.Weights)
	}
	for i := 1; i < len(snap.Weights); i++ {
		if snap.Weights[i].Day.Before(snap.Weights[i-1].Day) {
			t.Fatalf("weight series not sorted: %#v", snap.Weights)
		}
	}

	latest, ok := snap.LatestWeight()
	if !ok || latest.Kg != 71.0 {
		t.Fatalf("LatestWeight = %#v, want 71.0 on 2024-01-10", latest)
	}
}

func TestBMI(t *testing.T) {
	bmi, ok := BMI(72.0, 180)
	if !ok {
		t.Fatalf("BMI returned ok=false for valid inputs")
	}
	if math.Abs(bmi-22.22) > 0.01 {
		t.Fatalf("BMI = %v, want ~22.22", bmi)
	}

	if _, ok := BMI(0, 180); ok {
		t.Fatalf("BMI accepted zero weight")
	}
	if _, ok := BMI(72, 0); ok {
		t.Fatalf("BMI accepted zero height")
	}
}
