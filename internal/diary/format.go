package diary

import (
	"math"
	"sort"

	"github.com/nvlko/daybook/internal/catalogue"
)

// FormattedEntry is one diary entry joined against the catalogue.
type FormattedEntry struct {
	ID              int64
	CatalogueID     int64
	FoodName        string
	WeightGrams     int
	Kcal            int
	PercentOfTarget float64
}

// FormattedDay is the render-ready view of one day.
type FormattedDay struct {
	Date         string
	BodyWeightKg float64
	TargetKcal   int
	Entries      []FormattedEntry
	TotalKcal    int
	TotalPercent float64
}

// Format joins the raw day map against the catalogue and computes calorie
// contributions and day aggregates. The result is a fresh object graph on
// every call; the inputs are never mutated.
//
// While the catalogue is empty the whole computation is skipped and an
// empty map is returned: half-joined rows with zero calories would flash
// on screen during the initial load race otherwise.
//
// coefficient scales every calorie figure; values <= 0 mean 1.
func Format(days map[string]DayRecord, cat catalogue.Snapshot, coefficient float64) map[string]FormattedDay {
	formatted := map[string]FormattedDay{}
	if !cat.Loaded() {
		return formatted
	}
	if coefficient <= 0 {
		coefficient = 1
	}

	for iso, record := range days {
		day := FormattedDay{
			Date:         iso,
			BodyWeightKg: record.BodyWeightKg,
			TargetKcal:   record.TargetKcal,
			Entries:      make([]FormattedEntry, 0, len(record.Entries)),
		}
		for _, entry := range record.Entries {
			// A missing catalogue id renders as a zero-calorie unnamed
			// row rather than failing the whole day.
			var name string
			var kcalPer100g int
			if item, ok := cat.Items[entry.CatalogueID]; ok {
				name = item.Name
				kcalPer100g = item.KcalPer100g
			}

			kcal := int(math.Round(float64(kcalPer100g) * float64(entry.WeightGrams) / 100 * coefficient))
			percent := 0.0
			if record.TargetKcal > 0 {
				percent = float64(kcal) / float64(record.TargetKcal) * 100
			}

			day.Entries = append(day.Entries, FormattedEntry{
				ID:              entry.ID,
				CatalogueID:     entry.CatalogueID,
				FoodName:        name,
				WeightGrams:     entry.WeightGrams,
				Kcal:            kcal,
				PercentOfTarget: percent,
			})
			day.TotalKcal += kcal
			day.TotalPercent += percent
		}
		sort.Slice(day.Entries, func(i, j int) bool {
			return day.Entries[i].ID < day.Entries[j].ID
		})
		formatted[iso] = day
	}
	return formatted
}

// Formatted returns the derived view of the store's current state.
func (s *Store) Formatted() map[string]FormattedDay {
	snap := s.Snapshot()
	return Format(snap.Days, s.catalogue.Snapshot(), 1)
}
