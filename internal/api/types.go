package api

// History actions recorded against a diary entry. The server seeds every
// entry with an "init" record and appends one record per accepted edit.
const (
	HistoryInit     = "init"
	HistorySet      = "set"
	HistoryAdd      = "add"
	HistorySubtract = "subtract"
)

// HistoryRecord is one audit record in a diary entry's history.
type HistoryRecord struct {
	Action string `json:"action"`
	Value  int    `json:"value"`
}

// DiaryEntryPayload mirrors a single diary entry on the wire.
type DiaryEntryPayload struct {
	ID              int64           `json:"id"`
	Date            string          `json:"date"`
	FoodCatalogueID int64           `json:"foodCatalogueId"`
	FoodWeight      int             `json:"foodWeight"`
	History         []HistoryRecord `json:"history"`
}

// DiaryDayPayload is one day's worth of diary state as returned by
// /api/food/diary-full-update, keyed by entry id inside the food map.
type DiaryDayPayload struct {
	Food           map[string]DiaryEntryPayload `json:"food"`
	BodyWeight     float64                      `json:"bodyWeight"`
	TargetCalories int                          `json:"targetCalories"`
}

// DiaryWindow maps ISO date strings to day payloads.
type DiaryWindow map[string]DiaryDayPayload

// CreateDiaryEntryRequest is the POST /api/food/diary/ body.
type CreateDiaryEntryRequest struct {
	Date            string `json:"date"`
	FoodCatalogueID int64  `json:"foodCatalogueId"`
	FoodWeight      int    `json:"foodWeight"`
}

// CreateDiaryEntryResponse echoes the server-assigned entry id.
type CreateDiaryEntryResponse struct {
	Result  bool  `json:"result"`
	DiaryID int64 `json:"diaryId"`
}

// UpdateDiaryEntryRequest is the PUT /api/food/diary body.
type UpdateDiaryEntryRequest struct {
	ID         int64 `json:"id"`
	FoodWeight int   `json:"foodWeight"`
}

// UpdateDiaryEntryResponse carries the history records the server appended
// for this edit. Local state appends these, never replaces.
type UpdateDiaryEntryResponse struct {
	Result  bool            `json:"result"`
	History []HistoryRecord `json:"history"`
}

// SetBodyWeightRequest is the POST /api/food/body-weight/ body.
type SetBodyWeightRequest struct {
	Date       string  `json:"date"`
	BodyWeight float64 `json:"bodyWeight"`
}

// CatalogueEntryPayload mirrors a food catalogue row.
type CatalogueEntryPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	KcalPer100g int    `json:"caloriesPer100g"`
}

// SaveCatalogueEntryResponse echoes the id of a created or edited row.
type SaveCatalogueEntryResponse struct {
	Result bool  `json:"result"`
	ID     int64 `json:"id"`
}

// FoodStatsPayload mirrors /api/food/stats: per-day consumed calories and
// body weights for a window around the requested date.
type FoodStatsPayload struct {
	KcalPerDay map[string]int     `json:"caloriesPerDay"`
	Weights    map[string]float64 `json:"weights"`
}

// SettingsPayload mirrors /api/settings/.
type SettingsPayload struct {
	DarkTheme    bool   `json:"darkTheme"`
	ChapterFood  bool   `json:"selectedChapterFood"`
	ChapterMoney bool   `json:"selectedChapterMoney"`
	Height       int    `json:"height"`
	UserName     string `json:"userName"`
}

// resultEnvelope is the minimal mutation acknowledgement. A 200 with
// result=false is a business rejection and is treated like a failure.
type resultEnvelope struct {
	Result bool `json:"result"`
}
