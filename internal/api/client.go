package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrRejected marks a 200 response whose result field was false: the
// server understood the request and refused it.
var ErrRejected = errors.New("rejected by server")

// TokenSource supplies the bearer token attached to every request.
// Implemented by *prefs.Store; a nil source sends unauthenticated requests.
type TokenSource interface {
	AccessToken() string
}

// Tracker defines the API surface the stores depend on. Implemented by
// *Client and by test doubles.
type Tracker interface {
	FetchDiaryWindow(ctx context.Context, date string, offset int) (DiaryWindow, error)
	CreateDiaryEntry(ctx context.Context, req CreateDiaryEntryRequest) (int64, error)
	UpdateDiaryEntry(ctx context.Context, req UpdateDiaryEntryRequest) ([]HistoryRecord, error)
	DeleteDiaryEntry(ctx context.Context, id int64) error
	SetBodyWeight(ctx context.Context, req SetBodyWeightRequest) error

	FetchCatalogue(ctx context.Context) ([]CatalogueEntryPayload, error)
	CreateCatalogueEntry(ctx context.Context, entry CatalogueEntryPayload) (int64, error)
	UpdateCatalogueEntry(ctx context.Context, entry CatalogueEntryPayload) error
	FetchUserCatalogue(ctx context.Context) ([]int64, error)
	PickCatalogueEntry(ctx context.Context, id int64) error
	DismissCatalogueEntry(ctx context.Context, id int64) error

	FetchStats(ctx context.Context, date string) (FoodStatsPayload, error)
	FetchSettings(ctx context.Context) (SettingsPayload, error)
	SaveSettings(ctx context.Context, settings SettingsPayload) error
}

// Ensure Client implements Tracker at compile time.
var _ Tracker = (*Client)(nil)

// Client talks to the tracker HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
}

const (
	defaultUserAgent = "daybook/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the given base address. A bare host:port
// is assumed to be plain http.
func NewClient(base string, tokens TokenSource) (*Client, error) {
	parsed, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		tokens:    tokens,
	}, nil
}

// FetchDiaryWindow retrieves a window of diary days anchored at date.
func (c *Client) FetchDiaryWindow(ctx context.Context, date string, offset int) (DiaryWindow, error) {
	values := url.Values{}
	values.Set("date", date)
	values.Set("offset", strconv.Itoa(offset))
	rel := &url.URL{Path: "/api/food/diary-full-update", RawQuery: values.Encode()}

	var payload DiaryWindow
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateDiaryEntry logs a new food entry and returns the server-assigned id.
func (c *Client) CreateDiaryEntry(ctx context.Context, req CreateDiaryEntryRequest) (int64, error) {
	var payload CreateDiaryEntryResponse
	if err := c.do(ctx, http.MethodPost, "/api/food/diary/", req, &payload); err != nil {
		return 0, err
	}
	if !payload.Result {
		return 0, fmt.Errorf("create diary entry: %w", ErrRejected)
	}
	return payload.DiaryID, nil
}

// UpdateDiaryEntry changes an entry's weight and returns the history
// records the server appended.
func (c *Client) UpdateDiaryEntry(ctx context.Context, req UpdateDiaryEntryRequest) ([]HistoryRecord, error) {
	var payload UpdateDiaryEntryResponse
	if err := c.do(ctx, http.MethodPut, "/api/food/diary", req, &payload); err != nil {
		return nil, err
	}
	if !payload.Result {
		return nil, fmt.Errorf("update diary entry %d: %w", req.ID, ErrRejected)
	}
	return payload.History, nil
}

// DeleteDiaryEntry removes an entry by id.
func (c *Client) DeleteDiaryEntry(ctx context.Context, id int64) error {
	var payload resultEnvelope
	path := "/api/food/diary/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodDelete, path, nil, &payload); err != nil {
		return err
	}
	if !payload.Result {
		return fmt.Errorf("delete diary entry %d: %w", id, ErrRejected)
	}
	return nil
}

// SetBodyWeight records a day's body weight.
func (c *Client) SetBodyWeight(ctx context.Context, req SetBodyWeightRequest) error {
	var payload resultEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/food/body-weight/", req, &payload); err != nil {
		return err
	}
	if !payload.Result {
		return fmt.Errorf("set body weight: %w", ErrRejected)
	}
	return nil
}

// FetchCatalogue retrieves the full food catalogue.
func (c *Client) FetchCatalogue(ctx context.Context) ([]CatalogueEntryPayload, error) {
	var payload []CatalogueEntryPayload
	if err := c.do(ctx, http.MethodGet, "/api/food/catalogue", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateCatalogueEntry adds a food to the catalogue and returns its id.
func (c *Client) CreateCatalogueEntry(ctx context.Context, entry CatalogueEntryPayload) (int64, error) {
	var payload SaveCatalogueEntryResponse
	if err := c.do(ctx, http.MethodPost, "/api/food/catalogue/", entry, &payload); err != nil {
		return 0, err
	}
	if !payload.Result {
		return 0, fmt.Errorf("create catalogue entry: %w", ErrRejected)
	}
	return payload.ID, nil
}

// UpdateCatalogueEntry edits an existing catalogue row.
func (c *Client) UpdateCatalogueEntry(ctx context.Context, entry CatalogueEntryPayload) error {
	var payload SaveCatalogueEntryResponse
	if err := c.do(ctx, http.MethodPut, "/api/food/catalogue/", entry, &payload); err != nil {
		return err
	}
	if !payload.Result {
		return fmt.Errorf("update catalogue entry %d: %w", entry.ID, ErrRejected)
	}
	return nil
}

// FetchUserCatalogue retrieves the catalogue ids the user has picked.
func (c *Client) FetchUserCatalogue(ctx context.Context) ([]int64, error) {
	var payload []int64
	if err := c.do(ctx, http.MethodGet, "/api/food/user-catalogue", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PickCatalogueEntry marks a catalogue id as owned by the user.
func (c *Client) PickCatalogueEntry(ctx context.Context, id int64) error {
	return c.toggleUserCatalogue(ctx, "/api/food/user-catalogue/pick/", id)
}

// DismissCatalogueEntry removes a catalogue id from the user's set.
func (c *Client) DismissCatalogueEntry(ctx context.Context, id int64) error {
	return c.toggleUserCatalogue(ctx, "/api/food/user-catalogue/dismiss/", id)
}

func (c *Client) toggleUserCatalogue(ctx context.Context, path string, id int64) error {
	body := struct {
		ID int64 `json:"id"`
	}{ID: id}
	var payload resultEnvelope
	if err := c.do(ctx, http.MethodPut, path, body, &payload); err != nil {
		return err
	}
	if !payload.Result {
		return fmt.Errorf("toggle catalogue entry %d: %w", id, ErrRejected)
	}
	return nil
}

// FetchStats retrieves aggregated food statistics around date.
func (c *Client) FetchStats(ctx context.Context, date string) (FoodStatsPayload, error) {
	values := url.Values{}
	if strings.TrimSpace(date) != "" {
		values.Set("date", date)
	}
	rel := &url.URL{Path: "/api/food/stats", RawQuery: values.Encode()}

	var payload FoodStatsPayload
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return FoodStatsPayload{}, err
	}
	return payload, nil
}

// FetchSettings retrieves the server-side settings value.
func (c *Client) FetchSettings(ctx context.Context) (SettingsPayload, error) {
	var payload SettingsPayload
	if err := c.do(ctx, http.MethodGet, "/api/settings/", nil, &payload); err != nil {
		return SettingsPayload{}, err
	}
	return payload, nil
}

// SaveSettings pushes the settings value to the server.
func (c *Client) SaveSettings(ctx context.Context, settings SettingsPayload) error {
	var payload resultEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/settings/", settings, &payload); err != nil {
		return err
	}
	if !payload.Result {
		return fmt.Errorf("save settings: %w", ErrRejected)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.AccessToken()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base address is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
