package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodjournal/mood-api/internal/advice"
	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/service/entry"
	"github.com/moodjournal/mood-api/internal/service/sobriety"
	"github.com/moodjournal/mood-api/internal/service/summary"
)

// memEntries backs both the entry service and the summary fetch.
type memEntries struct {
	rows []domain.MoodEntry
	err  error
}

func (m *memEntries) Create(_ context.Context, e *domain.MoodEntry) error {
	e.ID = "e-new"
	m.rows = append(m.rows, *e)
	return nil
}

func (m *memEntries) List(_ context.Context, ownerID string, f entry.ListFilter) ([]domain.MoodEntry, error) {
	var out []domain.MoodEntry
	for _, e := range m.rows {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEntries) Fetch(_ context.Context, ownerID string, start, end time.Time) ([]domain.MoodEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.MoodEntry
	for _, e := range m.rows {
		if e.OwnerID == ownerID && !e.CreatedAt.Before(start) && !e.CreatedAt.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memCache struct{ stored []string }

func (c *memCache) Lookup(context.Context, string, domain.RangeLabel, time.Time) (string, bool, error) {
	return "", false, nil
}

func (c *memCache) Store(_ context.Context, _ string, _ domain.RangeLabel, text string) error {
	c.stored = append(c.stored, text)
	return nil
}

type stubAdvisor struct {
	lastLang string
}

func (s *stubAdvisor) Generate(_ context.Context, req advice.Request) advice.Result {
	s.lastLang = req.Language
	return advice.Result{Text: "Stay hydrated.", Generated: true}
}

func (s *stubAdvisor) Analyze(_ context.Context, text, _, lang string) advice.Result {
	s.lastLang = lang
	return advice.Result{Text: "You sound calm: " + text, Generated: true}
}

type memClocks struct {
	clocks map[string]domain.SobrietyClock
}

func (m *memClocks) Create(_ context.Context, c *domain.SobrietyClock) error {
	c.ID = "c1"
	m.clocks[c.ID] = *c
	return nil
}

func (m *memClocks) ListByUser(_ context.Context, userID string) ([]domain.SobrietyClock, error) {
	var out []domain.SobrietyClock
	for _, c := range m.clocks {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClocks) Delete(_ context.Context, id string) error {
	if _, ok := m.clocks[id]; !ok {
		return sobriety.ErrNotFound
	}
	delete(m.clocks, id)
	return nil
}

func (m *memClocks) Reset(_ context.Context, id string, start time.Time) (*domain.SobrietyClock, error) {
	c, ok := m.clocks[id]
	if !ok {
		return nil, sobriety.ErrNotFound
	}
	c.StartDate = start
	m.clocks[id] = c
	return &c, nil
}

type testEnv struct {
	handler http.Handler
	entries *memEntries
	cache   *memCache
	advisor *stubAdvisor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		entries: &memEntries{},
		cache:   &memCache{},
		advisor: &stubAdvisor{},
	}
	sums := summary.NewService(env.entries, env.cache, env.advisor)
	h := NewHandlers(sums, env.advisor, entry.NewService(env.entries),
		sobriety.NewService(&memClocks{clocks: map[string]domain.SobrietyClock{}}), "en")
	env.handler = SetupRoutes(h, NewHealthChecker(nil, nil), []string{"http://localhost:3000"})
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
}

func TestWeeklySummary_ExplicitRange(t *testing.T) {
	env := newTestEnv(t)
	for i, r := range []float64{5, 4, 2} {
		env.entries.rows = append(env.entries.rows, domain.MoodEntry{
			OwnerID: "u1", Rating: r, Category: "happy",
			CreatedAt: time.Date(2025, 5, 1+i, 10, 0, 0, 0, time.UTC),
		})
	}

	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", map[string]string{
		"start_date": "2025-05-01",
		"end_date":   "2025-05-07",
		"lang":       "pl",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["entry_count"])
	assert.Equal(t, 3.67, body["average_mood_rating"])
	assert.Equal(t, "week", body["range_label"])
	assert.Equal(t, "Stay hydrated.", body["ai_suggestion"])
	assert.Equal(t, map[string]any{"happy": float64(3)}, body["mood_stats"])
	assert.Len(t, body["daily_counts"], 7)
	assert.Equal(t, "pl", env.advisor.lastLang)
	assert.Equal(t, []string{"Stay hydrated."}, env.cache.stored)
}

func TestWeeklySummary_DateOnlyEndCoversWholeDay(t *testing.T) {
	env := newTestEnv(t)
	env.entries.rows = append(env.entries.rows,
		domain.MoodEntry{OwnerID: "u1", Rating: 3, Category: "neutral", CreatedAt: time.Date(2025, 5, 7, 20, 0, 0, 0, time.UTC)},
		domain.MoodEntry{OwnerID: "u1", Rating: 1, Category: "sad", CreatedAt: time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC)},
	)

	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", map[string]string{
		"start_date": "2025-05-01",
		"end_date":   "2025-05-07",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["entry_count"])
	period := body["period"].(map[string]any)
	assert.Equal(t, "2025-05-07T23:59:59.999999999Z", period["end"])
}

func TestWeeklySummary_TimestampEndIsExact(t *testing.T) {
	env := newTestEnv(t)
	env.entries.rows = append(env.entries.rows,
		domain.MoodEntry{OwnerID: "u1", Rating: 3, Category: "neutral", CreatedAt: time.Date(2025, 5, 7, 20, 0, 0, 0, time.UTC)},
	)

	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", map[string]string{
		"start_date": "2025-05-01T18:00:00Z",
		"end_date":   "2025-05-07T18:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(0), decodeBody(t, rec)["entry_count"])
}

func TestWeeklySummary_RangeTooLong(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", map[string]string{
		"start_date": "0001-01-01",
		"end_date":   "9999-12-31",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too long")
}

func TestWeeklySummary_EmptyBodyUsesDefaultWindow(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "week", body["range_label"])
	assert.Len(t, body["daily_counts"], 7)
	assert.Equal(t, "en", env.advisor.lastLang)
}

func TestWeeklySummary_PartialRange(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", map[string]string{"start_date": "2025-05-01"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeeklySummary_ReversedRange(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", map[string]string{
		"start_date": "2025-05-07T00:00:00Z",
		"end_date":   "2025-05-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeeklySummary_BadDate(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", map[string]string{
		"start_date": "yesterday",
		"end_date":   "2025-05-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")
}

func TestWeeklySummary_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeeklySummary_StoreFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	env.entries.err = errors.New("db gone")
	rec := env.do(t, http.MethodPost, "/ai/weekly_summary/u1", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db gone")
}

func TestSummaryQuery(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/ai/summary/u1?start=2025-01-01&end=2025-12-31", nil)
	req.Header.Set("Accept-Language", "pl-PL,pl;q=0.9,en;q=0.5")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "year", decodeBody(t, rec)["range_label"])
	assert.Equal(t, "pl-PL", env.advisor.lastLang)
}

func TestAnalyzeMood(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/ai/analyze_mood", map[string]string{"text": "quiet evening"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You sound calm: quiet evening", decodeBody(t, rec)["analysis"])

	rec = env.do(t, http.MethodPost, "/ai/analyze_mood", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEntries_CreateAndList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/entries/u1", map[string]any{
		"text": "hello", "mood_rating": 4.5, "category": "happy", "image_paths": []string{"a.jpg"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	assert.Equal(t, "e-new", created["id"])
	assert.Equal(t, []any{"a.jpg"}, created["image_paths"])

	rec = env.do(t, http.MethodGet, "/entries/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestEntries_CreateWithoutImagesReturnsEmptyArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/entries/u1", map[string]any{
		"text": "plain", "mood_rating": 3, "category": "neutral",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []any{}, decodeBody(t, rec)["image_paths"])
}

func TestEntries_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/entries/u1", map[string]any{"text": "no category"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/entries/u1?limit=lots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEntries_EmptyListIsArray(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/entries/nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSobrietyClocks_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/sobriety/clocks", map[string]string{
		"user_id": "u1", "addiction_type": "alcohol", "start_date": "2025-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	assert.Equal(t, "c1", created["id"])
	assert.Contains(t, created, "elapsed")

	rec = env.do(t, http.MethodGet, "/sobriety/clocks/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = env.do(t, http.MethodPut, "/sobriety/clocks/c1/reset", map[string]string{"new_date": "2025-03-01"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2025-03-01T00:00:00Z", decodeBody(t, rec)["new_start_date"])

	rec = env.do(t, http.MethodDelete, "/sobriety/clocks/c1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/sobriety/clocks/c1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSobrietyClocks_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/sobriety/clocks", map[string]string{"user_id": "u1", "addiction_type": "alcohol"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/sobriety/clocks/ghost/reset", map[string]string{"new_date": "2025-03-01"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
