package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gitachi143/speechReader/internal/matcher"
	"github.com/gitachi143/speechReader/internal/repository/memory"
	"github.com/gitachi143/speechReader/internal/service"
	"github.com/gitachi143/speechReader/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestServer() *Server {
	store := memory.NewStore()
	logger := testutil.NewTestLogger()
	sessions := service.NewSessionService(store, store, matcher.New(), logger)
	stats := service.NewStatsService(store, store, logger)
	return NewServer(sessions, stats, logger)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestCreateSession(t *testing.T) {
	mux := newTestServer().Routes()

	rec := doJSON(t, mux, http.MethodPost, "/api/sessions", createSessionRequest{Text: "The quick fox runs", Name: "fable.txt"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[sessionResponse](t, rec)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "fable.txt", resp.Name)
	assert.Equal(t, []string{"The", "quick", "fox", "runs"}, resp.Words)
	assert.Equal(t, 0, resp.CurrentWord)
	assert.Equal(t, 4, resp.TotalWords)
	assert.Nil(t, resp.CompletedAt)
}

func TestCreateSession_EmptyText(t *testing.T) {
	mux := newTestServer().Routes()

	for _, text := range []string{"", "   ", "..."} {
		rec := doJSON(t, mux, http.MethodPost, "/api/sessions", createSessionRequest{Text: text})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestCreateSession_BadBody(t *testing.T) {
	mux := newTestServer().Routes()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	mux := newTestServer().Routes()

	rec := doJSON(t, mux, http.MethodGet, "/api/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSessions(t *testing.T) {
	mux := newTestServer().Routes()

	for i := 0; i < 3; i++ {
		rec := doJSON(t, mux, http.MethodPost, "/api/sessions", createSessionRequest{Text: fmt.Sprintf("text number %d", i)})
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, mux, http.MethodGet, "/api/sessions", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]sessionResponse](t, rec)
	assert.Len(t, resp, 3)
}

// Drives a full session through the API: correct words, an uncertain
// retry, a skip, completion, stats, reset.
func TestReadingFlow(t *testing.T) {
	mux := newTestServer().Routes()

	created := decode[sessionResponse](t, doJSON(t, mux, http.MethodPost, "/api/sessions",
		createSessionRequest{Text: "The quick fox runs"}))
	base := "/api/sessions/" + created.ID

	submit := func(text string, confidence float64) (*httptest.ResponseRecorder, attemptResponse) {
		rec := doJSON(t, mux, http.MethodPost, base+"/hypotheses", hypothesisRequest{Text: text, Confidence: confidence})
		if rec.Code != http.StatusOK {
			return rec, attemptResponse{}
		}
		return rec, decode[attemptResponse](t, rec)
	}

	rec, attempt := submit("the", 0.9)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "correct", attempt.Verdict)
	assert.Equal(t, 1, attempt.NewCursor)

	_, attempt = submit("quick", 0.95)
	assert.Equal(t, "correct", attempt.Verdict)
	assert.Equal(t, 2, attempt.NewCursor)

	_, attempt = submit("fog", 0.6)
	assert.Equal(t, "uncertain", attempt.Verdict)
	assert.Equal(t, 2, attempt.NewCursor)

	_, attempt = submit("fox", 0.9)
	assert.Equal(t, "correct", attempt.Verdict)
	assert.Equal(t, 3, attempt.NewCursor)

	rec = doJSON(t, mux, http.MethodPost, base+"/skip", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	attempt = decode[attemptResponse](t, rec)
	assert.Equal(t, 4, attempt.NewCursor)
	assert.True(t, attempt.Completed)

	// Completed session rejects further hypotheses.
	rec, _ = submit("anything", 0.9)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Stats: indexes 0-2 correct, index 3 skipped; the uncertain retry
	// on index 2 does not count as an extra attempt.
	rec = doJSON(t, mux, http.MethodGet, base+"/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	stats := decode[statsResponse](t, rec)
	assert.Equal(t, 4, stats.TotalWords)
	assert.Equal(t, 3, stats.CorrectWords)
	assert.Equal(t, 4, stats.AttemptedWords)
	assert.Equal(t, 5, stats.TotalAttempts)
	assert.InDelta(t, 0.75, stats.Accuracy, 1e-9)

	// Progress log holds all five entries in order.
	rec = doJSON(t, mux, http.MethodGet, base+"/progress", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]progressEntryResponse](t, rec)
	assert.Len(t, entries, 5)
	assert.Equal(t, "the", entries[0].SpokenWord)
	assert.Equal(t, "", entries[4].SpokenWord)

	// Reset zeroes the cursor but keeps history.
	rec = doJSON(t, mux, http.MethodPost, base+"/reset", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	state := decode[sessionResponse](t, doJSON(t, mux, http.MethodGet, base, nil))
	assert.Equal(t, 0, state.CurrentWord)
	assert.Nil(t, state.CompletedAt)

	entries = decode[[]progressEntryResponse](t, doJSON(t, mux, http.MethodGet, base+"/progress", nil))
	assert.Len(t, entries, 5)
}

func TestSubmitHypothesis_InvalidConfidence(t *testing.T) {
	mux := newTestServer().Routes()

	created := decode[sessionResponse](t, doJSON(t, mux, http.MethodPost, "/api/sessions",
		createSessionRequest{Text: "hello world"}))

	rec := doJSON(t, mux, http.MethodPost, "/api/sessions/"+created.ID+"/hypotheses",
		hypothesisRequest{Text: "hello", Confidence: 1.5})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No state change from the rejected input.
	state := decode[sessionResponse](t, doJSON(t, mux, http.MethodGet, "/api/sessions/"+created.ID, nil))
	assert.Equal(t, 0, state.CurrentWord)
}

func TestSubmitHypothesis_UnknownSession(t *testing.T) {
	mux := newTestServer().Routes()

	rec := doJSON(t, mux, http.MethodPost, "/api/sessions/missing/hypotheses",
		hypothesisRequest{Text: "hello", Confidence: 0.9})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgress_RangeFilter(t *testing.T) {
	mux := newTestServer().Routes()

	created := decode[sessionResponse](t, doJSON(t, mux, http.MethodPost, "/api/sessions",
		createSessionRequest{Text: "one two three"}))
	base := "/api/sessions/" + created.ID

	for _, word := range []string{"one", "two", "three"} {
		rec := doJSON(t, mux, http.MethodPost, base+"/hypotheses", hypothesisRequest{Text: word, Confidence: 0.9})
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	entries := decode[[]progressEntryResponse](t, doJSON(t, mux, http.MethodGet, base+"/progress?from=1&to=2", nil))
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].WordIndex)
	assert.Equal(t, 2, entries[1].WordIndex)

	rec := doJSON(t, mux, http.MethodGet, base+"/progress?from=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
