package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gitachi143/speechReader/internal/domain"
)

type createSessionRequest struct {
	Text string `json:"text"`
	Name string `json:"name"`
}

type sessionResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Words       []string `json:"words"`
	CurrentWord int      `json:"current_word_index"`
	TotalWords  int      `json:"total_words"`
	Progress    float64  `json:"progress_percentage"`
	CreatedAt   string   `json:"created_at"`
	CompletedAt *string  `json:"completed_at"`
}

func toSessionResponse(s *domain.ReadingSession) sessionResponse {
	words := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		words[i] = tok.Display
	}

	resp := sessionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Words:       words,
		CurrentWord: s.CurrentWordIndex,
		TotalWords:  s.TotalWords(),
		Progress:    s.ProgressPercentage(),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
	if s.CompletedAt != nil {
		done := s.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &done
	}
	return resp
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := s.sessions.Create(req.Text, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.Recent()
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]sessionResponse, len(sessions))
	for i := range sessions {
		resp[i] = toSessionResponse(&sessions[i])
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSessionResponse(session))
}

type hypothesisRequest struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type attemptResponse struct {
	Verdict   string `json:"verdict"`
	NewCursor int    `json:"new_cursor"`
	Completed bool   `json:"completed"`
}

func (s *Server) handleSubmitHypothesis(w http.ResponseWriter, r *http.Request) {
	var req hypothesisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.sessions.SubmitHypothesis(r.PathValue("id"), req.Text, req.Confidence)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, attemptResponse{
		Verdict:   string(result.Verdict),
		NewCursor: result.NewCursor,
		Completed: result.Completed,
	})
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	result, err := s.sessions.Skip(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, attemptResponse{
		Verdict:   string(result.Verdict),
		NewCursor: result.NewCursor,
		Completed: result.Completed,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Reset(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int{"cursor": 0})
}

type progressEntryResponse struct {
	WordIndex     int     `json:"word_index"`
	ExpectedWord  string  `json:"expected_word"`
	SpokenWord    string  `json:"spoken_word"`
	IsCorrect     bool    `json:"is_correct"`
	RetryEligible bool    `json:"retry_eligible"`
	Confidence    float64 `json:"confidence_score"`
	Timestamp     string  `json:"timestamp"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	fromIndex, err := queryIndex(r, "from")
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	toIndex, err := queryIndex(r, "to")
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	entries, err := s.sessions.Progress(r.PathValue("id"), fromIndex, toIndex)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]progressEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = progressEntryResponse{
			WordIndex:     e.WordIndex,
			ExpectedWord:  e.ExpectedWord,
			SpokenWord:    e.SpokenWord,
			IsCorrect:     e.IsCorrect,
			RetryEligible: e.RetryEligible,
			Confidence:    e.Confidence,
			Timestamp:     e.Timestamp.Format(time.RFC3339Nano),
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type statsResponse struct {
	TotalWords     int     `json:"total_words"`
	CorrectWords   int     `json:"correct_words"`
	AttemptedWords int     `json:"attempted_words"`
	TotalAttempts  int     `json:"total_attempts"`
	Accuracy       float64 `json:"accuracy"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.SessionStats(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statsResponse{
		TotalWords:     stats.TotalWords,
		CorrectWords:   stats.CorrectWords,
		AttemptedWords: stats.AttemptedWords,
		TotalAttempts:  stats.TotalAttempts,
		Accuracy:       stats.Accuracy,
		ElapsedSeconds: stats.Elapsed.Seconds(),
	})
}

// queryIndex parses an optional word-index bound; absent means
// unbounded (-1).
func queryIndex(r *http.Request, key string) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return -1, nil
	}
	idx, err := strconv.Atoi(value)
	if err != nil || idx < 0 {
		return 0, &queryError{key: key}
	}
	return idx, nil
}

type queryError struct {
	key string
}

func (e *queryError) Error() string {
	return e.key + " must be a non-negative integer"
}
