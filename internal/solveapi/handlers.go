// Package solveapi exposes the solver over HTTP: a thin POST /v1/solve
// endpoint plus read access to persisted solve runs (SPEC_FULL.md §12).
package solveapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"crossword-solver/internal/dictionary"
	"crossword-solver/internal/grid"
	"crossword-solver/internal/solve"
	"crossword-solver/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(s store.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: s, logger: logger}
}

// SolveRequest is the POST /v1/solve request body.
type SolveRequest struct {
	Grid         [][]string `json:"grid"`
	Words        []string   `json:"words"`
	MaxSolutions int        `json:"max_solutions,omitempty"`
	RNGSeed      int64      `json:"rng_seed,omitempty"`
	TimeoutMS    int        `json:"timeout_ms,omitempty"`
}

// SolveResponse is the POST /v1/solve response body.
type SolveResponse struct {
	RunID  string        `json:"run_id"`
	Result *solve.Result `json:"result,omitempty"`
}

// Solve runs the solver against a grid and word list and persists the
// outcome as a store.Run.
// POST /v1/solve
func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := grid.Parse(req.Grid)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dict := dictionary.New()
	for _, word := range req.Words {
		if err := dict.Add(word); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	ctx := r.Context()
	if req.TimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMS)*time.Millisecond)
		defer cancel()
	}

	solver := solve.NewSolver(solve.Config{
		MaxSolutions: req.MaxSolutions,
		RNGSeed:      req.RNGSeed,
	}, h.logger)

	run := &store.Run{
		ID:         uuid.New().String(),
		GridDigest: digest(req.Grid),
		DictDigest: digest(req.Words),
		RNGSeed:    req.RNGSeed,
		CreatedAt:  time.Now().UTC(),
	}

	result, solveErr := solver.Solve(ctx, g, dict)
	switch {
	case solveErr == nil:
		run.Outcome = store.OutcomeSolved
		run.Result = result
		run.Stats = result.Stats
	case solveErr == solve.ErrNoSolution:
		run.Outcome = store.OutcomeUnsolved
	case solveErr == solve.ErrNoSlots:
		run.Outcome = store.OutcomeNoSlots
	case solveErr == solve.ErrCancelled:
		run.Outcome = store.OutcomeCancelled
	default:
		run.Outcome = store.OutcomeError
		run.ErrorMessage = solveErr.Error()
	}

	if err := h.store.Runs().Store(ctx, run); err != nil {
		h.logger.Error("failed to persist solve run", "error", err)
	}

	if solveErr != nil {
		status := http.StatusUnprocessableEntity
		if solveErr == solve.ErrBusy {
			status = http.StatusConflict
		}
		writeJSON(w, status, SolveResponse{RunID: run.ID})
		return
	}

	writeJSON(w, http.StatusOK, SolveResponse{RunID: run.ID, Result: result})
}

// GetRun returns a persisted solve run by ID.
// GET /v1/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing run id")
		return
	}

	run, err := h.store.Runs().Get(r.Context(), id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch run")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// ListRuns returns a page of solve-run summaries.
// GET /v1/runs?outcome=solved&limit=50
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.RunFilter{
		Outcome: store.RunOutcome(q.Get("outcome")),
		Limit:   50,
	}
	if limit := q.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 && l <= 200 {
			filter.Limit = l
		}
	}

	runs, err := h.store.Runs().List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []*store.RunSummary{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// HealthCheck returns server health status.
// GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// APIError represents an error response.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIError{Error: http.StatusText(status), Message: message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// digest hashes a JSON-serializable value into a short content digest,
// used to correlate solve runs against the grid/dictionary that
// produced them without storing them twice.
func digest(v interface{}) string {
	body, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(body)
	return "sha256:" + hex.EncodeToString(sum[:])
}
