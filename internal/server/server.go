// Package server exposes a row store as the sprout HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/rowstore"
	"github.com/hay-kot/sprout/pkg/randid"
)

// Server serves the JSON API over a row store. The store serializes its own
// row mutations; handlers never lock.
type Server struct {
	store rowstore.Store
	log   zerolog.Logger
}

// New creates a Server over the given store.
func New(store rowstore.Store, log zerolog.Logger) *Server {
	return &Server{store: store, log: log}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/v1/data", s.handleInitialData)
	mux.HandleFunc("POST /api/v1/tasks", s.handleAddTask)
	mux.HandleFunc("PATCH /api/v1/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/v1/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /api/v1/logs/toggle", s.handleToggleLog)

	return s.requestLogger(mux)
}

// ListenAndServe runs the API until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type taskRequest struct {
	Title string `json:"title"`
}

type toggleRequest struct {
	Date   string `json:"date"`
	TaskID string `json:"task_id"`
	Done   bool   `json:"done"`
}

type initialDataResponse struct {
	Tasks []habit.Task `json:"tasks"`
	Logs  []habit.Log  `json:"logs"`
}

type deleteResponse struct {
	Deleted     bool `json:"deleted"`
	LogsRemoved int  `json:"logs_removed"`
}

func (s *Server) handleInitialData(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.Tasks.GetAll(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	logs, err := s.store.Logs.GetAll(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}

	if tasks == nil {
		tasks = []habit.Task{}
	}
	if logs == nil {
		logs = []habit.Log{}
	}
	writeJSON(w, http.StatusOK, initialDataResponse{Tasks: tasks, Logs: logs})
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, "title must not be empty")
		return
	}

	task := habit.Task{
		ID:        "t_" + randid.Generate(12),
		Title:     req.Title,
		CreatedAt: time.Now(),
	}

	task, err := s.store.Tasks.Add(r.Context(), task)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, "title must not be empty")
		return
	}

	task, err := s.store.Tasks.Update(r.Context(), r.PathValue("id"), req.Title)
	if errors.Is(err, rowstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Cascade logs before the task row so a failure can't orphan logs
	// behind a deleted task.
	removed, err := s.store.Logs.DeleteByTaskID(r.Context(), id)
	if err != nil {
		s.internalError(w, err)
		return
	}

	deleted, err := s.store.Tasks.Delete(r.Context(), id)
	if err != nil {
		s.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted, LogsRemoved: removed})
}

func (s *Server) handleToggleLog(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Date == "" || req.TaskID == "" {
		writeError(w, http.StatusUnprocessableEntity, "date and task_id are required")
		return
	}
	if _, err := habit.ParseDate(req.Date); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "date must be YYYY-MM-DD")
		return
	}

	if req.Done {
		// Add only if absent; redundant confirms are fine, duplicate
		// rows are not.
		logs, err := s.store.Logs.GetAll(r.Context())
		if err != nil {
			s.internalError(w, err)
			return
		}
		present := false
		for _, l := range logs {
			if l.Matches(req.Date, req.TaskID) {
				present = true
				break
			}
		}
		if !present {
			_, err := s.store.Logs.Add(r.Context(), habit.Log{
				Date:      req.Date,
				TaskID:    req.TaskID,
				Timestamp: time.Now(),
			})
			if err != nil {
				s.internalError(w, err)
				return
			}
		}
	} else {
		if _, err := s.store.Logs.Delete(r.Context(), req.Date, req.TaskID); err != nil {
			s.internalError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, req)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
