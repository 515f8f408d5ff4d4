// Package server exposes the schedule registry over a local HTTP API. The
// routes and payload shapes follow the browser-extension contract: per-date
// schedule documents, copy-forward, add and delete task.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/sandeepkv93/daysched/internal/clock"
	"github.com/sandeepkv93/daysched/internal/model"
	"github.com/sandeepkv93/daysched/internal/registry"
)

type Handler struct {
	registry *registry.Registry
	log      *slog.Logger
	now      func() time.Time
}

func New(reg *registry.Registry, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{registry: reg, log: log, now: time.Now}
}

// Routes builds the full handler chain including CORS.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(h.mux())
}

func (h *Handler) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /schedule", h.handleToday)
	mux.HandleFunc("GET /schedule/available_dates", h.handleAvailableDates)
	mux.HandleFunc("GET /schedule/{date}", h.handleScheduleByDate)
	mux.HandleFunc("POST /schedule/copy", h.handleCopy)
	mux.HandleFunc("POST /add_task", h.handleAddTask)
	mux.HandleFunc("DELETE /delete_task/{task_id}", h.handleDeleteTask)
	return mux
}

func (h *Handler) today() string {
	return h.now().Format(model.DateLayout)
}

func (h *Handler) yesterday() string {
	return h.now().AddDate(0, 0, -1).Format(model.DateLayout)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "running",
		"endpoints": map[string]string{
			"/schedule":                 "Get today's schedule",
			"/schedule/{date}":          "Get schedule by date",
			"/schedule/copy":            "Copy yesterday's schedule onto today",
			"/schedule/available_dates": "List dates with a stored schedule",
			"/add_task":                 "Add a task",
			"/delete_task/{task_id}":    "Delete a task",
			"/health":                   "Check server health",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	h.writeSchedule(w, r, h.today())
}

func (h *Handler) handleScheduleByDate(w http.ResponseWriter, r *http.Request) {
	h.writeSchedule(w, r, r.PathValue("date"))
}

func (h *Handler) writeSchedule(w http.ResponseWriter, r *http.Request, date string) {
	sched, err := h.registry.Day(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (h *Handler) handleAvailableDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.registry.Dates(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"dates": dates})
}

func (h *Handler) handleCopy(w http.ResponseWriter, r *http.Request) {
	source, target := h.yesterday(), h.today()
	_, appended, err := h.registry.CopyDay(r.Context(), source, target)
	if err != nil {
		h.writeCopyError(w, err)
		return
	}
	message := "Schedule copied successfully"
	if appended {
		message = "Schedule copied and appended successfully"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": message})
}

type addTaskRequest struct {
	Date         string                      `json:"date"`
	Name         string                      `json:"name"`
	StartTime    string                      `json:"start_time"`
	EndTime      string                      `json:"end_time"`
	Subtasks     []string                    `json:"subtasks"`
	Notification *model.NotificationSettings `json:"notification"`
}

func (h *Handler) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	date := req.Date
	if date == "" {
		date = h.today()
	}
	task := model.Task{
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Subtasks:     req.Subtasks,
		Notification: req.Notification,
	}
	id, err := h.registry.AddTask(r.Context(), date, task)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "task_id": id})
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("task_id")
	deleted, err := h.registry.DeleteTask(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"message":      fmt.Sprintf("Task %s deleted successfully", id),
		"deleted_task": deleted,
	})
}

// writeError maps the registry/store error taxonomy onto status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validation *registry.ValidationError
		conflict   *registry.ConflictError
		notFound   *registry.NotFoundError
		parse      *clock.ParseError
	)
	switch {
	case errors.As(err, &conflict):
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("Time conflict with task: %s", conflict.TaskName))
	case errors.As(err, &validation):
		writeErr(w, http.StatusBadRequest, validation.Reason)
	case errors.As(err, &parse):
		writeErr(w, http.StatusBadRequest, parse.Error())
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":           fmt.Sprintf("Task '%s' not found", notFound.TaskID),
			"available_tasks": notFound.Available,
		})
	default:
		h.log.Error("request failed", "error", err)
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// writeCopyError is writeError plus the copy-specific 404 for a missing
// source day.
func (h *Handler) writeCopyError(w http.ResponseWriter, err error) {
	var empty *registry.EmptySourceError
	if errors.As(err, &empty) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"status":  "error",
			"message": fmt.Sprintf("No schedule found for date %s", empty.Date),
		})
		return
	}
	var conflict *registry.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": fmt.Sprintf("Time conflict with task: %s", conflict.TaskName),
		})
		return
	}
	h.log.Error("copy failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"status":  "error",
		"message": fmt.Sprintf("Error copying schedule: %v", err),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
