package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mtlprog/wealthlens/internal/holding"
	"github.com/mtlprog/wealthlens/internal/report"
)

// Handler provides HTTP endpoints for stored user reports.
type Handler struct {
	reports      *report.Service
	defaultLimit int
}

// NewHandler creates a new report handler. defaultLimit applies when a
// history request has no limit parameter.
func NewHandler(reports *report.Service, defaultLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = report.DefaultListLimit
	}
	return &Handler{reports: reports, defaultLimit: min(defaultLimit, report.MaxListLimit)}
}

func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("userID")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return "", false
	}
	return id, true
}

// GetCurrentReport handles GET /api/v1/users/{userID}/report.
func (h *Handler) GetCurrentReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	rep, err := h.reports.Current(r.Context(), id)
	if err != nil {
		if errors.Is(err, holding.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no holdings found for user")
			return
		}
		slog.Error("failed to build current report", "user", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// GetLatestReport handles GET /api/v1/users/{userID}/reports/latest.
func (h *Handler) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	rep, err := h.reports.GetLatest(r.Context(), id)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no reports found for user")
			return
		}
		slog.Error("failed to get latest report", "user", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// GetReportByDate handles GET /api/v1/users/{userID}/reports/{date}.
func (h *Handler) GetReportByDate(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	dateStr := r.PathValue("date")
	date, err := report.ParseDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	rep, err := h.reports.GetByDate(r.Context(), id, date)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found for date")
			return
		}
		slog.Error("failed to get report by date", "user", id, "date", dateStr, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// ListReports handles GET /api/v1/users/{userID}/reports.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	limit := h.defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, report.MaxListLimit)
		}
	}

	reports, err := h.reports.List(r.Context(), id, limit)
	if err != nil {
		slog.Error("failed to list reports", "user", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

// GenerateReports handles POST /api/v1/reports/generate.
func (h *Handler) GenerateReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.GenerateAll(r.Context(), time.Now())
	if err != nil {
		slog.Error("failed to generate reports", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate reports")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"generated": len(reports)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
