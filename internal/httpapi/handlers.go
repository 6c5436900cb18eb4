package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"jobintel-engine/internal/store"
)

type Handler struct {
	DB *store.DB
}

func (h Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h Handler) Latest(w http.ResponseWriter, r *http.Request) {
	records, err := h.DB.LatestSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "snapshot_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h Handler) Partitions(w http.ResponseWriter, r *http.Request) {
	parts, err := h.DB.ListPartitions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, parts)
}

func (h Handler) Rejects(w http.ResponseWriter, r *http.Request) {
	runDate := r.URL.Query().Get("run_date")
	if runDate == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "run_date query parameter is required")
		return
	}
	rejects, err := h.DB.Rejects(r.Context(), runDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "rejects_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rejects)
}

func (h Handler) Summary(w http.ResponseWriter, r *http.Request) {
	runDate := r.URL.Query().Get("run_date")
	if runDate == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "run_date query parameter is required")
		return
	}
	stats, err := h.DB.Summary(r.Context(), runDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "summary_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var e apiError
	e.Error.Code = code
	e.Error.Message = message
	writeJSON(w, status, e)
}
