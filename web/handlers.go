package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// handleConfig returns the active configuration. The dashboard is
// read-only for now; edits go through the config file.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := s.GetConfig()

	resp := struct {
		WinTrigger    bool   `json:"winTrigger"`
		AltTrigger    bool   `json:"altTrigger"`
		Mode          string `json:"mode"`
		ThresholdMs   int    `json:"thresholdMs"`
		DummyKey      string `json:"dummyKey"`
		WebPort       int    `json:"webPort"`
		DeveloperMode bool   `json:"developerMode"`
	}{
		WinTrigger:    cfg.Triggers.Win,
		AltTrigger:    cfg.Triggers.Alt,
		Mode:          cfg.Suppress.Mode,
		ThresholdMs:   cfg.Suppress.ThresholdMs,
		DummyKey:      cfg.Suppress.DummyKey,
		WebPort:       cfg.Web.Port,
		DeveloperMode: cfg.DeveloperMode,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleStats returns statistics for the specified time range
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days := 7 // default to 7 days
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	overall, err := s.db.GetOverallStats(days)
	if err != nil {
		slog.Error("Failed to get overall stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	daily, err := s.db.GetDailyStats(days)
	if err != nil {
		slog.Error("Failed to get daily stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	byTrigger, err := s.db.GetTriggerStats(days)
	if err != nil {
		slog.Error("Failed to get trigger stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	resp := struct {
		Days      int `json:"days"`
		Overall   any `json:"overall"`
		Daily     any `json:"daily"`
		ByTrigger any `json:"byTrigger"`
	}{
		Days:      days,
		Overall:   overall,
		Daily:     daily,
		ByTrigger: byTrigger,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleHistory returns recent decisions with pagination
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	decisions, err := s.db.GetDecisions(limit, offset)
	if err != nil {
		slog.Error("Failed to get decision history", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}

	type item struct {
		ID         int64  `json:"id"`
		Timestamp  string `json:"timestamp"`
		Trigger    string `json:"trigger"`
		DurationMs int64  `json:"durationMs"`
		Suppressed bool   `json:"suppressed"`
		Error      string `json:"error,omitempty"`
	}

	items := make([]item, 0, len(decisions))
	for _, d := range decisions {
		items = append(items, item{
			ID:         d.ID,
			Timestamp:  d.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			Trigger:    d.Trigger,
			DurationMs: d.DurationMs,
			Suppressed: d.Suppressed,
			Error:      d.ErrorMessage,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// handleStatus reports whether suppression is currently active
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := "running"
	if s.paused != nil && s.paused() {
		status = "paused"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
