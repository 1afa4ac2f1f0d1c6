package controllers

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthController struct {
	started  time.Time
	sessions func() int64
}

// NewHealthController reports the number of live sockets from sessions.
func NewHealthController(sessions func() int64) *HealthController {
	return &HealthController{started: time.Now(), sessions: sessions}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var live int64
	if h.sessions != nil {
		live = h.sessions()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"sessions": live,
		"uptime_s": int64(time.Since(h.started).Seconds()),
	})
}
