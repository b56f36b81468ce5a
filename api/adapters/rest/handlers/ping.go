package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/res"
)

type pingResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

// NewPingHandler pings every dependency and answers 503 if any of them is down.
func NewPingHandler(log *slog.Logger, pingmap map[string]core.Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out := make(map[string]pingResult, len(pingmap))
		code := http.StatusOK

		for name, p := range pingmap {
			started := time.Now()
			err := p.Ping(ctx)
			result := pingResult{Status: "ok", LatencyMS: time.Since(started).Milliseconds()}
			if err != nil {
				log.Warn("ping failed", "service", name, "error", err)
				result.Status = "down"
				code = http.StatusServiceUnavailable
			}
			out[name] = result
		}

		res.Json(w, map[string]any{"services": out}, code)
	}
}
