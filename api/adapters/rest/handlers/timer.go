package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"taskboard-microservice/api/adapters/rest"
	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/res"
	taskcore "taskboard-microservice/tasks/core"
)

func NewStartTimerHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		// body is optional
		var in rest.TimerStartIn
		if err := decodeOptional(r, &in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		mode := taskcore.TimerWorking
		if in.Mode != "" {
			m, err := taskcore.ParseTimerStatus(in.Mode)
			if err != nil || m == taskcore.TimerIdle {
				res.Error(w, "invalid mode", http.StatusBadRequest)
				return
			}
			mode = m
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.StartTimer(ctx, id, mode)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewStopTimerHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.StopTimer(ctx, id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func decodeOptional(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}
