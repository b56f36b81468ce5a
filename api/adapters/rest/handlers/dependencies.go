package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskboard-microservice/api/adapters/rest"
	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/res"
)

func NewAddDependencyHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		blockedBy, ok := pathID(w, r, "blockedById")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.AddDependency(ctx, id, blockedBy)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewRemoveDependencyHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		blockedBy, ok := pathID(w, r, "blockedById")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.RemoveDependency(ctx, id, blockedBy); err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"ok": true}, http.StatusOK)
	}
}
