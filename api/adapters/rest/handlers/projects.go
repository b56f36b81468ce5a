package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskboard-microservice/api/adapters/rest"
	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/board"
	"taskboard-microservice/api/pkg/res"
)

func NewCreateProjectHandler(log *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateProjectIn
		if !decode(w, r, &in) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		p, err := svc.CreateProject(ctx, core.CreateProjectInput{
			CreatorID:   rest.UserFrom(r.Context()),
			Name:        in.Name,
			Description: in.Description,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
		})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		log.Info("project created", "project_id", p.ID, "user", p.CreatorID)
		res.Json(w, p, http.StatusCreated)
	}
}

func NewListProjectsHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListProjects(ctx, rest.UserFrom(r.Context()))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"projects": items}, http.StatusOK)
	}
}

func NewGetProjectHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		p, err := svc.GetProject(ctx, id, rest.UserFrom(r.Context()))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, p, http.StatusOK)
	}
}

func NewListMembersHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListMembers(ctx, id, rest.UserFrom(r.Context()))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"members": items}, http.StatusOK)
	}
}

func NewInviteHandler(log *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var in rest.InviteIn
		if !decode(w, r, &in) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		inv, err := svc.InviteUser(ctx, id, rest.UserFrom(r.Context()), in.Email, in.Role)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		log.Info("invitation created", "project_id", id, "invitation_id", inv.ID)
		res.Json(w, inv, http.StatusCreated)
	}
}

// NewBoardHandler renders the project's top-level tasks grouped into status columns.
func NewBoardHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		p, err := svc.GetProject(ctx, id, rest.UserFrom(r.Context()))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}

		rows, err := svc.ListTasks(ctx, core.ListTasksFilter{ProjectID: id})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{
			"project": p,
			"columns": board.New(rows).Columns(),
		}, http.StatusOK)
	}
}
