package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"taskboard-microservice/api/adapters/rest"
	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/res"
	taskcore "taskboard-microservice/tasks/core"
)

func NewCreateTaskHandler(log *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTaskIn
		if !decode(w, r, &in) {
			return
		}

		projectID, err := uuid.Parse(in.ProjectID)
		if err != nil {
			res.Error(w, "invalid project_id", http.StatusBadRequest)
			return
		}
		parentID, ok := optionalID(w, in.ParentID, "parent_id")
		if !ok {
			return
		}
		st, ok := optionalEnum(w, in.Status, "status", taskcore.ParseTaskStatus)
		if !ok {
			return
		}
		prio, ok := optionalEnum(w, in.Priority, "priority", taskcore.ParsePriority)
		if !ok {
			return
		}
		typ, ok := optionalEnum(w, in.Type, "type", taskcore.ParseTaskType)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CreateTask(ctx, core.CreateTaskInput{
			ProjectID:   projectID,
			CreatorID:   rest.UserFrom(r.Context()),
			Title:       in.Title,
			Description: in.Description,
			Status:      st,
			Priority:    prio,
			Type:        typ,
			ParentID:    parentID,
			Deadline:    in.Deadline,
			AssigneeID:  in.AssigneeID,
		})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		log.Debug("task created", "task_id", t.ID, "project_id", t.ProjectID)
		res.Json(w, t, http.StatusCreated)
	}
}

func NewGetTaskHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.GetTask(ctx, id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewListTasksHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		q := r.URL.Query()
		f := core.ListTasksFilter{ProjectID: id}

		if s := q.Get("status"); s != "" {
			st, err := taskcore.ParseTaskStatus(s)
			if err != nil {
				res.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			f.Status = &st
		}

		if v := q.Get("parent_id"); v != "" {
			pid, err := uuid.Parse(v)
			if err != nil {
				res.Error(w, "invalid parent_id", http.StatusBadRequest)
				return
			}
			f.ParentID = &pid
		}

		if v := q.Get("top_level"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				res.Error(w, "invalid top_level", http.StatusBadRequest)
				return
			}
			f.TopLevelOnly = b
		}

		if f.ParentID != nil && f.TopLevelOnly {
			res.Error(w, "parent_id and top_level are mutually exclusive", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		// membership check; the board service lists by project only
		if _, err := svc.GetProject(ctx, id, rest.UserFrom(r.Context())); err != nil {
			rest.WriteErr(w, err)
			return
		}

		items, err := svc.ListTasks(ctx, f)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"tasks": items}, http.StatusOK)
	}
}

func NewPatchTaskHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var in rest.PatchTaskIn
		if !decode(w, r, &in) {
			return
		}

		p := core.TaskPatch{
			Title:         in.Title,
			Description:   in.Description,
			Deadline:      in.Deadline,
			ClearDeadline: in.ClearDeadline,
		}
		if p.Priority, ok = optionalEnum(w, in.Priority, "priority", taskcore.ParsePriority); !ok {
			return
		}
		if p.Status, ok = optionalEnum(w, in.Status, "status", taskcore.ParseTaskStatus); !ok {
			return
		}

		if p.Title == nil && p.Description == nil && p.Priority == nil &&
			p.Deadline == nil && !p.ClearDeadline && p.Status == nil {
			res.Error(w, "no fields to update", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.PatchTask(ctx, id, p)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewDeleteTaskHandler(log *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		log.Info("task deleted", "task_id", id, "user", rest.UserFrom(r.Context()))
		res.Json(w, map[string]any{"ok": true}, http.StatusOK)
	}
}

func NewSetStatusHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var in rest.StatusIn
		if !decode(w, r, &in) {
			return
		}
		st, err := taskcore.ParseTaskStatus(in.Status)
		if err != nil {
			res.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.SetStatus(ctx, id, st)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewRepositionHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var in rest.PositionIn
		if !decode(w, r, &in) {
			return
		}

		pos := core.RepositionInput{Position: in.Position}
		if pos.AboveID, ok = optionalID(w, in.AboveID, "above_id"); !ok {
			return
		}
		if pos.BelowID, ok = optionalID(w, in.BelowID, "below_id"); !ok {
			return
		}
		if pos.Status, ok = optionalEnum(w, in.Status, "status", taskcore.ParseTaskStatus); !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.Reposition(ctx, id, pos)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewAssignHandler(_ *slog.Logger, svc core.Board, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var in rest.AssigneeIn
		if !decode(w, r, &in) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.AssignTask(ctx, id, in.AssigneeID)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}
