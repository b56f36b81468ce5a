package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"taskboard-microservice/api/adapters/rest"
	"taskboard-microservice/api/core"
)

func Register(r *mux.Router, log *slog.Logger, deps core.Deps, timeout time.Duration) {
	// ping
	r.Handle("/api/ping", NewPingHandler(log, map[string]core.Pinger{"board": deps.Board}, timeout)).
		Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(rest.RequireUser)

	// projects
	api.Handle("/projects", NewCreateProjectHandler(log, deps.Board, timeout)).Methods(http.MethodPost)
	api.Handle("/projects", NewListProjectsHandler(log, deps.Board, timeout)).Methods(http.MethodGet)
	api.Handle("/projects/{id}", NewGetProjectHandler(log, deps.Board, timeout)).Methods(http.MethodGet)
	api.Handle("/projects/{id}/members", NewListMembersHandler(log, deps.Board, timeout)).Methods(http.MethodGet)
	api.Handle("/projects/{id}/invitations", NewInviteHandler(log, deps.Board, timeout)).Methods(http.MethodPost)
	api.Handle("/projects/{id}/tasks", NewListTasksHandler(log, deps.Board, timeout)).Methods(http.MethodGet)
	api.Handle("/projects/{id}/board", NewBoardHandler(log, deps.Board, timeout)).Methods(http.MethodGet)

	// tasks
	api.Handle("/tasks", NewCreateTaskHandler(log, deps.Board, timeout)).Methods(http.MethodPost)
	api.Handle("/tasks/{id}", NewGetTaskHandler(log, deps.Board, timeout)).Methods(http.MethodGet)
	api.Handle("/tasks/{id}", NewPatchTaskHandler(log, deps.Board, timeout)).Methods(http.MethodPatch)
	api.Handle("/tasks/{id}", NewDeleteTaskHandler(log, deps.Board, timeout)).Methods(http.MethodDelete)
	api.Handle("/tasks/{id}/status", NewSetStatusHandler(log, deps.Board, timeout)).Methods(http.MethodPut)
	api.Handle("/tasks/{id}/position", NewRepositionHandler(log, deps.Board, timeout)).Methods(http.MethodPut)
	api.Handle("/tasks/{id}/assignee", NewAssignHandler(log, deps.Board, timeout)).Methods(http.MethodPut)

	// timer
	api.Handle("/tasks/{id}/timer/start", NewStartTimerHandler(log, deps.Board, timeout)).Methods(http.MethodPost)
	api.Handle("/tasks/{id}/timer/stop", NewStopTimerHandler(log, deps.Board, timeout)).Methods(http.MethodPost)

	// dependencies
	api.Handle("/tasks/{id}/dependencies/{blockedById}", NewAddDependencyHandler(log, deps.Board, timeout)).
		Methods(http.MethodPut)
	api.Handle("/tasks/{id}/dependencies/{blockedById}", NewRemoveDependencyHandler(log, deps.Board, timeout)).
		Methods(http.MethodDelete)
}
