package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"taskboard-microservice/api/adapters/rest"
	"taskboard-microservice/api/adapters/rest/handlers"
	"taskboard-microservice/api/core"
	taskcore "taskboard-microservice/tasks/core"
)

// fakeBoard implements the calls the tests exercise; anything else panics via the nil interface.
type fakeBoard struct {
	core.Board

	pingErr    error
	project    core.Project
	projectErr error
	rows       []core.TaskSummary
	task       core.Task
	taskErr    error

	gotCreator string
	gotStatus  core.TaskStatus
	gotMode    core.TimerStatus
	gotFilter  core.ListTasksFilter
}

func (f *fakeBoard) Ping(context.Context) error { return f.pingErr }

func (f *fakeBoard) CreateProject(_ context.Context, in core.CreateProjectInput) (core.Project, error) {
	f.gotCreator = in.CreatorID
	return core.Project{ID: uuid.New(), Name: in.Name, CreatorID: in.CreatorID}, nil
}

func (f *fakeBoard) GetProject(context.Context, uuid.UUID, string) (core.Project, error) {
	return f.project, f.projectErr
}

func (f *fakeBoard) ListTasks(_ context.Context, flt core.ListTasksFilter) ([]core.TaskSummary, error) {
	f.gotFilter = flt
	return f.rows, nil
}

func (f *fakeBoard) GetTask(context.Context, uuid.UUID) (core.TaskDetails, error) {
	return core.TaskDetails{Task: f.task}, f.taskErr
}

func (f *fakeBoard) SetStatus(_ context.Context, _ uuid.UUID, st core.TaskStatus) (core.Task, error) {
	f.gotStatus = st
	return f.task, f.taskErr
}

func (f *fakeBoard) StartTimer(_ context.Context, _ uuid.UUID, mode core.TimerStatus) (core.Task, error) {
	f.gotMode = mode
	return f.task, f.taskErr
}

func newRouter(fb *fakeBoard) http.Handler {
	r := mux.NewRouter()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers.Register(r, log, core.Deps{Board: fb}, time.Second)
	return r
}

func do(h http.Handler, method, path, body string, withUser bool) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if withUser {
		req.Header.Set(rest.UserHeader, "user-1")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	t.Parallel()

	rec := do(newRouter(&fakeBoard{}), http.MethodGet, "/api/ping", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = do(newRouter(&fakeBoard{pingErr: errors.New("down")}), http.MethodGet, "/api/ping", "", false)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRequireUser(t *testing.T) {
	t.Parallel()

	rec := do(newRouter(&fakeBoard{}), http.MethodGet, "/api/projects/"+uuid.NewString(), "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateProject_UsesActingUser(t *testing.T) {
	t.Parallel()

	fb := &fakeBoard{}
	rec := do(newRouter(fb), http.MethodPost, "/api/projects", `{"name":"Apollo"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if fb.gotCreator != "user-1" {
		t.Fatalf("expected creator user-1, got %q", fb.gotCreator)
	}
}

func TestBadRequests(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"malformed id", http.MethodGet, "/api/tasks/not-a-uuid", ""},
		{"invalid json", http.MethodPut, "/api/tasks/" + id + "/status", "{"},
		{"unknown status", http.MethodPut, "/api/tasks/" + id + "/status", `{"status":"Sleeping"}`},
		{"idle timer mode", http.MethodPost, "/api/tasks/" + id + "/timer/start", `{"mode":"idle"}`},
		{"conflicting filter", http.MethodGet, "/api/projects/" + id + "/tasks?top_level=true&parent_id=" + id, ""},
		{"empty patch", http.MethodPatch, "/api/tasks/" + id, `{}`},
		{"bad project id", http.MethodPost, "/api/tasks", `{"project_id":"x","title":"t"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(newRouter(&fakeBoard{}), tc.method, tc.path, tc.body, true)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code int
	}{
		{core.ErrNotFound, http.StatusNotFound},
		{core.ErrBadArguments, http.StatusBadRequest},
		{core.ErrAlreadyExists, http.StatusConflict},
		{core.ErrUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: %w", core.ErrUnavailable, context.DeadlineExceeded), http.StatusGatewayTimeout},
		{core.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		fb := &fakeBoard{taskErr: tc.err}
		rec := do(newRouter(fb), http.MethodGet, "/api/tasks/"+uuid.NewString(), "", true)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestSetStatus_AcceptsSnakeLabels(t *testing.T) {
	t.Parallel()

	fb := &fakeBoard{}
	rec := do(newRouter(fb), http.MethodPut, "/api/tasks/"+uuid.NewString()+"/status", `{"status":"in_progress"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if fb.gotStatus != taskcore.StatusInProgress {
		t.Fatalf("expected In Progress, got %v", fb.gotStatus)
	}
}

func TestStartTimer_DefaultsToWorking(t *testing.T) {
	t.Parallel()

	fb := &fakeBoard{gotMode: taskcore.TimerIdle}
	rec := do(newRouter(fb), http.MethodPost, "/api/tasks/"+uuid.NewString()+"/timer/start", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fb.gotMode != taskcore.TimerWorking {
		t.Fatalf("expected working mode, got %v", fb.gotMode)
	}
}

func TestListTasks_ChecksMembership(t *testing.T) {
	t.Parallel()

	fb := &fakeBoard{projectErr: core.ErrNotFound}
	rec := do(newRouter(fb), http.MethodGet, "/api/projects/"+uuid.NewString()+"/tasks", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBoard_GroupsColumns(t *testing.T) {
	t.Parallel()

	pid := uuid.New()
	todo := taskcore.Task{ID: uuid.New(), ProjectID: pid, Status: taskcore.StatusToDo, Position: 1000}
	done := taskcore.Task{ID: uuid.New(), ProjectID: pid, Status: taskcore.StatusDone, Position: 2000}
	fb := &fakeBoard{
		project: core.Project{ID: pid, Name: "Apollo"},
		rows:    []core.TaskSummary{{Task: todo}, {Task: done}},
	}

	rec := do(newRouter(fb), http.MethodGet, "/api/projects/"+pid.String()+"/board", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fb.gotFilter.ProjectID != pid {
		t.Fatalf("expected tasks listed for %s, got %s", pid, fb.gotFilter.ProjectID)
	}

	var out struct {
		Columns []struct {
			Status string `json:"status"`
			Cards  []struct {
				ID uuid.UUID `json:"id"`
			} `json:"cards"`
		} `json:"columns"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Columns) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(out.Columns))
	}
	if out.Columns[0].Status != "To Do" || len(out.Columns[0].Cards) != 1 || out.Columns[0].Cards[0].ID != todo.ID {
		t.Fatalf("unexpected To Do column: %+v", out.Columns[0])
	}
	if out.Columns[4].Status != "Done" || len(out.Columns[4].Cards) != 1 {
		t.Fatalf("unexpected Done column: %+v", out.Columns[4])
	}
}
