package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"gopkg.in/yaml.v3"

	"taskboard-microservice/api/adapters/tasks"
	apicore "taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/board"
	"taskboard-microservice/rpc/boardrpc"
	taskgrpc "taskboard-microservice/tasks/adapters/grpc"
	"taskboard-microservice/tasks/adapters/memory"
	"taskboard-microservice/tasks/core"
)

// startBoard serves an in-memory board over bufconn and points dial at it.
func startBoard(t *testing.T) {
	t.Helper()

	listener := bufconn.Listen(1024 * 1024)
	grpcServer := grpc.NewServer()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	boardrpc.RegisterBoardServer(grpcServer, taskgrpc.NewServer(logger, core.NewService(memory.New(logger))))
	go func() {
		_ = grpcServer.Serve(listener)
	}()

	prev := dial
	dial = func(string, *slog.Logger) (apicore.Board, func() error, error) {
		conn, err := grpc.NewClient(
			"passthrough:///bufnet",
			grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
				return listener.Dial()
			}),
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, nil, err
		}
		c := tasks.NewFromConn(conn, logger)
		return c, c.Close, nil
	}

	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		dial = prev
		grpcServer.Stop()
		_ = listener.Close()
	})
}

// resetFlags puts every flag back to its default; cobra keeps values between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRunJSON(t *testing.T, dst any, args ...string) {
	t.Helper()

	out, err := run(t, append(args, "--user", "user-1", "-o", "json")...)
	if err != nil {
		t.Fatalf("boardctl %s: %v", strings.Join(args, " "), err)
	}
	if err := json.Unmarshal([]byte(out), dst); err != nil {
		t.Fatalf("decode output of %s: %v\n%s", strings.Join(args, " "), err, out)
	}
}

func TestWorkflow(t *testing.T) {
	startBoard(t)

	var project apicore.Project
	mustRunJSON(t, &project, "projects", "create", "--name", "Apollo", "--start", "2026-01-01")
	if project.Name != "Apollo" || project.StartDate == nil {
		t.Fatalf("unexpected project: %+v", project)
	}
	pid := project.ID.String()

	var epic, child, blocker apicore.Task
	mustRunJSON(t, &epic, "tasks", "create", "--project", pid, "--title", "Epic", "--type", "big")
	mustRunJSON(t, &child, "tasks", "create", "--project", pid, "--title", "Child", "--parent", epic.ID.String())
	mustRunJSON(t, &blocker, "tasks", "create", "--project", pid, "--title", "Blocker", "--priority", "high")

	if child.ParentID == nil || *child.ParentID != epic.ID {
		t.Fatalf("expected child under epic, got %v", child.ParentID)
	}
	if blocker.Priority != core.PriorityHigh {
		t.Fatalf("expected High priority, got %v", blocker.Priority)
	}

	var moved apicore.Task
	mustRunJSON(t, &moved, "status", child.ID.String(), "in_progress")
	if moved.Status != core.StatusInProgress || moved.Timer.Status != core.TimerWorking {
		t.Fatalf("expected running child, got %v / %v", moved.Status, moved.Timer.Status)
	}

	var shown apicore.TaskDetails
	mustRunJSON(t, &shown, "tasks", "show", epic.ID.String())
	if shown.Status != core.StatusInProgress {
		t.Fatalf("expected epic to follow its child, got %v", shown.Status)
	}

	var stopped apicore.Task
	mustRunJSON(t, &stopped, "timer", "stop", child.ID.String())
	if stopped.Timer.Status != core.TimerIdle {
		t.Fatalf("expected idle timer, got %v", stopped.Timer.Status)
	}

	var blocked apicore.Task
	mustRunJSON(t, &blocked, "dep", "add", epic.ID.String(), blocker.ID.String())
	if blocked.Status != core.StatusBlocked {
		t.Fatalf("expected epic Blocked, got %v", blocked.Status)
	}

	var assigned apicore.Task
	mustRunJSON(t, &assigned, "assign", blocker.ID.String(), "user-2")
	if assigned.AssigneeID == nil || *assigned.AssigneeID != "user-2" {
		t.Fatalf("expected user-2, got %v", assigned.AssigneeID)
	}

	var rows []apicore.TaskSummary
	mustRunJSON(t, &rows, "tasks", "list", "--project", pid, "--top-level")
	if len(rows) != 2 {
		t.Fatalf("expected 2 top-level tasks, got %d", len(rows))
	}

	out, err := run(t, "board", pid, "--user", "user-1", "--subtasks")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	for _, want := range []string{"Apollo", "Blocked (1)", "To Do (1)", "Epic", "- " + child.ID.String()} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected board output to contain %q:\n%s", want, out)
		}
	}

	out, err = run(t, "board", pid, "--user", "user-1", "-o", "yaml")
	if err != nil {
		t.Fatalf("board yaml: %v", err)
	}
	var doc struct {
		Columns []struct {
			Status string `yaml:"status"`
		} `yaml:"columns"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(doc.Columns) != 5 || doc.Columns[0].Status != "To Do" {
		t.Fatalf("unexpected yaml columns: %+v", doc.Columns)
	}

	if _, err := run(t, "dep", "rm", epic.ID.String(), blocker.ID.String()); err != nil {
		t.Fatalf("dep rm: %v", err)
	}
	if _, err := run(t, "tasks", "delete", epic.ID.String()); err != nil {
		t.Fatalf("tasks delete: %v", err)
	}
	if _, err := run(t, "tasks", "show", child.ID.String()); err == nil {
		t.Fatalf("expected subtask to be gone with its parent")
	}
}

func TestBoardFlag_ShowsReconciledColumns(t *testing.T) {
	startBoard(t)

	var project apicore.Project
	mustRunJSON(t, &project, "projects", "create", "--name", "Hermes")
	pid := project.ID.String()

	var a, b apicore.Task
	mustRunJSON(t, &a, "tasks", "create", "--project", pid, "--title", "A")
	mustRunJSON(t, &b, "tasks", "create", "--project", pid, "--title", "B", "--priority", "high")

	column := func(r boardResult, st core.TaskStatus) board.Column {
		for _, c := range r.Columns {
			if c.Status == st {
				return c
			}
		}
		t.Fatalf("no %v column in %+v", st, r.Columns)
		return board.Column{}
	}

	var afterStatus boardResult
	mustRunJSON(t, &afterStatus, "status", a.ID.String(), "done", "--board")
	if afterStatus.Task.Status != core.StatusDone {
		t.Fatalf("expected A Done, got %v", afterStatus.Task.Status)
	}
	if done := column(afterStatus, core.StatusDone); len(done.Cards) != 1 || done.Cards[0].ID != a.ID {
		t.Fatalf("unexpected Done column: %+v", done)
	}

	var afterMove boardResult
	mustRunJSON(t, &afterMove, "move", b.ID.String(), "--status", "done", "--board")
	done := column(afterMove, core.StatusDone)
	if len(done.Cards) != 2 || done.Cards[0].ID != b.ID {
		t.Fatalf("expected B on top of Done, got %+v", done)
	}
	if want := done.Cards[1].Position + core.PositionStep; done.Cards[0].Position != want {
		t.Fatalf("expected B at %v, got %v", want, done.Cards[0].Position)
	}

	var afterStart boardResult
	mustRunJSON(t, &afterStart, "timer", "start", b.ID.String(), "--board")
	if afterStart.Task.Timer.Status != core.TimerWorking {
		t.Fatalf("expected running timer, got %v", afterStart.Task.Timer.Status)
	}

	if _, err := run(t, "move", b.ID.String(), "--board", "--user", "user-1"); err == nil {
		t.Fatalf("expected a move with nothing to do to fail")
	}

	out, err := run(t, "timer", "stop", b.ID.String(), "--board", "--subtasks", "--user", "user-1")
	if err != nil {
		t.Fatalf("timer stop --board: %v", err)
	}
	for _, want := range []string{"Project " + pid, "Done (2)", "B"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestErrors(t *testing.T) {
	startBoard(t)

	cases := []struct {
		name string
		args []string
	}{
		{"missing user", []string{"projects", "list"}},
		{"unknown output", []string{"projects", "list", "--user", "u", "-o", "xml"}},
		{"bad task id", []string{"status", "nope", "done"}},
		{"bad status", []string{"status", "6f1c2b9e-8d36-4c1a-9d0e-0a7f8f0c1d2e", "sleeping"}},
		{"idle timer mode", []string{"timer", "start", "6f1c2b9e-8d36-4c1a-9d0e-0a7f8f0c1d2e", "--mode", "idle"}},
		{"bad date", []string{"projects", "create", "--user", "u", "--name", "x", "--start", "01/02/2026"}},
		{"unknown task", []string{"tasks", "show", "6f1c2b9e-8d36-4c1a-9d0e-0a7f8f0c1d2e"}},
		{"parent and top-level", []string{"tasks", "list", "--project", "6f1c2b9e-8d36-4c1a-9d0e-0a7f8f0c1d2e", "--parent", "6f1c2b9e-8d36-4c1a-9d0e-0a7f8f0c1d2e", "--top-level"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := run(t, tc.args...); err == nil {
				t.Fatalf("expected error for %v", tc.args)
			}
		})
	}
}

func TestWriteYAML_UsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	in := apicore.Task{Title: "t", TotalTimeSpent: 90, Status: core.StatusBreak}
	if err := writeYAML(&buf, in); err != nil {
		t.Fatalf("writeYAML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"title: t", "total_time_spent: 90", "status: Break"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	if got := formatDuration(90); got != "1m30s" {
		t.Fatalf("expected 1m30s, got %s", got)
	}
}
