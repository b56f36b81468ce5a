package grpc_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"taskboard-microservice/rpc/boardrpc"
	"taskboard-microservice/tasks/adapters/memory"
	taskgrpc "taskboard-microservice/tasks/adapters/grpc"
	"taskboard-microservice/tasks/core"
)

const (
	bufConnSize = 1024 * 1024
	user        = "user-1"
)

func assertStatusCode(t *testing.T, err error, wantCode codes.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %v, got nil", wantCode)
	}
	if status.Code(err) != wantCode {
		t.Fatalf("expected %v, got %v (%v)", wantCode, status.Code(err), err)
	}
}

func newBoardClient(t *testing.T) *boardrpc.BoardClient {
	t.Helper()

	listener := bufconn.Listen(bufConnSize)
	grpcServer := grpc.NewServer()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := core.NewService(memory.New(logger))
	boardrpc.RegisterBoardServer(grpcServer, taskgrpc.NewServer(logger, service))

	go func() {
		_ = grpcServer.Serve(listener)
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		grpcServer.Stop()
		_ = listener.Close()
		t.Fatalf("failed to dial bufconn server: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		grpcServer.Stop()
		_ = listener.Close()
	})

	return boardrpc.NewBoardClient(conn)
}

func mustProject(t *testing.T, c *boardrpc.BoardClient) *core.Project {
	t.Helper()

	p, err := c.CreateProject(context.Background(), &boardrpc.CreateProjectRequest{UserID: user, Name: "board"})
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	return p
}

func TestGRPCPing(t *testing.T) {
	t.Parallel()

	c := newBoardClient(t)
	if _, err := c.Ping(context.Background(), &boardrpc.Empty{}); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}

func TestGRPCTaskLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newBoardClient(t)
	p := mustProject(t, c)

	big := core.TypeBig
	parent, err := c.CreateTask(ctx, &boardrpc.CreateTaskRequest{ProjectID: p.ID, UserID: user, Title: "epic", Type: &big})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	child, err := c.CreateTask(ctx, &boardrpc.CreateTaskRequest{ProjectID: p.ID, UserID: user, Title: "step", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	moved, err := c.SetStatus(ctx, &boardrpc.SetStatusRequest{ID: child.ID, Status: core.StatusInProgress})
	if err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if moved.Timer.Status != core.TimerWorking {
		t.Fatalf("expected working timer, got %v", moved.Timer.Status)
	}

	got, err := c.GetTask(ctx, &boardrpc.TaskRequest{ID: parent.ID})
	if err != nil {
		t.Fatalf("GetTask returned error: %v", err)
	}
	if got.Status != core.StatusInProgress {
		t.Fatalf("expected parent In Progress, got %v", got.Status)
	}

	list, err := c.ListTasks(ctx, &boardrpc.ListTasksRequest{ProjectID: p.ID, TopLevelOnly: true})
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if len(list.Tasks) != 1 || list.Tasks[0].SubtaskCount != 1 {
		t.Fatalf("unexpected list: %+v", list.Tasks)
	}

	if _, err := c.DeleteTask(ctx, &boardrpc.TaskRequest{ID: parent.ID}); err != nil {
		t.Fatalf("DeleteTask returned error: %v", err)
	}
	_, err = c.GetTask(ctx, &boardrpc.TaskRequest{ID: child.ID})
	assertStatusCode(t, err, codes.NotFound)
}

func TestGRPCErrorCodes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newBoardClient(t)
	p := mustProject(t, c)

	task, err := c.CreateTask(ctx, &boardrpc.CreateTaskRequest{ProjectID: p.ID, UserID: user, Title: "task"})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	testCases := []struct {
		name     string
		call     func() error
		wantCode codes.Code
	}{
		{
			name: "nil_id",
			call: func() error {
				_, err := c.GetTask(ctx, &boardrpc.TaskRequest{})
				return err
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "missing_task",
			call: func() error {
				_, err := c.StopTimer(ctx, &boardrpc.TaskRequest{ID: uuid.New()})
				return err
			},
			wantCode: codes.NotFound,
		},
		{
			name: "self_dependency",
			call: func() error {
				_, err := c.AddDependency(ctx, &boardrpc.DependencyRequest{TaskID: task.ID, BlockedByID: task.ID})
				return err
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "timer_idle_mode",
			call: func() error {
				_, err := c.StartTimer(ctx, &boardrpc.StartTimerRequest{ID: task.ID, Mode: core.TimerIdle})
				return err
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "foreign_project",
			call: func() error {
				_, err := c.GetProject(ctx, &boardrpc.ProjectRequest{ProjectID: p.ID, UserID: "stranger"})
				return err
			},
			wantCode: codes.NotFound,
		},
		{
			name: "bad_role",
			call: func() error {
				_, err := c.InviteUser(ctx, &boardrpc.InviteUserRequest{ProjectID: p.ID, UserID: user, Email: "a@b.c", Role: "owner"})
				return err
			},
			wantCode: codes.InvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertStatusCode(t, tc.call(), tc.wantCode)
		})
	}
}

func TestGRPCMessagesUseLabels(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(boardrpc.SetStatusRequest{ID: uuid.New(), Status: core.StatusInProgress})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["status"] != "In Progress" {
		t.Fatalf("expected status label on the wire, got %v", decoded["status"])
	}
}
