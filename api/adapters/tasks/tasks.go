package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	apicore "taskboard-microservice/api/core"
	"taskboard-microservice/rpc/boardrpc"
)

type Client struct {
	log  *slog.Logger
	conn *grpc.ClientConn

	board *boardrpc.BoardClient
}

func NewClient(address string, log *slog.Logger) (*Client, error) {
	conn, err := grpc.NewClient(
		address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("new grpc client for %s: %w", address, err)
	}

	return NewFromConn(conn, log), nil
}

// NewFromConn wraps an existing connection, e.g. a bufconn one in tests.
func NewFromConn(conn *grpc.ClientConn, log *slog.Logger) *Client {
	return &Client{
		log:   log,
		conn:  conn,
		board: boardrpc.NewBoardClient(conn),
	}
}

func (c *Client) Close() error { return c.conn.Close() }

// ---- Pinger

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.board.Ping(ctx, &boardrpc.Empty{})
	return mapGRPCErr(err)
}

// ---- Projects

func (c *Client) CreateProject(ctx context.Context, in apicore.CreateProjectInput) (apicore.Project, error) {
	resp, err := c.board.CreateProject(ctx, &boardrpc.CreateProjectRequest{
		UserID:      in.CreatorID,
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		return apicore.Project{}, mapGRPCErr(err)
	}
	return *resp, nil
}

func (c *Client) ListProjects(ctx context.Context, userID string) ([]apicore.Project, error) {
	resp, err := c.board.ListProjects(ctx, &boardrpc.ListProjectsRequest{UserID: userID})
	if err != nil {
		return nil, mapGRPCErr(err)
	}
	return resp.Projects, nil
}

func (c *Client) GetProject(ctx context.Context, projectID uuid.UUID, userID string) (apicore.Project, error) {
	resp, err := c.board.GetProject(ctx, &boardrpc.ProjectRequest{ProjectID: projectID, UserID: userID})
	if err != nil {
		return apicore.Project{}, mapGRPCErr(err)
	}
	return *resp, nil
}

func (c *Client) ListMembers(ctx context.Context, projectID uuid.UUID, userID string) ([]apicore.Member, error) {
	resp, err := c.board.ListMembers(ctx, &boardrpc.ProjectRequest{ProjectID: projectID, UserID: userID})
	if err != nil {
		return nil, mapGRPCErr(err)
	}
	return resp.Members, nil
}

func (c *Client) InviteUser(ctx context.Context, projectID uuid.UUID, userID, email, role string) (apicore.Invitation, error) {
	resp, err := c.board.InviteUser(ctx, &boardrpc.InviteUserRequest{
		ProjectID: projectID,
		UserID:    userID,
		Email:     email,
		Role:      role,
	})
	if err != nil {
		return apicore.Invitation{}, mapGRPCErr(err)
	}
	return *resp, nil
}

// ---- Tasks

func (c *Client) CreateTask(ctx context.Context, in apicore.CreateTaskInput) (apicore.Task, error) {
	resp, err := c.board.CreateTask(ctx, &boardrpc.CreateTaskRequest{
		ProjectID:   in.ProjectID,
		UserID:      in.CreatorID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Type:        in.Type,
		ParentID:    in.ParentID,
		Deadline:    in.Deadline,
		AssigneeID:  in.AssigneeID,
	})
	return taskOrErr(resp, err)
}

func (c *Client) GetTask(ctx context.Context, id uuid.UUID) (apicore.TaskDetails, error) {
	resp, err := c.board.GetTask(ctx, &boardrpc.TaskRequest{ID: id})
	if err != nil {
		return apicore.TaskDetails{}, mapGRPCErr(err)
	}
	return *resp, nil
}

func (c *Client) ListTasks(ctx context.Context, f apicore.ListTasksFilter) ([]apicore.TaskSummary, error) {
	resp, err := c.board.ListTasks(ctx, &boardrpc.ListTasksRequest{
		ProjectID:    f.ProjectID,
		Status:       f.Status,
		ParentID:     f.ParentID,
		TopLevelOnly: f.TopLevelOnly,
	})
	if err != nil {
		return nil, mapGRPCErr(err)
	}
	return resp.Tasks, nil
}

func (c *Client) PatchTask(ctx context.Context, id uuid.UUID, p apicore.TaskPatch) (apicore.Task, error) {
	resp, err := c.board.PatchTask(ctx, &boardrpc.PatchTaskRequest{
		ID:            id,
		Title:         p.Title,
		Description:   p.Description,
		Priority:      p.Priority,
		Deadline:      p.Deadline,
		ClearDeadline: p.ClearDeadline,
		Status:        p.Status,
	})
	return taskOrErr(resp, err)
}

func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	_, err := c.board.DeleteTask(ctx, &boardrpc.TaskRequest{ID: id})
	return mapGRPCErr(err)
}

func (c *Client) SetStatus(ctx context.Context, id uuid.UUID, st apicore.TaskStatus) (apicore.Task, error) {
	resp, err := c.board.SetStatus(ctx, &boardrpc.SetStatusRequest{ID: id, Status: st})
	return taskOrErr(resp, err)
}

func (c *Client) Reposition(ctx context.Context, id uuid.UUID, in apicore.RepositionInput) (apicore.Task, error) {
	resp, err := c.board.Reposition(ctx, &boardrpc.RepositionRequest{
		ID:       id,
		Position: in.Position,
		AboveID:  in.AboveID,
		BelowID:  in.BelowID,
		Status:   in.Status,
	})
	return taskOrErr(resp, err)
}

func (c *Client) AssignTask(ctx context.Context, id uuid.UUID, assigneeID *string) (apicore.Task, error) {
	resp, err := c.board.AssignTask(ctx, &boardrpc.AssignTaskRequest{ID: id, AssigneeID: assigneeID})
	return taskOrErr(resp, err)
}

// ---- Timer

func (c *Client) StartTimer(ctx context.Context, id uuid.UUID, mode apicore.TimerStatus) (apicore.Task, error) {
	resp, err := c.board.StartTimer(ctx, &boardrpc.StartTimerRequest{ID: id, Mode: mode})
	return taskOrErr(resp, err)
}

func (c *Client) StopTimer(ctx context.Context, id uuid.UUID) (apicore.Task, error) {
	resp, err := c.board.StopTimer(ctx, &boardrpc.TaskRequest{ID: id})
	return taskOrErr(resp, err)
}

// ---- Dependencies

func (c *Client) AddDependency(ctx context.Context, taskID, blockedByID uuid.UUID) (apicore.Task, error) {
	resp, err := c.board.AddDependency(ctx, &boardrpc.DependencyRequest{TaskID: taskID, BlockedByID: blockedByID})
	return taskOrErr(resp, err)
}

func (c *Client) RemoveDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error {
	_, err := c.board.RemoveDependency(ctx, &boardrpc.DependencyRequest{TaskID: taskID, BlockedByID: blockedByID})
	return mapGRPCErr(err)
}

var _ apicore.Board = (*Client)(nil)

// ---- helpers

func taskOrErr(resp *apicore.Task, err error) (apicore.Task, error) {
	if err != nil {
		return apicore.Task{}, mapGRPCErr(err)
	}
	return *resp, nil
}

func mapGRPCErr(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.InvalidArgument:
		return apicore.ErrBadArguments
	case codes.NotFound:
		return apicore.ErrNotFound
	case codes.AlreadyExists:
		return apicore.ErrAlreadyExists
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", apicore.ErrUnavailable, context.DeadlineExceeded)
	case codes.Unavailable, codes.Canceled:
		return apicore.ErrUnavailable
	default:
		return err
	}
}
