package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskboard-microservice/rpc/boardrpc"
	"taskboard-microservice/tasks/core"
)

type Server struct {
	boardrpc.UnimplementedBoardServer

	log     *slog.Logger
	service *core.Service
}

func NewServer(log *slog.Logger, service *core.Service) *Server {
	return &Server{log: log, service: service}
}

func (s *Server) Ping(ctx context.Context, _ *boardrpc.Empty) (*boardrpc.Empty, error) {
	if err := s.service.Ping(ctx); err != nil {
		s.log.Error("ping failed", "error", err)
		return nil, status.Error(codes.Internal, "ping failed")
	}
	return &boardrpc.Empty{}, nil
}

// Projects

func (s *Server) CreateProject(ctx context.Context, req *boardrpc.CreateProjectRequest) (*core.Project, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	p, err := s.service.CreateProject(ctx, core.CreateProjectInput{
		CreatorID:   req.UserID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &p, nil
}

func (s *Server) ListProjects(ctx context.Context, req *boardrpc.ListProjectsRequest) (*boardrpc.ListProjectsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	items, err := s.service.ListProjects(ctx, req.UserID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &boardrpc.ListProjectsResponse{Projects: items}, nil
}

func (s *Server) GetProject(ctx context.Context, req *boardrpc.ProjectRequest) (*core.Project, error) {
	if req == nil || req.ProjectID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid project id")
	}

	p, err := s.service.GetProject(ctx, req.ProjectID, req.UserID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &p, nil
}

func (s *Server) ListMembers(ctx context.Context, req *boardrpc.ProjectRequest) (*boardrpc.ListMembersResponse, error) {
	if req == nil || req.ProjectID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid project id")
	}

	items, err := s.service.ListMembers(ctx, req.ProjectID, req.UserID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &boardrpc.ListMembersResponse{Members: items}, nil
}

func (s *Server) InviteUser(ctx context.Context, req *boardrpc.InviteUserRequest) (*core.Invitation, error) {
	if req == nil || req.ProjectID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid project id")
	}

	role, err := core.ParseMemberRole(req.Role)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid role")
	}

	inv, err := s.service.InviteUser(ctx, req.ProjectID, req.UserID, req.Email, role)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &inv, nil
}

// Tasks

func (s *Server) CreateTask(ctx context.Context, req *boardrpc.CreateTaskRequest) (*core.Task, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	t, err := s.service.CreateTask(ctx, core.CreateTaskInput{
		ProjectID:   req.ProjectID,
		CreatorID:   req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Type:        req.Type,
		ParentID:    req.ParentID,
		Deadline:    req.Deadline,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) GetTask(ctx context.Context, req *boardrpc.TaskRequest) (*core.TaskDetails, error) {
	if req == nil || req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	t, err := s.service.GetTask(ctx, req.ID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) ListTasks(ctx context.Context, req *boardrpc.ListTasksRequest) (*boardrpc.ListTasksResponse, error) {
	if req == nil || req.ProjectID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid project id")
	}

	items, err := s.service.ListTasks(ctx, core.ListTasksFilter{
		ProjectID:    req.ProjectID,
		Status:       req.Status,
		ParentID:     req.ParentID,
		TopLevelOnly: req.TopLevelOnly,
	})
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &boardrpc.ListTasksResponse{Tasks: items}, nil
}

func (s *Server) PatchTask(ctx context.Context, req *boardrpc.PatchTaskRequest) (*core.Task, error) {
	if req == nil || req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	t, err := s.service.PatchTask(ctx, req.ID, core.TaskPatch{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Deadline:      req.Deadline,
		ClearDeadline: req.ClearDeadline,
		Status:        req.Status,
	})
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) DeleteTask(ctx context.Context, req *boardrpc.TaskRequest) (*boardrpc.Empty, error) {
	if req == nil || req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	if err := s.service.DeleteTask(ctx, req.ID); err != nil {
		return nil, s.mapErr(err)
	}
	return &boardrpc.Empty{}, nil
}

func (s *Server) SetStatus(ctx context.Context, req *boardrpc.SetStatusRequest) (*core.Task, error) {
	if req == nil || req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	t, err := s.service.SetStatus(ctx, req.ID, req.Status)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) Reposition(ctx context.Context, req *boardrpc.RepositionRequest) (*core.Task, error) {
	if req == nil || req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	t, err := s.service.Reposition(ctx, req.ID, core.RepositionInput{
		Position: req.Position,
		AboveID:  req.AboveID,
		BelowID:  req.BelowID,
		Status:   req.Status,
	})
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) StartTimer(ctx context.Context, req *boardrpc.StartTimerRequest) (*core.Task, error) {
	if req == nil || req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	t, err := s.service.StartTimer(ctx, req.ID, req.Mode)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) StopTimer(ctx context.Context, req *boardrpc.TaskRequest) (*core.Task, error) {
	if req == nil || req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	t, err := s.service.StopTimer(ctx, req.ID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) AddDependency(ctx context.Context, req *boardrpc.DependencyRequest) (*core.Task, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	t, err := s.service.AddDependency(ctx, req.TaskID, req.BlockedByID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) RemoveDependency(ctx context.Context, req *boardrpc.DependencyRequest) (*boardrpc.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	if err := s.service.RemoveDependency(ctx, req.TaskID, req.BlockedByID); err != nil {
		return nil, s.mapErr(err)
	}
	return &boardrpc.Empty{}, nil
}

func (s *Server) AssignTask(ctx context.Context, req *boardrpc.AssignTaskRequest) (*core.Task, error) {
	if req == nil || req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	t, err := s.service.AssignTask(ctx, req.ID, req.AssigneeID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &t, nil
}

func (s *Server) mapErr(err error) error {
	switch {
	// projects
	case errors.Is(err, core.ErrProjectInvalidArgs):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, core.ErrProjectNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, core.ErrMemberAlreadyExists), errors.Is(err, core.ErrInvitationAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())

	// tasks
	case errors.Is(err, core.ErrTaskInvalidArgs):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, core.ErrTaskNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())

	default:
		s.log.Error("internal error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
