package boardrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskboard-microservice/tasks/core"
)

const ServiceName = "taskboard.v1.Board"

type BoardServer interface {
	Ping(context.Context, *Empty) (*Empty, error)

	CreateProject(context.Context, *CreateProjectRequest) (*core.Project, error)
	ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error)
	GetProject(context.Context, *ProjectRequest) (*core.Project, error)
	ListMembers(context.Context, *ProjectRequest) (*ListMembersResponse, error)
	InviteUser(context.Context, *InviteUserRequest) (*core.Invitation, error)

	CreateTask(context.Context, *CreateTaskRequest) (*core.Task, error)
	GetTask(context.Context, *TaskRequest) (*core.TaskDetails, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	PatchTask(context.Context, *PatchTaskRequest) (*core.Task, error)
	DeleteTask(context.Context, *TaskRequest) (*Empty, error)
	SetStatus(context.Context, *SetStatusRequest) (*core.Task, error)
	Reposition(context.Context, *RepositionRequest) (*core.Task, error)
	StartTimer(context.Context, *StartTimerRequest) (*core.Task, error)
	StopTimer(context.Context, *TaskRequest) (*core.Task, error)
	AddDependency(context.Context, *DependencyRequest) (*core.Task, error)
	RemoveDependency(context.Context, *DependencyRequest) (*Empty, error)
	AssignTask(context.Context, *AssignTaskRequest) (*core.Task, error)
}

var BoardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", BoardServer.Ping),
		unary("CreateProject", BoardServer.CreateProject),
		unary("ListProjects", BoardServer.ListProjects),
		unary("GetProject", BoardServer.GetProject),
		unary("ListMembers", BoardServer.ListMembers),
		unary("InviteUser", BoardServer.InviteUser),
		unary("CreateTask", BoardServer.CreateTask),
		unary("GetTask", BoardServer.GetTask),
		unary("ListTasks", BoardServer.ListTasks),
		unary("PatchTask", BoardServer.PatchTask),
		unary("DeleteTask", BoardServer.DeleteTask),
		unary("SetStatus", BoardServer.SetStatus),
		unary("Reposition", BoardServer.Reposition),
		unary("StartTimer", BoardServer.StartTimer),
		unary("StopTimer", BoardServer.StopTimer),
		unary("AddDependency", BoardServer.AddDependency),
		unary("RemoveDependency", BoardServer.RemoveDependency),
		unary("AssignTask", BoardServer.AssignTask),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskboard/v1/board",
}

func RegisterBoardServer(s grpc.ServiceRegistrar, srv BoardServer) {
	s.RegisterService(&BoardServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unary[Req, Resp any](name string, call func(BoardServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BoardServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BoardServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// UnimplementedBoardServer answers every method with codes.Unimplemented.
type UnimplementedBoardServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedBoardServer) Ping(context.Context, *Empty) (*Empty, error) {
	return nil, unimplemented("Ping")
}

func (UnimplementedBoardServer) CreateProject(context.Context, *CreateProjectRequest) (*core.Project, error) {
	return nil, unimplemented("CreateProject")
}

func (UnimplementedBoardServer) ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error) {
	return nil, unimplemented("ListProjects")
}

func (UnimplementedBoardServer) GetProject(context.Context, *ProjectRequest) (*core.Project, error) {
	return nil, unimplemented("GetProject")
}

func (UnimplementedBoardServer) ListMembers(context.Context, *ProjectRequest) (*ListMembersResponse, error) {
	return nil, unimplemented("ListMembers")
}

func (UnimplementedBoardServer) InviteUser(context.Context, *InviteUserRequest) (*core.Invitation, error) {
	return nil, unimplemented("InviteUser")
}

func (UnimplementedBoardServer) CreateTask(context.Context, *CreateTaskRequest) (*core.Task, error) {
	return nil, unimplemented("CreateTask")
}

func (UnimplementedBoardServer) GetTask(context.Context, *TaskRequest) (*core.TaskDetails, error) {
	return nil, unimplemented("GetTask")
}

func (UnimplementedBoardServer) ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error) {
	return nil, unimplemented("ListTasks")
}

func (UnimplementedBoardServer) PatchTask(context.Context, *PatchTaskRequest) (*core.Task, error) {
	return nil, unimplemented("PatchTask")
}

func (UnimplementedBoardServer) DeleteTask(context.Context, *TaskRequest) (*Empty, error) {
	return nil, unimplemented("DeleteTask")
}

func (UnimplementedBoardServer) SetStatus(context.Context, *SetStatusRequest) (*core.Task, error) {
	return nil, unimplemented("SetStatus")
}

func (UnimplementedBoardServer) Reposition(context.Context, *RepositionRequest) (*core.Task, error) {
	return nil, unimplemented("Reposition")
}

func (UnimplementedBoardServer) StartTimer(context.Context, *StartTimerRequest) (*core.Task, error) {
	return nil, unimplemented("StartTimer")
}

func (UnimplementedBoardServer) StopTimer(context.Context, *TaskRequest) (*core.Task, error) {
	return nil, unimplemented("StopTimer")
}

func (UnimplementedBoardServer) AddDependency(context.Context, *DependencyRequest) (*core.Task, error) {
	return nil, unimplemented("AddDependency")
}

func (UnimplementedBoardServer) RemoveDependency(context.Context, *DependencyRequest) (*Empty, error) {
	return nil, unimplemented("RemoveDependency")
}

func (UnimplementedBoardServer) AssignTask(context.Context, *AssignTaskRequest) (*core.Task, error) {
	return nil, unimplemented("AssignTask")
}
