package boardrpc

import (
	"context"

	"google.golang.org/grpc"

	"taskboard-microservice/tasks/core"
)

type BoardClient struct {
	cc grpc.ClientConnInterface
}

func NewBoardClient(cc grpc.ClientConnInterface) *BoardClient {
	return &BoardClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BoardClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "Ping", in, opts)
}

func (c *BoardClient) CreateProject(ctx context.Context, in *CreateProjectRequest, opts ...grpc.CallOption) (*core.Project, error) {
	return invoke[core.Project](ctx, c.cc, "CreateProject", in, opts)
}

func (c *BoardClient) ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error) {
	return invoke[ListProjectsResponse](ctx, c.cc, "ListProjects", in, opts)
}

func (c *BoardClient) GetProject(ctx context.Context, in *ProjectRequest, opts ...grpc.CallOption) (*core.Project, error) {
	return invoke[core.Project](ctx, c.cc, "GetProject", in, opts)
}

func (c *BoardClient) ListMembers(ctx context.Context, in *ProjectRequest, opts ...grpc.CallOption) (*ListMembersResponse, error) {
	return invoke[ListMembersResponse](ctx, c.cc, "ListMembers", in, opts)
}

func (c *BoardClient) InviteUser(ctx context.Context, in *InviteUserRequest, opts ...grpc.CallOption) (*core.Invitation, error) {
	return invoke[core.Invitation](ctx, c.cc, "InviteUser", in, opts)
}

func (c *BoardClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*core.Task, error) {
	return invoke[core.Task](ctx, c.cc, "CreateTask", in, opts)
}

func (c *BoardClient) GetTask(ctx context.Context, in *TaskRequest, opts ...grpc.CallOption) (*core.TaskDetails, error) {
	return invoke[core.TaskDetails](ctx, c.cc, "GetTask", in, opts)
}

func (c *BoardClient) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	return invoke[ListTasksResponse](ctx, c.cc, "ListTasks", in, opts)
}

func (c *BoardClient) PatchTask(ctx context.Context, in *PatchTaskRequest, opts ...grpc.CallOption) (*core.Task, error) {
	return invoke[core.Task](ctx, c.cc, "PatchTask", in, opts)
}

func (c *BoardClient) DeleteTask(ctx context.Context, in *TaskRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteTask", in, opts)
}

func (c *BoardClient) SetStatus(ctx context.Context, in *SetStatusRequest, opts ...grpc.CallOption) (*core.Task, error) {
	return invoke[core.Task](ctx, c.cc, "SetStatus", in, opts)
}

func (c *BoardClient) Reposition(ctx context.Context, in *RepositionRequest, opts ...grpc.CallOption) (*core.Task, error) {
	return invoke[core.Task](ctx, c.cc, "Reposition", in, opts)
}

func (c *BoardClient) StartTimer(ctx context.Context, in *StartTimerRequest, opts ...grpc.CallOption) (*core.Task, error) {
	return invoke[core.Task](ctx, c.cc, "StartTimer", in, opts)
}

func (c *BoardClient) StopTimer(ctx context.Context, in *TaskRequest, opts ...grpc.CallOption) (*core.Task, error) {
	return invoke[core.Task](ctx, c.cc, "StopTimer", in, opts)
}

func (c *BoardClient) AddDependency(ctx context.Context, in *DependencyRequest, opts ...grpc.CallOption) (*core.Task, error) {
	return invoke[core.Task](ctx, c.cc, "AddDependency", in, opts)
}

func (c *BoardClient) RemoveDependency(ctx context.Context, in *DependencyRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "RemoveDependency", in, opts)
}

func (c *BoardClient) AssignTask(ctx context.Context, in *AssignTaskRequest, opts ...grpc.CallOption) (*core.Task, error) {
	return invoke[core.Task](ctx, c.cc, "AssignTask", in, opts)
}
