package boardrpc

import (
	"time"

	"github.com/google/uuid"

	"taskboard-microservice/tasks/core"
)

type Empty struct{}

// Projects

type CreateProjectRequest struct {
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type ListProjectsRequest struct {
	UserID string `json:"user_id"`
}

type ListProjectsResponse struct {
	Projects []core.Project `json:"projects"`
}

type ProjectRequest struct {
	ProjectID uuid.UUID `json:"project_id"`
	UserID    string    `json:"user_id"`
}

type ListMembersResponse struct {
	Members []core.Member `json:"members"`
}

type InviteUserRequest struct {
	ProjectID uuid.UUID `json:"project_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
}

// Tasks

type CreateTaskRequest struct {
	ProjectID   uuid.UUID        `json:"project_id"`
	UserID      string           `json:"user_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Status      *core.TaskStatus `json:"status,omitempty"`
	Priority    *core.Priority   `json:"priority,omitempty"`
	Type        *core.TaskType   `json:"type,omitempty"`
	ParentID    *uuid.UUID       `json:"parent_id,omitempty"`
	Deadline    *time.Time       `json:"deadline,omitempty"`
	AssigneeID  *string          `json:"assignee_id,omitempty"`
}

type TaskRequest struct {
	ID uuid.UUID `json:"id"`
}

type ListTasksRequest struct {
	ProjectID    uuid.UUID        `json:"project_id"`
	Status       *core.TaskStatus `json:"status,omitempty"`
	ParentID     *uuid.UUID       `json:"parent_id,omitempty"`
	TopLevelOnly bool             `json:"top_level_only,omitempty"`
}

type ListTasksResponse struct {
	Tasks []core.TaskSummary `json:"tasks"`
}

type PatchTaskRequest struct {
	ID            uuid.UUID        `json:"id"`
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Priority      *core.Priority   `json:"priority,omitempty"`
	Deadline      *time.Time       `json:"deadline,omitempty"`
	ClearDeadline bool             `json:"clear_deadline,omitempty"`
	Status        *core.TaskStatus `json:"status,omitempty"`
}

type SetStatusRequest struct {
	ID     uuid.UUID       `json:"id"`
	Status core.TaskStatus `json:"status"`
}

type RepositionRequest struct {
	ID       uuid.UUID        `json:"id"`
	Position *float64         `json:"position,omitempty"`
	AboveID  *uuid.UUID       `json:"above_id,omitempty"`
	BelowID  *uuid.UUID       `json:"below_id,omitempty"`
	Status   *core.TaskStatus `json:"status,omitempty"`
}

type StartTimerRequest struct {
	ID   uuid.UUID        `json:"id"`
	Mode core.TimerStatus `json:"mode"`
}

type DependencyRequest struct {
	TaskID      uuid.UUID `json:"task_id"`
	BlockedByID uuid.UUID `json:"blocked_by_id"`
}

type AssignTaskRequest struct {
	ID         uuid.UUID `json:"id"`
	AssigneeID *string   `json:"assignee_id,omitempty"`
}
