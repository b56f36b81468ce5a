package core

import (
	"time"

	"github.com/google/uuid"
)

type Timer struct {
	Status    TimerStatus `json:"status"`
	StartedAt *time.Time  `json:"started_at,omitempty"`
}

type Task struct {
	ID             uuid.UUID  `json:"id"`
	ProjectID      uuid.UUID  `json:"project_id"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"` // nil for top-level tasks
	Type           TaskType   `json:"type"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	Position       float64    `json:"position"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	AssigneeID     *string    `json:"assignee_id,omitempty"`
	CreatorID      string     `json:"creator_id"`
	Timer          Timer      `json:"timer"`
	TotalTimeSpent int64      `json:"total_time_spent"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TaskSummary is a list row. For big tasks TotalTimeSpent is the sum over children.
type TaskSummary struct {
	Task
	SubtaskCount int `json:"subtask_count"`
	SubtasksDone int `json:"subtasks_done"`
}

type TaskRef struct {
	ID     uuid.UUID  `json:"id"`
	Title  string     `json:"title"`
	Status TaskStatus `json:"status"`
}

type TaskDetails struct {
	Task
	BlockedBy []TaskRef `json:"blocked_by"`
	Blocking  []TaskRef `json:"blocking"`
}

type TaskPosition struct {
	ID       uuid.UUID
	Position float64
}

type Project struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatorID   string     `json:"creator_id"`
	Role        MemberRole `json:"role,omitempty"` // role of the requesting user
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Member struct {
	ProjectID uuid.UUID  `json:"project_id"`
	UserID    string     `json:"user_id"`
	Role      MemberRole `json:"role"`
	JoinedAt  time.Time  `json:"joined_at"`
}

type Invitation struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	Email     string     `json:"email"`
	Role      MemberRole `json:"role"`
	Token     string     `json:"token"`
	Status    string     `json:"status"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	DefaultProjectStatus    = "Planning"
	InvitationStatusPending = "pending"
	InvitationTTL           = 7 * 24 * time.Hour
)
