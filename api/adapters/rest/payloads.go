package rest

import "time"

type CreateProjectIn struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type InviteIn struct {
	Email string `json:"email"`
	Role  string `json:"role"` // Admin|Member|Viewer, Member when empty
}

type CreateTaskIn struct {
	ProjectID   string     `json:"project_id"`
	ParentID    *string    `json:"parent_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Type        *string    `json:"type,omitempty"` // big|small
	Deadline    *time.Time `json:"deadline,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
}

type PatchTaskIn struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	// ClearDeadline removes the deadline; it wins over Deadline.
	ClearDeadline bool    `json:"clear_deadline,omitempty"`
	Status        *string `json:"status,omitempty"`
}

type StatusIn struct {
	Status string `json:"status"`
}

// PositionIn describes a drop: either an explicit position or the neighbours it landed between.
type PositionIn struct {
	Position *float64 `json:"position,omitempty"`
	AboveID  *string  `json:"above_id,omitempty"`
	BelowID  *string  `json:"below_id,omitempty"`
	Status   *string  `json:"status,omitempty"`
}

type TimerStartIn struct {
	Mode string `json:"mode"` // working|break, working when empty
}

type AssigneeIn struct {
	AssigneeID *string `json:"assignee_id"` // null unassigns
}
