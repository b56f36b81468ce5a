package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard-microservice/tasks/core"
)

const taskColumns = `id, project_id, parent_task_id, task_type, title, description, status, priority,
	position, deadline, assignee_id, creator_id, timer_status, timer_started_at, total_time_spent,
	created_at, updated_at`

// prefixed qualifies the task columns with a table alias.
func prefixed(alias string) string {
	cols := strings.Split(taskColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

type taskRow struct {
	ID             uuid.UUID      `db:"id"`
	ProjectID      uuid.UUID      `db:"project_id"`
	ParentID       uuid.NullUUID  `db:"parent_task_id"`
	Type           string         `db:"task_type"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Status         string         `db:"status"`
	Priority       string         `db:"priority"`
	Position       float64        `db:"position"`
	Deadline       sql.NullTime   `db:"deadline"`
	AssigneeID     sql.NullString `db:"assignee_id"`
	CreatorID      string         `db:"creator_id"`
	TimerStatus    string         `db:"timer_status"`
	TimerStartedAt sql.NullTime   `db:"timer_started_at"`
	TotalTimeSpent int64          `db:"total_time_spent"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r taskRow) toCore() (core.Task, error) {
	typ, err := core.ParseTaskType(r.Type)
	if err != nil {
		return core.Task{}, fmt.Errorf("task %s: bad type %q", r.ID, r.Type)
	}
	status, err := core.ParseTaskStatus(r.Status)
	if err != nil {
		return core.Task{}, fmt.Errorf("task %s: bad status %q", r.ID, r.Status)
	}
	priority, err := core.ParsePriority(r.Priority)
	if err != nil {
		return core.Task{}, fmt.Errorf("task %s: bad priority %q", r.ID, r.Priority)
	}
	timer, err := core.ParseTimerStatus(r.TimerStatus)
	if err != nil {
		return core.Task{}, fmt.Errorf("task %s: bad timer status %q", r.ID, r.TimerStatus)
	}

	t := core.Task{
		ID:             r.ID,
		ProjectID:      r.ProjectID,
		Type:           typ,
		Title:          r.Title,
		Description:    r.Description,
		Status:         status,
		Priority:       priority,
		Position:       r.Position,
		CreatorID:      r.CreatorID,
		Timer:          core.Timer{Status: timer},
		TotalTimeSpent: r.TotalTimeSpent,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
	if r.ParentID.Valid {
		id := r.ParentID.UUID
		t.ParentID = &id
	}
	t.Deadline = fromNullTime(r.Deadline)
	t.Timer.StartedAt = fromNullTime(r.TimerStartedAt)
	if r.AssigneeID.Valid {
		v := r.AssigneeID.String
		t.AssigneeID = &v
	}
	return t, nil
}

type summaryRow struct {
	taskRow
	SubtaskCount int   `db:"subtask_count"`
	SubtasksDone int   `db:"subtasks_done"`
	ChildrenTime int64 `db:"children_time"`
}

func (r summaryRow) toCore() (core.TaskSummary, error) {
	t, err := r.taskRow.toCore()
	if err != nil {
		return core.TaskSummary{}, err
	}
	if t.Type == core.TypeBig {
		t.TotalTimeSpent = r.ChildrenTime
	}
	return core.TaskSummary{Task: t, SubtaskCount: r.SubtaskCount, SubtasksDone: r.SubtasksDone}, nil
}

type refRow struct {
	ID     uuid.UUID `db:"id"`
	Title  string    `db:"title"`
	Status string    `db:"status"`
}

func (r refRow) toCore() (core.TaskRef, error) {
	status, err := core.ParseTaskStatus(r.Status)
	if err != nil {
		return core.TaskRef{}, fmt.Errorf("task %s: bad status %q", r.ID, r.Status)
	}
	return core.TaskRef{ID: r.ID, Title: r.Title, Status: status}, nil
}

type projectRow struct {
	ID          uuid.UUID      `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	StartDate   sql.NullTime   `db:"start_date"`
	EndDate     sql.NullTime   `db:"end_date"`
	CreatorID   string         `db:"creator_id"`
	Role        sql.NullString `db:"role"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r projectRow) toCore() core.Project {
	return core.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		StartDate:   fromNullTime(r.StartDate),
		EndDate:     fromNullTime(r.EndDate),
		CreatorID:   r.CreatorID,
		Role:        core.MemberRole(r.Role.String),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func fromNullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
