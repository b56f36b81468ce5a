package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskboard-microservice/tasks/core"
)

func (q *queries) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	const query = `
		INSERT INTO tasks (id, project_id, parent_task_id, task_type, title, description, status, priority,
			position, deadline, assignee_id, creator_id, timer_status, timer_started_at, total_time_spent,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + taskColumns + `;
	`

	return q.getTask(ctx, "insert task", query,
		t.ID, t.ProjectID, toNullUUID(t.ParentID), t.Type.String(), t.Title, t.Description, t.Status.String(),
		t.Priority.String(), t.Position, toNullTime(t.Deadline), toNullString(t.AssigneeID), t.CreatorID,
		t.Timer.Status.String(), toNullTime(t.Timer.StartedAt), t.TotalTimeSpent, t.CreatedAt, t.UpdatedAt)
}

func (q *queries) GetTask(ctx context.Context, id uuid.UUID) (core.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1;`
	return q.getTask(ctx, "get task", query, id)
}

func (q *queries) LockTask(ctx context.Context, id uuid.UUID) (core.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 FOR UPDATE;`
	return q.getTask(ctx, "lock task", query, id)
}

func (q *queries) ListTasks(ctx context.Context, f core.ListTasksFilter) ([]core.TaskSummary, error) {
	var (
		sb   strings.Builder
		args []any
		n    = 1
	)

	sb.WriteString(`SELECT ` + prefixed("t") + `,
		COALESCE(s.subtask_count, 0) AS subtask_count,
		COALESCE(s.subtasks_done, 0) AS subtasks_done,
		COALESCE(s.children_time, 0) AS children_time
	FROM tasks t
	LEFT JOIN (
		SELECT parent_task_id,
			COUNT(*) AS subtask_count,
			COUNT(*) FILTER (WHERE status = 'Done') AS subtasks_done,
			SUM(total_time_spent)::bigint AS children_time
		FROM tasks
		WHERE parent_task_id IS NOT NULL
		GROUP BY parent_task_id
	) s ON s.parent_task_id = t.id
	WHERE t.project_id = $1`)
	args = append(args, f.ProjectID)
	n++

	if f.Status != nil {
		args = append(args, f.Status.String())
		sb.WriteString(fmt.Sprintf(" AND t.status = $%d", n))
		n++
	}

	if f.ParentID != nil {
		args = append(args, *f.ParentID)
		sb.WriteString(fmt.Sprintf(" AND t.parent_task_id = $%d", n))
	} else if f.TopLevelOnly {
		sb.WriteString(" AND t.parent_task_id IS NULL")
	}

	sb.WriteString(" ORDER BY t.position DESC, t.created_at DESC")

	var rows []summaryRow
	if err := sqlx.SelectContext(ctx, q.ext, &rows, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]core.TaskSummary, 0, len(rows))
	for _, r := range rows {
		s, err := r.toCore()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (q *queries) ListChildren(ctx context.Context, parentID uuid.UUID) ([]core.Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE parent_task_id = $1
		ORDER BY created_at ASC;
	`

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, q.ext, &rows, query, parentID); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	out := make([]core.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toCore()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (q *queries) MaxPosition(ctx context.Context, projectID uuid.UUID, priority core.Priority) (*float64, error) {
	const query = `SELECT MAX(position) FROM tasks WHERE project_id = $1 AND priority = $2;`

	var top sql.NullFloat64
	if err := q.ext.QueryRowxContext(ctx, query, projectID, priority.String()).Scan(&top); err != nil {
		return nil, fmt.Errorf("max position: %w", err)
	}
	if !top.Valid {
		return nil, nil
	}
	return &top.Float64, nil
}

func (q *queries) ColumnPositions(ctx context.Context, projectID uuid.UUID, status core.TaskStatus) ([]core.TaskPosition, error) {
	const query = `
		SELECT id, position
		FROM tasks
		WHERE project_id = $1 AND status = $2 AND parent_task_id IS NULL
		ORDER BY position DESC, created_at DESC;
	`

	var out []core.TaskPosition
	if err := sqlx.SelectContext(ctx, q.ext, &out, query, projectID, status.String()); err != nil {
		return nil, fmt.Errorf("column positions: %w", err)
	}
	return out, nil
}

func (q *queries) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	const query = `
		UPDATE tasks
		SET title = $2,
		    description = $3,
		    priority = $4,
		    deadline = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns + `;
	`

	return q.getTask(ctx, "update task", query,
		t.ID, t.Title, t.Description, t.Priority.String(), toNullTime(t.Deadline))
}

// TransitionTask applies the status change, timer switch and accrual in one statement,
// reading the stored timer state under the row lock the UPDATE takes.
func (q *queries) TransitionTask(ctx context.Context, id uuid.UUID, tr core.Transition) (core.Task, error) {
	const query = `
		UPDATE tasks
		SET total_time_spent = total_time_spent + CASE
		        WHEN timer_status = 'working' AND timer_started_at IS NOT NULL AND $2::text <> 'working'
		        THEN GREATEST(0, FLOOR(EXTRACT(EPOCH FROM ($3::timestamptz - timer_started_at))))::bigint
		        ELSE 0
		    END,
		    timer_started_at = CASE
		        WHEN $2::text = 'idle' THEN NULL
		        WHEN timer_status = $2::text AND timer_started_at IS NOT NULL THEN timer_started_at
		        ELSE $3::timestamptz
		    END,
		    timer_status = $2::text,
		    status = COALESCE($4::text, status),
		    updated_at = $3::timestamptz
		WHERE id = $1
		RETURNING ` + taskColumns + `;
	`

	var status sql.NullString
	if tr.Status != nil {
		status = sql.NullString{String: tr.Status.String(), Valid: true}
	}

	return q.getTask(ctx, "transition task", query, id, tr.Timer.String(), tr.Now, status)
}

func (q *queries) SetDerivedStatus(ctx context.Context, id uuid.UUID, status core.TaskStatus) (core.Task, error) {
	const query = `
		UPDATE tasks SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns + `;
	`
	return q.getTask(ctx, "set derived status", query, id, status.String())
}

func (q *queries) SetPosition(ctx context.Context, id uuid.UUID, position float64) (core.Task, error) {
	const query = `
		UPDATE tasks SET position = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns + `;
	`
	return q.getTask(ctx, "set position", query, id, position)
}

func (q *queries) SetAssignee(ctx context.Context, id uuid.UUID, userID *string) (core.Task, error) {
	const query = `
		UPDATE tasks SET assignee_id = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns + `;
	`
	return q.getTask(ctx, "set assignee", query, id, toNullString(userID))
}

// DeleteTask relies on ON DELETE CASCADE for subtasks and dependency edges.
func (q *queries) DeleteTask(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tasks WHERE id = $1`

	res, err := q.ext.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

func (q *queries) getTask(ctx context.Context, op, query string, args ...any) (core.Task, error) {
	var row taskRow
	if err := sqlx.GetContext(ctx, q.ext, &row, query, args...); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return core.Task{}, core.ErrTaskNotFound
		case isForeignKeyViolation(err):
			return core.Task{}, core.ErrTaskNotFound
		case isCheckViolation(err), isInvalidText(err):
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	return row.toCore()
}
