package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskboard-microservice/tasks/core"
)

func (q *queries) AddDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error {
	const query = `
		INSERT INTO task_dependencies (task_id, blocked_by_id)
		VALUES ($1, $2)
		ON CONFLICT (task_id, blocked_by_id) DO NOTHING;
	`

	if _, err := q.ext.ExecContext(ctx, query, taskID, blockedByID); err != nil {
		if isForeignKeyViolation(err) {
			return core.ErrTaskNotFound
		}
		if isCheckViolation(err) {
			return core.ErrTaskInvalidArgs
		}
		return fmt.Errorf("insert dependency: %w", err)
	}
	return nil
}

func (q *queries) RemoveDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error {
	const query = `DELETE FROM task_dependencies WHERE task_id = $1 AND blocked_by_id = $2`

	if _, err := q.ext.ExecContext(ctx, query, taskID, blockedByID); err != nil {
		return fmt.Errorf("delete dependency: %w", err)
	}
	return nil
}

func (q *queries) ListBlockedBy(ctx context.Context, taskID uuid.UUID) ([]core.TaskRef, error) {
	const query = `
		SELECT t.id, t.title, t.status
		FROM task_dependencies d
		JOIN tasks t ON t.id = d.blocked_by_id
		WHERE d.task_id = $1
		ORDER BY t.title ASC;
	`
	return q.listRefs(ctx, "list blocked by", query, taskID)
}

func (q *queries) ListBlocking(ctx context.Context, taskID uuid.UUID) ([]core.TaskRef, error) {
	const query = `
		SELECT t.id, t.title, t.status
		FROM task_dependencies d
		JOIN tasks t ON t.id = d.task_id
		WHERE d.blocked_by_id = $1
		ORDER BY t.title ASC;
	`
	return q.listRefs(ctx, "list blocking", query, taskID)
}

func (q *queries) listRefs(ctx context.Context, op, query string, taskID uuid.UUID) ([]core.TaskRef, error) {
	var rows []refRow
	if err := sqlx.SelectContext(ctx, q.ext, &rows, query, taskID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]core.TaskRef, 0, len(rows))
	for _, r := range rows {
		ref, err := r.toCore()
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}
