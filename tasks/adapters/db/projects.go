package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskboard-microservice/tasks/core"
)

const projectColumns = `p.id, p.name, p.description, p.status, p.start_date, p.end_date, p.creator_id,
	p.created_at, p.updated_at`

func (q *queries) CreateProject(ctx context.Context, p core.Project) (core.Project, error) {
	const query = `
		INSERT INTO projects AS p (id, name, description, status, start_date, end_date, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + projectColumns + `, NULL::text AS role;
	`

	var row projectRow
	err := sqlx.GetContext(ctx, q.ext, &row, query,
		p.ID, p.Name, p.Description, p.Status, toNullTime(p.StartDate), toNullTime(p.EndDate), p.CreatorID)
	if err != nil {
		if isUniqueViolation(err) || isCheckViolation(err) {
			return core.Project{}, core.ErrProjectInvalidArgs
		}
		return core.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return row.toCore(), nil
}

func (q *queries) ListProjects(ctx context.Context, userID string) ([]core.Project, error) {
	const query = `
		SELECT ` + projectColumns + `, m.role
		FROM projects p
		JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = $1
		ORDER BY p.created_at DESC;
	`

	var rows []projectRow
	if err := sqlx.SelectContext(ctx, q.ext, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]core.Project, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toCore())
	}
	return out, nil
}

func (q *queries) GetProject(ctx context.Context, projectID uuid.UUID, userID string) (core.Project, error) {
	const query = `
		SELECT ` + projectColumns + `, m.role
		FROM projects p
		JOIN project_members m ON m.project_id = p.id AND m.user_id = $2
		WHERE p.id = $1;
	`

	var row projectRow
	if err := sqlx.GetContext(ctx, q.ext, &row, query, projectID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Project{}, core.ErrProjectNotFound
		}
		return core.Project{}, fmt.Errorf("get project: %w", err)
	}
	return row.toCore(), nil
}

func (q *queries) AddMember(ctx context.Context, m core.Member) (core.Member, error) {
	const query = `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING joined_at;
	`

	if err := q.ext.QueryRowxContext(ctx, query, m.ProjectID, m.UserID, string(m.Role)).Scan(&m.JoinedAt); err != nil {
		if isUniqueViolation(err) {
			return core.Member{}, core.ErrMemberAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return core.Member{}, core.ErrProjectNotFound
		}
		if isCheckViolation(err) {
			return core.Member{}, core.ErrProjectInvalidArgs
		}
		return core.Member{}, fmt.Errorf("insert member: %w", err)
	}
	m.JoinedAt = m.JoinedAt.UTC()
	return m, nil
}

func (q *queries) ListMembers(ctx context.Context, projectID uuid.UUID) ([]core.Member, error) {
	const query = `
		SELECT project_id, user_id, role, joined_at
		FROM project_members
		WHERE project_id = $1
		ORDER BY joined_at ASC, user_id ASC;
	`

	var rows []struct {
		ProjectID uuid.UUID `db:"project_id"`
		UserID    string    `db:"user_id"`
		Role      string    `db:"role"`
		JoinedAt  time.Time `db:"joined_at"`
	}
	if err := sqlx.SelectContext(ctx, q.ext, &rows, query, projectID); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]core.Member, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.Member{
			ProjectID: r.ProjectID,
			UserID:    r.UserID,
			Role:      core.MemberRole(r.Role),
			JoinedAt:  r.JoinedAt.UTC(),
		})
	}
	return out, nil
}

func (q *queries) CreateInvitation(ctx context.Context, inv core.Invitation) (core.Invitation, error) {
	const query = `
		INSERT INTO invitations (id, project_id, email, role, token, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := q.ext.ExecContext(ctx, query,
		inv.ID, inv.ProjectID, inv.Email, string(inv.Role), inv.Token, inv.Status, inv.ExpiresAt, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Invitation{}, core.ErrInvitationAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return core.Invitation{}, core.ErrProjectNotFound
		}
		if isCheckViolation(err) {
			return core.Invitation{}, core.ErrProjectInvalidArgs
		}
		return core.Invitation{}, fmt.Errorf("insert invitation: %w", err)
	}
	return inv, nil
}
