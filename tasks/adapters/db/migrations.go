package db

import (
	_ "embed"
	"fmt"
)

//go:embed migrations/01_create_projects.up.sql
var createProjectsUp string

//go:embed migrations/02_create_tasks.up.sql
var createTasksUp string

//go:embed migrations/03_create_task_dependencies.up.sql
var createTaskDependenciesUp string

//go:embed migrations/04_create_invitations.up.sql
var createInvitationsUp string

// Migrate applies the board schema. Every statement is idempotent.
func (db *DB) Migrate() error {
	db.log.Debug("running tasksDB migrations")

	steps := []struct {
		name string
		sql  string
	}{
		{"projects", createProjectsUp},
		{"tasks", createTasksUp},
		{"task dependencies", createTaskDependenciesUp},
		{"invitations", createInvitationsUp},
	}
	for _, s := range steps {
		if _, err := db.conn.Exec(s.sql); err != nil {
			return fmt.Errorf("apply %s migration: %w", s.name, err)
		}
	}

	db.log.Debug("tasksDB migrations finished")
	return nil
}
