package core

import "github.com/google/uuid"

type ListTasksFilter struct {
	ProjectID    uuid.UUID   `json:"project_id"`
	Status       *TaskStatus `json:"status,omitempty"`
	ParentID     *uuid.UUID  `json:"parent_id,omitempty"`
	TopLevelOnly bool        `json:"top_level_only"`
}
