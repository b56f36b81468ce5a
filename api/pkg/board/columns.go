package board

import (
	"sort"

	"taskboard-microservice/tasks/core"
)

// ColumnOrder is the left-to-right order of board columns.
var ColumnOrder = []core.TaskStatus{
	core.StatusToDo,
	core.StatusInProgress,
	core.StatusBlocked,
	core.StatusBreak,
	core.StatusDone,
}

type Card struct {
	core.TaskSummary
	Subtasks []core.Task `json:"subtasks,omitempty"`
}

type Column struct {
	Status core.TaskStatus `json:"status"`
	Cards  []Card          `json:"cards"`
}

// Columns groups top-level tasks by status, highest position first. Big tasks carry
// their subtasks and the sum of their subtasks' time.
func (b *Board) Columns() []Column {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c := &change{tasks: b.tasks}
	byStatus := make(map[core.TaskStatus][]Card, len(ColumnOrder))

	for _, t := range b.tasks {
		if t.ParentID != nil {
			continue
		}

		card := Card{TaskSummary: core.TaskSummary{Task: t}}
		kids := c.children(t.ID)
		if len(kids) > 0 {
			card.Subtasks = kids
		}
		card.SubtaskCount = len(kids)

		var childTime int64
		for _, k := range kids {
			if k.Status == core.StatusDone {
				card.SubtasksDone++
			}
			childTime += k.TotalTimeSpent
		}
		if t.Type == core.TypeBig {
			card.TotalTimeSpent = childTime
		}

		byStatus[t.Status] = append(byStatus[t.Status], card)
	}

	out := make([]Column, 0, len(ColumnOrder))
	for _, st := range ColumnOrder {
		cards := byStatus[st]
		sort.Slice(cards, func(i, j int) bool {
			if cards[i].Position != cards[j].Position {
				return cards[i].Position > cards[j].Position
			}
			return cards[i].CreatedAt.After(cards[j].CreatedAt)
		})
		if cards == nil {
			cards = []Card{}
		}
		out = append(out, Column{Status: st, Cards: cards})
	}
	return out
}
