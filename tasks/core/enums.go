package core

import "strings"

type TaskStatus int16

const (
	StatusToDo       TaskStatus = 0
	StatusInProgress TaskStatus = 1
	StatusBlocked    TaskStatus = 2
	StatusDone       TaskStatus = 3
	StatusBreak      TaskStatus = 4
)

var taskStatusNames = map[TaskStatus]string{
	StatusToDo:       "To Do",
	StatusInProgress: "In Progress",
	StatusBlocked:    "Blocked",
	StatusDone:       "Done",
	StatusBreak:      "Break",
}

func (s TaskStatus) Valid() bool {
	_, ok := taskStatusNames[s]
	return ok
}

func (s TaskStatus) String() string {
	if name, ok := taskStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseTaskStatus accepts the stored label ("In Progress") and the snake form ("in_progress").
func ParseTaskStatus(s string) (TaskStatus, error) {
	key := normalizeEnum(s)
	for st, name := range taskStatusNames {
		if normalizeEnum(name) == key {
			return st, nil
		}
	}
	return StatusToDo, ErrTaskInvalidArgs
}

func (s TaskStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrTaskInvalidArgs
	}
	return []byte(s.String()), nil
}

func (s *TaskStatus) UnmarshalText(b []byte) error {
	st, err := ParseTaskStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

type Priority int16

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
	PriorityUrgent Priority = 3
)

var priorityNames = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// BaseWeight is the position a task gets when its priority tier is empty.
func (p Priority) BaseWeight() float64 {
	switch p {
	case PriorityLow:
		return 1000
	case PriorityHigh:
		return 3000
	case PriorityUrgent:
		return 4000
	default:
		return 2000
	}
}

func ParsePriority(s string) (Priority, error) {
	key := normalizeEnum(s)
	for p, name := range priorityNames {
		if normalizeEnum(name) == key {
			return p, nil
		}
	}
	return PriorityMedium, ErrTaskInvalidArgs
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, ErrTaskInvalidArgs
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

type TaskType int16

const (
	TypeSmall TaskType = 0
	TypeBig   TaskType = 1
)

func (t TaskType) Valid() bool {
	return t == TypeSmall || t == TypeBig
}

func (t TaskType) String() string {
	switch t {
	case TypeSmall:
		return "small"
	case TypeBig:
		return "big"
	default:
		return "unknown"
	}
}

func ParseTaskType(s string) (TaskType, error) {
	switch normalizeEnum(s) {
	case "small":
		return TypeSmall, nil
	case "big":
		return TypeBig, nil
	default:
		return TypeSmall, ErrTaskInvalidArgs
	}
}

func (t TaskType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrTaskInvalidArgs
	}
	return []byte(t.String()), nil
}

func (t *TaskType) UnmarshalText(b []byte) error {
	v, err := ParseTaskType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type TimerStatus int16

const (
	TimerIdle    TimerStatus = 0
	TimerWorking TimerStatus = 1
	TimerBreak   TimerStatus = 2
)

func (t TimerStatus) Valid() bool {
	return t >= TimerIdle && t <= TimerBreak
}

func (t TimerStatus) String() string {
	switch t {
	case TimerIdle:
		return "idle"
	case TimerWorking:
		return "working"
	case TimerBreak:
		return "break"
	default:
		return "unknown"
	}
}

func ParseTimerStatus(s string) (TimerStatus, error) {
	switch normalizeEnum(s) {
	case "idle":
		return TimerIdle, nil
	case "working":
		return TimerWorking, nil
	case "break":
		return TimerBreak, nil
	default:
		return TimerIdle, ErrTaskInvalidArgs
	}
}

func (t TimerStatus) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrTaskInvalidArgs
	}
	return []byte(t.String()), nil
}

func (t *TimerStatus) UnmarshalText(b []byte) error {
	v, err := ParseTimerStatus(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type MemberRole string

const (
	RoleAdmin  MemberRole = "Admin"
	RoleMember MemberRole = "Member"
)

func ParseMemberRole(s string) (MemberRole, error) {
	switch normalizeEnum(s) {
	case "", "member":
		return RoleMember, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", ErrProjectInvalidArgs
	}
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ReplaceAll(s, "-", " ")
}
