package task

import (
	"time"
)

type Task struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	ProjectID   string    `json:"projectId" yaml:"projectId" validate:"required"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	AssignedTo  string    `json:"assignedTo" yaml:"assignedTo" validate:"required"`
	Priority    Priority  `json:"priority" yaml:"priority" validate:"oneof=low medium high"`
	Status      Status    `json:"status" yaml:"status" validate:"oneof=todo in_progress review done"`
	DueDate     time.Time `json:"dueDate" yaml:"dueDate" validate:"required"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

type Status string
type Priority string

const StatusTodo Status = "todo"
const StatusInProgress Status = "in_progress"
const StatusReview Status = "review"
const StatusDone Status = "done"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

// Statuses перечисляет статусы в порядке отображения на доске.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

func (t Task) GetID() string {
	return t.ID
}

func (t Task) Clone() Task {
	return t
}

// IsOverdue: срок прошёл, а задача не закрыта.
func (t Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusDone && !t.DueDate.IsZero() && t.DueDate.Before(now)
}
