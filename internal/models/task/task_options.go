package task

import (
	"time"
)

// TaskOption задаёт одно поле частичного обновления; nil-опция означает,
// что поле в патче отсутствует.
type TaskOption func(*Task)

func WithProjectID(projectID string) TaskOption {
	if projectID == "" {
		return nil
	}
	return func(task *Task) {
		task.ProjectID = projectID
	}
}

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithAssignedTo(userID string) TaskOption {
	if userID == "" {
		return nil
	}
	return func(task *Task) {
		task.AssignedTo = userID
	}
}

func WithPriority(priority Priority) TaskOption {
	if priority == "" {
		return nil
	}
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithStatus(status Status) TaskOption {
	if status == "" {
		return nil
	}
	return func(task *Task) {
		task.Status = status
	}
}

func WithDueDate(dueDate time.Time) TaskOption {
	if dueDate.IsZero() {
		return nil
	}
	return func(task *Task) {
		task.DueDate = dueDate
	}
}
