package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"officeHub/internal/logger"
	"officeHub/internal/models/task"
	repo "officeHub/internal/repository"
	"officeHub/internal/repository/collection"

	"go.uber.org/zap"
)

type TaskStore struct {
	tasks    *collection.Collection[task.Task]
	writeMtx *sync.Mutex
	opts     options
}

func NewTaskStore(slot repo.Slot, opts ...Option) *TaskStore {
	return &TaskStore{
		tasks:    collection.New[task.Task](repo.SlotTasks, slot),
		writeMtx: &sync.Mutex{},
		opts:     newOptions(opts),
	}
}

func (s *TaskStore) Load(ctx context.Context, seed []task.Task) error {
	if err := s.tasks.Load(ctx, seed); err != nil {
		return fmt.Errorf("загрузка задач: %w", err)
	}
	return nil
}

// AddTask не проверяет существование проекта и исполнителя.
// Пустые статус и приоритет заменяются на todo и medium.
func (s *TaskStore) AddTask(ctx context.Context, t task.Task) (task.Task, error) {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	id, err := s.opts.newID()
	if err != nil {
		return task.Task{}, fmt.Errorf("генерация id: %w", err)
	}

	t.ID = id
	t.CreatedAt = s.opts.now()
	if t.Status == "" {
		t.Status = task.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}

	if err := validate(t); err != nil {
		return task.Task{}, err
	}
	if err := s.tasks.Insert(ctx, t); err != nil {
		return task.Task{}, mutationError(ResourceTask, t.ID, err)
	}

	logger.Info("Store: Задача создана", zap.String("task_id", t.ID), zap.String("project_id", t.ProjectID))
	return t, nil
}

// UpdateTask - единственный способ сменить статус; переход между любыми статусами разрешён.
func (s *TaskStore) UpdateTask(ctx context.Context, id string, patch ...task.TaskOption) (task.Task, error) {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	next, ok := s.tasks.Get(id)
	if !ok {
		logger.Info("Store: Задача не найдена", zap.String("target_id", id))
		return task.Task{}, NewNotFound(ResourceTask, id)
	}

	createdAt := next.CreatedAt
	for _, opt := range patch {
		if opt != nil {
			opt(&next)
		}
	}
	next.ID = id
	next.CreatedAt = createdAt

	if err := validate(next); err != nil {
		return task.Task{}, err
	}

	updated, err := s.tasks.Update(ctx, id, func(t *task.Task) error {
		*t = next
		return nil
	})
	if err != nil {
		return task.Task{}, mutationError(ResourceTask, id, err)
	}

	logger.Info("Store: Задача обновлена", zap.String("task_id", id), zap.String("status", string(updated.Status)))
	return updated, nil
}

func (s *TaskStore) RemoveTask(ctx context.Context, id string) error {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	if err := s.tasks.Delete(ctx, id); err != nil {
		return mutationError(ResourceTask, id, err)
	}
	logger.Info("Store: Задача удалена", zap.String("task_id", id))
	return nil
}

func (s *TaskStore) GetTaskByID(id string) (task.Task, bool) {
	return s.tasks.Get(id)
}

func (s *TaskStore) GetTasksByProject(projectID string) []task.Task {
	return s.tasks.Filter(func(t task.Task) bool { return t.ProjectID == projectID })
}

func (s *TaskStore) GetTasksByUser(userID string) []task.Task {
	return s.tasks.Filter(func(t task.Task) bool { return t.AssignedTo == userID })
}

func (s *TaskStore) GetTasksByStatus(status task.Status) []task.Task {
	return s.tasks.Filter(func(t task.Task) bool { return t.Status == status })
}

func (s *TaskStore) ListTasks() []task.Task {
	return s.tasks.List()
}

// GetOverdueTasks - незакрытые задачи со сроком раньше now.
func (s *TaskStore) GetOverdueTasks(now time.Time) []task.Task {
	return s.tasks.Filter(func(t task.Task) bool { return t.IsOverdue(now) })
}
