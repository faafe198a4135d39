package store_test

import (
	"context"
	"testing"
	"time"

	"officeHub/internal/models/task"
	"officeHub/internal/repository/slot/inmemory"
	"officeHub/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTasks() []task.Task {
	return []task.Task{
		{ID: "1", ProjectID: "1", Title: "Design homepage mockups", AssignedTo: "2", Priority: task.PriorityHigh, Status: task.StatusInProgress, DueDate: day(2023, 12, 15), CreatedAt: day(2023, 5, 20)},
		{ID: "2", ProjectID: "1", Title: "Implement responsive layout", AssignedTo: "3", Priority: task.PriorityMedium, Status: task.StatusTodo, DueDate: day(2023, 12, 20), CreatedAt: day(2023, 6, 1)},
		{ID: "3", ProjectID: "3", Title: "Data migration script", AssignedTo: "4", Priority: task.PriorityHigh, Status: task.StatusDone, DueDate: day(2023, 3, 30), CreatedAt: day(2023, 2, 15)},
	}
}

func newTaskStore(t *testing.T, slot *inmemory.SlotStorage, opts ...store.Option) *store.TaskStore {
	t.Helper()

	if opts == nil {
		opts = testOptions("t")
	}
	s := store.NewTaskStore(slot, opts...)
	require.NoError(t, s.Load(context.Background(), seedTasks()))
	return s
}

func taskIDs(tasks []task.Task) []string {
	res := make([]string, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, t.ID)
	}
	return res
}

// TestTaskStore_AddTask тестирует создание задачи с реальными id и временем
func TestTaskStore_AddTask(t *testing.T) {
	ctx := context.Background()
	s := store.NewTaskStore(newSlot(t))
	require.NoError(t, s.Load(ctx, seedTasks()))

	before := time.Now()
	added, err := s.AddTask(ctx, task.Task{
		ProjectID:  "1",
		Title:      "X",
		AssignedTo: "2",
		Priority:   task.PriorityHigh,
		Status:     task.StatusTodo,
		DueDate:    day(2024, 1, 1),
	})
	require.NoError(t, err)

	parsed, err := uuid.Parse(added.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.WithinDuration(t, before, added.CreatedAt, 5*time.Second)
	assert.Len(t, s.ListTasks(), 4)

	byProject := s.GetTasksByProject("1")
	assert.Contains(t, taskIDs(byProject), added.ID)
	assert.Equal(t, added.ID, byProject[len(byProject)-1].ID)
}

func TestTaskStore_AddTaskUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := store.NewTaskStore(newSlot(t))
	require.NoError(t, s.Load(ctx, nil))

	seen := map[string]bool{}
	for range 20 {
		added, err := s.AddTask(ctx, task.Task{ProjectID: "1", Title: "Repeat", AssignedTo: "2", DueDate: day(2030, 1, 1)})
		require.NoError(t, err)
		assert.False(t, seen[added.ID])
		seen[added.ID] = true
	}
	assert.Len(t, s.ListTasks(), 20)
}

func TestTaskStore_AddTaskDefaults(t *testing.T) {
	s := newTaskStore(t, newSlot(t))

	added, err := s.AddTask(context.Background(), task.Task{ProjectID: "2", Title: "Specs", AssignedTo: "4", DueDate: day(2030, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, task.StatusTodo, added.Status)
	assert.Equal(t, task.PriorityMedium, added.Priority)
}

func TestTaskStore_AddTaskInvalid(t *testing.T) {
	tests := []struct {
		name string
		task task.Task
	}{
		{name: "no title", task: task.Task{ProjectID: "1", AssignedTo: "2", DueDate: day(2030, 1, 1)}},
		{name: "no due date", task: task.Task{ProjectID: "1", Title: "X", AssignedTo: "2"}},
		{name: "bad priority", task: task.Task{ProjectID: "1", Title: "X", AssignedTo: "2", Priority: "urgent", DueDate: day(2030, 1, 1)}},
		{name: "bad status", task: task.Task{ProjectID: "1", Title: "X", AssignedTo: "2", Status: "blocked", DueDate: day(2030, 1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTaskStore(t, newSlot(t))

			_, err := s.AddTask(context.Background(), tt.task)
			assert.True(t, store.IsCode(err, store.CodeValidation), "получено %v", err)
			assert.Len(t, s.ListTasks(), 3)
		})
	}
}

// TestTaskStore_StatusTransitions тестирует свободные переходы между статусами
func TestTaskStore_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	s := newTaskStore(t, newSlot(t))

	for _, status := range []task.Status{task.StatusDone, task.StatusTodo, task.StatusReview, task.StatusInProgress} {
		updated, err := s.UpdateTask(ctx, "2", task.WithStatus(status))
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestTaskStore_UpdateTaskPartial(t *testing.T) {
	ctx := context.Background()
	s := newTaskStore(t, newSlot(t))
	before, _ := s.GetTaskByID("1")

	updated, err := s.UpdateTask(ctx, "1",
		task.WithStatus(task.StatusReview),
		task.WithAssignedTo(""),
		task.WithDueDate(time.Time{}),
	)
	require.NoError(t, err)

	expected := before
	expected.Status = task.StatusReview
	assert.Equal(t, expected, updated)
}

func TestTaskStore_UpdateTaskErrors(t *testing.T) {
	ctx := context.Background()
	s := newTaskStore(t, newSlot(t))
	before := s.ListTasks()

	_, err := s.UpdateTask(ctx, "404", task.WithTitle("Ghost"))
	assert.True(t, store.IsCode(err, store.CodeNotFound))

	_, err = s.UpdateTask(ctx, "1", task.WithTitle(""))
	assert.True(t, store.IsCode(err, store.CodeValidation))

	_, err = s.UpdateTask(ctx, "1", task.WithPriority("urgent"))
	assert.True(t, store.IsCode(err, store.CodeValidation))

	assert.Equal(t, before, s.ListTasks())
}

func TestTaskStore_RemoveTask(t *testing.T) {
	ctx := context.Background()
	s := newTaskStore(t, newSlot(t))

	require.NoError(t, s.RemoveTask(ctx, "1"))
	assert.Equal(t, []string{"2", "3"}, taskIDs(s.ListTasks()))

	err := s.RemoveTask(ctx, "1")
	assert.True(t, store.IsCode(err, store.CodeNotFound))
	assert.Equal(t, []string{"2", "3"}, taskIDs(s.ListTasks()))
}

func TestTaskStore_Queries(t *testing.T) {
	s := newTaskStore(t, newSlot(t))

	assert.Equal(t, []string{"1", "2"}, taskIDs(s.GetTasksByProject("1")))
	assert.Equal(t, []string{"3"}, taskIDs(s.GetTasksByUser("4")))
	assert.Equal(t, []string{"2"}, taskIDs(s.GetTasksByStatus(task.StatusTodo)))
	assert.Empty(t, s.GetTasksByProject("404"))

	_, ok := s.GetTaskByID("404")
	assert.False(t, ok)
}

func TestTaskStore_GetOverdueTasks(t *testing.T) {
	s := newTaskStore(t, newSlot(t))

	assert.Equal(t, []string{"1", "2"}, taskIDs(s.GetOverdueTasks(day(2024, 1, 1))))
	assert.Equal(t, []string{"1"}, taskIDs(s.GetOverdueTasks(day(2023, 12, 16))))
	assert.Empty(t, s.GetOverdueTasks(day(2023, 1, 1)))
}
