package app_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"officeHub/internal/app"
	"officeHub/internal/config"
	"officeHub/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(repoType string) *config.Config {
	return &config.Config{
		Repository: config.RepositoryConfig{Type: repoType},
		Worker:     config.WorkerConfig{Enabled: true, Interval: time.Hour},
		Auth:       config.AuthConfig{SentinelPassword: "password"},
	}
}

func TestApp_InitInMemory(t *testing.T) {
	ctx := context.Background()
	a := app.New(testConfig(config.RepositoryInMemory))
	require.NoError(t, a.Init(ctx))
	t.Cleanup(a.Shutdown)

	assert.NoError(t, a.HealthCheck(ctx))
	assert.Len(t, a.Users().ListUsers(), 2)
	assert.Len(t, a.Projects().ListProjects(), 3)
	assert.Len(t, a.Tasks().ListTasks(), 3)
	assert.Len(t, a.Messages().ListMessages(), 3)
	assert.NotNil(t, a.Dashboard())
	assert.NotNil(t, a.Worker())

	ok, err := a.Users().Login(ctx, "founder@example.com", "password")
	require.NoError(t, err)
	assert.True(t, ok)

	report := a.Worker().Check(ctx)
	assert.Equal(t, 3, report.CheckedTasks)
}

func TestApp_WorkerDisabled(t *testing.T) {
	cfg := testConfig(config.RepositoryInMemory)
	cfg.Worker.Enabled = false

	a := app.New(cfg)
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(a.Shutdown)

	assert.Nil(t, a.Worker())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.Run(ctx)
}

// TestApp_SQLitePersistsAcrossRestart тестирует сохранение данных между запусками
func TestApp_SQLitePersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.RepositorySQLite)
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "officehub.db")

	first := app.New(cfg)
	require.NoError(t, first.Init(ctx))

	added, err := first.Tasks().AddTask(ctx, task.Task{
		ProjectID: "1", Title: "Write release notes", AssignedTo: "2", Priority: task.PriorityLow, DueDate: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, first.Projects().RemoveProject(ctx, "2"))
	ok, err := first.Users().Login(ctx, "employee@example.com", "password")
	require.NoError(t, err)
	require.True(t, ok)
	first.Shutdown()

	second := app.New(cfg)
	require.NoError(t, second.Init(ctx))
	t.Cleanup(second.Shutdown)

	got, ok := second.Tasks().GetTaskByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, "Write release notes", got.Title)
	assert.Len(t, second.Tasks().ListTasks(), 4)

	_, ok = second.Projects().GetProjectByID("2")
	assert.False(t, ok, "удалённый проект не возвращается из начальных данных")

	current, ok := second.Users().CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "2", current.ID)
}

func TestApp_UnknownRepository(t *testing.T) {
	a := app.New(testConfig("mongo"))
	err := a.Init(context.Background())
	assert.Error(t, err)
	a.Shutdown()
}
