package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"officeHub/internal/repository"
	"officeHub/internal/repository/slot/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repository.Slot = (*sqlite.Storage)(nil)

// newTestStorage открывает базу во временном каталоге и закрывает её по завершении теста.
func newTestStorage(t *testing.T, path string) *sqlite.Storage {
	t.Helper()

	s, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func TestStorage_LoadMissing(t *testing.T) {
	s := newTestStorage(t, ":memory:")

	payload, ok, err := s.Load(context.Background(), repository.SlotProjects)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestStorage_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t, ":memory:")

	require.NoError(t, s.Save(ctx, repository.SlotProjects, []byte(`[]`)))
	require.NoError(t, s.Save(ctx, repository.SlotProjects, []byte(`[{"id":"1"}]`)))

	payload, ok, err := s.Load(ctx, repository.SlotProjects)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(payload))

	revision, err := s.Revision(ctx, repository.SlotProjects)
	require.NoError(t, err)
	assert.Equal(t, 2, revision)
}

func TestStorage_SlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t, ":memory:")

	require.NoError(t, s.Save(ctx, repository.SlotUsers, []byte(`["u"]`)))
	require.NoError(t, s.Save(ctx, repository.SlotTasks, []byte(`["t"]`)))

	users, _, err := s.Load(ctx, repository.SlotUsers)
	require.NoError(t, err)
	tasks, _, err := s.Load(ctx, repository.SlotTasks)
	require.NoError(t, err)

	assert.Equal(t, `["u"]`, string(users))
	assert.Equal(t, `["t"]`, string(tasks))
}

// TestStorage_Reopen проверяет, что данные и миграции переживают повторное открытие файла
func TestStorage_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "officehub.db")

	first, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, repository.SlotMessages, []byte(`[1,2,3]`)))
	require.NoError(t, first.Close())

	second := newTestStorage(t, path)
	payload, ok, err := second.Load(ctx, repository.SlotMessages)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2,3]`, string(payload))
	assert.NoError(t, second.HealthCheck(ctx))
}
