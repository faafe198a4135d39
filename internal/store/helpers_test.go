package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"officeHub/internal/repository/slot/inmemory"
	"officeHub/internal/store"

	"github.com/stretchr/testify/mock"
)

var baseTime = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

// fakeClock отдаёт время, сдвигающееся на секунду при каждом вызове
type fakeClock struct {
	mtx sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: baseTime}
}

func (c *fakeClock) Now() time.Time {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.now = c.now.Add(time.Second)
	return c.now
}

func sequentialIDs(prefix string) func() (string, error) {
	var mtx sync.Mutex
	n := 0
	return func() (string, error) {
		mtx.Lock()
		defer mtx.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

func testOptions(prefix string) []store.Option {
	return []store.Option{
		store.WithClock(newFakeClock().Now),
		store.WithIDGenerator(sequentialIDs(prefix)),
	}
}

func newSlot(t *testing.T) *inmemory.SlotStorage {
	t.Helper()
	return inmemory.NewSlotStorage()
}

// MockSlot - мок слота
type MockSlot struct {
	mock.Mock
}

func (m *MockSlot) Load(ctx context.Context, name string) ([]byte, bool, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockSlot) Save(ctx context.Context, name string, payload []byte) error {
	args := m.Called(ctx, name, payload)
	return args.Error(0)
}

func (m *MockSlot) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSlot) Close() error {
	args := m.Called()
	return args.Error(0)
}
