package inmemory

import (
	"context"
	"slices"
	"sync"

	"officeHub/internal/logger"
)

// SlotStorage держит слоты в памяти процесса. Используется в тестах
// и при repository.type=inmemory, когда сохранность между запусками не нужна.
type SlotStorage struct {
	storage map[string][]byte
	saves   map[string]int
	mtx     *sync.RWMutex
}

func NewSlotStorage() *SlotStorage {
	return &SlotStorage{
		storage: make(map[string][]byte),
		saves:   make(map[string]int),
		mtx:     &sync.RWMutex{},
	}
}

func (s *SlotStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

func (s *SlotStorage) Load(ctx context.Context, name string) ([]byte, bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	payload, ok := s.storage[name]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(payload), true, nil
}

func (s *SlotStorage) Save(ctx context.Context, name string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage[name] = slices.Clone(payload)
	s.saves[name]++
	return nil
}

// SaveCount - сколько раз слот был записан.
func (s *SlotStorage) SaveCount(name string) int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.saves[name]
}

func (s *SlotStorage) Close() error {
	return nil
}
