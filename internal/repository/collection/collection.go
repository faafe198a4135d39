package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"officeHub/internal/logger"
	repo "officeHub/internal/repository"

	"go.uber.org/zap"
)

const slowSave = 100 * time.Millisecond

// Entity - сущность, которую можно хранить в коллекции.
type Entity[T any] interface {
	GetID() string
	Clone() T
}

// Collection - упорядоченная таблица сущностей в памяти с единственным писателем.
// Каждое изменение сначала целиком сохраняется в слот и только потом
// применяется в памяти, поэтому при ошибке записи содержимое не меняется.
type Collection[T Entity[T]] struct {
	name    string
	slot    repo.Slot
	storage map[string]T
	ids     []string
	mtx     *sync.RWMutex
}

func New[T Entity[T]](name string, slot repo.Slot) *Collection[T] {
	return &Collection[T]{
		name:    name,
		slot:    slot,
		storage: make(map[string]T),
		ids:     []string{},
		mtx:     &sync.RWMutex{},
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Load заполняет коллекцию из слота. Если слот пуст, используется seed,
// и он сразу же сохраняется в слот.
func (c *Collection[T]) Load(ctx context.Context, seed []T) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	payload, ok, err := c.slot.Load(ctx, c.name)
	if err != nil {
		return fmt.Errorf("чтение слота %s: %w", c.name, err)
	}

	items := seed
	if ok {
		items = nil
		if err := json.Unmarshal(payload, &items); err != nil {
			return fmt.Errorf("разбор слота %s: %w", c.name, err)
		}
	}

	storage := make(map[string]T, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := item.GetID()
		if _, exists := storage[id]; exists {
			return fmt.Errorf("слот %s, id %s: %w", c.name, id, repo.ErrAlreadyExists)
		}
		storage[id] = item.Clone()
		ids = append(ids, id)
	}

	if !ok {
		if err := c.save(ctx, items); err != nil {
			return err
		}
		logger.Info("Repository: Слот заполнен начальными данными", zap.String("slot", c.name), zap.Int("count", len(items)))
	}

	c.storage = storage
	c.ids = ids
	logger.Debug("Repository: Коллекция загружена", zap.String("slot", c.name), zap.Int("count", len(ids)))
	return nil
}

func (c *Collection[T]) Insert(ctx context.Context, item T) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	id := item.GetID()
	if _, ok := c.storage[id]; ok {
		return fmt.Errorf("%s %s: %w", c.name, id, repo.ErrAlreadyExists)
	}

	stored := item.Clone()
	if err := c.save(ctx, append(c.ordered(), stored)); err != nil {
		return err
	}

	c.storage[id] = stored
	c.ids = append(c.ids, id)
	return nil
}

// Update применяет fn к копии сущности. Ошибка из fn отменяет изменение без записи.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	var zero T
	current, ok := c.storage[id]
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", c.name, id, repo.ErrNotFound)
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		return zero, err
	}

	items := c.ordered()
	items[slices.Index(c.ids, id)] = next
	if err := c.save(ctx, items); err != nil {
		return zero, err
	}

	c.storage[id] = next
	return next.Clone(), nil
}

// UpdateAll применяет fn ко всем сущностям; fn возвращает true, если сущность изменилась.
// Если ничего не изменилось, слот не перезаписывается.
func (c *Collection[T]) UpdateAll(ctx context.Context, fn func(*T) bool) (int, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	items := make([]T, len(c.ids))
	changed := 0
	for i, id := range c.ids {
		next := c.storage[id].Clone()
		if fn(&next) {
			changed++
		}
		items[i] = next
	}

	if changed == 0 {
		return 0, nil
	}
	if err := c.save(ctx, items); err != nil {
		return 0, err
	}

	for i, id := range c.ids {
		c.storage[id] = items[i]
	}
	return changed, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if _, ok := c.storage[id]; !ok {
		return fmt.Errorf("%s %s: %w", c.name, id, repo.ErrNotFound)
	}

	ind := slices.Index(c.ids, id)
	items := c.ordered()
	items = slices.Delete(items, ind, ind+1)
	if err := c.save(ctx, items); err != nil {
		return err
	}

	delete(c.storage, id)
	c.ids = slices.Delete(c.ids, ind, ind+1)
	return nil
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	item, ok := c.storage[id]
	if !ok {
		var zero T
		return zero, false
	}
	return item.Clone(), true
}

// List возвращает копии всех сущностей в порядке вставки.
func (c *Collection[T]) List() []T {
	return c.Filter(func(T) bool { return true })
}

func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	res := []T{}
	for _, id := range c.ids {
		item := c.storage[id]
		if pred(item) {
			res = append(res, item.Clone())
		}
	}
	return res
}

// Find возвращает первую в порядке вставки сущность, подходящую под pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	for _, id := range c.ids {
		item := c.storage[id]
		if pred(item) {
			return item.Clone(), true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Count(pred func(T) bool) int {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	count := 0
	for _, id := range c.ids {
		if pred(c.storage[id]) {
			count++
		}
	}
	return count
}

func (c *Collection[T]) Len() int {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return len(c.ids)
}

// ordered возвращает сущности в порядке вставки без копирования; вызывать под блокировкой.
func (c *Collection[T]) ordered() []T {
	items := make([]T, 0, len(c.ids)+1)
	for _, id := range c.ids {
		items = append(items, c.storage[id])
	}
	return items
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	start := time.Now()

	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("сериализация слота %s: %w", c.name, err)
	}

	if err := c.slot.Save(ctx, c.name, payload); err != nil {
		logger.Warn("Repository: Не удалось сохранить слот", zap.String("slot", c.name), zap.Error(err))
		return fmt.Errorf("сохранение слота %s: %w", c.name, err)
	}

	if duration := time.Since(start); duration > slowSave {
		logger.Warn("Repository: Медленная операция", zap.String("slot", c.name), zap.Duration("ms", duration))
	}
	return nil
}
