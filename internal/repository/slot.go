package repository

import "context"

// Slot - именованное долговременное хранилище: один сериализованный блоб на хранилище сущностей.
type Slot interface {
	// Load возвращает содержимое слота; ok=false, если слот ещё не записывался.
	Load(ctx context.Context, name string) (payload []byte, ok bool, err error)
	Save(ctx context.Context, name string, payload []byte) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// Имена слотов хранилищ.
const (
	SlotUsers    = "user-storage"
	SlotSession  = "session-storage"
	SlotProjects = "project-storage"
	SlotTasks    = "task-storage"
	SlotMessages = "message-storage"
)
