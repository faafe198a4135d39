package app

import (
	"context"
	"fmt"
	"slices"

	"officeHub/internal/config"
	"officeHub/internal/dashboard"
	"officeHub/internal/logger"
	"officeHub/internal/repository"
	"officeHub/internal/repository/slot/inmemory"
	"officeHub/internal/repository/slot/postgres"
	"officeHub/internal/repository/slot/sqlite"
	"officeHub/internal/seed"
	"officeHub/internal/store"
	"officeHub/internal/worker"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App - контекст приложения: по одному экземпляру каждого хранилища на процесс.
type App struct {
	config    *config.Config
	slot      repository.Slot
	users     *store.UserStore
	projects  *store.ProjectStore
	tasks     *store.TaskStore
	messages  *store.MessageStore
	dashboard *dashboard.Dashboard
	worker    *worker.OverdueWorker
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	slot, err := a.openSlot(ctx)
	if err != nil {
		return fmt.Errorf("открытие хранилища %s: %w", a.config.Repository.Type, err)
	}
	a.slot = slot
	a.shutdowns = append(a.shutdowns, func() {
		if err := slot.Close(); err != nil {
			logger.Error("Ошибка закрытия хранилища", err)
		}
	})

	a.users = store.NewUserStore(slot, a.config.Auth.SentinelPassword)
	a.projects = store.NewProjectStore(slot)
	a.tasks = store.NewTaskStore(slot)
	a.messages = store.NewMessageStore(slot)

	if err := a.load(ctx); err != nil {
		return err
	}

	a.dashboard = dashboard.New(a.users, a.projects, a.tasks, a.messages)

	if a.config.Worker.Enabled {
		interval := a.config.Worker.Interval
		a.worker = worker.NewOverdueWorker(a.tasks, a.projects, &interval)
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.Bool("worker", a.worker != nil),
	)
	return nil
}

func (a *App) openSlot(ctx context.Context) (repository.Slot, error) {
	switch a.config.Repository.Type {
	case config.RepositoryInMemory:
		return inmemory.NewSlotStorage(), nil
	case config.RepositorySQLite:
		return sqlite.New(a.config.SQLite.Path)
	case config.RepositoryPostgres:
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return nil, err
		}
		return postgres.New(ctx, a.config.Database)
	default:
		return nil, fmt.Errorf("неизвестный тип хранилища %q", a.config.Repository.Type)
	}
}

// load читает все хранилища параллельно; пустые слоты заполняются встроенными данными.
func (a *App) load(ctx context.Context) error {
	ds, err := seed.Default()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.users.Load(gctx, ds.Users) })
	g.Go(func() error { return a.projects.Load(gctx, ds.Projects) })
	g.Go(func() error { return a.tasks.Load(gctx, ds.Tasks) })
	g.Go(func() error { return a.messages.Load(gctx, ds.Messages) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("загрузка хранилищ: %w", err)
	}
	return nil
}

// Run запускает фоновую проверку сроков и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) {
	if a.worker == nil {
		<-ctx.Done()
		return
	}
	a.worker.Start(ctx)
}

// Shutdown выполняет завершающие функции в обратном порядке.
func (a *App) Shutdown() {
	for _, fn := range slices.Backward(a.shutdowns) {
		fn()
	}
	a.shutdowns = a.shutdowns[:0]
}

func (a *App) HealthCheck(ctx context.Context) error {
	return a.slot.HealthCheck(ctx)
}

func (a *App) Users() *store.UserStore {
	return a.users
}

func (a *App) Projects() *store.ProjectStore {
	return a.projects
}

func (a *App) Tasks() *store.TaskStore {
	return a.tasks
}

func (a *App) Messages() *store.MessageStore {
	return a.messages
}

func (a *App) Dashboard() *dashboard.Dashboard {
	return a.dashboard
}

// Worker возвращает nil, если проверка сроков выключена.
func (a *App) Worker() *worker.OverdueWorker {
	return a.worker
}
