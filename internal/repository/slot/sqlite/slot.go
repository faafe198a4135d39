package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"officeHub/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const slowQuery = 100 * time.Millisecond

// Storage хранит слоты в локальном файле SQLite: одна строка на слот.
type Storage struct {
	db *sqlx.DB
}

// New открывает (или создаёт) базу по пути dbPath, включает WAL
// и применяет недостающие миграции.
func New(dbPath string) (*Storage, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("открытие sqlite: %w", err)
	}
	// SQLite допускает одного писателя; одно соединение заодно сохраняет ":memory:" базу между запросами
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("включение WAL: %w", err)
	}

	s := &Storage{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("миграции: %w", err)
	}

	logger.Info("Repository: Успешное открытие SQLite", zap.String("path", dbPath))
	return s, nil
}

func (s *Storage) Close() error {
	logger.Info("Repository: Закрытие SQLite")
	return s.db.Close()
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

// runMigrations читает текущую версию схемы и применяет оставшиеся миграции по порядку.
func (s *Storage) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("проверка таблицы schema_version: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("чтение версии схемы: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("применение миграции v%d: %w", m.version, err)
		}
	}

	return nil
}

func (s *Storage) Load(ctx context.Context, name string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, "SELECT payload FROM slots WHERE name = ?", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("чтение слота %s: %w", name, err)
	}
	return payload, true, nil
}

func (s *Storage) Save(ctx context.Context, name string, payload []byte) error {
	start := time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (name, payload, updated_at, revision)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at,
			revision = slots.revision + 1`,
		name, payload, time.Now().UTC(),
	)
	if err != nil {
		logger.Error("Repository: Не удалось записать слот", err, zap.String("slot", name))
		return fmt.Errorf("запись слота %s: %w", name, err)
	}

	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленная операция", zap.String("slot", name), zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// Revision - число записей слота; 0, если слот не записывался.
func (s *Storage) Revision(ctx context.Context, name string) (int, error) {
	var revision int
	err := s.db.GetContext(ctx, &revision, "SELECT revision FROM slots WHERE name = ?", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("чтение ревизии слота %s: %w", name, err)
	}
	return revision, nil
}
