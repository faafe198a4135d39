package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"officeHub/internal/config"
	"officeHub/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const slowQuery = 100 * time.Millisecond

// Storage хранит слоты в таблице slots PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context, name string) ([]byte, bool, error) {
	start := time.Now()

	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM slots WHERE name = $1`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		logger.Error("Repository: Ошибка чтения слота", err, zap.String("slot", name))
		return nil, false, fmt.Errorf("чтение слота %s: %w", name, err)
	}

	s.warnSlow(name, start)
	return payload, true, nil
}

func (s *Storage) Save(ctx context.Context, name string, payload []byte) error {
	start := time.Now()

	query := `INSERT INTO slots (name, payload)
				VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE
				SET payload = EXCLUDED.payload,
				revision = slots.revision + 1,
				updated_at = NOW()`

	if _, err := s.pool.Exec(ctx, query, name, string(payload)); err != nil {
		logger.Error("Repository: Не удалось записать слот", err, zap.String("slot", name))
		return fmt.Errorf("запись слота %s: %w", name, err)
	}

	s.warnSlow(name, start)
	return nil
}

// Revision - число записей слота; 0, если слот не записывался.
func (s *Storage) Revision(ctx context.Context, name string) (int, error) {
	var revision int
	err := s.pool.QueryRow(ctx, `SELECT revision FROM slots WHERE name = $1`, name).Scan(&revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("чтение ревизии слота %s: %w", name, err)
	}
	return revision, nil
}

func (s *Storage) warnSlow(name string, start time.Time) {
	if duration := time.Since(start); duration > slowQuery {
		logger.Warn("Repository: Медленная операция", zap.String("slot", name), zap.Duration("ms", duration))
	}
}
