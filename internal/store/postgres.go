package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"polyglot-tts/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNotFound возвращается, если запись не найдена
var ErrNotFound = errors.New("запись не найдена")

// Store представляет интерфейс для работы с хранилищем
type Store interface {
	Preference() PreferenceRepository
	Close() error
}

// store реализует интерфейс Store поверх PostgreSQL
type store struct {
	db         *pgxpool.Pool
	logger     *zap.Logger
	preference PreferenceRepository
}

// NewStore создает новое подключение к базе данных
func NewStore(cfg *config.DatabaseConfig, logger *zap.Logger) (Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Создание пула подключений
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DSN: %w", err)
	}

	// Настройка пула
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка проверки подключения к базе данных: %w", err)
	}

	logger.Info("успешное подключение к базе данных PostgreSQL")

	return &store{
		db:         db,
		logger:     logger,
		preference: NewPreferenceRepository(db, logger),
	}, nil
}

// Preference возвращает репозиторий настроек чатов
func (s *store) Preference() PreferenceRepository {
	return s.preference
}

// Close закрывает подключение к базе данных
func (s *store) Close() error {
	s.logger.Info("закрытие подключения к базе данных")
	s.db.Close()
	return nil
}
