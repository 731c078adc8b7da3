package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"polyglot-tts/pkg/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PreferenceRepository интерфейс для работы с настройками чатов
type PreferenceRepository interface {
	Get(ctx context.Context, chatID int64) (*models.ChatPreference, error)
	Save(ctx context.Context, pref *models.ChatPreference) error
	Delete(ctx context.Context, chatID int64) error
}

// preferenceRepository реализует PreferenceRepository
type preferenceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPreferenceRepository создает новый репозиторий настроек
func NewPreferenceRepository(db *pgxpool.Pool, logger *zap.Logger) PreferenceRepository {
	return &preferenceRepository{
		db:     db,
		logger: logger,
	}
}

// Get возвращает настройки чата или ErrNotFound
func (r *preferenceRepository) Get(ctx context.Context, chatID int64) (*models.ChatPreference, error) {
	query := `
		SELECT chat_id, provider, voice, updated_at
		FROM chat_preferences
		WHERE chat_id = $1`

	pref := &models.ChatPreference{}
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&pref.ChatID, &pref.Provider, &pref.Voice, &pref.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения настроек чата: %w", err)
	}

	return pref, nil
}

// Save создает или обновляет настройки чата
func (r *preferenceRepository) Save(ctx context.Context, pref *models.ChatPreference) error {
	query := `
		INSERT INTO chat_preferences (chat_id, provider, voice, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id) DO UPDATE
		SET provider = EXCLUDED.provider, voice = EXCLUDED.voice, updated_at = EXCLUDED.updated_at`

	pref.UpdatedAt = time.Now()

	if _, err := r.db.Exec(ctx, query, pref.ChatID, pref.Provider, pref.Voice, pref.UpdatedAt); err != nil {
		return fmt.Errorf("ошибка сохранения настроек чата: %w", err)
	}

	r.logger.Debug("настройки чата сохранены",
		zap.Int64("chat_id", pref.ChatID),
		zap.String("provider", pref.Provider),
		zap.String("voice", pref.Voice))

	return nil
}

// Delete удаляет настройки чата
func (r *preferenceRepository) Delete(ctx context.Context, chatID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM chat_preferences WHERE chat_id = $1`, chatID); err != nil {
		return fmt.Errorf("ошибка удаления настроек чата: %w", err)
	}
	return nil
}
