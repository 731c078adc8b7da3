package store

import (
	"context"
	"sync"
	"time"

	"polyglot-tts/pkg/models"
)

// memoryStore хранит настройки в памяти процесса, используется без DB_HOST
type memoryStore struct {
	preference *memoryPreferenceRepository
}

// NewMemoryStore создает хранилище в памяти
func NewMemoryStore() Store {
	return &memoryStore{
		preference: &memoryPreferenceRepository{prefs: make(map[int64]models.ChatPreference)},
	}
}

func (s *memoryStore) Preference() PreferenceRepository {
	return s.preference
}

func (s *memoryStore) Close() error {
	return nil
}

type memoryPreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[int64]models.ChatPreference
}

func (r *memoryPreferenceRepository) Get(_ context.Context, chatID int64) (*models.ChatPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pref, ok := r.prefs[chatID]
	if !ok {
		return nil, ErrNotFound
	}
	return &pref, nil
}

func (r *memoryPreferenceRepository) Save(_ context.Context, pref *models.ChatPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pref.UpdatedAt = time.Now()
	r.prefs[pref.ChatID] = *pref
	return nil
}

func (r *memoryPreferenceRepository) Delete(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.prefs, chatID)
	return nil
}
