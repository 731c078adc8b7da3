// Package registry хранит сконструированные TTS провайдеры по идентификатору.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"polyglot-tts/internal/tts"
)

// ErrUnknownProvider возвращается для неизвестного идентификатора провайдера
var ErrUnknownProvider = errors.New("неизвестный TTS провайдер")

// Registry - неизменяемый набор провайдеров, безопасен для конкурентного чтения
type Registry struct {
	providers map[string]tts.Provider
	ordered   []tts.Provider
}

// New создает реестр. Повторяющийся идентификатор - ошибка.
func New(providers ...tts.Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]tts.Provider, len(providers))}

	for _, p := range providers {
		id := p.ID()
		if _, exists := r.providers[id]; exists {
			return nil, fmt.Errorf("провайдер %s зарегистрирован дважды", id)
		}
		r.providers[id] = p
		r.ordered = append(r.ordered, p)
	}

	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].ID() < r.ordered[j].ID()
	})

	return r, nil
}

// Get возвращает провайдер по идентификатору
func (r *Registry) Get(id string) (tts.Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, id)
	}
	return p, nil
}

// List возвращает провайдеры, отсортированные по идентификатору
func (r *Registry) List() []tts.Provider {
	out := make([]tts.Provider, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len возвращает количество провайдеров
func (r *Registry) Len() int {
	return len(r.ordered)
}
