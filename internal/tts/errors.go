package tts

import (
	"errors"
	"strings"
)

// ErrMissingCredential возвращается конструктором провайдера, если не задан обязательный ключ
var ErrMissingCredential = errors.New("не задан обязательный ключ доступа")

// CredentialError описывает, какого ключа не хватило какому провайдеру
type CredentialError struct {
	Provider string
	Name     string
}

// Error реализует интерфейс error
func (e *CredentialError) Error() string {
	return e.Provider + ": " + ErrMissingCredential.Error() + " " + e.Name
}

// Unwrap позволяет сравнивать через errors.Is(err, ErrMissingCredential)
func (e *CredentialError) Unwrap() error {
	return ErrMissingCredential
}

// RequireCredential проверяет, что значение ключа не пустое и не состоит из пробелов
func RequireCredential(provider, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &CredentialError{Provider: provider, Name: name}
	}
	return nil
}
