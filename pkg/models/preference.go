package models

import (
	"time"
)

// ChatPreference хранит выбранный в чате провайдер и голос
type ChatPreference struct {
	ChatID    int64     `json:"chat_id" db:"chat_id"`
	Provider  string    `json:"provider" db:"provider"`
	Voice     string    `json:"voice" db:"voice"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
