package models

import "polyglot-tts/internal/tts"

// ProviderInfo описывает провайдер в ответе GET /api/providers
type ProviderInfo struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Voices []tts.Voice `json:"voices"`
}

// SynthesizeRequest - тело запроса POST /api/synthesize
type SynthesizeRequest struct {
	Provider string `json:"provider"`
	Voice    string `json:"voice"`
	Text     string `json:"text"`
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error     string `json:"error"`
	Trace     string `json:"trace,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
