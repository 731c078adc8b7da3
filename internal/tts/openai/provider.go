// Package openai реализует tts.Provider поверх OpenAI /v1/audio/speech.
// Формат opus возвращается в контейнере OGG.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"polyglot-tts/internal/tts"
	"polyglot-tts/internal/tts/transport"

	"go.uber.org/zap"
)

const (
	// ID - идентификатор провайдера в реестре
	ID = "openai"

	// BaseURL - адрес OpenAI API
	BaseURL = "https://api.openai.com"

	// ModelTTS1 - быстрая модель синтеза
	ModelTTS1 = "tts-1"

	friendlyName = "오픈AI"
	speechPath   = "/v1/audio/speech"
	formatOpus   = "opus"
)

// Голоса OpenAI
const (
	VoiceAlloy   = "alloy"
	VoiceEcho    = "echo"
	VoiceFable   = "fable"
	VoiceOnyx    = "onyx"
	VoiceNova    = "nova"
	VoiceShimmer = "shimmer"
)

var catalog = []tts.Voice{
	{ID: VoiceAlloy, Name: "Alloy", Language: "multi"},
	{ID: VoiceEcho, Name: "Echo", Language: "multi"},
	{ID: VoiceFable, Name: "Fable", Language: "multi"},
	{ID: VoiceOnyx, Name: "Onyx", Language: "multi"},
	{ID: VoiceNova, Name: "Nova", Language: "multi"},
	{ID: VoiceShimmer, Name: "Shimmer", Language: "multi"},
}

// Ensure provider implements interface.
var _ tts.Provider = (*Provider)(nil)

// Provider - адаптер OpenAI TTS
type Provider struct {
	client *transport.Client
	logger *zap.Logger
	model  string
}

type settings struct {
	baseURL   string
	model     string
	transport []transport.Option
}

// Option настраивает провайдер
type Option func(*settings)

// WithBaseURL задает адрес API (для тестов и прокси)
func WithBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = url
	}
}

// WithModel задает модель синтеза
func WithModel(model string) Option {
	return func(s *settings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithRoundTripper задает нижележащий HTTP транспорт
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(s *settings) {
		s.transport = append(s.transport, transport.WithRoundTripper(rt))
	}
}

// WithTimeout задает таймаут запроса
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.transport = append(s.transport, transport.WithTimeout(d))
	}
}

// speechRequest - тело запроса POST /v1/audio/speech
type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// errorResponse - конверт ошибки OpenAI
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// New создает адаптер OpenAI TTS. Пустой ключ - ошибка конфигурации.
func New(apiKey string, logger *zap.Logger, opts ...Option) (*Provider, error) {
	if err := tts.RequireCredential(ID, "api key", apiKey); err != nil {
		return nil, err
	}

	s := settings{
		baseURL: BaseURL,
		model:   ModelTTS1,
	}
	for _, opt := range opts {
		opt(&s)
	}

	transportOpts := append([]transport.Option{transport.WithHeader("Authorization", "Bearer "+apiKey)}, s.transport...)

	return &Provider{
		client: transport.New(s.baseURL, logger, transportOpts...),
		logger: logger,
		model:  s.model,
	}, nil
}

// ID возвращает идентификатор провайдера
func (p *Provider) ID() string {
	return ID
}

// FriendlyName возвращает название провайдера для отображения
func (p *Provider) FriendlyName() string {
	return friendlyName
}

// Voices возвращает каталог голосов OpenAI
func (p *Provider) Voices() []tts.Voice {
	return tts.CopyVoices(catalog)
}

// Synthesize преобразует текст в аудио через OpenAI TTS
func (p *Provider) Synthesize(ctx context.Context, voice, text string) tts.Response {
	p.logger.Info("🎵 генерируем аудио через OpenAI TTS",
		zap.String("voice", voice),
		zap.String("model", p.model),
		zap.Int("text_length", len(text)))

	resp, err := p.client.PostJSON(ctx, speechPath, speechRequest{
		Model:          p.model,
		Input:          text,
		Voice:          voice,
		ResponseFormat: formatOpus,
	})
	if err != nil {
		p.logger.Error("ошибка запроса к OpenAI TTS", zap.Error(err))
		return tts.FailureFromError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		p.logger.Warn("OpenAI TTS вернул ошибку",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)))
		return tts.StatusFailure(resp.StatusCode, body, errorDetail(body))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Error("ошибка чтения аудио от OpenAI TTS", zap.Error(err))
		return tts.FailureFromError(fmt.Errorf("ошибка чтения аудио данных: %w", err))
	}

	p.logger.Info("🎵 аудио успешно сгенерировано",
		zap.String("voice", voice),
		zap.Int("audio_size", len(audioData)))

	return tts.NewOGGAudio(tts.CodecOpus, audioData)
}

func errorDetail(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return ""
	}
	if errResp.Error.Code == "" {
		return errResp.Error.Message
	}
	return errResp.Error.Code + ": " + errResp.Error.Message
}
