// Package google реализует tts.Provider поверх Google Cloud Text-to-Speech.
// Ключ передается query параметром, аудио приходит в JSON в виде base64.
package google

import (
	"context"
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
	ID = "google"

	// BaseURL - адрес Google Cloud Text-to-Speech API
	BaseURL = "https://texttospeech.googleapis.com"

	friendlyName   = "구글"
	synthesizePath = "/v1/text:synthesize"
	apiKeyParam    = "key"
)

// Ensure provider implements interface.
var _ tts.Provider = (*Provider)(nil)

// Provider - адаптер Google Cloud Text-to-Speech
type Provider struct {
	client *transport.Client
	logger *zap.Logger
}

type settings struct {
	baseURL   string
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

// New создает адаптер Google TTS. Пустой ключ - ошибка конфигурации.
func New(apiKey string, logger *zap.Logger, opts ...Option) (*Provider, error) {
	if err := tts.RequireCredential(ID, "api key", apiKey); err != nil {
		return nil, err
	}

	s := settings{baseURL: BaseURL}
	for _, opt := range opts {
		opt(&s)
	}

	transportOpts := append([]transport.Option{transport.WithQuery(apiKeyParam, apiKey)}, s.transport...)

	return &Provider{
		client: transport.New(s.baseURL, logger, transportOpts...),
		logger: logger,
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

// Voices возвращает каталог голосов Google
func (p *Provider) Voices() []tts.Voice {
	return tts.CopyVoices(catalog)
}

// Synthesize преобразует текст в аудио через Google TTS
func (p *Provider) Synthesize(ctx context.Context, voice, text string) tts.Response {
	p.logger.Info("🎵 генерируем аудио через Google TTS",
		zap.String("voice", voice),
		zap.Int("text_length", len(text)))

	resp, err := p.client.PostJSON(ctx, synthesizePath, newSynthesizeRequest(voice, text))
	if err != nil {
		p.logger.Error("ошибка запроса к Google TTS", zap.Error(err))
		return tts.FailureFromError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Error("ошибка чтения ответа Google TTS", zap.Error(err))
		return tts.FailureFromError(fmt.Errorf("ошибка чтения ответа: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("Google TTS вернул ошибку",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)))
		return tts.StatusFailure(resp.StatusCode, body, errorDetail(body))
	}

	audioData, ok, err := decodeAudio(body)
	if err != nil {
		p.logger.Error("ошибка разбора ответа Google TTS", zap.Error(err))
		return tts.NewFailureWithTrace(err.Error(), string(body))
	}
	if !ok {
		// 200 без аудио - не успех
		p.logger.Warn("Google TTS вернул пустой audioContent")
		return tts.StatusFailure(resp.StatusCode, body, "")
	}

	p.logger.Info("🎵 аудио успешно сгенерировано",
		zap.String("voice", voice),
		zap.Int("audio_size", len(audioData)))

	return tts.NewOGGAudio(tts.CodecOpus, audioData)
}
