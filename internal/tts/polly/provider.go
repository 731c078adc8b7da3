// Package polly реализует tts.Provider поверх AWS Polly REST API.
// Тело успешного ответа - сырое OGG Vorbis аудио, запросы подписываются SigV4.
package polly

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
	ID = "aws"

	// DefaultRegion - регион Polly по умолчанию (Сеул)
	DefaultRegion = "ap-northeast-2"

	friendlyName = "아마존"
	speechPath   = "/v1/speech"
)

// Ensure provider implements interface.
var _ tts.Provider = (*Provider)(nil)

// Config содержит ключи доступа AWS
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// Provider - адаптер AWS Polly
type Provider struct {
	client *transport.Client
	logger *zap.Logger
}

type settings struct {
	baseURL   string
	transport []transport.Option
	now       func() time.Time
}

// Option настраивает провайдер
type Option func(*settings)

// WithBaseURL задает адрес API вместо регионального (для тестов и прокси)
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

// withClock подменяет время подписи в тестах
func withClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// Endpoint возвращает адрес Polly для региона
func Endpoint(region string) string {
	return fmt.Sprintf("https://polly.%s.amazonaws.com", region)
}

// New создает адаптер AWS Polly. Пустые ключи - ошибка конфигурации,
// сеть при этом не используется.
func New(cfg Config, logger *zap.Logger, opts ...Option) (*Provider, error) {
	if err := tts.RequireCredential(ID, "access key id", cfg.AccessKeyID); err != nil {
		return nil, err
	}
	if err := tts.RequireCredential(ID, "secret access key", cfg.SecretAccessKey); err != nil {
		return nil, err
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	s := settings{
		baseURL: Endpoint(cfg.Region),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}

	signer := newRequestSigner(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.Region, s.now)
	transportOpts := append([]transport.Option{transport.WithSigner(signer)}, s.transport...)

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

// Voices возвращает каталог голосов Polly
func (p *Provider) Voices() []tts.Voice {
	return tts.CopyVoices(catalog)
}

// Synthesize преобразует текст в аудио через AWS Polly
func (p *Provider) Synthesize(ctx context.Context, voice, text string) tts.Response {
	p.logger.Info("🎵 генерируем аудио через AWS Polly",
		zap.String("voice", voice),
		zap.Int("text_length", len(text)))

	resp, err := p.client.PostJSON(ctx, speechPath, newSpeechRequest(voice, text))
	if err != nil {
		p.logger.Error("ошибка запроса к AWS Polly", zap.Error(err))
		return tts.FailureFromError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		p.logger.Warn("AWS Polly вернул ошибку",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)))
		return tts.StatusFailure(resp.StatusCode, body, errorDetail(resp.Header, body))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Error("ошибка чтения аудио от AWS Polly", zap.Error(err))
		return tts.FailureFromError(fmt.Errorf("ошибка чтения аудио данных: %w", err))
	}

	p.logger.Info("🎵 аудио успешно сгенерировано",
		zap.String("voice", voice),
		zap.Int("audio_size", len(audioData)))

	return tts.NewOGGAudio(tts.CodecVorbis, audioData)
}
