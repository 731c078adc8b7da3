package registry

import (
	"fmt"

	"polyglot-tts/internal/config"
	"polyglot-tts/internal/metrics"
	"polyglot-tts/internal/tts"
	"polyglot-tts/internal/tts/google"
	"polyglot-tts/internal/tts/openai"
	"polyglot-tts/internal/tts/polly"

	"go.uber.org/zap"
)

// NewProvider создает TTS провайдер на основе конфигурации
func NewProvider(id string, cfg *config.TTSConfig, logger *zap.Logger) (tts.Provider, error) {
	switch id {
	case config.ProviderAWS:
		return polly.New(polly.Config{
			AccessKeyID:     cfg.AWS.AccessKey,
			SecretAccessKey: cfg.AWS.SecretKey,
			Region:          cfg.AWS.Region,
		}, logger, polly.WithTimeout(cfg.Timeout))
	case config.ProviderGoogle:
		return google.New(cfg.Google.APIKey, logger, google.WithTimeout(cfg.Timeout))
	case config.ProviderOpenAI:
		return openai.New(cfg.OpenAI.APIKey, logger,
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithTimeout(cfg.Timeout))
	default:
		return nil, fmt.Errorf("%w: %s. Поддерживаются: 'aws', 'google', 'openai'", ErrUnknownProvider, id)
	}
}

// Build создает все провайдеры из cfg.Providers.
// Если m не nil, каждый провайдер оборачивается метриками.
func Build(cfg *config.TTSConfig, logger *zap.Logger, m *metrics.Metrics) (*Registry, error) {
	providers := make([]tts.Provider, 0, len(cfg.Providers))

	for _, id := range cfg.Providers {
		p, err := NewProvider(id, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания провайдера %s: %w", id, err)
		}
		if m != nil {
			p = m.Instrument(p)
		}
		providers = append(providers, p)

		logger.Info("TTS провайдер подключен",
			zap.String("provider", p.ID()),
			zap.String("name", p.FriendlyName()),
			zap.Int("voices", len(p.Voices())))
	}

	return New(providers...)
}
