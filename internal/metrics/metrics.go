package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Значения метки result
const (
	ResultAudio   = "audio"
	ResultFailure = "failure"
)

// Metrics содержит метрики синтеза речи
type Metrics struct {
	logger *zap.Logger

	// Счетчики
	synthesisTotal *prometheus.CounterVec

	// Гистограммы
	synthesisDuration *prometheus.HistogramVec
	audioBytes        *prometheus.HistogramVec
}

// New создает метрики и регистрирует их в reg
func New(logger *zap.Logger, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logger: logger,

		synthesisTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tts_synthesis_total",
				Help: "Общее количество запросов синтеза",
			},
			[]string{"provider", "result"}, // result: audio, failure
		),

		synthesisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tts_synthesis_duration_seconds",
				Help:    "Время синтеза в секундах",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		audioBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tts_audio_bytes",
				Help:    "Размер полученного аудио в байтах",
				Buckets: prometheus.ExponentialBuckets(1024, 2, 12),
			},
			[]string{"provider"},
		),
	}

	reg.MustRegister(
		m.synthesisTotal,
		m.synthesisDuration,
		m.audioBytes,
	)

	return m
}

// RecordSynthesis записывает результат одного синтеза.
// size учитывается только для успешного результата.
func (m *Metrics) RecordSynthesis(provider, result string, elapsed time.Duration, size int) {
	m.synthesisTotal.WithLabelValues(provider, result).Inc()
	m.synthesisDuration.WithLabelValues(provider).Observe(elapsed.Seconds())

	if result == ResultAudio {
		m.audioBytes.WithLabelValues(provider).Observe(float64(size))
	}

	m.logger.Debug("метрика синтеза записана",
		zap.String("provider", provider),
		zap.String("result", result),
		zap.Duration("elapsed", elapsed))
}
