package metrics

import (
	"context"
	"time"

	"polyglot-tts/internal/tts"
)

// instrumented оборачивает провайдер и считает метрики каждого синтеза
type instrumented struct {
	tts.Provider
	metrics *Metrics
	now     func() time.Time
}

// Instrument возвращает провайдер, который пишет метрики в m.
// Ответ провайдера не меняется.
func (m *Metrics) Instrument(p tts.Provider) tts.Provider {
	return &instrumented{Provider: p, metrics: m, now: time.Now}
}

func (i *instrumented) Synthesize(ctx context.Context, voice, text string) tts.Response {
	start := i.now()
	resp := i.Provider.Synthesize(ctx, voice, text)
	elapsed := i.now().Sub(start)

	switch r := resp.(type) {
	case *tts.Audio:
		i.metrics.RecordSynthesis(i.ID(), ResultAudio, elapsed, len(r.Data))
	default:
		i.metrics.RecordSynthesis(i.ID(), ResultFailure, elapsed, 0)
	}

	return resp
}
