package tts

import "context"

// Provider представляет интерфейс для Text-to-Speech провайдера (AWS Polly, Google, OpenAI и т.д.)
type Provider interface {
	// ID возвращает стабильный машинный идентификатор провайдера (ключ реестра)
	ID() string

	// FriendlyName возвращает локализованное название провайдера для отображения
	FriendlyName() string

	// Voices возвращает полный упорядоченный каталог голосов провайдера
	Voices() []Voice

	// Synthesize преобразует текст в аудио выбранным голосом.
	// Всегда возвращает *Audio или *Failure, никогда nil.
	Synthesize(ctx context.Context, voice, text string) Response
}

// FindVoice ищет голос в каталоге провайдера по идентификатору
func FindVoice(p Provider, voiceID string) (Voice, bool) {
	for _, v := range p.Voices() {
		if v.ID == voiceID {
			return v, true
		}
	}
	return Voice{}, false
}
