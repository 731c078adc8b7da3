package bot

import (
	"fmt"
	"html"
	"strings"

	"polyglot-tts/internal/tts"
)

// Messages содержит тексты ответов бота
type Messages struct{}

// NewMessages создает набор текстов
func NewMessages() *Messages {
	return &Messages{}
}

func (m *Messages) Welcome() string {
	return "👋 <b>Привет!</b>\n\n" +
		"Пришлите мне текст, и я озвучу его голосовым сообщением.\n\n" +
		"/providers - список провайдеров\n" +
		"/voices [провайдер] - список голосов\n" +
		"/voice &lt;провайдер&gt; &lt;голос&gt; - выбрать голос"
}

func (m *Messages) Help() string {
	return "ℹ️ <b>Команды</b>\n\n" +
		"/start - начать\n" +
		"/providers - список провайдеров\n" +
		"/voices [провайдер] - голоса провайдера\n" +
		"/voice &lt;провайдер&gt; &lt;голос&gt; - выбрать голос\n\n" +
		"Любой другой текст будет озвучен выбранным голосом."
}

func (m *Messages) UnknownCommand() string {
	return "❓ Неизвестная команда. Используйте /help"
}

func (m *Messages) Providers(providers []tts.Provider, current string) string {
	var b strings.Builder
	b.WriteString("🗣 <b>Провайдеры</b>\n\n")
	for _, p := range providers {
		marker := "•"
		if p.ID() == current {
			marker = "✅"
		}
		fmt.Fprintf(&b, "%s <code>%s</code> - %s (%d голосов)\n", marker, p.ID(), p.FriendlyName(), len(p.Voices()))
	}
	return b.String()
}

func (m *Messages) Voices(p tts.Provider) string {
	return fmt.Sprintf("🎙 <b>Голоса %s</b>\nВыберите голос:", p.FriendlyName())
}

func (m *Messages) VoiceSelected(p tts.Provider, voice tts.Voice) string {
	return fmt.Sprintf("✅ Выбран голос <b>%s</b> (%s, %s)", voice.Name, p.FriendlyName(), voice.Language)
}

func (m *Messages) VoiceUsage() string {
	return "Использование: /voice &lt;провайдер&gt; &lt;голос&gt;"
}

func (m *Messages) UnknownProvider(id string) string {
	return fmt.Sprintf("❌ Неизвестный провайдер: %s. Список: /providers", html.EscapeString(id))
}

func (m *Messages) UnknownVoice(voice string) string {
	return fmt.Sprintf("❌ Неизвестный голос: %s. Список: /voices", html.EscapeString(voice))
}

func (m *Messages) TextTooLong(limit int) string {
	return fmt.Sprintf("⚠️ Текст слишком длинный, максимум %d символов", limit)
}

// SynthesisFailed отправляется без разметки: текст ошибки приходит от вендора
func (m *Messages) SynthesisFailed(message string) string {
	return "❌ Не удалось озвучить текст: " + message
}

func (m *Messages) InternalError() string {
	return "❌ Ошибка обработки запроса"
}
