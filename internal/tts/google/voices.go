package google

import (
	"strings"

	"polyglot-tts/internal/tts"
)

var catalog = []tts.Voice{
	{ID: "ko-KR-Standard-A", Name: "Standard A (여성)", Language: "ko-KR"},
	{ID: "ko-KR-Standard-B", Name: "Standard B (여성)", Language: "ko-KR"},
	{ID: "ko-KR-Standard-C", Name: "Standard C (남성)", Language: "ko-KR"},
	{ID: "ko-KR-Standard-D", Name: "Standard D (남성)", Language: "ko-KR"},
	{ID: "ko-KR-Wavenet-A", Name: "Wavenet A (여성)", Language: "ko-KR"},
	{ID: "ko-KR-Wavenet-B", Name: "Wavenet B (여성)", Language: "ko-KR"},
	{ID: "ko-KR-Wavenet-C", Name: "Wavenet C (남성)", Language: "ko-KR"},
	{ID: "ko-KR-Wavenet-D", Name: "Wavenet D (남성)", Language: "ko-KR"},
	{ID: "en-US-Wavenet-C", Name: "en-US Wavenet C (여성)", Language: "en-US"},
	{ID: "en-US-Wavenet-D", Name: "en-US Wavenet D (남성)", Language: "en-US"},
	{ID: "ja-JP-Wavenet-A", Name: "ja-JP Wavenet A (여성)", Language: "ja-JP"},
}

// languageCode выводит код языка из имени голоса: ko-KR-Wavenet-A -> ko-KR.
// Для имени неизвестного формата возвращает его целиком, ошибку вернет API.
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 3 {
		return voice
	}
	return parts[0] + "-" + parts[1]
}
