package tts

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
)

// Response - результат синтеза: либо *Audio, либо *Failure.
// Вызывающий код разбирает вариант через type switch.
type Response interface {
	response()
}

// Audio - успешный результат синтеза
type Audio struct {
	Format AudioFormat
	Codec  string // CodecOpus, CodecVorbis или пусто, если неизвестен
	Data   []byte
}

// Failure - неуспешный результат синтеза
type Failure struct {
	Message string
	Trace   string // техническая деталь: stack trace или ошибка вендора
}

func (*Audio) response()   {}
func (*Failure) response() {}

// NewAudio создает успешный ответ
func NewAudio(format AudioFormat, data []byte) *Audio {
	return &Audio{Format: format, Data: data}
}

// NewOGGAudio создает успешный ответ в контейнере OGG с известным кодеком
func NewOGGAudio(codec string, data []byte) *Audio {
	return &Audio{Format: FormatOGG, Codec: codec, Data: data}
}

// NewFailure создает ответ с ошибкой
func NewFailure(message string) *Failure {
	return &Failure{Message: message}
}

// NewFailureWithTrace создает ответ с ошибкой и технической деталью
func NewFailureWithTrace(message, trace string) *Failure {
	return &Failure{Message: message, Trace: trace}
}

// FailureFromError превращает ошибку Go в ответ с ошибкой, прикладывая текущий stack trace
func FailureFromError(err error) *Failure {
	return NewFailureWithTrace(err.Error(), string(debug.Stack()))
}

// StatusFailure создает ответ с ошибкой из неуспешного HTTP ответа вендора.
// detail - сообщение из JSON конверта ошибки вендора, если его удалось разобрать;
// тогда сырое тело ответа уходит в Trace.
func StatusFailure(status int, body []byte, detail string) *Failure {
	raw := strings.TrimSpace(string(body))
	if detail == "" {
		return NewFailure(fmt.Sprintf("%d %s: %s", status, http.StatusText(status), raw))
	}
	return NewFailureWithTrace(fmt.Sprintf("%d %s: %s", status, http.StatusText(status), detail), raw)
}

// Error позволяет использовать *Failure как error в хост-приложении
func (f *Failure) Error() string {
	return f.Message
}
