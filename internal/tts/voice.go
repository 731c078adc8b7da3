package tts

// Voice описывает голос, поддерживаемый провайдером
type Voice struct {
	ID       string `json:"id"`       // идентификатор голоса у вендора
	Name     string `json:"name"`     // отображаемое название
	Language string `json:"language"` // код языка, например ko-KR
}

// AudioFormat описывает формат аудио в ответе
type AudioFormat struct {
	Name     string
	MIMEType string
	Ext      string
}

// FormatOGG - аудио в контейнере OGG (Vorbis или Opus)
var FormatOGG = AudioFormat{
	Name:     "ogg",
	MIMEType: "audio/ogg",
	Ext:      ".ogg",
}

// Кодеки внутри контейнера OGG
const (
	CodecOpus   = "opus"
	CodecVorbis = "vorbis"
)

// String возвращает название формата
func (f AudioFormat) String() string {
	return f.Name
}

// CopyVoices возвращает копию каталога, чтобы вызывающий код не мог изменить исходный список
func CopyVoices(catalog []Voice) []Voice {
	out := make([]Voice, len(catalog))
	copy(out, catalog)
	return out
}
