package polly

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	outputFormatOGG = "ogg_vorbis"
	engineStandard  = "standard"
	textTypePlain   = "text"
)

// speechRequest - тело запроса POST /v1/speech
type speechRequest struct {
	Engine       string `json:"Engine"`
	OutputFormat string `json:"OutputFormat"`
	Text         string `json:"Text"`
	TextType     string `json:"TextType"`
	VoiceID      string `json:"VoiceId"`
}

func newSpeechRequest(voice, text string) speechRequest {
	return speechRequest{
		Engine:       engineStandard,
		OutputFormat: outputFormatOGG,
		Text:         text,
		TextType:     textTypePlain,
		VoiceID:      voice,
	}
}

// errorResponse - конверт ошибки Polly, поле приходит как "message" или "Message"
type errorResponse struct {
	Message string `json:"message"`
}

// errorDetail достает тип и текст ошибки из ответа Polly
func errorDetail(header http.Header, body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
		return ""
	}

	errType := header.Get("X-Amzn-Errortype")
	if i := strings.IndexByte(errType, ':'); i >= 0 {
		errType = errType[:i]
	}
	if errType == "" {
		return errResp.Message
	}
	return errType + ": " + errResp.Message
}
