package google

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

const audioEncodingOGG = "OGG_OPUS"

// synthesizeRequest - тело запроса POST /v1/text:synthesize
type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
}

type audioConfig struct {
	AudioEncoding string `json:"audioEncoding"`
}

func newSynthesizeRequest(voice, text string) synthesizeRequest {
	return synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceSelection{
			LanguageCode: languageCode(voice),
			Name:         voice,
		},
		AudioConfig: audioConfig{AudioEncoding: audioEncodingOGG},
	}
}

// synthesizeResponse - успешный ответ, аудио закодировано в base64
type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// errorResponse - конверт ошибки Google API
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// decodeAudio достает аудио из тела ответа.
// ok == false, если поле audioContent отсутствует или пустое.
func decodeAudio(body []byte) (audio []byte, ok bool, err error) {
	var resp synthesizeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, false, fmt.Errorf("ошибка парсинга ответа: %w", err)
	}
	if strings.TrimSpace(resp.AudioContent) == "" {
		return nil, false, nil
	}

	audio, err = base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, false, fmt.Errorf("ошибка декодирования audioContent: %w", err)
	}
	return audio, true, nil
}

// errorDetail достает статус и текст ошибки из конверта Google
func errorDetail(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return ""
	}
	if errResp.Error.Status == "" {
		return errResp.Error.Message
	}
	return errResp.Error.Status + ": " + errResp.Error.Message
}
