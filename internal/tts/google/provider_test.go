package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"polyglot-tts/internal/tts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()
	p, err := New("test-key", zap.NewNop(), WithBaseURL(baseURL))
	require.NoError(t, err)
	return p
}

func TestNew_MissingKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		p, err := New(key, zap.NewNop())
		assert.Nil(t, p)
		assert.ErrorIs(t, err, tts.ErrMissingCredential)
	}
}

func TestProvider_Identity(t *testing.T) {
	p, err := New("test-key", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "google", p.ID())
	assert.Equal(t, "구글", p.FriendlyName())
	assert.Equal(t, p.ID(), p.ID())
}

func TestProvider_Voices(t *testing.T) {
	p, err := New("test-key", zap.NewNop())
	require.NoError(t, err)

	voices := p.Voices()
	require.NotEmpty(t, voices)
	assert.Equal(t, voices, p.Voices())
	assert.Equal(t, "ko-KR-Standard-A", voices[0].ID)
}

func TestProvider_Synthesize_Success(t *testing.T) {
	audio := []byte{0x4f, 0x67, 0x67, 0x53, 0x00, 0xff, 0x10, 0x80}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text:synthesize", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req synthesizeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "안녕", req.Input.Text)
		assert.Equal(t, "ko-KR-Wavenet-A", req.Voice.Name)
		assert.Equal(t, "ko-KR", req.Voice.LanguageCode)
		assert.Equal(t, "OGG_OPUS", req.AudioConfig.AudioEncoding)

		json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString(audio),
		})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	resp := p.Synthesize(context.Background(), "ko-KR-Wavenet-A", "안녕")

	got, ok := resp.(*tts.Audio)
	require.True(t, ok, "ожидался *tts.Audio, получен %T", resp)
	assert.Equal(t, tts.FormatOGG, got.Format)
	assert.Equal(t, tts.CodecOpus, got.Codec)
	assert.Equal(t, audio, got.Data)
}

func TestProvider_Synthesize_BlankAudioContent(t *testing.T) {
	for _, body := range []string{`{"audioContent": ""}`, `{"audioContent": "   "}`, `{}`} {
		server := newTestServer(t, http.StatusOK, body)
		p := newTestProvider(t, server.URL)

		resp := p.Synthesize(context.Background(), "ko-KR-Standard-A", "text")

		failure, ok := resp.(*tts.Failure)
		require.True(t, ok, "200 без аудио не должен быть успехом: %s", body)
		assert.Contains(t, failure.Message, "200")
	}
}

func TestProvider_Synthesize_ServerError(t *testing.T) {
	server := newTestServer(t, http.StatusInternalServerError, "backend exploded")
	p := newTestProvider(t, server.URL)

	resp := p.Synthesize(context.Background(), "ko-KR-Standard-A", "text")

	failure, ok := resp.(*tts.Failure)
	require.True(t, ok)
	assert.Equal(t, "500 Internal Server Error: backend exploded", failure.Message)
}

func TestProvider_Synthesize_ErrorEnvelope(t *testing.T) {
	server := newTestServer(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"Voice 'xx' does not exist.","status":"INVALID_ARGUMENT"}}`)
	p := newTestProvider(t, server.URL)

	resp := p.Synthesize(context.Background(), "xx", "text")

	failure, ok := resp.(*tts.Failure)
	require.True(t, ok)
	assert.Equal(t, "400 Bad Request: INVALID_ARGUMENT: Voice 'xx' does not exist.", failure.Message)
}

func TestProvider_Synthesize_MalformedBody(t *testing.T) {
	t.Run("не JSON", func(t *testing.T) {
		server := newTestServer(t, http.StatusOK, "<html>")
		p := newTestProvider(t, server.URL)

		_, ok := p.Synthesize(context.Background(), "ko-KR-Standard-A", "text").(*tts.Failure)
		assert.True(t, ok)
	})

	t.Run("не base64", func(t *testing.T) {
		server := newTestServer(t, http.StatusOK, `{"audioContent":"***"}`)
		p := newTestProvider(t, server.URL)

		failure, ok := p.Synthesize(context.Background(), "ko-KR-Standard-A", "text").(*tts.Failure)
		require.True(t, ok)
		assert.Contains(t, failure.Message, "audioContent")
	})
}

func TestProvider_Synthesize_BodyReadError(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       &failingBody{err: errors.New("unexpected EOF")},
			Request:    r,
		}, nil
	})

	p, err := New("test-key", zap.NewNop(), WithRoundTripper(rt))
	require.NoError(t, err)

	failure, ok := p.Synthesize(context.Background(), "ko-KR-Standard-A", "text").(*tts.Failure)
	require.True(t, ok)
	assert.Contains(t, failure.Message, "unexpected EOF")
	assert.NotEmpty(t, failure.Trace)
}

func TestDecodeAudio_RoundTrip(t *testing.T) {
	samples := [][]byte{
		{},
		{0x00},
		[]byte("OggS"),
		{0xff, 0xfe, 0xfd, 0x00, 0x01, 0x02, 0x7f, 0x80},
		make([]byte, 4096),
	}
	for i := range samples[4] {
		samples[4][i] = byte(i * 31)
	}

	for _, want := range samples {
		body, err := json.Marshal(synthesizeResponse{AudioContent: base64.StdEncoding.EncodeToString(want)})
		require.NoError(t, err)

		got, ok, err := decodeAudio(body)
		require.NoError(t, err)
		if len(want) == 0 {
			// пустое аудио кодируется в пустую строку и не считается успехом
			assert.False(t, ok)
			continue
		}
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestLanguageCode(t *testing.T) {
	tests := map[string]string{
		"ko-KR-Wavenet-A":  "ko-KR",
		"en-US-Standard-B": "en-US",
		"cmn-CN-Wavenet-A": "cmn-CN",
		"broken":           "broken",
	}
	for voice, want := range tests {
		assert.Equal(t, want, languageCode(voice), voice)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

type failingBody struct {
	err error
}

func (b *failingBody) Read([]byte) (int, error) {
	return 0, b.err
}

func (b *failingBody) Close() error {
	return nil
}
