package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"polyglot-tts/internal/metrics"
	"polyglot-tts/internal/registry"
	"polyglot-tts/internal/tts"
	"polyglot-tts/pkg/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	id   string
	resp tts.Response
}

func (f *fakeProvider) ID() string           { return f.id }
func (f *fakeProvider) FriendlyName() string { return "가짜 " + f.id }
func (f *fakeProvider) Voices() []tts.Voice {
	return []tts.Voice{{ID: f.id + "-voice", Name: "Voice", Language: "ko-KR"}}
}
func (f *fakeProvider) Synthesize(context.Context, string, string) tts.Response {
	return f.resp
}

func newTestRouter(t *testing.T, opts ...Option) http.Handler {
	t.Helper()

	reg, err := registry.New(
		&fakeProvider{id: "ok", resp: tts.NewAudio(tts.FormatOGG, []byte("OggS-data"))},
		&fakeProvider{id: "broken", resp: tts.NewFailureWithTrace("500 Internal Server Error: boom", "raw body")},
	)
	require.NoError(t, err)

	promReg := prometheus.NewRegistry()
	metrics.New(zap.NewNop(), promReg)

	return NewServer(reg, metrics.NewHandler(promReg, zap.NewNop()), zap.NewNop(), opts...).Router()
}

func synthesize(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/synthesize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServer_Providers(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var providers []models.ProviderInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&providers))
	require.Len(t, providers, 2)
	assert.Equal(t, "broken", providers[0].ID)
	assert.Equal(t, "ok", providers[1].ID)
	assert.Equal(t, "가짜 ok", providers[1].Name)
	assert.Equal(t, "ok-voice", providers[1].Voices[0].ID)
}

func TestServer_Voices(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers/ok/voices", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var voices []tts.Voice
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&voices))
	assert.Equal(t, "ok-voice", voices[0].ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers/naver/voices", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_SynthesizeAudio(t *testing.T) {
	rec := synthesize(t, newTestRouter(t), `{"provider":"ok","voice":"ok-voice","text":"안녕"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/ogg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "OggS-data", rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestServer_SynthesizeFailure(t *testing.T) {
	rec := synthesize(t, newTestRouter(t), `{"provider":"broken","voice":"v","text":"t"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "trace")

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "500 Internal Server Error: boom", body.Error)
	assert.Empty(t, body.Trace)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), body.RequestID)
}

func TestServer_SynthesizeFailureWithTrace(t *testing.T) {
	rec := synthesize(t, newTestRouter(t, WithFailureTrace(true)), `{"provider":"broken","voice":"v","text":"t"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "raw body", body.Trace)
}

func TestServer_SynthesizeErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := synthesize(t, router, `{"provider":"naver","voice":"v","text":"t"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = synthesize(t, router, `{"provider":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_RequestIDPassthrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
