// Package api отдает TTS провайдеры по HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"polyglot-tts/internal/metrics"
	"polyglot-tts/internal/registry"
	"polyglot-tts/internal/tts"
	"polyglot-tts/pkg/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader - заголовок с идентификатором запроса
	RequestIDHeader = "X-Request-ID"

	// MaxBodySize - ограничение размера тела POST /api/synthesize
	MaxBodySize = 64 * 1024
)

// Server - HTTP интерфейс к реестру провайдеров
type Server struct {
	registry    *registry.Registry
	metrics     *metrics.Handler
	logger      *zap.Logger
	exposeTrace bool
}

// Option настраивает Server
type Option func(*Server)

// WithFailureTrace включает поле trace в ответе 502.
// По умолчанию trace только пишется в лог.
func WithFailureTrace(enabled bool) Option {
	return func(s *Server) {
		s.exposeTrace = enabled
	}
}

// NewServer создает HTTP сервер. metricsHandler может быть nil.
func NewServer(reg *registry.Registry, metricsHandler *metrics.Handler, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		registry: reg,
		metrics:  metricsHandler,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router возвращает http.Handler со всеми маршрутами
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.MetricsHandler())
		r.Get("/health", s.metrics.HealthHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/providers", s.handleProviders)
		r.Get("/providers/{provider}/voices", s.handleVoices)
		r.Post("/synthesize", s.handleSynthesize)
	})

	return r
}

// handleProviders возвращает все провайдеры с голосами
func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	providers := s.registry.List()

	out := make([]models.ProviderInfo, 0, len(providers))
	for _, p := range providers {
		out = append(out, providerInfo(p))
	}

	s.writeJSON(w, r, http.StatusOK, out)
}

// handleVoices возвращает голоса одного провайдера
func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	p, err := s.registry.Get(chi.URLParam(r, "provider"))
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err.Error(), "")
		return
	}

	s.writeJSON(w, r, http.StatusOK, p.Voices())
}

// handleSynthesize озвучивает текст и возвращает OGG
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req models.SynthesizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "некорректное тело запроса: "+err.Error(), "")
		return
	}

	p, err := s.registry.Get(req.Provider)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, registry.ErrUnknownProvider) {
			status = http.StatusNotFound
		}
		s.writeError(w, r, status, err.Error(), "")
		return
	}

	switch resp := p.Synthesize(r.Context(), req.Voice, req.Text).(type) {
	case *tts.Audio:
		w.Header().Set("Content-Type", resp.Format.MIMEType)
		w.Header().Set("Content-Disposition", `inline; filename="speech`+resp.Format.Ext+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(resp.Data); err != nil {
			s.logger.Warn("ошибка записи аудио в ответ", zap.Error(err))
		}
	case *tts.Failure:
		s.logger.Debug("провайдер вернул ошибку",
			zap.String("request_id", requestIDFrom(r)),
			zap.String("provider", p.ID()),
			zap.String("message", resp.Message),
			zap.String("trace", resp.Trace))

		trace := ""
		if s.exposeTrace {
			trace = resp.Trace
		}
		s.writeError(w, r, http.StatusBadGateway, resp.Message, trace)
	default:
		s.writeError(w, r, http.StatusInternalServerError, "неизвестный тип ответа провайдера", "")
	}
}

func providerInfo(p tts.Provider) models.ProviderInfo {
	return models.ProviderInfo{
		ID:     p.ID(),
		Name:   p.FriendlyName(),
		Voices: p.Voices(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("ошибка кодирования ответа",
			zap.String("request_id", requestIDFrom(r)),
			zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message, trace string) {
	s.writeJSON(w, r, status, models.ErrorResponse{
		Error:     message,
		Trace:     trace,
		RequestID: requestIDFrom(r),
	})
}

// requestID берет X-Request-ID из запроса или генерирует новый
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("HTTP запрос",
			zap.String("request_id", requestIDFrom(r)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}
