package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// credentialTransport добавляет статические ключи в заголовки и query
type credentialTransport struct {
	base    http.RoundTripper
	headers http.Header
	query   url.Values
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for key, values := range t.headers {
		for _, v := range values {
			r.Header.Set(key, v)
		}
	}
	if len(t.query) > 0 {
		q := r.URL.Query()
		for key, values := range t.query {
			for _, v := range values {
				q.Set(key, v)
			}
		}
		r.URL.RawQuery = q.Encode()
	}
	return t.base.RoundTrip(r)
}

// signingTransport подписывает запрос перед отправкой
type signingTransport struct {
	base   http.RoundTripper
	signer Signer
}

func (t *signingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if err := t.signer.Sign(r); err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, fmt.Errorf("ошибка подписи запроса: %w", err)
	}
	return t.base.RoundTrip(r)
}

// loggingTransport пишет метод, адрес без query, статус и время ответа.
// Query не логируется: в нем может быть ключ доступа.
type loggingTransport struct {
	base   http.RoundTripper
	logger *zap.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	target := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	t.logger.Debug("-> запрос к вендору",
		zap.String("method", req.Method),
		zap.String("url", target))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Warn("<- ошибка запроса к вендору",
			zap.String("url", target),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	t.logger.Debug("<- ответ вендора",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}
