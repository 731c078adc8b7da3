// Package transport собирает HTTP клиент для вендора: базовый адрес, статические
// ключи в заголовках или query, подпись запроса и логирование.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// DefaultTimeout - таймаут запроса к вендору по умолчанию
const DefaultTimeout = 30 * time.Second

// Signer подписывает исходящий запрос перед отправкой (например, AWS SigV4)
type Signer interface {
	Sign(req *http.Request) error
}

// SignerFunc позволяет использовать обычную функцию как Signer
type SignerFunc func(req *http.Request) error

// Sign вызывает f(req)
func (f SignerFunc) Sign(req *http.Request) error {
	return f(req)
}

// Client - HTTP клиент, привязанный к базовому адресу одного вендора.
// Создается один раз в конструкторе провайдера и безопасен для параллельного использования.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type options struct {
	base    http.RoundTripper
	timeout time.Duration
	signer  Signer
	headers http.Header
	query   url.Values
}

// Option настраивает Client
type Option func(*options)

// WithRoundTripper задает нижележащий транспорт (для тестов и прокси)
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) {
		if rt != nil {
			o.base = rt
		}
	}
}

// WithTimeout задает таймаут запроса
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithSigner подключает подпись каждого исходящего запроса
func WithSigner(s Signer) Option {
	return func(o *options) {
		o.signer = s
	}
}

// WithHeader добавляет статический заголовок к каждому запросу
func WithHeader(key, value string) Option {
	return func(o *options) {
		o.headers.Set(key, value)
	}
}

// WithQuery добавляет статический query параметр к каждому запросу
func WithQuery(key, value string) Option {
	return func(o *options) {
		o.query.Set(key, value)
	}
}

// New создает клиент для вендора
func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	o := options{
		base:    http.DefaultTransport,
		timeout: DefaultTimeout,
		headers: http.Header{},
		query:   url.Values{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Порядок выполнения: otel -> лог -> статические ключи -> подпись -> сеть.
	// Подпись должна видеть финальные заголовки и query.
	rt := o.base
	if o.signer != nil {
		rt = &signingTransport{base: rt, signer: o.signer}
	}
	if len(o.headers) > 0 || len(o.query) > 0 {
		rt = &credentialTransport{base: rt, headers: o.headers, query: o.query}
	}
	rt = &loggingTransport{base: rt, logger: logger}
	rt = otelhttp.NewTransport(rt)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: rt,
			Timeout:   o.timeout,
		},
		logger: logger,
	}
}

// BaseURL возвращает базовый адрес вендора
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON сериализует body в JSON и отправляет POST на path.
// Тело ответа закрывает вызывающий код.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	return resp, nil
}
