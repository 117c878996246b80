package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Adda-Baaj/pride-client/pkg/httpclient"
)

// Params is the query string of a single request. Only keys present are sent.
type Params map[string]string

// Getter is the transport contract service clients are built on.
type Getter interface {
	GetJSON(ctx context.Context, path string, params Params) (any, error)
}

// Cache stores raw response bodies. storage.Store satisfies it.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Service issues GET requests against one base URL and decodes JSON bodies.
type Service struct {
	name    string
	baseURL string
	client  httpclient.Client
	cache   Cache
	log     Logger
	verbose bool
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithCache enables response caching. A nil cache disables it.
func WithCache(c Cache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

// WithLogger sets the logger.
func WithLogger(log Logger) ServiceOption {
	return func(s *Service) { s.log = ensureLogger(log) }
}

// WithVerbose toggles info-level request logging.
func WithVerbose(v bool) ServiceOption {
	return func(s *Service) { s.verbose = v }
}

// NewService builds a Service for the named API rooted at baseURL.
func NewService(name, baseURL string, client httpclient.Client, opts ...ServiceOption) (*Service, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%s: base url is empty", name)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%s: invalid base url %q: %w", name, baseURL, err)
	}
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.DefaultTimeout)
	}

	s := &Service{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name returns the service name used in errors and logs.
func (s *Service) Name() string { return s.name }

// BaseURL returns the normalized base URL.
func (s *Service) BaseURL() string { return s.baseURL }

// URL joins the base URL and path.
func (s *Service) URL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

var jsonHeaders = map[string]string{"Accept": "application/json"}

// GetJSON performs GET {base}/{path}?{params} and returns the decoded body.
// Non-2xx responses yield a *StatusError. Bodies that are not JSON yield an
// error wrapping ErrDecode.
func (s *Service) GetJSON(ctx context.Context, path string, params Params) (any, error) {
	target := s.URL(path)
	key := cacheKey(target, params)

	if body, ok := s.cached(key); ok {
		if v, err := decodeJSON(body); err == nil {
			s.info("cache hit", map[string]any{"service": s.name, "url": key})
			return v, nil
		}
		s.log.WarnObj("discarding undecodable cache entry", "cache_key", key)
	}

	start := time.Now()
	s.info("request", map[string]any{"service": s.name, "url": key})

	resp, err := s.client.Get(ctx, target, params, jsonHeaders)
	if err != nil {
		return nil, fmt.Errorf("%s: GET %s: %w", s.name, target, err)
	}

	body := resp.Body()
	s.log.DebugObj("response", "response_meta", map[string]any{
		"service":    s.name,
		"url":        key,
		"status":     resp.StatusCode(),
		"bytes":      len(body),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if code := resp.StatusCode(); code < 200 || code > 299 {
		sent := resp.RequestURL()
		if sent == "" {
			sent = key
		}
		return nil, &StatusError{Service: s.name, URL: sent, StatusCode: code, Body: bodySnippet(body)}
	}

	v, err := decodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w from %s: %v", s.name, ErrDecode, key, err)
	}

	s.store(key, body)
	return v, nil
}

func (s *Service) cached(key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	body, ok, err := s.cache.Get(key)
	if err != nil {
		s.log.WarnObj("cache read failed", "error", err.Error())
		return nil, false
	}
	return body, ok
}

func (s *Service) store(key string, body []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(key, body); err != nil {
		s.log.WarnObj("cache write failed", "error", err.Error())
	}
}

func (s *Service) info(msg string, meta map[string]any) {
	if s.verbose {
		s.log.InfoObj(msg, "request_meta", meta)
		return
	}
	s.log.DebugObj(msg, "request_meta", meta)
}

// cacheKey renders target plus params with keys sorted, so equal queries share a key.
func cacheKey(target string, params Params) string {
	if len(params) == 0 {
		return target
	}
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	return target + "?" + values.Encode()
}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected trailing data")
	}
	return v, nil
}
