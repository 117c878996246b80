package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	RequestURL() string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Params are encoded into the query string; nil or empty params send none.
type Client interface {
	Get(ctx context.Context, url string, params map[string]string, headers map[string]string) (Response, error)
}
