package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options tunes the resty transport.
type Options struct {
	Timeout       time.Duration
	RetryCount    int
	RetryWait     time.Duration
	RetryMaxWait  time.Duration
	UserAgent     string
	RetryOnStatus func(code int) bool
}

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "pride-client/1.0"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout and no retries.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return NewRestyClientWithOptions(Options{Timeout: timeout})
}

// NewRestyClientWithOptions creates a RestyClient with timeout and retry settings.
func NewRestyClientWithOptions(opts Options) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(opts)}
}

// newRestyBaseClient creates a new resty.Client from opts.
func newRestyBaseClient(opts Options) *resty.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.RetryOnStatus == nil {
		opts.RetryOnStatus = isServerError
	}

	c := resty.New()
	c.SetTimeout(opts.Timeout)
	c.SetHeader("User-Agent", opts.UserAgent)

	if opts.RetryCount > 0 {
		c.SetRetryCount(opts.RetryCount)
		if opts.RetryWait > 0 {
			c.SetRetryWaitTime(opts.RetryWait)
		}
		if opts.RetryMaxWait > 0 {
			c.SetRetryMaxWaitTime(opts.RetryMaxWait)
		}
		retryOn := opts.RetryOnStatus
		c.AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r != nil && retryOn(r.StatusCode())
		})
	}
	return c
}

func isServerError(code int) bool {
	return code >= http.StatusInternalServerError
}

// Get performs an HTTP GET request with the specified context, URL, query params, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, params map[string]string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

func (r *restyResponseAdapter) RequestURL() string {
	if r.resp.Request == nil {
		return ""
	}
	if raw := r.resp.Request.RawRequest; raw != nil && raw.URL != nil {
		return raw.URL.String()
	}
	return r.resp.Request.URL
}
