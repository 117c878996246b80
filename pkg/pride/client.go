// Package pride is a client for the PRIDE proteomics archive web service.
package pride

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Adda-Baaj/pride-client/pkg/httpclient"
	"github.com/Adda-Baaj/pride-client/pkg/rest"
)

const (
	ServiceName = "PRIDE"
	BaseURL     = "http://www.ebi.ac.uk/pride/ws/archive"

	pathProject      = "project/"
	pathProjectList  = "project/list"
	pathProjectCount = "project/count"
	listField        = "list"
)

// ErrEmptyIdentifier is returned when a project accession is blank.
var ErrEmptyIdentifier = errors.New("pride: project identifier is empty")

// Config is fixed at construction and read-only afterwards.
type Config struct {
	BaseURL string
	Verbose bool
	// Cache enables response caching in the transport; nil disables it.
	Cache   rest.Cache
	Logger  rest.Logger
	HTTP    httpclient.Client
	// Timeout applies only to the default transport built when HTTP is nil.
	Timeout time.Duration
}

// DefaultConfig points at the public PRIDE archive with caching off.
func DefaultConfig() Config {
	return Config{
		BaseURL: BaseURL,
		Timeout: httpclient.DefaultTimeout,
	}
}

// Client exposes the PRIDE archive project endpoints.
type Client struct {
	svc rest.Getter
}

// NewClient builds a Client on a REST service configured from cfg.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.HTTP == nil {
		cfg.HTTP = httpclient.NewRestyClient(cfg.Timeout)
	}

	opts := []rest.ServiceOption{
		rest.WithLogger(cfg.Logger),
		rest.WithVerbose(cfg.Verbose),
	}
	if cfg.Cache != nil {
		opts = append(opts, rest.WithCache(cfg.Cache))
	}

	svc, err := rest.NewService(ServiceName, cfg.BaseURL, cfg.HTTP, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// NewWithGetter builds a Client on an arbitrary transport.
func NewWithGetter(g rest.Getter) *Client {
	return &Client{svc: g}
}

// ProjectAccession retrieves project details for an accession such as PRD000001.
func (c *Client) ProjectAccession(ctx context.Context, identifier string) (any, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, ErrEmptyIdentifier
	}
	res, err := c.svc.GetJSON(ctx, pathProject+url.PathEscape(identifier), nil)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", identifier, err)
	}
	return res, nil
}

// ProjectList lists projects matching q. A nil q sends the default parameters.
// When the response is an object with a "list" field, only that field is returned.
func (c *Client) ProjectList(ctx context.Context, q *ProjectQuery) (any, error) {
	res, err := c.svc.GetJSON(ctx, pathProjectList, paramsFor(q))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return unwrapList(res), nil
}

// ProjectCount counts projects matching q. The response is returned as-is.
func (c *Client) ProjectCount(ctx context.Context, q *ProjectQuery) (any, error) {
	res, err := c.svc.GetJSON(ctx, pathProjectCount, paramsFor(q))
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	return res, nil
}

func paramsFor(q *ProjectQuery) rest.Params {
	if q == nil {
		q = NewProjectQuery()
	}
	return q.Params()
}

// unwrapList returns res["list"] when present, otherwise res unchanged.
func unwrapList(res any) any {
	obj, ok := res.(map[string]any)
	if !ok {
		return res
	}
	list, ok := obj[listField]
	if !ok {
		return res
	}
	return list
}
