// Package storage provides the response cache used by the REST transport.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store caches raw response bodies by request key.
type Store interface {
	Close() error
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	KeyPrefix       string
}

const (
	TypeNone  = "none"
	TypeBBolt = "bbolt"
	TypeRedis = "redis"

	defaultTTL             = 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
	defaultKeyPrefix       = "pride:cache:"
)

// NewStore creates the configured storage backend. For bbolt, path is the
// database file; for redis, it is the server address.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	case TypeRedis:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("redis storage requires an address")
		}
		return openRedis(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = defaultKeyPrefix
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                     { return nil }
func (noopStore) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (noopStore) Put(string, []byte) error         { return nil }
