package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	responseBucket = "responses"
	expiryBytes    = 8
)

// boltStore implements a Store backed by BoltDB. Each value is an 8-byte
// big-endian expiry followed by the cached body.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	ttl             time.Duration
	cleanupInterval time.Duration
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(responseBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		ttl:             opts.TTL,
		cleanupInterval: opts.CleanupInterval,
	}
	store.lastCleanup.Store(time.Now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the cached body for key. Expired entries are removed and reported as a miss.
func (b *boltStore) Get(key string) ([]byte, bool, error) {
	if b == nil || b.db == nil {
		return nil, false, nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return nil, false, err
	}

	var (
		body  []byte
		found bool
	)
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(responseBucket))
		if bucket == nil {
			return fmt.Errorf("response bucket missing")
		}

		k := []byte(key)
		value := bucket.Get(k)
		if value == nil {
			return nil
		}

		expiry, ok := decodeExpiry(value)
		if !ok || !expiry.After(now) {
			return bucket.Delete(k)
		}

		// value is only valid for the life of the transaction.
		body = append([]byte{}, value[expiryBytes:]...)
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return body, found, nil
}

// Put stores value under key until the configured TTL elapses.
func (b *boltStore) Put(key string, value []byte) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(responseBucket))
		if bucket == nil {
			return fmt.Errorf("response bucket missing")
		}
		buf := make([]byte, expiryBytes, expiryBytes+len(value))
		binary.BigEndian.PutUint64(buf, uint64(now.Add(b.ttl).Unix()))
		buf = append(buf, value...)
		return bucket.Put([]byte(key), buf)
	})
}

// maybeCleanupExpired removes expired responses on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(responseBucket))
		if bucket == nil {
			return fmt.Errorf("response bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// decodeExpiry decodes the expiry prefix of a stored value.
func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) < expiryBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryBytes]))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
