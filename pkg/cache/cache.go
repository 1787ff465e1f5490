/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cache.go
Description: The Evaluation Cache. Memoizes (formatter fingerprint, style
fingerprint, source fingerprint) -> (reformatted output, DiffResult), guaranteeing
at-most-one concurrent evaluation per key and bounding memory by total byte
footprint with cost-based eviction. Built on two libraries rather than a
hand-rolled map: ristretto for bounded, cost-accounted storage and
singleflight for the coalescing guarantee.
*/

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"golang.org/x/sync/singleflight"
)

// Entry is what the cache stores per key: the reformatted output bytes
// (evictable) and its DiffResult summary (retained even after Bytes is
// evicted, by being stored as an independent cache entry with a much
// smaller cost).
type Entry struct {
	Bytes []byte
	Diff  style.DiffResult
}

// Key identifies one evaluation: a specific style applied to a specific
// source file by a specific formatter binary.
type Key struct {
	FormatterFingerprint string
	StyleFingerprint     string
	SourceFingerprint    string
}

// String renders the key as a single cache-lookup string, namespaced by
// formatter fingerprint first so that a formatter upgrade changes every key
// derived from it and can never alias against stale entries.
func (k Key) String() string {
	return k.FormatterFingerprint + "|" + k.StyleFingerprint + "|" + k.SourceFingerprint
}

// SourceFingerprint derives the fingerprint component of a Key from file
// content. Content-addressed, so identical files (even at different paths)
// share cache entries.
func SourceFingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Evaluate is the function signature the Cache calls on a miss: it must
// compute and return the reformatted bytes and DiffResult for one
// (style, source) pair.
type Evaluate func(ctx context.Context) (Entry, error)

// Cache is the Evaluation Cache. MaxBytes bounds the total footprint of
// retained output bytes; DiffResult summaries are charged a small fixed
// cost so they tend to survive even after their paired Bytes are evicted
// under pressure, matching the spec's "DiffResult retained after bytes
// evicted" requirement.
type Cache struct {
	bytesStore *ristretto.Cache[string, []byte]
	diffStore  *ristretto.Cache[string, style.DiffResult]
	group      singleflight.Group

	hits, misses int64
}

const diffEntryCost = 64 // fixed cost charged for a DiffResult-only entry

// New constructs a Cache bounded to maxBytes of output-byte footprint. The
// DiffResult store is sized generously relative to maxBytes since each
// entry costs a small fixed amount regardless of hunk count.
func New(maxBytes int64) (*Cache, error) {
	if maxBytes <= 0 {
		maxBytes = 64 << 20 // 64MiB default
	}
	bytesStore, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxBytes / 8,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: constructing byte store: %w", err)
	}
	diffStore, err := ristretto.NewCache(&ristretto.Config[string, style.DiffResult]{
		NumCounters: maxBytes / 8,
		MaxCost:     maxBytes / 4,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: constructing diff store: %w", err)
	}
	return &Cache{bytesStore: bytesStore, diffStore: diffStore}, nil
}

// Close releases the underlying ristretto stores' background goroutines.
func (c *Cache) Close() {
	c.bytesStore.Close()
	c.diffStore.Close()
}

// GetOrEvaluate returns the cached Entry for key, calling eval on a miss.
// Concurrent callers requesting the same key coalesce onto a single
// in-flight eval call via singleflight -- the second caller blocks and
// receives the first caller's result rather than re-running the formatter,
// satisfying the at-most-one-concurrent-evaluation-per-key guarantee.
func (c *Cache) GetOrEvaluate(ctx context.Context, key Key, eval Evaluate) (Entry, error) {
	k := key.String()

	if diff, ok := c.diffStore.Get(k); ok {
		if bytesVal, ok := c.bytesStore.Get(k); ok {
			atomic.AddInt64(&c.hits, 1)
			return Entry{Bytes: bytesVal, Diff: diff}, nil
		}
		// DiffResult survived eviction of its Bytes companion: the summary
		// is still useful to the caller even without the raw output.
		atomic.AddInt64(&c.hits, 1)
		return Entry{Diff: diff}, nil
	}
	atomic.AddInt64(&c.misses, 1)

	v, err, _ := c.group.Do(k, func() (interface{}, error) {
		entry, err := eval(ctx)
		if err != nil {
			return Entry{}, err
		}
		c.bytesStore.SetWithTTL(k, entry.Bytes, int64(len(entry.Bytes)), 0)
		c.diffStore.Set(k, entry.Diff, diffEntryCost)
		c.bytesStore.Wait()
		c.diffStore.Wait()
		return entry, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return v.(Entry), nil
}

// Stats reports cumulative hit/miss counts for observability.
func (c *Cache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}
