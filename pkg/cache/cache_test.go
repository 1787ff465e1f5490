package cache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kleascm/whatstyle-go/pkg/cache"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrEvaluateCachesResult(t *testing.T) {
	c, err := cache.New(1 << 20)
	require.NoError(t, err)
	defer c.Close()

	key := cache.Key{FormatterFingerprint: "fp1", StyleFingerprint: "s1", SourceFingerprint: "src1"}

	var calls int32
	eval := func(ctx context.Context) (cache.Entry, error) {
		atomic.AddInt32(&calls, 1)
		return cache.Entry{Bytes: []byte("out"), Diff: style.DiffResult{Distance: 3}}, nil
	}

	e1, err := c.GetOrEvaluate(context.Background(), key, eval)
	require.NoError(t, err)
	assert.Equal(t, 3, e1.Diff.Distance)

	e2, err := c.GetOrEvaluate(context.Background(), key, eval)
	require.NoError(t, err)
	assert.Equal(t, 3, e2.Diff.Distance)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call for the same key must hit the cache, not re-run eval")
}

func TestGetOrEvaluateCoalescesConcurrentCalls(t *testing.T) {
	c, err := cache.New(1 << 20)
	require.NoError(t, err)
	defer c.Close()

	key := cache.Key{FormatterFingerprint: "fp", StyleFingerprint: "s", SourceFingerprint: "src"}

	var calls int32
	release := make(chan struct{})
	eval := func(ctx context.Context) (cache.Entry, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return cache.Entry{Bytes: []byte("x"), Diff: style.DiffResult{Distance: 1}}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.GetOrEvaluate(context.Background(), key, eval)
		}()
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "singleflight must coalesce concurrent identical keys into one evaluation")
}

func TestSourceFingerprintContentAddressed(t *testing.T) {
	a := cache.SourceFingerprint([]byte("hello"))
	b := cache.SourceFingerprint([]byte("hello"))
	c := cache.SourceFingerprint([]byte("world"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
