package evaluator_test

import (
	"context"
	"testing"
	"time"

	"github.com/kleascm/whatstyle-go/pkg/cache"
	"github.com/kleascm/whatstyle-go/pkg/diffmetric"
	"github.com/kleascm/whatstyle-go/pkg/evaluator"
	"github.com/kleascm/whatstyle-go/pkg/formatter"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBatchAgainstIndentFormatter(t *testing.T) {
	f := formatter.NewIndent()
	m, err := diffmetric.New(diffmetric.BackendInternal, time.Second)
	require.NoError(t, err)
	c, err := cache.New(1 << 20)
	require.NoError(t, err)
	defer c.Close()

	ev, err := evaluator.New(f, m, c, 4, time.Second)
	require.NoError(t, err)

	identical := style.SourceFile{Path: "a.go", Content: []byte("a {\n  b\n}\n")}
	s := style.NewStyle("Default").With("IndentWidth", "2")

	results := ev.EvaluateBatch(context.Background(), []evaluator.Pair{{Style: s, Source: identical}})
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 0, results[0].Diff.Distance)
}

func TestEvaluateBatchDegradesOnCancellation(t *testing.T) {
	f := formatter.NewIndent()
	m, err := diffmetric.New(diffmetric.BackendInternal, time.Second)
	require.NoError(t, err)
	c, err := cache.New(1 << 20)
	require.NoError(t, err)
	defer c.Close()

	ev, err := evaluator.New(f, m, c, 2, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := style.SourceFile{Path: "a.go", Content: []byte("a\n")}
	results := ev.EvaluateBatch(ctx, []evaluator.Pair{{Style: style.NewStyle("Default"), Source: src}})
	require.Len(t, results, 1)
	assert.Equal(t, style.Infinite, results[0].Diff.Distance)
	assert.Error(t, results[0].Err)
}
