package diffmetric_test

import (
	"context"
	"testing"
	"time"

	"github.com/kleascm/whatstyle-go/pkg/diffmetric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalBackendIdenticalIsZero(t *testing.T) {
	m, err := diffmetric.New(diffmetric.BackendInternal, time.Second)
	require.NoError(t, err)
	require.Equal(t, diffmetric.BackendInternal, m.Backend())

	res, err := m.Compare(context.Background(), []byte("a\nb\nc\n"), []byte("a\nb\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Distance)
	assert.Empty(t, res.Hunks)
}

func TestInternalBackendCountsInsertionsAndDeletions(t *testing.T) {
	m, err := diffmetric.New(diffmetric.BackendInternal, time.Second)
	require.NoError(t, err)

	res, err := m.Compare(context.Background(), []byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Distance, "one line replaced = one deletion + one insertion")
	require.Len(t, res.Hunks, 1)
}

func TestTrailingNewlineSignificant(t *testing.T) {
	assert.Equal(t, 1, diffmetric.TrailingNewlineDelta([]byte("a\n"), []byte("a")))
	assert.Equal(t, 0, diffmetric.TrailingNewlineDelta([]byte("a\n"), []byte("a\n")))
}
