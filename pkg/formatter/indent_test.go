package formatter_test

import (
	"context"
	"testing"

	"github.com/kleascm/whatstyle-go/pkg/formatter"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentFormatterIsPure(t *testing.T) {
	f := formatter.NewIndent()
	s := style.NewStyle("Default").With("IndentWidth", "2")
	src := []byte("func f() {\nx()\n}\n")

	out1, err := f.Format(context.Background(), s, src, "a.go")
	require.NoError(t, err)
	out2, err := f.Format(context.Background(), s, src, "a.go")
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestIndentFormatterWidth(t *testing.T) {
	f := formatter.NewIndent()
	src := []byte("a {\nb\n}\n")

	s2 := style.NewStyle("Default").With("IndentWidth", "2")
	out, err := f.Format(context.Background(), s2, src, "")
	require.NoError(t, err)
	assert.Contains(t, string(out), "  b")

	s4 := style.NewStyle("Default").With("IndentWidth", "4")
	out4, err := f.Format(context.Background(), s4, src, "")
	require.NoError(t, err)
	assert.Contains(t, string(out4), "    b")
}

func TestIndentFingerprintConstant(t *testing.T) {
	f := formatter.NewIndent()
	fp1, err := f.Fingerprint()
	require.NoError(t, err)
	fp2, err := f.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)
}
