package style_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleFingerprintStable(t *testing.T) {
	a := style.NewStyle("LLVM").With("IndentWidth", "2").With("UseTab", "false")
	b := style.NewStyle("LLVM").With("UseTab", "false").With("IndentWidth", "2")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "fingerprint must not depend on insertion order")
}

func TestStyleCardinality(t *testing.T) {
	base := style.NewStyle("Google")
	require.Equal(t, 0, base.Cardinality())

	one := base.With("IndentWidth", "4")
	assert.Equal(t, 1, one.Cardinality())

	two := one.With("ColumnLimit", "100")
	assert.Equal(t, 2, two.Cardinality())

	back := two.Without("ColumnLimit")
	assert.Equal(t, 1, back.Cardinality())
}

func TestStyleWithAndWithoutLeaveReceiverUntouched(t *testing.T) {
	base := style.NewStyle("Google").With("IndentWidth", "4")
	derived := base.With("ColumnLimit", "100")

	if diff := cmp.Diff(style.NewStyle("Google").With("IndentWidth", "4"), base); diff != "" {
		t.Fatalf("base mutated by With (-want +got):\n%s", diff)
	}
	assert.NotEqual(t, base.Fingerprint(), derived.Fingerprint())
}

func TestOptionValuesDefaultFirst(t *testing.T) {
	opt := style.Option{Name: "UseTab", Kind: style.KindBool, Default: "false"}
	vals := opt.Values()
	require.Len(t, vals, 2)
	assert.Equal(t, "false", vals[0])

	enumOpt := style.Option{Name: "BreakBeforeBraces", Kind: style.KindEnum, Default: "Attach", Enum: []string{"Attach", "Linux", "Mozilla"}}
	evals := enumOpt.Values()
	assert.Equal(t, "Attach", evals[0])
	assert.ElementsMatch(t, []string{"Attach", "Linux", "Mozilla"}, evals)

	intOpt := style.Option{Name: "IndentWidth", Kind: style.KindInt, Default: "2", IntMin: 2, IntMax: 8, IntStep: 2}
	ivals := intOpt.Values()
	assert.Equal(t, "2", ivals[0])
	assert.ElementsMatch(t, []string{"2", "4", "6", "8"}, ivals)
}

func TestCandidateOrdering(t *testing.T) {
	cheap := style.Candidate{Style: style.NewStyle("LLVM").With("IndentWidth", "2"), AggregateDist: 10}
	expensive := style.Candidate{Style: style.NewStyle("LLVM").With("IndentWidth", "2").With("UseTab", "true"), AggregateDist: 10}
	cheaper := style.Candidate{Style: style.NewStyle("LLVM"), AggregateDist: 5}

	assert.True(t, cheaper.Less(cheap), "lower aggregate distance wins regardless of cardinality")
	assert.True(t, cheap.Less(expensive), "equal distance: lower cardinality wins")
}

func TestFrontierOrdersByLess(t *testing.T) {
	f := style.NewFrontier()
	f.Push(style.Candidate{Style: style.NewStyle("LLVM").With("a", "1"), AggregateDist: 20})
	f.Push(style.Candidate{Style: style.NewStyle("LLVM"), AggregateDist: 5})
	f.Push(style.Candidate{Style: style.NewStyle("Google"), AggregateDist: 5})

	require.Equal(t, 3, f.Size())
	first, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, 5, first.AggregateDist)

	second, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, 5, second.AggregateDist)
	assert.True(t, first.Style.Fingerprint() < second.Style.Fingerprint())

	third, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, 20, third.AggregateDist)

	_, ok = f.Pop()
	assert.False(t, ok)
}
