package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/kleascm/whatstyle-go/pkg/cache"
	"github.com/kleascm/whatstyle-go/pkg/diffmetric"
	"github.com/kleascm/whatstyle-go/pkg/evaluator"
	"github.com/kleascm/whatstyle-go/pkg/formatter"
	"github.com/kleascm/whatstyle-go/pkg/search"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, sources []style.SourceFile) *search.Engine {
	t.Helper()
	f := formatter.NewIndent()
	m, err := diffmetric.New(diffmetric.BackendInternal, time.Second)
	require.NoError(t, err)
	c, err := cache.New(1 << 20)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	ev, err := evaluator.New(f, m, c, 4, time.Second)
	require.NoError(t, err)

	return search.New(f, ev, sources, nil)
}

func TestRunStandardFindsExactMatch(t *testing.T) {
	// Source already reindented at width 2 with no brace-on-newline: the
	// zero-cardinality default style ("Default" base, IndentWidth=4)
	// should NOT match, so phase B should attach IndentWidth=2 to drive
	// distance to zero.
	ref := "a {\n  b\n  c\n}\n"
	sources := []style.SourceFile{{Path: "a.go", Content: []byte(ref)}}

	e := newTestEngine(t, sources)
	report, err := e.Run(context.Background(), search.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Best.AggregateDist)
	assert.Equal(t, "2", report.Best.Style.Values["IndentWidth"])
}

func TestRunStandardNoOverridesNeededWhenDefaultMatches(t *testing.T) {
	ref := "a {\n    b\n}\n" // width 4 == Indent formatter's own default
	sources := []style.SourceFile{{Path: "a.go", Content: []byte(ref)}}

	e := newTestEngine(t, sources)
	report, err := e.Run(context.Background(), search.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Best.AggregateDist)
	assert.Equal(t, 0, report.Best.Style.Cardinality(), "no option should be attached when the default already matches")
}

func TestRunResilientPinsNeutralOptions(t *testing.T) {
	// Width 2 forces phase B to attach IndentWidth, giving phase C's pinning
	// loop other still-default options (UseTab, BraceOnNewLine) to pin.
	ref := "a {\n  b\n  c\n}\n"
	sources := []style.SourceFile{{Path: "a.go", Content: []byte(ref)}}

	standard := newTestEngine(t, sources)
	standardReport, err := standard.Run(context.Background(), search.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, 0, standardReport.Best.AggregateDist)

	resilient := newTestEngine(t, sources)
	resilientReport, err := resilient.Run(context.Background(), search.ModeResilient)
	require.NoError(t, err)
	assert.Equal(t, 0, resilientReport.Best.AggregateDist)

	assert.GreaterOrEqual(t, resilientReport.Best.Style.Cardinality(), standardReport.Best.Style.Cardinality(),
		"resilient mode must pin additional still-default options rather than strip attached ones")
	assert.Greater(t, resilientReport.Best.Style.Cardinality(), standardReport.Best.Style.Cardinality(),
		"at least one neutral option (UseTab or BraceOnNewLine) should get pinned")
}

func TestRunVariantsReportsDistinguishableAlternatives(t *testing.T) {
	ref := "a {\n  b\n}\n"
	sources := []style.SourceFile{{Path: "a.go", Content: []byte(ref)}}

	e := newTestEngine(t, sources)
	report, err := e.Run(context.Background(), search.ModeVariants)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Variants, "alternative IndentWidth values should produce distinguishable output")
}

func TestRunIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	ref := "a {\n  b\n  c {\n    d\n  }\n}\n"
	sources := []style.SourceFile{{Path: "a.go", Content: []byte(ref)}}

	e1 := newTestEngine(t, sources)
	r1, err := e1.Run(context.Background(), search.ModeStandard)
	require.NoError(t, err)

	e2 := newTestEngine(t, sources)
	r2, err := e2.Run(context.Background(), search.ModeStandard)
	require.NoError(t, err)

	assert.Equal(t, r1.Best.Style.Fingerprint(), r2.Best.Style.Fingerprint())
	assert.Equal(t, r1.Best.AggregateDist, r2.Best.AggregateDist)
}
