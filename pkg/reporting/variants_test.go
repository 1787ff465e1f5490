package reporting_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kleascm/whatstyle-go/pkg/reporting"
	"github.com/kleascm/whatstyle-go/pkg/search"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderANSIVariants(t *testing.T) {
	best := style.Candidate{Style: style.NewStyle("LLVM").With("IndentWidth", "2"), AggregateDist: 0}
	variants := []search.Variant{
		{Option: "IndentWidth", Value: "4", Distance: 6, Hunks: map[string][]style.Hunk{
			"a.go": {{RefStart: 1, RefEnd: 2, OutStart: 1, OutEnd: 2, Insertions: 1, Deletions: 1}},
		}},
	}

	var buf bytes.Buffer
	reporting.RenderANSIVariants(&buf, best, variants)

	out := buf.String()
	assert.Contains(t, out, "IndentWidth=4")
	assert.Contains(t, out, "a.go")
}

func TestRenderHTMLVariants(t *testing.T) {
	best := style.Candidate{Style: style.NewStyle("LLVM"), AggregateDist: 0}
	variants := []search.Variant{{Option: "UseTab", Value: "Always", Distance: 3, Hunks: map[string][]style.Hunk{"a.go": {{}}}}}

	var buf bytes.Buffer
	err := reporting.RenderHTMLVariants(&buf, best, variants)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "UseTab = Always"))
}

func TestSummaryLine(t *testing.T) {
	best := style.Candidate{Style: style.NewStyle("Google").With("IndentWidth", "2"), AggregateDist: 4}
	line := reporting.SummaryLine(best)
	assert.Contains(t, line, "distance=4")
	assert.Contains(t, line, "cardinality=1")
}
