/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: variants.go
Description: Phase D variants rendering -- ANSI (terminal) and HTML reports of
alternative option values, listing per source file the hunk ranges (ANSI) or
hunk counts (HTML); the differing text itself is not shown side by side.
Modeled on whatstyle.py's show_variants (text) and htmldiff-based (HTML)
dual rendering paths. The HTML path uses the standard library's html/template
rather than reaching for a third-party templating dependency.
*/

package reporting

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/kleascm/whatstyle-go/pkg/search"
	"github.com/kleascm/whatstyle-go/pkg/style"
)

// RenderANSIVariants writes a terminal-friendly report of every variant to
// w: one colored header line per (option, value) pair, followed by an
// indented per-file hunk summary.
func RenderANSIVariants(w io.Writer, best style.Candidate, variants []search.Variant) {
	fmt.Fprintf(w, "\033[1mselected style\033[0m: %s (distance=%d, cardinality=%d)\n\n",
		best.Style.Fingerprint(), best.AggregateDist, best.Style.Cardinality())

	sorted := make([]search.Variant, len(variants))
	copy(sorted, variants)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Option != sorted[j].Option {
			return sorted[i].Option < sorted[j].Option
		}
		return sorted[i].Value < sorted[j].Value
	})

	for _, v := range sorted {
		fmt.Fprintf(w, "\033[33m%s=%s\033[0m  (distance=%d)\n", v.Option, v.Value, v.Distance)
		paths := make([]string, 0, len(v.Hunks))
		for p := range v.Hunks {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			hunks := v.Hunks[p]
			if len(hunks) == 0 {
				continue
			}
			fmt.Fprintf(w, "  \033[36m%s\033[0m: %d hunk(s)\n", p, len(hunks))
			for _, h := range hunks {
				fmt.Fprintf(w, "    @@ -%d,%d +%d,%d @@ (+%d -%d)\n",
					h.RefStart, h.RefEnd-h.RefStart, h.OutStart, h.OutEnd-h.OutStart, h.Insertions, h.Deletions)
			}
		}
		fmt.Fprintln(w)
	}
}

var htmlVariantsTemplate = template.Must(template.New("variants").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>whatstyle variants report</title>
<style>
body { font-family: monospace; background: #1e1e1e; color: #ddd; padding: 2em; }
h1 { color: #9cdcfe; }
.variant { border: 1px solid #444; border-radius: 6px; padding: 1em; margin-bottom: 1em; }
.variant h2 { margin-top: 0; color: #dcdcaa; }
.hunk { background: #2d2d2d; padding: 0.5em; margin: 0.25em 0; border-radius: 4px; }
.distance { color: #4ec9b0; }
</style>
</head>
<body>
<h1>Selected style: {{.Best.Style.Fingerprint}}</h1>
<p class="distance">aggregate distance {{.Best.AggregateDist}}, cardinality {{.Best.Style.Cardinality}}</p>
{{range .Variants}}
<div class="variant">
<h2>{{.Option}} = {{.Value}}</h2>
<p class="distance">distance {{.Distance}}</p>
{{range $path, $hunks := .Hunks}}
<div class="hunk"><strong>{{$path}}</strong>: {{len $hunks}} hunk(s)</div>
{{end}}
</div>
{{end}}
</body>
</html>
`))

type variantsPage struct {
	Best     style.Candidate
	Variants []search.Variant
}

// RenderHTMLVariants writes a self-contained HTML report to w. Kept as a
// stdlib html/template, matching dashboard.go's own choice -- the pack
// carries no third-party HTML templating library to reach for instead.
func RenderHTMLVariants(w io.Writer, best style.Candidate, variants []search.Variant) error {
	sorted := make([]search.Variant, len(variants))
	copy(sorted, variants)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Option != sorted[j].Option {
			return sorted[i].Option < sorted[j].Option
		}
		return sorted[i].Value < sorted[j].Value
	})
	return htmlVariantsTemplate.Execute(w, variantsPage{Best: best, Variants: sorted})
}

// SummaryLine renders a single, greppable one-line summary of the selected
// style -- useful for CI logs where a full report is too verbose.
func SummaryLine(best style.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "style=%s distance=%d cardinality=%d", best.Style.Fingerprint(), best.AggregateDist, best.Style.Cardinality())
	return b.String()
}
