/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core data model for the style search engine. Defines Options, Styles,
source fingerprints, diff results, and Candidates -- the fundamental units the
Search Engine, Evaluator, and Cache all operate on.
*/

package style

import (
	"fmt"
	"sort"
	"strings"
)

// ValueKind describes the domain an Option's value is drawn from. Formatters
// differ wildly in how they express configuration, so the value domain is a
// tagged variant rather than a fixed Go type.
type ValueKind int

const (
	// KindBool is a simple on/off switch.
	KindBool ValueKind = iota
	// KindEnum is one of a fixed, formatter-declared set of string tokens.
	KindEnum
	// KindInt is a bounded integer (e.g. indent width, column limit).
	KindInt
)

// Option describes one knob a formatter exposes. The Search Engine enumerates
// candidate values for an Option purely from this declaration; it never
// guesses a domain the adapter didn't advertise.
type Option struct {
	Name    string    // formatter-native option name, e.g. "IndentWidth"
	Kind    ValueKind
	Default string          // canonical default value, formatter-native representation
	Enum    []string        // valid values when Kind == KindEnum
	IntMin  int             // inclusive lower bound when Kind == KindInt
	IntMax  int             // inclusive upper bound when Kind == KindInt
	IntStep int             // sweep granularity when Kind == KindInt; 0 means 1
}

// Values returns the full enumerated domain for this Option in canonical
// order (default first, then the remaining values ascending/declared order).
// Search phases rely on this order for deterministic tie-breaking.
func (o Option) Values() []string {
	switch o.Kind {
	case KindBool:
		if o.Default == "true" {
			return []string{"true", "false"}
		}
		return []string{"false", "true"}
	case KindEnum:
		out := make([]string, 0, len(o.Enum))
		out = append(out, o.Default)
		for _, v := range o.Enum {
			if v != o.Default {
				out = append(out, v)
			}
		}
		return out
	case KindInt:
		step := o.IntStep
		if step <= 0 {
			step = 1
		}
		out := make([]string, 0)
		out = append(out, o.Default)
		for v := o.IntMin; v <= o.IntMax; v += step {
			s := fmt.Sprintf("%d", v)
			if s != o.Default {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Style is an immutable mapping from option name to the value the search has
// selected for it. Options absent from the map are implicitly at their
// formatter-declared default.
type Style struct {
	BaseName string            // named base style this Style derives from, e.g. "LLVM"
	Values   map[string]string // option name -> chosen value, only non-default entries need be present
}

// NewStyle returns a Style rooted at the given base with no overrides.
func NewStyle(base string) Style {
	return Style{BaseName: base, Values: map[string]string{}}
}

// With returns a copy of s with option set to value. The receiver is left
// untouched -- Styles are treated as immutable values throughout the engine.
func (s Style) With(option, value string) Style {
	out := Style{BaseName: s.BaseName, Values: make(map[string]string, len(s.Values)+1)}
	for k, v := range s.Values {
		out.Values[k] = v
	}
	out.Values[option] = value
	return out
}

// Without returns a copy of s with option removed (reverted to default).
func (s Style) Without(option string) Style {
	out := Style{BaseName: s.BaseName, Values: make(map[string]string, len(s.Values))}
	for k, v := range s.Values {
		if k != option {
			out.Values[k] = v
		}
	}
	return out
}

// Cardinality returns the number of explicit entries in Values, including
// any pinned at their default value. Lower cardinality styles are preferred
// by the Candidate ordering rule.
func (s Style) Cardinality() int {
	return len(s.Values)
}

// Fingerprint returns a stable, canonical string identity for s: base name
// plus "key=value" pairs sorted by key. Two Styles with the same base name and
// the same explicit entries always produce the same fingerprint (an option
// pinned at its default differs from one left absent), which is what lets the
// Evaluation Cache and the Frontier's tie-break rule treat it as an identity.
func (s Style) Fingerprint() string {
	keys := make([]string, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(s.BaseName)
	for _, k := range keys {
		b.WriteByte(';')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.Values[k])
	}
	return b.String()
}

// SourceFile is an immutable input to the search: a path identity plus its
// content bytes. The fingerprint is computed lazily by callers (pkg/cache)
// from Content, keeping SourceFile itself a plain value type.
type SourceFile struct {
	Path    string
	Content []byte
}

// Hunk classifies one contiguous region of difference between the reference
// source and a reformatted output.
type Hunk struct {
	RefStart, RefEnd   int // line range in the reference, end-exclusive
	OutStart, OutEnd   int // line range in the reformatted output, end-exclusive
	Insertions         int
	Deletions          int
}

// DiffResult is the outcome of comparing one reformatted output against its
// reference source file.
type DiffResult struct {
	Distance int // insertions + deletions; 0 means byte-identical reformat
	Hunks    []Hunk
}

// Infinite is the distance recorded when a formatter or diff backend could
// not produce a usable result for a (style, source) pair. It must compare
// greater than any distance a successful evaluation could produce, and it
// must itself be a concrete, additive value so that aggregation across a
// whole corpus still orders correctly.
const Infinite = 1 << 30

// Candidate is a Style together with its aggregated evaluation outcome
// across the whole reference corpus.
type Candidate struct {
	Style          Style
	AggregateDist  int
	PerFile        map[string]DiffResult // source path -> per-file DiffResult
}

// Less implements the total ordering the Search Engine and Frontier use:
// aggregate distance ascending, then cardinality ascending, then fingerprint
// ascending. This must be stable regardless of the order candidates were
// generated in or how many workers evaluated them concurrently.
func (c Candidate) Less(other Candidate) bool {
	if c.AggregateDist != other.AggregateDist {
		return c.AggregateDist < other.AggregateDist
	}
	cc, oc := c.Style.Cardinality(), other.Style.Cardinality()
	if cc != oc {
		return cc < oc
	}
	return c.Style.Fingerprint() < other.Style.Fingerprint()
}
