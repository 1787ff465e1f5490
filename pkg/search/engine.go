/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: The Search Engine. Drives Phases A (baseline selection), B (greedy
option attachment), C (resilient pinning), and D (variants exploration) over a
Formatter and a reference corpus, using the Evaluator to resolve distances and a
Frontier to hold the current best candidates. The round structure -- emit a
batch, await it, update the frontier, check for strict improvement -- and the
ordering/termination rules come from whatstyle.py's find_best_style.
*/

package search

import (
	"context"
	"fmt"

	"github.com/kleascm/whatstyle-go/pkg/evaluator"
	"github.com/kleascm/whatstyle-go/pkg/formatter"
	"github.com/kleascm/whatstyle-go/pkg/style"
)

// Mode selects which phases a Run executes.
type Mode string

const (
	// ModeStandard runs Phase A then Phase B.
	ModeStandard Mode = "standard"
	// ModeResilient runs Phase A, B, then C.
	ModeResilient Mode = "resilient"
	// ModeVariants runs Phase A, B, then D, producing a Variants report in
	// addition to the selected Style.
	ModeVariants Mode = "variants"
)

// Engine orchestrates the search over one formatter and one corpus.
type Engine struct {
	Formatter formatter.Formatter
	Evaluator *evaluator.Evaluator
	Sources   []style.SourceFile
	Logger    Logger
}

// Logger is the minimal structured-logging surface the engine needs; the
// concrete implementation is pkg/logging.Logger, kept as an interface here
// so tests can substitute a no-op.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{}) {}

// New constructs an Engine. Logger may be nil, in which case logging is a
// no-op.
func New(f formatter.Formatter, ev *evaluator.Evaluator, sources []style.SourceFile, logger Logger) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Engine{Formatter: f, Evaluator: ev, Sources: sources, Logger: logger}
}

// Report is the outcome of a Run: the selected Style, its aggregate
// distance, any non-fatal warning encountered, and (ModeVariants only) the
// Phase D variant set.
type Report struct {
	Best     style.Candidate
	Warning  error
	Variants []Variant
}

// Run executes the phases named by mode and returns the resulting Report.
// A non-nil error is only ever a fatal one (ErrFormatterUnavailable,
// ErrNoBaseline); non-fatal conditions (did-not-converge, cancellation) are
// surfaced via Report.Warning alongside the best candidate found so far.
func (e *Engine) Run(ctx context.Context, mode Mode) (*Report, error) {
	best, err := e.phaseA(ctx)
	if err != nil {
		return nil, err
	}
	e.Logger.Infof("phase A selected baseline %q at distance %d", best.Style.BaseName, best.AggregateDist)

	best, warning := e.phaseB(ctx, best)
	if warning != nil {
		e.Logger.Warnf("phase B: %v", warning)
	}

	report := &Report{Best: best, Warning: warning}

	switch mode {
	case ModeResilient:
		best = e.phaseC(ctx, best)
		report.Best = best
	case ModeVariants:
		report.Variants = e.phaseD(ctx, best)
	}

	return report, nil
}

// phaseA evaluates every named base style against the full corpus and
// selects the one with the lowest aggregate distance, ties broken by the
// standard Candidate ordering. Returns ErrNoBaseline if every base style
// produced an infinite distance on every file.
func (e *Engine) phaseA(ctx context.Context) (style.Candidate, error) {
	baseNames := e.Formatter.Styles()
	if len(baseNames) == 0 {
		return style.Candidate{}, fmt.Errorf("search: %w: formatter declares no base styles", ErrFormatterUnavailable)
	}

	frontier := style.NewFrontier()
	for _, name := range baseNames {
		s := style.NewStyle(name)
		cand := e.evaluateStyle(ctx, s)
		frontier.Push(cand)
	}

	best, ok := frontier.Pop()
	if !ok {
		return style.Candidate{}, ErrNoBaseline
	}
	if len(e.Sources) > 0 && best.AggregateDist >= style.Infinite*len(e.Sources) {
		return style.Candidate{}, ErrNoBaseline
	}
	return best, nil
}

// phaseB greedily attaches one option-value override at a time, always
// moving to the strictly-improving trial with the best Candidate ordering
// among all trials generated this round, and stops the moment no trial
// strictly improves on the current best. The round count is bounded at
// 10x the formatter's declared option count to guarantee termination even
// against a pathological option interaction.
func (e *Engine) phaseB(ctx context.Context, start style.Candidate) (style.Candidate, error) {
	options := e.Formatter.Options()
	maxRounds := 10 * len(options)
	if maxRounds == 0 {
		maxRounds = 1
	}

	best := start
	for round := 0; round < maxRounds; round++ {
		select {
		case <-ctx.Done():
			return best, ErrCancelled
		default:
		}

		trials := e.gatherAttempts(best.Style, options)
		if len(trials) == 0 {
			return best, nil
		}

		frontier := style.NewFrontier()
		for _, trial := range trials {
			cand := e.evaluateStyle(ctx, trial)
			frontier.Push(cand)
		}

		candidate, ok := frontier.Pop()
		if !ok || !candidate.Less(best) {
			// No trial this round strictly beat the current best under the
			// ordering rule: converged.
			return best, nil
		}
		best = candidate
	}
	return best, ErrDidNotConverge
}

// gatherAttempts enumerates every (option, alternative value) derivation of
// current that hasn't already been applied, in the option's canonical
// Values() order -- directly mirroring whatstyle.py's gather_attempts/
// iter_stylecombos, generating one candidate style per unexplored
// (option, value) pair rather than the full cartesian product.
func (e *Engine) gatherAttempts(current style.Style, options []style.Option) []style.Style {
	var out []style.Style
	for _, opt := range options {
		curVal, attached := current.Values[opt.Name]
		for _, val := range opt.Values() {
			if val == opt.Default && !attached {
				continue // already implicitly at default, not a new attempt
			}
			if attached && val == curVal {
				continue // already applied
			}
			if val == opt.Default {
				// Reverting to the default must drop the key entirely, not
				// record it explicitly -- cardinality only counts explicit
				// overrides.
				out = append(out, current.Without(opt.Name))
				continue
			}
			out = append(out, current.With(opt.Name, val))
		}
	}
	return out
}

// phaseC attempts to pin each option still at its implicit default to an
// explicit value, keeping the pin only when the aggregate distance is
// unchanged. Explicitly recording a value the style already produces by
// default never changes the reformatted output, but it does protect the
// result against the formatter's own default changing out from under it --
// mirroring whatstyle.py's minimize_resilient, which enlarges the style
// with extra explicit options precisely so it stays robust to that drift.
func (e *Engine) phaseC(ctx context.Context, start style.Candidate) style.Candidate {
	best := start
	options := e.Formatter.Options()
	for _, opt := range options {
		if _, attached := best.Style.Values[opt.Name]; attached {
			continue
		}
		select {
		case <-ctx.Done():
			return best
		default:
		}
		trial := best.Style.With(opt.Name, opt.Default)
		cand := e.evaluateStyle(ctx, trial)
		if cand.AggregateDist == best.AggregateDist {
			best = cand
		}
	}
	return best
}

// Variant is one Phase D exploration outcome: an alternative value for a
// single option whose aggregate distance differs from the selected best
// style's.
type Variant struct {
	Option   string
	Value    string
	Distance int
	Hunks    map[string][]style.Hunk // source path -> hunks of the trial's output vs. the reference source
}

// phaseD enumerates every alternative value for every option already
// attached (or eligible to attach) in best, evaluates each, and reports the
// ones whose aggregate distance differs from best's. Outputs are not
// compared byte for byte: a value that changes the reformatted output but
// leaves the aggregate distance equal to best's is not reported.
func (e *Engine) phaseD(ctx context.Context, best style.Candidate) []Variant {
	options := e.Formatter.Options()
	var variants []Variant

	for _, opt := range options {
		curVal, attached := best.Style.Values[opt.Name]
		if !attached {
			curVal = opt.Default
		}
		for _, val := range opt.Values() {
			if val == curVal {
				continue
			}
			trial := best.Style.With(opt.Name, val)
			cand := e.evaluateStyle(ctx, trial)
			if cand.AggregateDist == best.AggregateDist {
				continue // same aggregate distance as the selected style
			}
			variants = append(variants, Variant{
				Option:   opt.Name,
				Value:    val,
				Distance: cand.AggregateDist,
				Hunks:    hunksByPath(cand),
			})
		}
	}
	return variants
}

func hunksByPath(c style.Candidate) map[string][]style.Hunk {
	out := make(map[string][]style.Hunk, len(c.PerFile))
	for path, diff := range c.PerFile {
		out[path] = diff.Hunks
	}
	return out
}

// evaluateStyle runs s against the full corpus and aggregates the result
// into a single Candidate.
func (e *Engine) evaluateStyle(ctx context.Context, s style.Style) style.Candidate {
	pairs := make([]evaluator.Pair, len(e.Sources))
	for i, src := range e.Sources {
		pairs[i] = evaluator.Pair{Style: s, Source: src}
	}
	results := e.Evaluator.EvaluateBatch(ctx, pairs)

	cand := style.Candidate{Style: s, PerFile: make(map[string]style.DiffResult, len(results))}
	for _, r := range results {
		cand.AggregateDist += r.Diff.Distance
		cand.PerFile[r.Pair.Source.Path] = r.Diff
	}
	return cand
}
