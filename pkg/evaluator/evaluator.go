/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: evaluator.go
Description: The Parallel Evaluator. Dispatches (style, source file) pairs to a
bounded worker pool, consulting the Evaluation Cache first and degrading
per-pair failures to infinite distance rather than aborting the batch. Built on
sourcegraph/conc's bounded pool, which gives bounded fan-out with panic
recovery without a hand-rolled channel-of-workers.
*/

package evaluator

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/whatstyle-go/pkg/cache"
	"github.com/kleascm/whatstyle-go/pkg/diffmetric"
	"github.com/kleascm/whatstyle-go/pkg/formatter"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"github.com/sourcegraph/conc/pool"
)

// Pair is one unit of evaluation work: apply Style to Source.
type Pair struct {
	Style  style.Style
	Source style.SourceFile
}

// Result is the outcome of evaluating one Pair. Err is non-nil only for
// logging/observability; per the error taxonomy a failed pair still yields
// a usable Diff (style.Infinite), so callers can treat Result as always
// valid for aggregation.
type Result struct {
	Pair    Pair
	Diff    style.DiffResult
	Err     error
	BatchID string // correlates every Result from one EvaluateBatch call in the logs
}

// Evaluator owns a bounded worker pool and per-call subprocess timeout.
type Evaluator struct {
	fmt        formatter.Formatter
	metric     *diffmetric.Metric
	cache      *cache.Cache
	workers    int
	perCallTTL time.Duration
	fmtFP      string
}

// New constructs an Evaluator. workers <= 0 defaults to runtime.NumCPU().
func New(f formatter.Formatter, m *diffmetric.Metric, c *cache.Cache, workers int, perCallTTL time.Duration) (*Evaluator, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if perCallTTL <= 0 {
		perCallTTL = 10 * time.Second
	}
	fp, err := f.Fingerprint()
	if err != nil {
		return nil, err
	}
	return &Evaluator{fmt: f, metric: m, cache: c, workers: workers, perCallTTL: perCallTTL, fmtFP: fp}, nil
}

// EvaluateBatch evaluates every pair concurrently, bounded by the
// evaluator's worker count. Batch-level cancellation is cooperative: once
// ctx is cancelled, in-flight subprocess calls are allowed to finish (the
// per-call timeout still applies independently) but no new pair in the
// batch is started. Results are returned in the same order as pairs.
func (e *Evaluator) EvaluateBatch(ctx context.Context, pairs []Pair) []Result {
	batchID := uuid.New().String()
	results := make([]Result, len(pairs))
	p := pool.New().WithMaxGoroutines(e.workers)

	for i, pair := range pairs {
		i, pair := i, pair
		p.Go(func() {
			select {
			case <-ctx.Done():
				results[i] = Result{Pair: pair, Diff: style.DiffResult{Distance: style.Infinite}, Err: ctx.Err(), BatchID: batchID}
				return
			default:
			}
			results[i] = e.evaluateOne(ctx, pair)
			results[i].BatchID = batchID
		})
	}
	p.Wait()
	return results
}

func (e *Evaluator) evaluateOne(ctx context.Context, pair Pair) Result {
	key := cache.Key{
		FormatterFingerprint: e.fmtFP,
		StyleFingerprint:     pair.Style.Fingerprint(),
		SourceFingerprint:    cache.SourceFingerprint(pair.Source.Content),
	}

	entry, err := e.cache.GetOrEvaluate(ctx, key, func(ctx context.Context) (cache.Entry, error) {
		// Detached from batch cancellation so a running subprocess is not
		// killed mid-flight; only the per-call timeout bounds it.
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.perCallTTL)
		defer cancel()

		out, err := e.fmt.Format(cctx, pair.Style, pair.Source.Content, pair.Source.Path)
		if err != nil {
			return cache.Entry{}, err
		}
		diff, err := e.metric.Compare(cctx, pair.Source.Content, out)
		if err != nil {
			return cache.Entry{}, err
		}
		return cache.Entry{Bytes: out, Diff: diff}, nil
	})
	if err != nil {
		// Per the error taxonomy, a per-pair failure (formatter crash,
		// timeout, metric unavailable) degrades to infinite distance so it
		// loses under the Candidate ordering rule instead of aborting the
		// whole batch.
		return Result{Pair: pair, Diff: style.DiffResult{Distance: style.Infinite}, Err: err}
	}
	return Result{Pair: pair, Diff: entry.Diff}
}
