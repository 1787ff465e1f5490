/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: The typed error hierarchy for the search engine, matching the
error taxonomy: some kinds are fatal (the run cannot produce a result), some are
non-fatal warnings surfaced alongside a best-effort result.
*/

package search

import "errors"

// ErrFormatterUnavailable: the configured formatter could not be invoked at
// all. Fatal.
var ErrFormatterUnavailable = errors.New("search: formatter unavailable")

// ErrNoBaseline: every named base style failed on every source file during
// Phase A. Fatal -- there is nothing to refine from.
var ErrNoBaseline = errors.New("search: no baseline style succeeded on any file")

// ErrDidNotConverge: Phase B exhausted its iteration bound without reaching
// a fixed point. Non-fatal -- the best candidate found so far is still
// returned alongside this warning.
var ErrDidNotConverge = errors.New("search: did not converge within iteration bound")

// ErrCancelled: the caller's context was cancelled mid-search. Non-fatal --
// the best candidate found so far is returned.
var ErrCancelled = errors.New("search: cancelled")
