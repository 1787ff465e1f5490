/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: The Formatter Abstraction -- the capability contract the search
engine, evaluator, and cache consume. Format must be a pure function of its
arguments; adapters are responsible for hiding whatever nondeterminism their
underlying tool has (temp file naming, working directory, environment).
*/

package formatter

import (
	"context"
	"errors"

	"github.com/kleascm/whatstyle-go/pkg/style"
)

// ErrUnavailable is returned (wrapped) by NewClangFormat and Fingerprint when
// the underlying formatter binary cannot be found or invoked at all. Per the error
// taxonomy this is fatal -- the search cannot proceed without a formatter.
var ErrUnavailable = errors.New("formatter: unavailable")

// Formatter is the contract every adapter implements.
type Formatter interface {
	// Name returns a short, stable identifier, e.g. "clang-format".
	Name() string

	// Options returns every option this formatter declares, in a stable
	// enumeration order. The Search Engine never considers an option this
	// slice doesn't include.
	Options() []style.Option

	// Styles returns the named base-style presets this formatter ships
	// with (e.g. clang-format's LLVM/Google/Chromium/Mozilla/WebKit).
	Styles() []string

	// Format applies s to source and returns the reformatted bytes.
	// filenameHint may influence language-specific behavior (e.g. file
	// extension dispatch) but must not be used to look up any other state.
	// Implementations must be side-effect free from the caller's
	// perspective: no shared mutable state, no global working directory
	// changes that outlive the call.
	Format(ctx context.Context, s style.Style, source []byte, filenameHint string) ([]byte, error)

	// Fingerprint returns an identity that changes whenever the
	// underlying formatter's observable behavior could change (binary
	// path, size, modification time, reported version). Cache keys are
	// namespaced by this value so a formatter upgrade can never alias
	// against a stale cache entry.
	Fingerprint() (string, error)
}
