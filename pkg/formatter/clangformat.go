/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: clangformat.go
Description: clang-format adapter for the Formatter Abstraction. Shells out to a
clang-format binary per invocation under a subprocess-with-timeout-and-cleanup
discipline: one input, one style file, one output. Fingerprint construction
follows whatstyle.py's Cache.digest_for_exe: binary path + size + mtime +
reported version, so the cache can never alias across a clang-format upgrade.
*/

package formatter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/google/shlex"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"gopkg.in/yaml.v3"
)

// clangFormatOptions is the fixed set of clang-format knobs this adapter
// exposes. clang-format has well over a hundred options; this is a
// representative subset spanning every ValueKind, enough to exercise the
// Search Engine's full option-attachment logic without hand-maintaining an
// exhaustive schema scrape.
var clangFormatOptions = []style.Option{
	{Name: "IndentWidth", Kind: style.KindInt, Default: "2", IntMin: 2, IntMax: 8, IntStep: 2},
	{Name: "TabWidth", Kind: style.KindInt, Default: "8", IntMin: 2, IntMax: 8, IntStep: 2},
	{Name: "UseTab", Kind: style.KindEnum, Default: "Never", Enum: []string{"Never", "Always", "ForIndentation"}},
	{Name: "ColumnLimit", Kind: style.KindInt, Default: "80", IntMin: 0, IntMax: 120, IntStep: 20},
	{Name: "BreakBeforeBraces", Kind: style.KindEnum, Default: "Attach", Enum: []string{"Attach", "Linux", "Mozilla", "Stroustrup", "Allman", "GNU", "WebKit"}},
	{Name: "PointerAlignment", Kind: style.KindEnum, Default: "Right", Enum: []string{"Left", "Right", "Middle"}},
	{Name: "AllowShortIfStatementsOnASingleLine", Kind: style.KindBool, Default: "false"},
	{Name: "SpaceBeforeParens", Kind: style.KindEnum, Default: "ControlStatements", Enum: []string{"Never", "Always", "ControlStatements"}},
	{Name: "AlignTrailingComments", Kind: style.KindBool, Default: "true"},
	{Name: "DerivePointerAlignment", Kind: style.KindBool, Default: "false"},
}

var clangFormatBaseStyles = []string{"LLVM", "Google", "Chromium", "Mozilla", "WebKit"}

// ClangFormat adapts a clang-format binary to the Formatter contract.
type ClangFormat struct {
	binary   string        // path to the clang-format executable
	extraArgs []string     // additional CLI tokens, shell-tokenized via shlex
	timeout  time.Duration
}

// NewClangFormat constructs an adapter for the given binary (resolved via
// PATH if not absolute). extraArgsRaw is parsed the way a shell would using
// google/shlex, so adapter configuration can embed flags like
// `--assume-filename=x.cpp` without the caller hand-splitting on spaces.
func NewClangFormat(binary, extraArgsRaw string, timeout time.Duration) (*ClangFormat, error) {
	if binary == "" {
		binary = "clang-format"
	}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("formatter: %w: %s: %v", ErrUnavailable, binary, err)
	}
	args, err := shlex.Split(extraArgsRaw)
	if err != nil {
		return nil, fmt.Errorf("formatter: invalid extra args %q: %w", extraArgsRaw, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ClangFormat{binary: resolved, extraArgs: args, timeout: timeout}, nil
}

// Name implements Formatter.
func (c *ClangFormat) Name() string { return "clang-format" }

// Options implements Formatter.
func (c *ClangFormat) Options() []style.Option {
	out := make([]style.Option, len(clangFormatOptions))
	copy(out, clangFormatOptions)
	return out
}

// Styles implements Formatter.
func (c *ClangFormat) Styles() []string {
	out := make([]string, len(clangFormatBaseStyles))
	copy(out, clangFormatBaseStyles)
	return out
}

// styleYAML renders s in clang-format's native .clang-format YAML syntax.
// Keys are emitted in sorted order (yaml.v3 sorts map keys, so BasedOnStyle
// sits among the option names) so two equal Styles always serialize identically --
// required for Format to behave as a pure function of s.
func styleYAML(s style.Style) ([]byte, error) {
	doc := map[string]interface{}{"BasedOnStyle": s.BaseName}
	for k, v := range s.Values {
		if iv, err := strconv.Atoi(v); err == nil {
			doc[k] = iv
		} else if v == "true" || v == "false" {
			doc[k] = v == "true"
		} else {
			doc[k] = v
		}
	}
	return yaml.Marshal(doc)
}

// Format implements Formatter. It writes s to a scoped temp style file and
// the source to a scoped temp input file, invokes clang-format with
// -style=file:<path>, and returns stdout. Every temp file is removed on
// every exit path, mirroring ProcessExecutor's cleanup discipline.
func (c *ClangFormat) Format(ctx context.Context, s style.Style, source []byte, filenameHint string) ([]byte, error) {
	yamlBytes, err := styleYAML(s)
	if err != nil {
		return nil, fmt.Errorf("formatter: style serialization failed: %w", err)
	}

	styleFile, err := os.CreateTemp("", "whatstyle-style-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("formatter: %w", err)
	}
	defer os.Remove(styleFile.Name())
	if _, err := styleFile.Write(yamlBytes); err != nil {
		styleFile.Close()
		return nil, fmt.Errorf("formatter: writing style file: %w", err)
	}
	styleFile.Close()

	ext := ".cc"
	if filenameHint != "" {
		ext = extOf(filenameHint)
	}
	inputFile, err := os.CreateTemp("", "whatstyle-input-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("formatter: %w", err)
	}
	defer os.Remove(inputFile.Name())
	if _, err := inputFile.Write(source); err != nil {
		inputFile.Close()
		return nil, fmt.Errorf("formatter: writing input file: %w", err)
	}
	inputFile.Close()

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append([]string{"-style=file:" + styleFile.Name()}, c.extraArgs...)
	args = append(args, inputFile.Name())
	cmd := exec.CommandContext(cctx, c.binary, args...)

	out, runErr := cmd.Output()
	if runErr != nil {
		if cctx.Err() != nil {
			return nil, fmt.Errorf("formatter: clang-format timed out after %s: %w", c.timeout, cctx.Err())
		}
		return nil, fmt.Errorf("formatter: clang-format failed: %w", runErr)
	}
	return out, nil
}

// Fingerprint implements Formatter, following whatstyle.py's
// Cache.digest_for_exe: the binary's path, size, and modification time are
// hashed together with its reported --version string, so any upgrade of
// the underlying clang-format binary produces a new fingerprint and the
// cache never aliases stale evaluations against it.
func (c *ClangFormat) Fingerprint() (string, error) {
	info, err := os.Stat(c.binary)
	if err != nil {
		return "", fmt.Errorf("formatter: %w: stat %s: %v", ErrUnavailable, c.binary, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	versionOut, err := exec.CommandContext(ctx, c.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("formatter: %w: --version failed: %v", ErrUnavailable, err)
	}

	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%s", c.binary, info.Size(), info.ModTime().UnixNano(), versionOut)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func extOf(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
		if filename[i] == '/' {
			break
		}
	}
	return ".cc"
}
