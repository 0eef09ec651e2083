package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"

	"github.com/hlview/hl/internal/pager"
)

// Sink is the final destination for formatted output: stdout directly,
// a pager subprocess, or a plain file, each wrapped with color-capability
// negotiation (SPEC_FULL §4.10).
type Sink struct {
	w          io.Writer
	pagerPS    *pager.Process
	fileCloser io.Closer
}

// IsOutputTerminal reports whether stdout is attached to a terminal,
// the basis for both the stdin-sentinel default (§6) and the decision to
// negotiate color/Unicode at all.
func IsOutputTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInputTerminal reports whether stdin is a terminal, used to decide
// whether a bare invocation with no file arguments should read stdin or
// print usage (SPEC_FULL §6 "a bare `-` argument, or no arguments at all,
// reads stdin").
func IsInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Open builds a Sink writing to stdout, optionally through a pager
// process resolved by the caller. If p is non-nil, its Launch failure is
// fatal (mirroring the config-level decision that a chosen pager must
// work, not silently degrade).
func Open(mode ColorMode, p *pager.Profile) (*Sink, error) {
	if p == nil {
		return &Sink{w: colorWriter(os.Stdout, mode)}, nil
	}

	proc, err := pager.Launch(p)
	if err != nil {
		return nil, fmt.Errorf("launching pager: %w", err)
	}

	return &Sink{w: colorWriter(proc.Writer(), mode), pagerPS: proc}, nil
}

// OpenFile builds a Sink writing to a newly created (truncated) file at
// path, bypassing both stdout and the pager entirely (SPEC_FULL §6
// `-o/--output`). A file has no terminal to negotiate color for, so
// output is always plain text regardless of the requested [ColorMode].
func OpenFile(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) //nolint:gosec // Output path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("opening output file %s: %w", path, err)
	}

	return &Sink{w: &colorprofile.Writer{Forward: f, Profile: colorprofile.NoTTY}, fileCloser: f}, nil
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// WriteLine writes line followed by a newline.
func (s *Sink) WriteLine(line string) error {
	_, err := io.WriteString(s.w, line+"\n")

	return err
}

// Close waits for a pager subprocess to exit, if one was launched, or
// closes the backing file opened by [OpenFile].
func (s *Sink) Close() error {
	if s.pagerPS != nil {
		return s.pagerPS.Wait()
	}

	if s.fileCloser != nil {
		return s.fileCloser.Close()
	}

	return nil
}

// IsBrokenPipe reports whether err is the downstream consumer (commonly
// a pager, or a shell pipeline stage like `head`) having closed its end,
// which SPEC_FULL §6 maps to exit code 141 in follow mode rather than
// treating it as a failure.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
