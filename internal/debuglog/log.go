package debuglog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Format represents the debug log output format.
type Format string

const (
	// FormatJSON outputs diagnostics as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs diagnostics in logfmt format.
	FormatLogfmt Format = "logfmt"
)

// Kind identifies the class of a source/record-scoped error being recorded,
// matching the error kinds enumerated in SPEC_FULL §7.
type Kind string

const (
	KindDecompress       Kind = "decompress"
	KindDelimiter        Kind = "delimiter"
	KindMessageTooLarge  Kind = "message_too_large"
	KindJSONSyntax       Kind = "json_syntax"
	KindLogfmtSyntax     Kind = "logfmt_syntax"
	KindNumericParseFail Kind = "numeric_parse_fail"
	KindPathNotResolved  Kind = "path_not_resolved"
)

// Sentinel errors returned by this package.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// CreateHandlerWithStrings creates a [slog.Handler] from string level/format names.
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmtt, err := GetFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return CreateHandler(w, lvl, fmtt), nil
}

// CreateHandler creates a [slog.Handler] with the given level and format.
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}

	return nil
}

// GetLevel parses a level string into a [slog.Level].
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}

	return 0, ErrUnknownLogLevel
}

// GetFormat parses a format string into a [Format].
func GetFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatJSON, FormatLogfmt}, f) {
		return f, nil
	}

	return "", ErrUnknownLogFormat
}

// Logger wraps a [*slog.Logger] with hl's record/source-scoped error
// reporting and an aggregate counter reported at shutdown, per SPEC_FULL §7.
// The zero value (as returned when no path is configured) discards
// everything.
type Logger struct {
	slog    *slog.Logger
	file    io.Closer
	counts  map[Kind]int
	enabled bool
}

// RecordError logs a single source/record-scoped error at debug level and
// increments its aggregate counter. Safe to call on a disabled Logger.
func (l *Logger) RecordError(kind Kind, source string, err error) {
	if l == nil || !l.enabled {
		return
	}

	if l.counts == nil {
		l.counts = make(map[Kind]int)
	}

	l.counts[kind]++

	l.slog.Debug("input error",
		slog.String("kind", string(kind)),
		slog.String("source", source),
		slog.Any("error", err),
	)
}

// Enabled reports whether diagnostics are being recorded.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Close emits the aggregate error-count summary, if any errors were
// recorded, and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || !l.enabled {
		return nil
	}

	for kind, n := range l.counts {
		l.slog.Info("error summary", slog.String("kind", string(kind)), slog.Int("count", n))
	}

	if l.file != nil {
		return l.file.Close()
	}

	return nil
}
