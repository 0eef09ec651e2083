package debuglog

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for debug-log configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Path   string
	Format string
}

// Config holds debug-log configuration, sourced from the HL_DEBUG_LOG
// environment variable or the --debug-log flag (flag wins), per
// SPEC_FULL §6.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Open] to create a [*Logger].
type Config struct {
	// Path is the file diagnostics are appended to. Empty disables
	// diagnostics entirely, which is the default and what a successful
	// run should leave behind: nothing.
	Path   string
	Format string
	Flags  Flags
}

// NewConfig returns a new [Config] with default flag names and diagnostics
// disabled.
func NewConfig() *Config {
	return &Config{
		Format: string(FormatLogfmt),
		Flags: Flags{
			Path:   "debug-log",
			Format: "debug-log-format",
		},
	}
}

// RegisterFlags adds debug-log flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Path, c.Flags.Path, c.Path,
		"write internal diagnostics to this file (also HL_DEBUG_LOG)")
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		"debug log format: json or logfmt")
}

// ApplyEnv fills unset fields from the HL_DEBUG_LOG environment variable,
// honoring the config-loading precedence in SPEC_FULL §6 (env below flags).
func (c *Config) ApplyEnv() {
	if c.Path == "" {
		if v := os.Getenv("HL_DEBUG_LOG"); v != "" {
			c.Path = v
		}
	}
}

// Open creates a [*Logger] per c. If c.Path is empty the returned Logger
// discards everything and is safe to use and Close unconditionally.
func (c *Config) Open() (*Logger, error) {
	if c.Path == "" {
		return &Logger{}, nil
	}

	format, err := GetFormat(c.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log %s: %w", c.Path, err)
	}

	handler := CreateHandler(f, slog.LevelDebug, format)

	return &Logger{
		slog:    slog.New(handler),
		file:    f,
		enabled: true,
	}, nil
}
