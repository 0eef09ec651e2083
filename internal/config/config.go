package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for hl's viewer configuration, following the
// same customizable-name convention as internal/debuglog.Flags and
// internal/profile.Flags.
type Flags struct {
	Level                string
	Filter               string
	Query                string
	Since                string
	Until                string
	Sort                 string
	Follow               string
	Tail                 string
	SyncIntervalMS       string
	Hide                 string
	HideEmpty            string
	ShowEmpty            string
	Expansion            string
	Flatten              string
	ASCII                string
	Local                string
	TimeZone             string
	TimeFormat           string
	Theme                string
	ThemeDir             string
	ListThemes           string
	Raw                  string
	RawFields            string
	Color                string
	Paging               string
	Delimiter            string
	AllowPrefix          string
	MaxMessageSize       string
	Output               string
	NoPager              string
	InterruptIgnoreCount string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds hl's fully resolved viewer configuration (SPEC_FULL §6).
// Create instances with [NewConfig], register CLI flags with
// [Config.RegisterFlags], then call [Config.LoadFile] and [Config.ApplyEnv]
// to layer a config file and the
// `HL_*` environment on top of the flag-registered defaults before
// pflag.Parse runs; pflag.Parse itself supplies the final (highest-
// precedence) layer.
type Config struct {
	Flags Flags

	Level string

	Filters []string
	Query   string
	Since   string
	Until   string

	Sort           bool
	Follow         bool
	Tail           int
	SyncIntervalMS int

	Hide      []string
	HideEmpty bool
	ShowEmpty bool

	Expansion string
	Flatten   string
	ASCII     string

	Local      bool
	TimeZone   string
	TimeFormat string

	Theme      string
	ThemeDir   string
	ListThemes bool

	Raw       bool
	RawFields bool

	Color  string
	Paging string

	Delimiter      string
	AllowPrefix    bool
	MaxMessageSize int

	Output  string
	NoPager bool

	// PagerDelimiter is sourced only from HL_PAGER_DELIMITER (SPEC_FULL
	// §6): it has no CLI flag, matching the documented "environment
	// variables mirror most options" rather than all of them.
	PagerDelimiter string

	InterruptIgnoreCount int
}

// NewConfig returns a Config with default flag names and hl's documented
// defaults (SPEC_FULL §6, §4.1, §4.7).
func NewConfig() *Config {
	f := Flags{
		Level: "level", Filter: "filter", Query: "query",
		Since: "since", Until: "until",
		Sort: "sort", Follow: "follow", Tail: "tail",
		SyncIntervalMS: "sync-interval-ms",
		Hide:           "hide", HideEmpty: "hide-empty", ShowEmpty: "show-empty",
		Expansion: "expansion", Flatten: "flatten", ASCII: "ascii",
		Local: "local", TimeZone: "time-zone", TimeFormat: "time-format",
		Theme: "theme", ThemeDir: "theme-dir", ListThemes: "list-themes",
		Raw: "raw", RawFields: "raw-fields",
		Color: "color", Paging: "paging",
		Delimiter: "delimiter", AllowPrefix: "allow-prefix", MaxMessageSize: "max-message-size",
		Output: "output", NoPager: "no-pager",
		InterruptIgnoreCount: "interrupt-ignore-count",
	}

	c := f.NewConfig()
	c.Level = "info"
	c.SyncIntervalMS = 100
	c.Expansion = "auto"
	c.Flatten = "never"
	c.ASCII = "auto"
	c.Color = "auto"
	c.Paging = "auto"
	c.Delimiter = "auto"
	c.MaxMessageSize = 64 << 20
	c.InterruptIgnoreCount = 0

	return c
}

// RegisterFlags adds hl's viewer flags to flags, using pflag's short-name
// support for the single-letter options SPEC_FULL §6 documents (-f, -q,
// -s, -F, -h, -e, -E, -x, -L, -Z, -t, -o, -P).
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level, "minimum semantic level (t, d, i, w, e)")
	flags.StringArrayVarP(&c.Filters, c.Flags.Filter, "f", nil, "field filter \"K op V\" (repeatable, AND)")
	flags.StringVarP(&c.Query, c.Flags.Query, "q", "", "query expression")
	flags.StringVar(&c.Since, c.Flags.Since, "", "time-range start (absolute or relative)")
	flags.StringVar(&c.Until, c.Flags.Until, "", "time-range end (absolute or relative)")
	flags.BoolVarP(&c.Sort, c.Flags.Sort, "s", false, "batch chronological merge")
	flags.BoolVarP(&c.Follow, c.Flags.Follow, "F", false, "follow mode")
	flags.IntVar(&c.Tail, c.Flags.Tail, 0, "pre-load N last records per file in follow mode")
	flags.IntVar(&c.SyncIntervalMS, c.Flags.SyncIntervalMS, c.SyncIntervalMS, "follow sync window, in milliseconds")
	flags.StringArrayVarP(&c.Hide, c.Flags.Hide, "h", nil, "field visibility rule (repeatable)")
	flags.BoolVarP(&c.HideEmpty, c.Flags.HideEmpty, "e", false, "hide empty fields")
	flags.BoolVarP(&c.ShowEmpty, c.Flags.ShowEmpty, "E", false, "show empty fields")
	flags.StringVarP(&c.Expansion, c.Flags.Expansion, "x", c.Expansion, "expansion mode: never, inline, auto, always")
	flags.StringVar(&c.Flatten, c.Flags.Flatten, c.Flatten, "flatten mode: never, always")
	flags.StringVar(&c.ASCII, c.Flags.ASCII, c.ASCII, "ascii mode: never, auto, always")
	flags.BoolVarP(&c.Local, c.Flags.Local, "L", false, "display timestamps in the local timezone")
	flags.StringVarP(&c.TimeZone, c.Flags.TimeZone, "Z", "", "display timestamps in the named timezone")
	flags.StringVarP(&c.TimeFormat, c.Flags.TimeFormat, "t", "", "custom timestamp display format")
	flags.StringVar(&c.Theme, c.Flags.Theme, "", "theme name")
	flags.StringVar(&c.ThemeDir, c.Flags.ThemeDir, "", "custom theme directory")
	flags.BoolVar(&c.ListThemes, c.Flags.ListThemes, false, "list available themes and exit")
	flags.BoolVar(&c.Raw, c.Flags.Raw, false, "output original segments unformatted")
	flags.BoolVar(&c.RawFields, c.Flags.RawFields, false, "output raw field values")
	flags.StringVar(&c.Color, c.Flags.Color, c.Color, "color mode: auto, always, never")
	flags.StringVar(&c.Paging, c.Flags.Paging, c.Paging, "pager mode: auto, always, never")
	flags.StringVar(&c.Delimiter, c.Flags.Delimiter, c.Delimiter, "input segmentation delimiter: NUL, CR, LF, CRLF, or a literal")
	flags.BoolVar(&c.AllowPrefix, c.Flags.AllowPrefix, false, "accept a non-JSON prefix before '{'")
	flags.IntVar(&c.MaxMessageSize, c.Flags.MaxMessageSize, c.MaxMessageSize, "per-record size cap, in bytes")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "", "write output to file, disabling the pager")
	flags.BoolVarP(&c.NoPager, c.Flags.NoPager, "P", false, "disable the pager")
	flags.IntVar(&c.InterruptIgnoreCount, c.Flags.InterruptIgnoreCount, c.InterruptIgnoreCount,
		"number of interrupts to absorb in pager scenarios")
}

// RegisterCompletions registers shell completions for hl's enum-valued
// flags on cmd, the same pattern as internal/profile.Config.RegisterCompletions.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	values := func(vals ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return vals, cobra.ShellCompDirectiveNoFileComp
		}
	}

	completions := map[string]func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective){
		c.Flags.Level:     values("t", "d", "i", "w", "e"),
		c.Flags.Expansion: values("never", "inline", "auto", "always"),
		c.Flags.Flatten:   values("never", "always"),
		c.Flags.ASCII:     values("never", "auto", "always"),
		c.Flags.Color:     values("auto", "always", "never"),
		c.Flags.Paging:    values("auto", "always", "never"),
	}

	for name, fn := range completions {
		if err := cmd.RegisterFlagCompletionFunc(name, fn); err != nil {
			return err
		}
	}

	return nil
}
