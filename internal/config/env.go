package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// DefaultConfigDir returns hl's per-user config directory (SPEC_FULL §6),
// the same platform convention internal/theme.DefaultThemeDir uses.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "hl")
}

// DefaultConfigPath returns the first of config.yaml, config.toml,
// config.json under [DefaultConfigDir] that exists, or "" if none do.
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}

	for _, name := range []string{"config.yaml", "config.toml", "config.json"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ApplyEnv fills c from HL_* environment variables (SPEC_FULL §6), which
// sit between the config file and CLI flags in precedence: call this
// after [Config.LoadFile] and before flags.Parse.
func (c *Config) ApplyEnv() {
	str := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	boolean := func(dst *bool, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v != "" && v != "0" && v != "false"
		}
	}

	integer := func(dst *int, name string) {
		if v, ok := os.LookupEnv(name); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str(&c.Level, "HL_LEVEL")
	str(&c.Query, "HL_QUERY")
	str(&c.Since, "HL_SINCE")
	str(&c.Until, "HL_UNTIL")
	boolean(&c.Sort, "HL_SORT")
	boolean(&c.Follow, "HL_FOLLOW")
	integer(&c.Tail, "HL_TAIL")
	integer(&c.SyncIntervalMS, "HL_SYNC_INTERVAL_MS")

	if v, ok := os.LookupEnv("HL_HIDE"); ok {
		c.Hide = append(c.Hide, v)
	}

	boolean(&c.HideEmpty, "HL_HIDE_EMPTY_FIELDS")
	str(&c.Expansion, "HL_EXPANSION")
	str(&c.Flatten, "HL_FLATTEN")
	str(&c.ASCII, "HL_ASCII")
	str(&c.TimeZone, "HL_TIME_ZONE")
	str(&c.TimeFormat, "HL_TIME_FORMAT")
	str(&c.Theme, "HL_THEME")
	str(&c.Color, "HL_COLOR")
	str(&c.Paging, "HL_PAGING")
	str(&c.Delimiter, "HL_DELIMITER")
	integer(&c.MaxMessageSize, "HL_MAX_MESSAGE_SIZE")
	str(&c.PagerDelimiter, "HL_PAGER_DELIMITER")
}
