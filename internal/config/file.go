package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// fileFormat selects a config file's decoder by extension (SPEC_FULL
// §4.12 "TOML or YAML", extended here to JSON for symmetry with the
// theme loader's three-format support).
type fileFormat uint8

const (
	formatYAML fileFormat = iota
	formatTOML
	formatJSON
)

func formatForPath(path string) (fileFormat, bool) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return formatYAML, true
	case ".toml":
		return formatTOML, true
	case ".json":
		return formatJSON, true
	default:
		return 0, false
	}
}

// fileDocument is hl's config-file schema: every option from the CLI
// table (SPEC_FULL §6), as a pointer so an absent key leaves the
// embedded default (or a lower-precedence layer) untouched.
type fileDocument struct {
	Level *string `yaml:"level" toml:"level" json:"level"`

	Filter []string `yaml:"filter" toml:"filter" json:"filter"`
	Query  *string  `yaml:"query" toml:"query" json:"query"`
	Since  *string  `yaml:"since" toml:"since" json:"since"`
	Until  *string  `yaml:"until" toml:"until" json:"until"`

	Sort           *bool `yaml:"sort" toml:"sort" json:"sort"`
	Follow         *bool `yaml:"follow" toml:"follow" json:"follow"`
	Tail           *int  `yaml:"tail" toml:"tail" json:"tail"`
	SyncIntervalMS *int  `yaml:"sync-interval-ms" toml:"sync-interval-ms" json:"sync-interval-ms"`

	Hide      []string `yaml:"hide" toml:"hide" json:"hide"`
	HideEmpty *bool    `yaml:"hide-empty" toml:"hide-empty" json:"hide-empty"`
	ShowEmpty *bool    `yaml:"show-empty" toml:"show-empty" json:"show-empty"`

	Expansion *string `yaml:"expansion" toml:"expansion" json:"expansion"`
	Flatten   *string `yaml:"flatten" toml:"flatten" json:"flatten"`
	ASCII     *string `yaml:"ascii" toml:"ascii" json:"ascii"`

	Local      *bool   `yaml:"local" toml:"local" json:"local"`
	TimeZone   *string `yaml:"time-zone" toml:"time-zone" json:"time-zone"`
	TimeFormat *string `yaml:"time-format" toml:"time-format" json:"time-format"`

	Theme      *string `yaml:"theme" toml:"theme" json:"theme"`
	ThemeDir   *string `yaml:"theme-dir" toml:"theme-dir" json:"theme-dir"`
	ListThemes *bool   `yaml:"list-themes" toml:"list-themes" json:"list-themes"`

	Raw       *bool `yaml:"raw" toml:"raw" json:"raw"`
	RawFields *bool `yaml:"raw-fields" toml:"raw-fields" json:"raw-fields"`

	Color  *string `yaml:"color" toml:"color" json:"color"`
	Paging *string `yaml:"paging" toml:"paging" json:"paging"`

	Delimiter      *string `yaml:"delimiter" toml:"delimiter" json:"delimiter"`
	AllowPrefix    *bool   `yaml:"allow-prefix" toml:"allow-prefix" json:"allow-prefix"`
	MaxMessageSize *int    `yaml:"max-message-size" toml:"max-message-size" json:"max-message-size"`

	Output  *string `yaml:"output" toml:"output" json:"output"`
	NoPager *bool   `yaml:"no-pager" toml:"no-pager" json:"no-pager"`

	InterruptIgnoreCount *int `yaml:"interrupt-ignore-count" toml:"interrupt-ignore-count" json:"interrupt-ignore-count"`
}

// LoadFile reads the config file at path and applies every key it sets
// onto c, leaving fields the file is silent on unchanged (SPEC_FULL §4.12
// "embedded defaults -> user config file -> ..."). A missing file at path
// is not an error; callers resolve the default config path themselves
// and should only call LoadFile when they know one exists, or tolerate
// os.IsNotExist.
func (c *Config) LoadFile(path string) error {
	format, ok := formatForPath(path)
	if !ok {
		return fmt.Errorf("config: unrecognized file extension %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc fileDocument

	switch format {
	case formatYAML:
		err = yaml.Unmarshal(data, &doc)
	case formatTOML:
		err = toml.Unmarshal(data, &doc)
	case formatJSON:
		err = json.Unmarshal(data, &doc)
	}

	if err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	doc.apply(c)

	return nil
}

func (d *fileDocument) apply(c *Config) {
	strp := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	boolp := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	intp := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	strp(&c.Level, d.Level)

	if d.Filter != nil {
		c.Filters = d.Filter
	}

	strp(&c.Query, d.Query)
	strp(&c.Since, d.Since)
	strp(&c.Until, d.Until)

	boolp(&c.Sort, d.Sort)
	boolp(&c.Follow, d.Follow)
	intp(&c.Tail, d.Tail)
	intp(&c.SyncIntervalMS, d.SyncIntervalMS)

	if d.Hide != nil {
		c.Hide = d.Hide
	}

	boolp(&c.HideEmpty, d.HideEmpty)
	boolp(&c.ShowEmpty, d.ShowEmpty)

	strp(&c.Expansion, d.Expansion)
	strp(&c.Flatten, d.Flatten)
	strp(&c.ASCII, d.ASCII)

	boolp(&c.Local, d.Local)
	strp(&c.TimeZone, d.TimeZone)
	strp(&c.TimeFormat, d.TimeFormat)

	strp(&c.Theme, d.Theme)
	strp(&c.ThemeDir, d.ThemeDir)
	boolp(&c.ListThemes, d.ListThemes)

	boolp(&c.Raw, d.Raw)
	boolp(&c.RawFields, d.RawFields)

	strp(&c.Color, d.Color)
	strp(&c.Paging, d.Paging)

	strp(&c.Delimiter, d.Delimiter)
	boolp(&c.AllowPrefix, d.AllowPrefix)
	intp(&c.MaxMessageSize, d.MaxMessageSize)

	strp(&c.Output, d.Output)
	boolp(&c.NoPager, d.NoPager)

	intp(&c.InterruptIgnoreCount, d.InterruptIgnoreCount)
}
