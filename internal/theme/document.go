package theme

// StyleDoc is the raw, undecoded form of one style entry as it appears in
// a theme file. The same struct backs every format (YAML, TOML, JSON) by
// carrying all three struct tags, since SPEC_FULL §4.8 requires a single
// schema shape across the three accepted theme file formats.
type StyleDoc struct {
	Foreground string   `yaml:"foreground,omitempty" toml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string   `yaml:"background,omitempty" toml:"background,omitempty" json:"background,omitempty"`
	Modes      []string `yaml:"modes,omitempty" toml:"modes,omitempty" json:"modes,omitempty"`
	// Style references a v1 role for property-level inheritance
	// (SPEC_FULL §3 "every element or role may carry a style field
	// referencing a role"). Unused in v0 documents.
	Style string `yaml:"style,omitempty" toml:"style,omitempty" json:"style,omitempty"`
}

// versionProbe decodes just enough of a document to tell v0 from v1
// (SPEC_FULL §4.8 "a theme without a version field is v0").
type versionProbe struct {
	Version string `yaml:"version" toml:"version" json:"version"`
}

// V0Document is the raw v0 theme document shape (SPEC_FULL §3).
type V0Document struct {
	Elements   map[string]StyleDoc            `yaml:"elements,omitempty" toml:"elements,omitempty" json:"elements,omitempty"`
	Levels     map[string]map[string]StyleDoc `yaml:"levels,omitempty" toml:"levels,omitempty" json:"levels,omitempty"`
	Indicators map[string]StyleDoc            `yaml:"indicators,omitempty" toml:"indicators,omitempty" json:"indicators,omitempty"`
	Tags       map[string]StyleDoc            `yaml:"tags,omitempty" toml:"tags,omitempty" json:"tags,omitempty"`
	Palette    map[string]string              `yaml:"$palette,omitempty" toml:"$palette,omitempty" json:"$palette,omitempty"`
}

// V1Document is the raw v1 theme document shape (SPEC_FULL §3). Styles is
// keyed by one of the 12 predefined [Role] names; Elements/Levels mirror
// v0's shape but with the `style` role reference available on each entry.
type V1Document struct {
	Version  string                          `yaml:"version" toml:"version" json:"version"`
	Styles   map[string]StyleDoc             `yaml:"styles,omitempty" toml:"styles,omitempty" json:"styles,omitempty"`
	Elements map[string]StyleDoc             `yaml:"elements,omitempty" toml:"elements,omitempty" json:"elements,omitempty"`
	Levels   map[string]map[string]StyleDoc  `yaml:"levels,omitempty" toml:"levels,omitempty" json:"levels,omitempty"`
}
