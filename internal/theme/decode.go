package theme

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format is a theme file's serialization, selected by file extension
// (SPEC_FULL §4.8 "file extension selects the parser").
type Format uint8

const (
	FormatYAML Format = iota
	FormatTOML
	FormatJSON
)

// ParseError reports a theme document that fails to decode (SPEC_FULL §7
// ConfigSyntax/ThemeSchema). Line is not filled in by the decoders here;
// any position the underlying decoder reports is only in Err's text.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func decodeInto(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	case FormatJSON:
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("unknown theme format")
	}
}

// detectVersion decodes just the `version` field to distinguish v0 from
// v1 (SPEC_FULL §4.8).
func detectVersion(data []byte, format Format) (string, error) {
	var probe versionProbe
	if err := decodeInto(data, format, &probe); err != nil {
		return "", err
	}

	return probe.Version, nil
}

// UnsupportedVersionError reports a theme `version` value this resolver
// does not implement (SPEC_FULL §7 ThemeVersion(kind)).
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported theme version %q", e.Version)
}

// Decode parses data (in the given format) into a resolved [Document],
// dispatching on its detected version.
func Decode(path string, data []byte, format Format) (*Document, error) {
	version, err := detectVersion(data, format)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	switch version {
	case "":
		var doc V0Document
		if err := decodeInto(data, format, &doc); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}

		if err := ValidateV0(&doc); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}

		return &Document{Version: 0, V0: &doc}, nil

	case "1.0":
		var doc V1Document
		if err := decodeInto(data, format, &doc); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}

		if err := ValidateV1(&doc); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}

		return &Document{Version: 1, V1: &doc}, nil

	default:
		return nil, &ParseError{Path: path, Err: &UnsupportedVersionError{Version: version}}
	}
}

// Document is a decoded theme document, tagged by version.
type Document struct {
	Version int
	V0      *V0Document
	V1      *V1Document
}
