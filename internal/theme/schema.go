package theme

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// roleEnum is the fixed Enum value plugged into the `style` schema below
// for every role-valued property in a v1 theme document (SPEC_FULL §3's
// 12 predefined roles).
var roleEnum = func() []any {
	out := make([]any, len(Roles))
	for i, r := range Roles {
		out[i] = string(r)
	}

	return out
}()

// styleDocSchema is the JSON Schema for one [StyleDoc] entry, shared by
// elements, roles, and level overrides in both theme versions.
var styleDocSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"foreground": {Type: "string"},
		"background": {Type: "string"},
		"modes":      {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		"style":      {Type: "string", Enum: roleEnum},
	},
}

// v1Schema is the top-level schema for a v1 theme document. Unknown
// top-level sections are ignored when the version is supported
// (SPEC_FULL §4.8), so AdditionalProperties is left permissive; only
// `version` is required and role-valued `style` references are
// constrained to the 12 known roles.
var v1Schema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"version"},
	Properties: map[string]*jsonschema.Schema{
		"version": {Type: "string", Const: "1.0"},
		"styles": {
			Type:                 "object",
			AdditionalProperties: styleDocSchema,
		},
		"elements": {
			Type:                 "object",
			AdditionalProperties: styleDocSchema,
		},
	},
}

// SchemaError reports a theme document that fails schema validation
// (SPEC_FULL §7 ThemeSchema(location)).
type SchemaError struct {
	Location string
	Err      error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("theme schema error at %s: %v", e.Location, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ValidateV0 checks structural validity of a decoded v0 document.
// SPEC_FULL §4.8 explicitly asks v0 to ignore unknown elements,
// properties, and tags, and to silently drop unknown level names, so
// there is little for schema validation to reject here beyond the shape
// decode already enforces; this mainly exists so the v0/v1 code paths
// share the same validation entry point and error type.
func ValidateV0(doc *V0Document) error {
	return nil
}

// ValidateV1 validates doc against v1Schema using
// github.com/google/jsonschema-go/jsonschema — the same library the
// teacher's magicschema package uses to build/check schemas, now pointed
// at theme documents (DESIGN.md).
func ValidateV1(doc *V1Document) error {
	resolved, err := v1Schema.Resolve(nil)
	if err != nil {
		return &SchemaError{Location: "$", Err: err}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return &SchemaError{Location: "$", Err: err}
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return &SchemaError{Location: "$", Err: err}
	}

	if err := resolved.Validate(instance); err != nil {
		return &SchemaError{Location: "$", Err: err}
	}

	for name, sd := range doc.Styles {
		if sd.Style != "" && !isKnownRole(Role(sd.Style)) {
			return &SchemaError{Location: "styles." + name + ".style", Err: fmt.Errorf("unknown role %q", sd.Style)}
		}
	}

	for name, sd := range doc.Elements {
		if sd.Style != "" && !isKnownRole(Role(sd.Style)) {
			return &SchemaError{Location: "elements." + name + ".style", Err: fmt.Errorf("unknown role %q", sd.Style)}
		}
	}

	return nil
}
