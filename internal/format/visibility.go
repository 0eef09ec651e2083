package format

import (
	"strings"

	"github.com/hlview/hl/internal/query"
)

// VisibilityRule is one `-h`/`--hide` entry: a glob pattern over
// dotted field paths, optionally negated with a leading `!` to reveal a
// field a broader hide rule already hid (SPEC_FULL §4.9 "later !path
// reveals override earlier hides").
type VisibilityRule struct {
	Pattern string
	Reveal  bool
}

// ParseVisibilityRule parses one `-h` argument.
func ParseVisibilityRule(arg string) VisibilityRule {
	if strings.HasPrefix(arg, "!") {
		return VisibilityRule{Pattern: arg[1:], Reveal: true}
	}

	return VisibilityRule{Pattern: arg}
}

// predefinedFields are always shown unless a rule explicitly hides their
// own path (SPEC_FULL §4.9 "predefined fields (time, level, message) are
// always shown unless explicitly hidden by path").
var predefinedFields = map[string]bool{"time": true, "level": true, "message": true}

// Visibility evaluates a record's field-visibility rules in declaration
// order (SPEC_FULL §4.9).
type Visibility struct {
	Rules []VisibilityRule
}

// Hidden reports whether the field at dotted path should be hidden. Rules
// are evaluated in order: a later rule overrides an earlier one's verdict
// for any path it matches. A bare "*" hide rule only suppresses
// non-predefined fields; a rule naming a predefined field's path exactly
// (not via "*") still hides it.
func (v Visibility) Hidden(path string) bool {
	hidden := false

	for _, r := range v.Rules {
		if !query.Glob(r.Pattern, path) {
			continue
		}

		if r.Pattern == "*" && predefinedFields[path] && !r.Reveal {
			continue
		}

		hidden = !r.Reveal
	}

	return hidden
}
