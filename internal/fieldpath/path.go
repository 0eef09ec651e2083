package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
)

// StepKind discriminates a [Step]'s variant.
type StepKind uint8

const (
	StepName StepKind = iota
	StepIndex
	StepAnyElement
)

// Step is one element of a [Path]: a named field, an array index, or the
// "any element" wildcard (SPEC_FULL §3).
type Step struct {
	Kind  StepKind
	Name  string
	Index uint32

	// Literal marks a Name step produced from JSON-quoted syntax: it
	// matches only a field named exactly as written, with no
	// underscore/hyphen normalization and no hierarchical/flat fallback
	// (SPEC_FULL §3 "the literal-name syntax matches only fields named
	// exactly as quoted").
	Literal bool
}

// NameStep builds a Step addressing a named field.
func NameStep(name string) Step { return Step{Kind: StepName, Name: name} }

// LiteralNameStep builds a Step for the JSON-quoted literal-name syntax.
func LiteralNameStep(name string) Step { return Step{Kind: StepName, Name: name, Literal: true} }

// IndexStep builds a Step addressing an array index.
func IndexStep(i uint32) Step { return Step{Kind: StepIndex, Index: i} }

// AnyElementStep builds a Step matching any array element.
func AnyElementStep() Step { return Step{Kind: StepAnyElement} }

// String renders s in path syntax.
func (s Step) String() string {
	switch s.Kind {
	case StepName:
		return s.Name
	case StepIndex:
		return strconv.FormatUint(uint64(s.Index), 10)
	case StepAnyElement:
		return "*"
	default:
		return "?"
	}
}

// Path is a non-empty ordered sequence of [Step]s addressing a field
// within a record.
type Path []Step

// String renders p joining steps with '.', matching the dotted syntax
// field paths are written in on the command line.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}

	return strings.Join(parts, ".")
}

// Parse splits a dotted path expression into [Step]s. A step written
// `[N]` is an index step; `[*]` is the any-element wildcard; anything
// else is a name step. An expression starting with `"` is the literal-name
// syntax (SPEC_FULL §3): the whole expression must be one JSON-quoted
// string (e.g. `"a.b.c"`), which becomes one Name step, bypassing dotted
// splitting entirely.
func Parse(expr string) (Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty field path")
	}

	if expr[0] == '"' {
		name, err := parseQuotedLiteral(expr)
		if err != nil {
			return nil, err
		}

		return Path{LiteralNameStep(name)}, nil
	}

	var steps Path

	for _, raw := range strings.Split(expr, ".") {
		step, err := parseSegment(raw)
		if err != nil {
			return nil, err
		}

		steps = append(steps, step)
	}

	return steps, nil
}

func parseSegment(raw string) (Step, error) {
	if raw == "*" {
		return AnyElementStep(), nil
	}

	if len(raw) >= 2 && raw[0] == '[' && raw[len(raw)-1] == ']' {
		inner := raw[1 : len(raw)-1]
		if inner == "*" {
			return AnyElementStep(), nil
		}

		n, err := strconv.ParseUint(inner, 10, 32)
		if err != nil {
			return Step{}, fmt.Errorf("invalid index segment %q: %w", raw, err)
		}

		return IndexStep(uint32(n)), nil
	}

	return NameStep(raw), nil
}

func parseQuotedLiteral(expr string) (string, error) {
	if len(expr) < 2 || expr[len(expr)-1] != '"' {
		return "", fmt.Errorf("unterminated quoted field path %q", expr)
	}

	inner := expr[1 : len(expr)-1]

	var sb strings.Builder

	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			sb.WriteByte(inner[i])

			continue
		}

		sb.WriteByte(c)
	}

	return sb.String(), nil
}
