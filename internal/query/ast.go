package query

import (
	"strings"

	"github.com/hlview/hl/internal/fieldpath"
)

// FieldRef is a field path reference as it appears in a query atom. A
// leading '.' (Bypass) selects the raw-string-comparison form for
// predefined identifiers, skipping semantic mapping (SPEC_FULL §4.5
// "the dotted form (.level) bypasses semantics and performs raw string
// comparison").
type FieldRef struct {
	Path   fieldpath.Path
	Bypass bool
}

// ParseFieldRef parses a field reference as written in a query, handling
// the leading-dot bypass syntax.
func ParseFieldRef(expr string) (FieldRef, error) {
	if strings.HasPrefix(expr, ".") {
		p, err := fieldpath.Parse(expr[1:])
		if err != nil {
			return FieldRef{}, err
		}

		return FieldRef{Path: p, Bypass: true}, nil
	}

	p, err := fieldpath.Parse(expr)
	if err != nil {
		return FieldRef{}, err
	}

	return FieldRef{Path: p}, nil
}

// CompareOp enumerates the comparison operators SPEC_FULL §3/§4.5 define
// for query atoms.
type CompareOp uint8

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpContains
	OpNotContains
	OpLike
	OpMatch
	OpIn
)

// Node is a query expression tree node: leaves are Compare/Exists, interior
// nodes are And/Or/Not (SPEC_FULL §3).
type Node interface {
	isNode()
}

// Compare is a leaf node: `path op operand`.
type Compare struct {
	Field FieldRef
	Op    CompareOp
	// Operand holds the literal operand text for scalar operators, and
	// Regex is the compiled pattern for Match (populated at parse time so
	// InvalidRegex is a parse-time, not eval-time, failure per §7).
	Operand string
	Set     []string
	Regex   *compiledRegex
}

// Exists is a leaf node: `exists(path)`.
type Exists struct {
	Field FieldRef
}

// And, Or are binary interior nodes; Not is unary.
type And struct{ Left, Right Node }
type Or struct{ Left, Right Node }
type Not struct{ Inner Node }

func (Compare) isNode() {}
func (Exists) isNode()  {}
func (And) isNode()     {}
func (Or) isNode()      {}
func (Not) isNode()     {}
