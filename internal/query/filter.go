package query

import (
	"strings"

	"github.com/hlview/hl/internal/fieldpath"
	"github.com/hlview/hl/internal/record"
)

// FilterOp is one of the four operators the `-f` CLI surface accepts
// (SPEC_FULL §3/§4.5).
type FilterOp uint8

const (
	FilterEqual FilterOp = iota
	FilterNotEqual
	FilterContains
	FilterNotContains
)

// Filter is a single `-f key op value` predicate. Multiple Filters combine
// by conjunction (SPEC_FULL §4.5 "multiple -f filters combine by
// conjunction").
type Filter struct {
	Path          fieldpath.Path
	Op            FilterOp
	Operand       string
	IncludeAbsent bool // the "?op" prefix
}

// Match evaluates f against r, implementing the table in SPEC_FULL §4.5:
// an unresolved path fails the predicate unless IncludeAbsent is set.
func (f Filter) Match(r *record.Record) bool {
	v, ok := resolve(r, f.Path)
	if !ok {
		return f.IncludeAbsent
	}

	s, ok := v.AsString()
	if !ok {
		return false
	}

	switch f.Op {
	case FilterEqual:
		return s == f.Operand
	case FilterNotEqual:
		return s != f.Operand
	case FilterContains:
		return strings.Contains(s, f.Operand)
	case FilterNotContains:
		return !strings.Contains(s, f.Operand)
	default:
		return false
	}
}

// MatchAll reports whether every filter in fs matches r (conjunction).
func MatchAll(fs []Filter, r *record.Record) bool {
	for _, f := range fs {
		if !f.Match(r) {
			return false
		}
	}

	return true
}
