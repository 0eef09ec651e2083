package query

import (
	"github.com/hlview/hl/internal/fieldpath"
	"github.com/hlview/hl/internal/record"
)

func semanticFieldFor(step fieldpath.Step) (record.SemanticField, bool) {
	if step.Kind != fieldpath.StepName || step.Literal {
		return 0, false
	}

	switch step.Name {
	case "time":
		return record.FieldTime, true
	case "level":
		return record.FieldLevel, true
	case "message":
		return record.FieldMessage, true
	case "caller":
		return record.FieldCaller, true
	case "logger":
		return record.FieldLogger, true
	default:
		return 0, false
	}
}

// resolve resolves path against r, preferring the semantic-slot shortcut
// for single-step predefined identifiers (SPEC_FULL §4.5).
func resolve(r *record.Record, path fieldpath.Path) (record.Value, bool) {
	if len(path) == 1 {
		if f, ok := semanticFieldFor(path[0]); ok {
			slot := r.Semantic.Get(f)
			if !slot.Present {
				return record.Value{}, false
			}

			return slot.Value, true
		}
	}

	if r.Fields.Kind() != record.KindObject {
		return record.Value{}, false
	}

	return fieldpath.Resolve(r.Fields, path)
}

// resolveRef resolves a [FieldRef], honoring the dotted-bypass form.
func resolveRef(r *record.Record, ref FieldRef) (record.Value, bool) {
	if ref.Bypass {
		if r.Fields.Kind() != record.KindObject {
			return record.Value{}, false
		}

		return fieldpath.Resolve(r.Fields, ref.Path)
	}

	return resolve(r, ref.Path)
}

// isLevelRef reports whether ref addresses the semantic level field via
// its predefined identifier (not the dotted-bypass form), which
// participates in ordered comparisons through the [record.Level] enum
// (SPEC_FULL §4.5).
func isLevelRef(ref FieldRef) bool {
	if ref.Bypass || len(ref.Path) != 1 {
		return false
	}

	f, ok := semanticFieldFor(ref.Path[0])

	return ok && f == record.FieldLevel
}

// Eval evaluates n against r, implementing the short-circuit rules and
// three-valued-absence handling of SPEC_FULL §4.5/§7: an unresolved path
// fails its comparison (NumericParseFail/PathNotResolved both resolve to
// "predicate fails", since queries have no include-absent modifier).
func Eval(n Node, r *record.Record) bool {
	switch t := n.(type) {
	case Compare:
		return evalCompare(t, r)
	case Exists:
		_, ok := resolveRef(r, t.Field)

		return ok
	case And:
		return Eval(t.Left, r) && Eval(t.Right, r)
	case Or:
		return Eval(t.Left, r) || Eval(t.Right, r)
	case Not:
		return !Eval(t.Inner, r)
	default:
		return false
	}
}

func evalCompare(c Compare, r *record.Record) bool {
	v, ok := resolveRef(r, c.Field)
	if !ok {
		return false
	}

	if isLevelRef(c.Field) {
		if lvl, okv := record.ParseLevel(v); okv {
			if want, okw := parseLevelOperand(c.Operand); okw {
				return compareLevel(c.Op, lvl, want)
			}
		}
	}

	switch c.Op {
	case OpEqual:
		s, ok := v.AsString()

		return ok && s == c.Operand
	case OpNotEqual:
		s, ok := v.AsString()

		return ok && s != c.Operand
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return evalNumericCompare(c.Op, v, c.Operand)
	case OpContains:
		s, ok := v.AsString()

		return ok && containsSubstr(s, c.Operand)
	case OpNotContains:
		s, ok := v.AsString()

		return ok && !containsSubstr(s, c.Operand)
	case OpLike:
		s, ok := v.AsString()

		return ok && Glob(c.Operand, s)
	case OpMatch:
		s, ok := v.AsString()

		return ok && c.Regex != nil && c.Regex.re.MatchString(s)
	case OpIn:
		s, ok := v.AsString()
		if !ok {
			return false
		}

		for _, want := range c.Set {
			if s == want {
				return true
			}
		}

		return false
	default:
		return false
	}
}

func evalNumericCompare(op CompareOp, v record.Value, operand string) bool {
	have, ok := v.AsFloat()
	if !ok {
		return false // NumericParseFail: predicate fails silently.
	}

	want, ok := parseFloatOperand(operand)
	if !ok {
		return false
	}

	switch op {
	case OpLess:
		return have < want
	case OpLessEqual:
		return have <= want
	case OpGreater:
		return have > want
	case OpGreaterEqual:
		return have >= want
	default:
		return false
	}
}

func parseFloatOperand(s string) (float64, bool) {
	v := record.String(s, false)

	return v.AsFloat()
}

func parseLevelOperand(s string) (record.Level, bool) {
	return record.ParseLevel(record.String(s, false))
}

func compareLevel(op CompareOp, have, want record.Level) bool {
	switch op {
	case OpEqual:
		return have == want
	case OpNotEqual:
		return have != want
	case OpLess:
		return have < want
	case OpLessEqual:
		return have <= want
	case OpGreater:
		return have > want
	case OpGreaterEqual:
		return have >= want
	default:
		return false
	}
}

func containsSubstr(haystack, needle string) bool {
	return indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	n, m := len(haystack), len(needle)
	if m == 0 {
		return 0
	}

	for i := 0; i+m <= n; i++ {
		if haystack[i:i+m] == needle {
			return i
		}
	}

	return -1
}
