package fieldpath

import (
	"strings"

	"github.com/hlview/hl/internal/record"
)

// Resolve addresses p against root, implementing the hierarchical/flat/
// mixed algorithm of SPEC_FULL §4.4.
func Resolve(root record.Value, p Path) (record.Value, bool) {
	if len(p) == 0 {
		return record.Value{}, false
	}

	return resolveAt(root, p)
}

func resolveAt(v record.Value, steps []Step) (record.Value, bool) {
	if len(steps) == 0 {
		return v, true
	}

	step := steps[0]

	switch step.Kind {
	case StepIndex:
		if v.Kind() != record.KindArray {
			return record.Value{}, false
		}

		elems := v.Elements()
		if int(step.Index) >= len(elems) {
			return record.Value{}, false
		}

		return resolveAt(elems[step.Index], steps[1:])

	case StepAnyElement:
		if v.Kind() != record.KindArray {
			return record.Value{}, false
		}

		for _, elem := range v.Elements() {
			if result, ok := resolveAt(elem, steps[1:]); ok {
				return result, true
			}
		}

		return record.Value{}, false

	case StepName:
		return resolveName(v, steps)

	default:
		return record.Value{}, false
	}
}

// resolveName implements rules 2-4 of §4.4 for a Name step: prefer
// consuming exactly one step hierarchically; on failure, fall back to
// joining a run of leading Name steps into a flat dotted key, trying
// longest first and backtracking to shorter joins.
func resolveName(v record.Value, steps []Step) (record.Value, bool) {
	if v.Kind() != record.KindObject {
		return record.Value{}, false
	}

	step := steps[0]

	if field, ok := lookupField(v, step); ok {
		if result, ok := resolveAt(field, steps[1:]); ok {
			return result, true
		}
	}

	if step.Literal {
		return record.Value{}, false
	}

	runEnd := 1
	for runEnd < len(steps) && steps[runEnd].Kind == StepName && !steps[runEnd].Literal {
		runEnd++
	}

	for l := runEnd; l >= 2; l-- {
		name := joinNames(steps[:l])

		if field, ok := lookupFieldName(v, name); ok {
			if result, ok := resolveAt(field, steps[l:]); ok {
				return result, true
			}
		}
	}

	return record.Value{}, false
}

func joinNames(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.Name
	}

	return strings.Join(parts, ".")
}

func lookupField(v record.Value, step Step) (record.Value, bool) {
	if step.Literal {
		return v.Field(step.Name)
	}

	return lookupFieldName(v, step.Name)
}

// lookupFieldName matches a top-level object field against name with
// underscore/hyphen normalization, case-sensitive otherwise (SPEC_FULL
// §4.4).
func lookupFieldName(v record.Value, name string) (record.Value, bool) {
	want := normalize(name)

	for _, m := range v.Members() {
		if normalize(m.Key) == want {
			return m.Value, true
		}
	}

	return record.Value{}, false
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' {
			return '_'
		}

		return r
	}, s)
}
