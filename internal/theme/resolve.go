package theme

import (
	"fmt"

	"github.com/hlview/hl/internal/record"
)

// CircularRoleChainError reports a v1 `style` reference chain that
// revisits a role or exceeds [maxRoleChainDepth] (SPEC_FULL §7
// CircularRoleChain).
type CircularRoleChainError struct {
	Role Role
}

func (e *CircularRoleChainError) Error() string {
	return fmt.Sprintf("circular or too-deep role chain at %q", e.Role)
}

// mergeStyleDoc merges override onto base for the foreground/background/
// style properties: any property override sets replaces base's, anything
// override leaves unset is inherited from base. It also carries v0's
// modes semantics (wholesale replacement, SPEC_FULL §4.8 "a child's
// non-empty modes replaces the parent's entirely") for v0's per-level
// merge and boolean active-merge. v1's modes field does NOT go through
// this function: v1 accumulates modes additively/subtractively across
// the default -> base -> level -> role -> element chain via [ModeSet.Apply]
// and [ModeSet.Overlay] instead, since a later layer's `-mode` must
// remove a mode an earlier layer added rather than discard the earlier
// layer's other adds wholesale.
func mergeStyleDoc(base, override StyleDoc) StyleDoc {
	out := base

	if override.Foreground != "" {
		out.Foreground = override.Foreground
	}

	if override.Background != "" {
		out.Background = override.Background
	}

	if len(override.Modes) > 0 {
		out.Modes = override.Modes
	}

	if override.Style != "" {
		out.Style = override.Style
	}

	return out
}

// resolveColors parses the foreground/background properties of sd; it
// does not touch modes, since v0 and v1 resolve modes differently (see
// [mergeStyleDoc]).
func resolveColors(sd StyleDoc) (ResolvedStyle, error) {
	var rs ResolvedStyle

	if sd.Foreground != "" {
		c, err := ParseColor(sd.Foreground)
		if err != nil {
			return ResolvedStyle{}, err
		}

		rs.Foreground = c
	}

	if sd.Background != "" {
		c, err := ParseColor(sd.Background)
		if err != nil {
			return ResolvedStyle{}, err
		}

		rs.Background = c
	}

	return rs, nil
}

// resolveStyleDoc resolves a fully-merged v0 StyleDoc, including its
// already wholesale-replaced modes array.
func resolveStyleDoc(sd StyleDoc) (ResolvedStyle, error) {
	rs, err := resolveColors(sd)
	if err != nil {
		return ResolvedStyle{}, err
	}

	if len(sd.Modes) > 0 {
		ms, err := ParseModeSet(sd.Modes)
		if err != nil {
			return ResolvedStyle{}, err
		}

		rs.Modes = ms.Slice()
	}

	return rs, nil
}

// resolveStyleDocWithModes resolves a fully-merged v1 StyleDoc's colors
// from sd, and takes its modes from the separately-accumulated modes
// set rather than sd.Modes (see [mergeStyleDoc]).
func resolveStyleDocWithModes(sd StyleDoc, modes ModeSet) (ResolvedStyle, error) {
	rs, err := resolveColors(sd)
	if err != nil {
		return ResolvedStyle{}, err
	}

	rs.Modes = modes.Slice()

	return rs, nil
}

// ResolveV0 produces the StylePack for level from a decoded v0 document
// (SPEC_FULL §4.8): base elements are merged with the level's overrides,
// then the boolean active-merge special case runs, then every known
// element is parsed into its resolved form. Unknown element and level
// names are ignored for forward compatibility.
func ResolveV0(doc *V0Document, level record.Level) (StylePack, error) {
	merged := map[Element]StyleDoc{}

	for name, sd := range doc.Elements {
		e := Element(name)
		if isKnownElement(e) {
			merged[e] = sd
		}
	}

	if overrides, ok := doc.Levels[level.String()]; ok {
		for name, sd := range overrides {
			e := Element(name)
			if !isKnownElement(e) {
				continue
			}

			merged[e] = mergeStyleDoc(merged[e], sd)
		}
	}

	// Boolean active merge: base "boolean", once merged with any
	// level override above, has its properties actively merged into
	// boolean-true/boolean-false, with the child's own properties
	// winning (SPEC_FULL §4.8).
	if boolBase, ok := merged[ElementBoolean]; ok {
		merged[ElementBooleanTrue] = mergeStyleDoc(boolBase, merged[ElementBooleanTrue])
		merged[ElementBooleanFalse] = mergeStyleDoc(boolBase, merged[ElementBooleanFalse])
	}

	pack := StylePack{Level: level, Elements: map[Element]ResolvedStyle{}}

	for _, e := range Elements {
		sd, ok := merged[e]
		if !ok {
			continue
		}

		rs, err := resolveStyleDoc(sd)
		if err != nil {
			return StylePack{}, err
		}

		pack.Elements[e] = rs
	}

	return pack, nil
}

// resolveRoleV1 resolves role's own StyleDoc and ModeSet by merging
// @default's definition with the user document's override, then
// following role's `style` reference (if any and if not already
// visited) to fill any properties role itself leaves unset (SPEC_FULL
// §3 "every element or role may carry a style field referencing a
// role", chains bounded to depth 64 with cycle detection). Modes
// accumulate additively/subtractively: the parent chain's resolved set
// is the starting point, and this role's own def/user entries overlay
// on top of it mode-by-mode (SPEC_FULL §4.8), matching the property
// precedence of the rest of the chain.
func resolveRoleV1(doc, def *V1Document, role Role, depth int, seen map[Role]bool) (StyleDoc, ModeSet, error) {
	if depth > maxRoleChainDepth || seen[role] {
		return StyleDoc{}, ModeSet{}, &CircularRoleChainError{Role: role}
	}

	seen[role] = true

	defSD := def.Styles[string(role)]
	userSD := doc.Styles[string(role)]
	merged := mergeStyleDoc(defSD, userSD)

	ownModes, err := ModeSet{}.Apply(defSD.Modes)
	if err != nil {
		return StyleDoc{}, ModeSet{}, err
	}

	ownModes, err = ownModes.Apply(userSD.Modes)
	if err != nil {
		return StyleDoc{}, ModeSet{}, err
	}

	modes := ownModes

	if merged.Style != "" {
		parentRole := Role(merged.Style)
		if parentRole != role {
			parentStyle, parentModes, err := resolveRoleV1(doc, def, parentRole, depth+1, seen)
			if err != nil {
				return StyleDoc{}, ModeSet{}, err
			}

			merged = mergeStyleDoc(parentStyle, merged)
			modes = parentModes.Overlay(ownModes)
		}
	}

	return merged, modes, nil
}

// resolveElementV1 runs the 5-step merge SPEC_FULL §4.8 describes for one
// v1 element at level: @default, then the user document's base
// definition, then the level-specific override, then (if a `style` role
// reference survives) the role's resolved properties filling any gaps,
// with the element's own explicit properties always winning over the
// role. Modes accumulate rather than replace at each step: a later
// layer's `-mode` removes a mode an earlier layer added without
// discarding that earlier layer's other adds (SPEC_FULL §4.8), and the
// role's resolved set is only consulted for modes the element chain
// itself never mentions.
func resolveElementV1(doc, def *V1Document, name Element, level record.Level) (ResolvedStyle, error) {
	defSD := def.Elements[string(name)]
	baseSD := doc.Elements[string(name)]
	merged := mergeStyleDoc(defSD, baseSD)

	elemModes, err := ModeSet{}.Apply(defSD.Modes)
	if err != nil {
		return ResolvedStyle{}, err
	}

	elemModes, err = elemModes.Apply(baseSD.Modes)
	if err != nil {
		return ResolvedStyle{}, err
	}

	if overrides, ok := doc.Levels[level.String()]; ok {
		levelSD := overrides[string(name)]
		merged = mergeStyleDoc(merged, levelSD)

		elemModes, err = elemModes.Apply(levelSD.Modes)
		if err != nil {
			return ResolvedStyle{}, err
		}
	}

	finalModes := elemModes

	if merged.Style != "" {
		roleStyle, roleModes, err := resolveRoleV1(doc, def, Role(merged.Style), 0, map[Role]bool{})
		if err != nil {
			return ResolvedStyle{}, err
		}

		merged = mergeStyleDoc(roleStyle, merged)
		finalModes = roleModes.Overlay(elemModes)
	}

	return resolveStyleDocWithModes(merged, finalModes)
}

// ResolveV1 produces the StylePack for level from a decoded v1 document,
// layered over def (the embedded `@default` theme, SPEC_FULL §3 "a
// built-in role set named @default that every v1 theme implicitly
// extends").
func ResolveV1(doc, def *V1Document, level record.Level) (StylePack, error) {
	pack := StylePack{Level: level, Elements: map[Element]ResolvedStyle{}}

	for _, e := range Elements {
		rs, err := resolveElementV1(doc, def, e, level)
		if err != nil {
			return StylePack{}, err
		}

		pack.Elements[e] = rs
	}

	return pack, nil
}
