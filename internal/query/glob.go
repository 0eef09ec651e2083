package query

// Glob reports whether s matches pattern using the two-wildcard glob
// syntax shared by the `like` query operator and C9's field-visibility
// patterns (SPEC_FULL §4.5, §4.9): `*` matches any run of characters
// (including none), `?` matches exactly one character. No third-party
// glob library in the retrieval pack matches this exact two-wildcard,
// no-character-class grammar, so it is hand-written.
func Glob(pattern, s string) bool {
	return globMatch(pattern, s)
}

func globMatch(pattern, s string) bool {
	return globMatchAt(pattern, s, 0, 0)
}

func globMatchAt(pattern, s string, pi, si int) bool {
	for pi < len(pattern) {
		switch pattern[pi] {
		case '*':
			// Collapse runs of '*' and try every possible split point.
			for pi < len(pattern) && pattern[pi] == '*' {
				pi++
			}

			if pi == len(pattern) {
				return true
			}

			for k := si; k <= len(s); k++ {
				if globMatchAt(pattern[pi:], s[k:], 0, 0) {
					return true
				}
			}

			return false

		case '?':
			if si >= len(s) {
				return false
			}

			pi++
			si++

		default:
			if si >= len(s) || s[si] != pattern[pi] {
				return false
			}

			pi++
			si++
		}
	}

	return si == len(s)
}
