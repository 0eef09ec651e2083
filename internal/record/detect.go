package record

// DetectConfig controls format detection (SPEC_FULL §4.3).
type DetectConfig struct {
	// Forced, when non-empty, skips detection and forces this kind.
	Forced RecordKind
	HasForced bool

	// AllowPrefix enables scanning forward for the first '{' when the
	// segment has a non-JSON prefix (§6 --allow-prefix).
	AllowPrefix bool
}

// Detect implements the ordered detection rule of SPEC_FULL §4.3:
// forced kind, then an allowed non-JSON prefix before '{', then a
// leading '{', then logfmt, else raw.
func Detect(seg []byte, cfg DetectConfig) (kind RecordKind, jsonStart int) {
	if cfg.HasForced {
		return cfg.Forced, 0
	}

	trimmed, offset := skipLeadingWhitespace(seg)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		return RecordJSON, offset
	}

	if cfg.AllowPrefix {
		if idx := indexByte(trimmed, '{'); idx >= 0 {
			return RecordJSON, offset + idx
		}
	}

	if looksLikeLogfmt(trimmed) {
		return RecordLogfmt, offset
	}

	return RecordRaw, 0
}

func skipLeadingWhitespace(seg []byte) ([]byte, int) {
	i := 0
	for i < len(seg) && isWS(seg[i]) {
		i++
	}

	return seg[i:], i
}

func isWS(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}

	return -1
}

// looksLikeLogfmt reports whether seg begins with something shaped like a
// logfmt key, i.e. an identifier followed eventually by '='. This is a
// cheap heuristic, not a full parse: ParseLogfmt is the authority and
// falls back to Raw on actual syntax errors (handled by the caller).
func looksLikeLogfmt(seg []byte) bool {
	if len(seg) == 0 || !isLogfmtKeyStart(seg[0]) {
		return false
	}

	i := 1
	for i < len(seg) && isLogfmtKeyByte(seg[i]) {
		i++
	}

	return i < len(seg) && seg[i] == '='
}
