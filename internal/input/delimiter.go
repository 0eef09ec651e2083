package input

// DelimiterMode selects how [Segmenter] splits a byte stream (SPEC_FULL
// §4.1).
type DelimiterMode uint8

const (
	DelimAuto DelimiterMode = iota
	DelimNUL
	DelimCR
	DelimLF
	DelimCRLF
	DelimLiteral
)

// Delimiter is a segmentation mode plus, for [DelimLiteral], the literal
// byte sequence to split on.
type Delimiter struct {
	Mode    DelimiterMode
	Literal []byte
}

// AutoDelimiter selects LF-canonical auto-detection: a CR immediately
// preceding an LF is discarded, a bare CR does not terminate.
func AutoDelimiter() Delimiter { return Delimiter{Mode: DelimAuto} }

// NULDelimiter splits on the NUL byte.
func NULDelimiter() Delimiter { return Delimiter{Mode: DelimNUL} }

// CRDelimiter splits on a bare CR.
func CRDelimiter() Delimiter { return Delimiter{Mode: DelimCR} }

// LFDelimiter splits on a bare LF.
func LFDelimiter() Delimiter { return Delimiter{Mode: DelimLF} }

// CRLFDelimiter splits only on the exact two-byte "\r\n" sequence; an
// orphan CR or LF is content (SPEC_FULL §4.1).
func CRLFDelimiter() Delimiter { return Delimiter{Mode: DelimCRLF} }

// LiteralDelimiter splits on an arbitrary multi-byte literal.
func LiteralDelimiter(lit []byte) Delimiter {
	return Delimiter{Mode: DelimLiteral, Literal: append([]byte(nil), lit...)}
}

// ParseDelimiterFlag parses the `--delimiter`/`HL_DELIMITER` value per
// SPEC_FULL §6: "NUL", "CR", "LF", "CRLF", or a literal string.
func ParseDelimiterFlag(s string) Delimiter {
	switch s {
	case "", "auto", "Auto", "AUTO":
		return AutoDelimiter()
	case "NUL":
		return NULDelimiter()
	case "CR":
		return CRDelimiter()
	case "LF":
		return LFDelimiter()
	case "CRLF":
		return CRLFDelimiter()
	default:
		return LiteralDelimiter([]byte(s))
	}
}

// Terminator identifies which delimiter variant actually closed a segment.
type Terminator uint8

const (
	TerminatorNone Terminator = iota // stream ended with no trailing delimiter
	TerminatorLF
	TerminatorCR
	TerminatorCRLF
	TerminatorNUL
	TerminatorLiteral
)
