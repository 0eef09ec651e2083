package record

import "strconv"

// logfmtScanner tokenizes space-separated key=value pairs. Its key
// scanning loop follows the same shape as github.com/go-logfmt/logfmt's
// ScanKeyval (promoted here from an indirect to a direct dependency
// elsewhere in the pager/format layers is not applicable here; this
// scanner is hand-written because logfmt.Decoder unescapes values using
// Go-string quoting rules, whereas SPEC_FULL §4.3 requires JSON-string
// quoting and display-only type inference that the upstream decoder does
// not perform).
type logfmtScanner struct {
	buf []byte
	pos int
}

// ParseLogfmt decodes seg as a logfmt record: space-separated key=value
// pairs. Keys match `[A-Za-z_][A-Za-z0-9._-]*`; quoted values follow the
// JSON string escape grammar; unquoted values are type-inferred for
// display only (the resulting Value.Quoted is false, and AsString/AsFloat
// still treat it as its original string per SPEC_FULL §4.3).
func ParseLogfmt(seg []byte) (Value, error) {
	s := &logfmtScanner{buf: seg}

	var members []Member

	for {
		s.skipSpaces()

		if s.pos >= len(s.buf) {
			break
		}

		keyStart := s.pos

		if !isLogfmtKeyStart(s.buf[s.pos]) {
			return Value{}, &ParseError{Offset: s.pos, Msg: "expected key"}
		}

		s.pos++

		for s.pos < len(s.buf) && isLogfmtKeyByte(s.buf[s.pos]) {
			s.pos++
		}

		key := string(s.buf[keyStart:s.pos])

		var val Value

		if s.pos < len(s.buf) && s.buf[s.pos] == '=' {
			s.pos++

			v, err := s.parseValue()
			if err != nil {
				return Value{}, err
			}

			val = v
		} else {
			// A bare key with no '=' is a present-but-empty value,
			// matching loggers that emit flags like `debug`.
			val = String("", false)
		}

		members = append(members, Member{Key: key, Value: val})
	}

	return Object(members), nil
}

func isLogfmtKeyStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isLogfmtKeyByte(c byte) bool {
	return isLogfmtKeyStart(c) || (c >= '0' && c <= '9') || c == '.' || c == '-'
}

func (s *logfmtScanner) skipSpaces() {
	for s.pos < len(s.buf) && s.buf[s.pos] == ' ' {
		s.pos++
	}
}

func (s *logfmtScanner) parseValue() (Value, error) {
	if s.pos < len(s.buf) && s.buf[s.pos] == '"' {
		js := &jsonScanner{buf: s.buf, pos: s.pos}

		str, err := js.parseString()
		if err != nil {
			return Value{}, err
		}

		s.pos = js.pos

		return String(str, true), nil
	}

	start := s.pos

	for s.pos < len(s.buf) && s.buf[s.pos] != ' ' {
		s.pos++
	}

	raw := string(s.buf[start:s.pos])

	return inferLogfmtType(raw), nil
}

// inferLogfmtType narrows an unquoted logfmt value to the best type for
// display (SPEC_FULL §4.3: "type inference is for display only"). The
// returned Value is always semantically KindString carrying raw verbatim
// (so filter/query comparisons via AsString/AsFloat see exactly the
// source text); Display is set to the inferred Kind for the formatter.
func inferLogfmtType(raw string) Value {
	v := String(raw, false)

	switch raw {
	case "true", "false":
		v.Display, v.HasDisplay = KindBool, true

		return v
	case "null":
		v.Display, v.HasDisplay = KindNull, true

		return v
	}

	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		v.Display, v.HasDisplay = KindInt, true

		return v
	}

	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		v.Display, v.HasDisplay = KindFloat, true

		return v
	}

	return v
}
