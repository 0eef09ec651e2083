package record

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ParseError reports a JSON or logfmt syntax error at a byte offset within
// the segment, per SPEC_FULL §4.3/§7 (JsonSyntax(offset), LogfmtSyntax(offset)).
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// jsonScanner is a hand-rolled SAX-style JSON decoder. It is written by
// hand rather than built on encoding/json because no stdlib or pack
// decoder exposes all three properties this needs at once: byte-offset
// error reporting, lazy (on-demand) escape decoding, and preservation of
// duplicate object keys in document order (encoding/json silently keeps
// only the last occurrence when decoding into a map).
type jsonScanner struct {
	buf []byte
	pos int
}

// ParseJSON decodes seg as a single JSON value. String values that contain
// no escape sequences borrow their bytes directly from seg; only escaped
// strings allocate a new buffer for the decoded form.
func ParseJSON(seg []byte) (Value, error) {
	s := &jsonScanner{buf: seg}

	s.skipWS()

	v, err := s.parseValue()
	if err != nil {
		return Value{}, err
	}

	s.skipWS()

	if s.pos != len(s.buf) {
		return Value{}, &ParseError{Offset: s.pos, Msg: "trailing data after JSON value"}
	}

	return v, nil
}

func (s *jsonScanner) errf(offset int, format string, args ...any) error {
	return &ParseError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (s *jsonScanner) skipWS() {
	for s.pos < len(s.buf) {
		switch s.buf[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *jsonScanner) parseValue() (Value, error) {
	if s.pos >= len(s.buf) {
		return Value{}, s.errf(s.pos, "unexpected end of input")
	}

	switch c := s.buf[s.pos]; {
	case c == '{':
		return s.parseObject()
	case c == '[':
		return s.parseArray()
	case c == '"':
		str, err := s.parseString()
		if err != nil {
			return Value{}, err
		}

		return String(str, true), nil
	case c == 't':
		return s.parseLiteral("true", Bool(true))
	case c == 'f':
		return s.parseLiteral("false", Bool(false))
	case c == 'n':
		return s.parseLiteral("null", Null())
	case c == '-' || (c >= '0' && c <= '9'):
		return s.parseNumber()
	default:
		return Value{}, s.errf(s.pos, "unexpected character %q", c)
	}
}

func (s *jsonScanner) parseLiteral(lit string, v Value) (Value, error) {
	start := s.pos
	if s.pos+len(lit) > len(s.buf) || string(s.buf[s.pos:s.pos+len(lit)]) != lit {
		return Value{}, s.errf(start, "invalid literal, expected %q", lit)
	}

	s.pos += len(lit)

	return v, nil
}

func (s *jsonScanner) parseObject() (Value, error) {
	start := s.pos
	s.pos++ // consume '{'
	s.skipWS()

	var members []Member

	if s.pos < len(s.buf) && s.buf[s.pos] == '}' {
		s.pos++

		return Object(members), nil
	}

	for {
		s.skipWS()

		if s.pos >= len(s.buf) || s.buf[s.pos] != '"' {
			return Value{}, s.errf(s.pos, "expected object key")
		}

		key, err := s.parseString()
		if err != nil {
			return Value{}, err
		}

		s.skipWS()

		if s.pos >= len(s.buf) || s.buf[s.pos] != ':' {
			return Value{}, s.errf(s.pos, "expected ':' after object key")
		}

		s.pos++ // consume ':'
		s.skipWS()

		val, err := s.parseValue()
		if err != nil {
			return Value{}, err
		}

		// Duplicate keys are preserved in document order (I-REC-1); no
		// dedup or overwrite happens here.
		members = append(members, Member{Key: key, Value: val})

		s.skipWS()

		if s.pos >= len(s.buf) {
			return Value{}, s.errf(s.pos, "unterminated object starting at %d", start)
		}

		switch s.buf[s.pos] {
		case ',':
			s.pos++
		case '}':
			s.pos++

			return Object(members), nil
		default:
			return Value{}, s.errf(s.pos, "expected ',' or '}' in object")
		}
	}
}

func (s *jsonScanner) parseArray() (Value, error) {
	start := s.pos
	s.pos++ // consume '['
	s.skipWS()

	var elems []Value

	if s.pos < len(s.buf) && s.buf[s.pos] == ']' {
		s.pos++

		return Array(elems), nil
	}

	for {
		s.skipWS()

		val, err := s.parseValue()
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, val)

		s.skipWS()

		if s.pos >= len(s.buf) {
			return Value{}, s.errf(s.pos, "unterminated array starting at %d", start)
		}

		switch s.buf[s.pos] {
		case ',':
			s.pos++
		case ']':
			s.pos++

			return Array(elems), nil
		default:
			return Value{}, s.errf(s.pos, "expected ',' or ']' in array")
		}
	}
}

// parseString decodes a JSON string starting at the current '"'. When the
// string contains no backslash escapes, the returned string borrows
// directly from s.buf; otherwise escapes are decoded into a fresh buffer.
func (s *jsonScanner) parseString() (string, error) {
	start := s.pos
	s.pos++ // consume opening quote

	hasEscape := false
	contentStart := s.pos

	for {
		if s.pos >= len(s.buf) {
			return "", s.errf(start, "unterminated string")
		}

		c := s.buf[s.pos]

		switch {
		case c == '"':
			end := s.pos
			s.pos++

			if !hasEscape {
				return string(s.buf[contentStart:end]), nil
			}

			return s.decodeEscaped(contentStart, end)
		case c == '\\':
			hasEscape = true
			s.pos += 2
		case c < 0x20:
			return "", s.errf(s.pos, "control character in string")
		default:
			s.pos++
		}
	}
}

// decodeEscaped lazily decodes the escape sequences within buf[from:to],
// invoked only once a string is known to contain at least one backslash.
func (s *jsonScanner) decodeEscaped(from, to int) (string, error) {
	out := make([]byte, 0, to-from)
	i := from

	for i < to {
		c := s.buf[i]
		if c != '\\' {
			out = append(out, c)
			i++

			continue
		}

		if i+1 >= to {
			return "", s.errf(i, "dangling escape")
		}

		esc := s.buf[i+1]

		switch esc {
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		case '/':
			out = append(out, '/')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			if i+6 > to {
				return "", s.errf(i, "short unicode escape")
			}

			r, err := parseHex4(s.buf[i+2 : i+6])
			if err != nil {
				return "", s.errf(i, "%s", err.Error())
			}

			i += 6

			if utf16IsHighSurrogate(r) && i+6 <= to && s.buf[i] == '\\' && s.buf[i+1] == 'u' {
				low, err := parseHex4(s.buf[i+2 : i+6])
				if err == nil && utf16IsLowSurrogate(low) {
					out = utf8.AppendRune(out, utf16DecodeSurrogatePair(r, low))
					i += 6

					continue
				}
			}

			out = appendRune(out, r)

			continue
		default:
			return "", s.errf(i, "invalid escape %q", esc)
		}

		i += 2
	}

	return string(out), nil
}

func (s *jsonScanner) parseNumber() (Value, error) {
	start := s.pos

	if s.pos < len(s.buf) && s.buf[s.pos] == '-' {
		s.pos++
	}

	for s.pos < len(s.buf) && isDigit(s.buf[s.pos]) {
		s.pos++
	}

	isFloat := false

	if s.pos < len(s.buf) && s.buf[s.pos] == '.' {
		isFloat = true
		s.pos++

		for s.pos < len(s.buf) && isDigit(s.buf[s.pos]) {
			s.pos++
		}
	}

	if s.pos < len(s.buf) && (s.buf[s.pos] == 'e' || s.buf[s.pos] == 'E') {
		isFloat = true
		s.pos++

		if s.pos < len(s.buf) && (s.buf[s.pos] == '+' || s.buf[s.pos] == '-') {
			s.pos++
		}

		for s.pos < len(s.buf) && isDigit(s.buf[s.pos]) {
			s.pos++
		}
	}

	lit := string(s.buf[start:s.pos])

	if !isFloat {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
		// Falls through to float on overflow.
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, s.errf(start, "invalid number %q", lit)
	}

	return Float(f), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseHex4(b []byte) (rune, error) {
	var r rune

	for _, c := range b {
		r <<= 4

		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, fmt.Errorf("invalid hex digit %q", c)
		}
	}

	return r, nil
}

func appendRune(b []byte, r rune) []byte {
	if r >= 0xD800 && r <= 0xDFFF {
		r = utf8.RuneError
	}

	return utf8.AppendRune(b, r)
}

func utf16IsHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func utf16IsLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }

func utf16DecodeSurrogatePair(hi, lo rune) rune {
	return 0x10000 + (hi-0xD800)<<10 + (lo - 0xDC00)
}
