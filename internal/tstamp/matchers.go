package tstamp

import (
	"strconv"
	"strings"
	"time"
)

// Matcher attempts to parse s as a timestamp, returning ok=false to let
// [Parser.Parse] try the next matcher in the chain.
type Matcher func(s string, now time.Time) (Instant, bool)

// rfc3339Layouts covers RFC-3339/ISO-8601 with and without fractional
// seconds and with a 'Z' or numeric offset; time.RFC3339Nano already
// accepts a variable number of fractional digits, so one layout suffices
// for the numeric-offset form, plus one for space-separated dates some
// loggers emit.
var rfc3339Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// MatchRFC3339 parses RFC-3339/ISO-8601 timestamps with optional
// fractional seconds and timezone offset (SPEC_FULL §4.6).
func MatchRFC3339(s string, _ time.Time) (Instant, bool) {
	for _, layout := range rfc3339Layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Instant{t: t, precision: precisionOf(s)}, true
		}
	}

	return Instant{}, false
}

// syslogLayout is the classic BSD syslog timestamp, e.g. "Jan _2
// 15:04:05" (the leading weekday some loggers add is tolerated by trying
// both forms).
const syslogLayout = "Jan _2 15:04:05"

// MatchSyslog parses the syslog-style "Mon Jan _2 15:04:05" form, with the
// year inferred from now since syslog timestamps omit it (SPEC_FULL §4.6).
func MatchSyslog(s string, now time.Time) (Instant, bool) {
	candidate := s
	if len(s) > 4 && s[3] == ' ' {
		// Strip an optional leading three-letter weekday.
		if _, err := time.Parse("Mon", s[:3]); err == nil {
			candidate = s[4:]
		}
	}

	t, err := time.Parse(syslogLayout, candidate)
	if err != nil {
		return Instant{}, false
	}

	t = t.AddDate(now.Year(), 0, 0)
	if t.After(now.AddDate(0, 0, 1)) {
		t = t.AddDate(-1, 0, 0)
	}

	return Instant{t: t, precision: PrecisionSecond}, true
}

// Epoch magnitude boundaries used to disambiguate seconds/milliseconds/
// microseconds/nanoseconds by heuristic (SPEC_FULL §4.6). Each boundary is
// 2^34 seconds (about the year 2514) expressed in the unit it caps.
const (
	epochSecMax   = 1 << 34 // ~2514, well above any plausible log timestamp in seconds
	epochMilliMax = epochSecMax * 1000
	epochMicroMax = epochSecMax * 1000_000
)

// MatchEpoch parses a bare integer (optionally with a decimal fraction)
// as a Unix epoch value, inferring seconds/milliseconds/microseconds/
// nanoseconds from its magnitude.
func MatchEpoch(s string, _ time.Time) (Instant, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Instant{}, false
	}

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	intPart := digits
	fracPart := ""

	if dot := strings.IndexByte(digits, '.'); dot >= 0 {
		intPart = digits[:dot]
		fracPart = digits[dot+1:]
	}

	if intPart == "" || !isAllDigits(intPart) || (fracPart != "" && !isAllDigits(fracPart)) {
		return Instant{}, false
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Instant{}, false
	}

	if neg {
		n = -n
	}

	switch {
	case fracPart != "":
		sec, err := strconv.ParseFloat(intPart+"."+fracPart, 64)
		if err != nil {
			return Instant{}, false
		}

		whole := int64(sec)
		nsec := int64((sec - float64(whole)) * 1e9)

		return Instant{t: time.Unix(whole, nsec).UTC(), precision: PrecisionNano}, true
	case absInt64(n) < epochSecMax:
		return Instant{t: time.Unix(n, 0).UTC(), precision: PrecisionSecond}, true
	case absInt64(n) < epochMilliMax:
		return Instant{t: time.UnixMilli(n).UTC(), precision: PrecisionMilli}, true
	case absInt64(n) < epochMicroMax:
		return Instant{t: time.UnixMicro(n).UTC(), precision: PrecisionMicro}, true
	default:
		return Instant{t: time.Unix(0, n).UTC(), precision: PrecisionNano}, true
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}

// precisionOf inspects the number of fractional-second digits present in
// an RFC-3339-ish string literal to pick a display precision.
func precisionOf(s string) Precision {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return PrecisionSecond
	}

	n := 0
	for _, r := range s[dot+1:] {
		if r < '0' || r > '9' {
			break
		}

		n++
	}

	switch {
	case n >= 9:
		return PrecisionNano
	case n >= 6:
		return PrecisionMicro
	case n >= 3:
		return PrecisionMilli
	default:
		return PrecisionSecond
	}
}
