package record

import "strings"

// Level is hl's semantic log level, ordered Trace < Debug < Info < Warn <
// Error per SPEC_FULL §3.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the canonical lowercase name of l.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// syslogPriority maps RFC 5424 severities 0-7 onto hl's five-level scale;
// emergency/alert/critical all collapse to error, and notice collapses to
// info, since hl has no variants for them.
var syslogPriority = [8]Level{
	LevelError, // 0 emergency
	LevelError, // 1 alert
	LevelError, // 2 critical
	LevelError, // 3 error
	LevelWarn,  // 4 warning
	LevelInfo,  // 5 notice
	LevelInfo,  // 6 informational
	LevelDebug, // 7 debug
}

// ParseLevel maps a semantic value to a [Level], accepting the aliases
// named in SPEC_FULL §3: case-insensitive names, "warning" as an alias for
// warn, and small integers as syslog priorities. ok is false if s names no
// known level.
func ParseLevel(v Value) (Level, bool) {
	if s, ok := v.AsString(); ok {
		if lvl, ok := parseLevelName(s); ok {
			return lvl, true
		}
	}

	if n, ok := v.AsFloat(); ok {
		i := int(n)
		if float64(i) == n && i >= 0 && i < len(syslogPriority) {
			return syslogPriority[i], true
		}
	}

	return 0, false
}

func parseLevelName(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "trace", "trc", "t":
		return LevelTrace, true
	case "debug", "dbg", "d":
		return LevelDebug, true
	case "info", "inf", "i":
		return LevelInfo, true
	case "warn", "warning", "wrn", "w":
		return LevelWarn, true
	case "error", "err", "e", "fatal", "panic":
		return LevelError, true
	default:
		return 0, false
	}
}
