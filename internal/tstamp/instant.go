package tstamp

import "time"

// Precision records how finely an [Instant] was parsed, so display
// formatting can truncate subsecond digits to match (SPEC_FULL §4.6,
// "%3N"/"%6N"/"%9N" templates).
type Precision uint8

const (
	PrecisionSecond Precision = iota
	PrecisionMilli
	PrecisionMicro
	PrecisionNano
)

// Instant is a parsed record timestamp, decoupled from how it will be
// displayed: [Format] applies a timezone and template independently of the
// matcher that produced it.
type Instant struct {
	t         time.Time
	precision Precision
}

// NewInstant wraps t with an explicit precision, for callers (such as
// tests) constructing instants directly rather than via [Parser.Parse].
func NewInstant(t time.Time, p Precision) Instant {
	return Instant{t: t, precision: p}
}

// Time returns the underlying [time.Time].
func (i Instant) Time() time.Time { return i.t }

// Precision returns the precision at which i was parsed.
func (i Instant) Precision() Precision { return i.precision }

// Before reports whether i occurs strictly before other.
func (i Instant) Before(other Instant) bool { return i.t.Before(other.t) }

// IsZero reports whether i holds the zero instant (no timestamp resolved).
func (i Instant) IsZero() bool { return i.t.IsZero() }
