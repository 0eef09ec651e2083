// Package tstamp parses and formats record timestamps.
//
// [Parser.Parse] tries a configurable, ordered chain of matchers — RFC-3339,
// syslog-style, Unix epoch at several magnitudes, and an optional
// strftime-style custom template — and returns an [Instant] that retains
// enough of the source precision to format independently of how it was
// parsed, per SPEC_FULL §4.6: parsing and display formatting are
// decoupled, so a record parsed from an epoch-millisecond integer can
// still be displayed in a configured timezone and template without
// re-parsing.
package tstamp
