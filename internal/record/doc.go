// Package record defines hl's parsed-log data model and the JSON/logfmt
// decoders that populate it.
//
// A [Record] carries the raw segment bytes alongside a [Value] tree decoded
// from them (when the segment parses as JSON or logfmt) and a [Semantic]
// set of well-known fields (time, level, message, caller, logger) resolved
// from configurable candidate names. [Value] is a closed sum type rather
// than an interface{} tree: duplicate object keys are preserved in document
// order (not collapsed, as a Go map would), and string values borrow from
// the originating segment buffer whenever no escape decoding is required.
package record
