// Package sink owns where formatted output goes: a plain writer, a TTY
// with color-capability negotiation, or a pager subprocess (SPEC_FULL
// §4.10, C10). It is the one place that knows about the terminal: TTY
// detection, color downgrading, and broken-pipe/exit-code mapping all
// live here so internal/format can stay a pure string renderer.
package sink
