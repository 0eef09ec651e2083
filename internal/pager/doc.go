// Package pager resolves which external pager command (if any) output
// should be piped through, and runs it (SPEC_FULL §4.11). A [ProfileSet]
// holds named profiles loaded from config; [Resolve] walks a candidate
// list — environment variables and `@name` profile references — in
// order, falling back to no pager (plain stdout) if every candidate is
// unusable.
package pager
