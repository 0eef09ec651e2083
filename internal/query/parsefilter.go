package query

import (
	"fmt"
	"strings"

	"github.com/hlview/hl/internal/fieldpath"
)

// ParseFilter parses one `-f` CLI argument of the form `key op value`,
// where op is one of `=`, `!=`, `~=`, `!~=`, optionally prefixed with `?`
// (as in `key?=value`) to set IncludeAbsent (SPEC_FULL §4.5 "?op
// prefix... as above OR path does not resolve"). A `?` at the start of
// the key sets IncludeAbsent as well.
func ParseFilter(arg string) (Filter, error) {
	key, op, includeAbsent, rest, err := splitFilterOp(arg)
	if err != nil {
		return Filter{}, err
	}

	path, err := fieldpath.Parse(key)
	if err != nil {
		return Filter{}, fmt.Errorf("parsing filter key %q: %w", key, err)
	}

	return Filter{Path: path, Op: op, Operand: rest, IncludeAbsent: includeAbsent}, nil
}

// splitFilterOp finds the operator within arg and splits it into key,
// operator, the "?" include-absent modifier, and the operand. Operators
// are tried longest-first so "!~=" isn't mistaken for "!=".
func splitFilterOp(arg string) (key string, op FilterOp, includeAbsent bool, operand string, err error) {
	type candidate struct {
		text string
		op   FilterOp
	}

	candidates := []candidate{
		{"!~=", FilterNotContains},
		{"!=", FilterNotEqual},
		{"~=", FilterContains},
		{"=", FilterEqual},
	}

	best := -1
	bestOp := FilterEqual
	bestLen := 0

	for _, c := range candidates {
		prefix := c.text

		idx := strings.Index(arg, prefix)
		if idx < 0 {
			continue
		}

		if best == -1 || idx < best || (idx == best && len(prefix) > bestLen) {
			best = idx
			bestOp = c.op
			bestLen = len(prefix)
		}
	}

	if best == -1 {
		return "", 0, false, "", fmt.Errorf("filter %q has no recognized operator", arg)
	}

	key = arg[:best]
	operand = arg[best+bestLen:]

	if strings.HasPrefix(key, "?") {
		includeAbsent = true
		key = key[1:]
	}

	if strings.HasSuffix(key, "?") {
		includeAbsent = true
		key = key[:len(key)-1]
	}

	return key, bestOp, includeAbsent, operand, nil
}
