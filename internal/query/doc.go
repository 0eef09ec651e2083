// Package query implements hl's filter/query evaluator (SPEC_FULL §4.5,
// C5): the `-f key=value` filter surface and the `-q` expression language.
package query
