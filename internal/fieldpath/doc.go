// Package fieldpath addresses fields within a [record.Value] tree by
// dotted/bracketed path, implementing the hierarchical/flat/mixed
// resolution rule of SPEC_FULL §4.4: a path like a.b.c matches equally a
// record shaped as nested objects, one shaped with literal dotted keys, or
// any mixture of the two. This is pure domain logic with no ambient
// concern to delegate to a library.
package fieldpath
