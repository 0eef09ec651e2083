// Package merge implements hl's k-way chronological merger and follower
// (SPEC_FULL §4.7, C7): batch sort-mode merge across bounded sources, and
// long-running follow mode with a sliding sync window and rotation
// detection.
package merge
