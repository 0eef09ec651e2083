// Package input implements hl's segmenter and decompressor (SPEC_FULL
// §4.1/§4.2, C1/C2): delimiter-based record segmentation over optionally
// compressed byte streams, plus the follow-mode file tailer with rotation
// detection (SPEC_FULL §4.7).
package input
