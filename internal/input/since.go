package input

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/hlview/hl/internal/merge"
	"github.com/hlview/hl/internal/record"
)

// SampleStride is the approximate byte interval between samples taken
// while building a [merge.ChunkIndex] for --since fast-forwarding.
const SampleStride = 256 << 10

// OpenFileSourceSince behaves exactly like [OpenFileSource], except that
// for an uncompressed regular file with a non-zero since bound it first
// makes a cheap pass sampling timestamps at [SampleStride] intervals to
// build a [merge.ChunkIndex] (SPEC_FULL §4.7 "skip whole chunks... without
// parsing them"), then seeks past any prefix the index proves entirely
// precedes since before handing the file to the real segmenter. Stdin, a
// zero since, and any file whose leading bytes indicate compression all
// fall back to [OpenFileSource] unchanged, since the optimization only
// pays for itself on a plain, seekable byte stream.
func OpenFileSourceSince(
	ctx context.Context, path string, sourceIndex int, delim Delimiter, maxSize int, cfg record.Config, since time.Time,
) (*Source, error) {
	if path == StdinSentinel || since.IsZero() {
		return OpenFileSource(ctx, path, sourceIndex, delim, maxSize, cfg)
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return OpenFileSource(ctx, path, sourceIndex, delim, maxSize, cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	peek := make([]byte, 6)

	n, _ := io.ReadFull(f, peek)
	if DetectCompression(peek[:n]) != CodecNone {
		if cerr := f.Close(); cerr != nil {
			return nil, cerr
		}

		return OpenFileSource(ctx, path, sourceIndex, delim, maxSize, cfg)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()

		return nil, err
	}

	idx := sampleChunkIndex(f, cfg)

	seekTo, ok := idx.SeekOffset(since)
	if !ok {
		seekTo = 0
	}

	if _, err := f.Seek(seekTo, io.SeekStart); err != nil {
		f.Close()

		return nil, err
	}

	seg, err := NewSegmenter(ctx, f, delim, maxSize)
	if err != nil {
		f.Close()

		return nil, err
	}

	return &Source{Name: path, SourceIndex: sourceIndex, closer: f, seg: seg, cfg: cfg}, nil
}

// sampleChunkIndex scans f's lines, parsing just enough of each one
// sampled roughly every [SampleStride] bytes to resolve a timestamp, and
// returns the resulting index. It leaves f's position at EOF; callers
// reseek before handing f to the real segmenter. Scanning is
// newline-oriented regardless of the configured delimiter, the same
// approximation [seekBackLines] makes for --tail: both are best-effort
// pre-read passes, not the authoritative segmentation.
func sampleChunkIndex(f *os.File, cfg record.Config) *merge.ChunkIndex {
	var samples []merge.ChunkSample

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	var offset, nextAt int64

	for sc.Scan() {
		line := sc.Bytes()

		if offset >= nextAt {
			if rec, _ := record.Parse(line, cfg, record.InputBadge{}); rec.Instant != nil {
				samples = append(samples, merge.ChunkSample{Offset: offset, Instant: rec.Instant.Time()})
				nextAt = offset + SampleStride
			}
		}

		offset += int64(len(line)) + 1
	}

	return merge.NewChunkIndex(samples)
}
