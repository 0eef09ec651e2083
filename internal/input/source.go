package input

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/hlview/hl/internal/merge"
	"github.com/hlview/hl/internal/record"
)

// StdinSentinel is the conventional "read stdin" file argument (SPEC_FULL
// §4.7 "a bare `-` argument, or no arguments at all, reads stdin").
const StdinSentinel = "-"

// Source reads one bounded, non-following input (a regular file, a
// decompressed stream, or stdin) as parsed records in source order,
// implementing [merge.Reader] for concatenation and batch sort mode
// (SPEC_FULL §4.7 "Batch merge (sort mode)"). It differs from [Tailer] in
// owning no goroutine and never blocking past EOF.
type Source struct {
	Name        string
	SourceIndex int

	closer io.Closer
	seg    *Segmenter
	cfg    record.Config

	// OnSegmentError, if set, is called for a non-fatal per-segment error
	// (an oversized message, or a JSON/logfmt syntax error demoting a
	// record to [record.RecordRaw]) before Next returns the record anyway
	// (SPEC_FULL §7: input errors are non-fatal per source).
	OnSegmentError func(err error)
}

// OpenFileSource opens path (or, when path is [StdinSentinel], stdin),
// detects and streams through any compression, and returns a ready
// [Source]. Cancelling ctx interrupts a blocking read.
func OpenFileSource(ctx context.Context, path string, sourceIndex int, delim Delimiter, maxSize int, cfg record.Config) (*Source, error) {
	var (
		f      io.Reader
		closer io.Closer
		name   string
	)

	if path == StdinSentinel {
		f = os.Stdin
		name = "stdin"
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		f = file
		closer = file
		name = path
	}

	stream, _, err := OpenStream(f)
	if err != nil {
		if closer != nil {
			closer.Close()
		}

		return nil, err
	}

	seg, err := NewSegmenter(ctx, stream, delim, maxSize)
	if err != nil {
		if closer != nil {
			closer.Close()
		}

		return nil, err
	}

	return &Source{Name: name, SourceIndex: sourceIndex, closer: closer, seg: seg, cfg: cfg}, nil
}

// Close releases the underlying file handle, if any (stdin is left open).
func (s *Source) Close() error {
	err := s.seg.Close()

	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}

	return err
}

// Next implements [merge.Reader]. A segment exceeding the configured
// maximum, or one that fails to parse as its detected format, is reported
// via OnSegmentError and still returned as a record (raw, for a parse
// failure) rather than aborting the source.
func (s *Source) Next() (*record.Record, error) {
	seg, err := s.seg.Next()

	switch {
	case err == nil:
	case errors.Is(err, ErrMessageTooLarge):
		if s.OnSegmentError != nil {
			s.OnSegmentError(err)
		}
	default:
		return nil, err
	}

	badge := record.InputBadge{Name: s.Name, SourceIndex: s.SourceIndex}

	rec, perr := record.Parse(seg.Bytes, s.cfg, badge)
	if perr != nil && s.OnSegmentError != nil {
		s.OnSegmentError(perr)
	}

	return rec, nil
}

// Run feeds s to out until it is exhausted, closed, or ctx is cancelled,
// the [Tailer]-shaped counterpart used for follow-mode sources that
// [Tailer] cannot watch: stdin, and any other non-regular file fsnotify
// cannot usefully rotate-detect on. Unlike Tailer, s never blocks past its
// own EOF; a reader fed by a live pipe simply keeps producing segments as
// bytes arrive.
func (s *Source) Run(ctx context.Context, out chan<- merge.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		rec, err := s.Next()
		if err != nil {
			select {
			case out <- merge.Message{Index: s.SourceIndex, Err: err}:
			case <-ctx.Done():
			}

			return
		}

		select {
		case out <- merge.Message{Index: s.SourceIndex, Rec: rec}:
		case <-ctx.Done():
			return
		}
	}
}
