package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/muesli/cancelreader"
)

// Segment is one record's raw bytes plus its byte offset in the source
// and the delimiter variant that closed it (SPEC_FULL §4.1 contract:
// "segment(stream, delimiter, max_size) -> iterator of (bytes,
// source_offset, terminator_kind)").
type Segment struct {
	Bytes      []byte
	Offset     int64
	Terminator Terminator
}

// ErrMessageTooLarge reports a segment exceeding MaxSize (SPEC_FULL §7):
// non-fatal, the segmenter resynchronizes at the next delimiter and
// continues (§4.1).
var ErrMessageTooLarge = errors.New("message exceeds max_message_size")

// DefaultMaxMessageSize is SPEC_FULL §3's default `max_message_size`.
const DefaultMaxMessageSize = 64 << 20

// Segmenter splits a byte stream into [Segment]s on a configured
// [Delimiter], bounded to one buffer of size MaxSize plus one look-ahead
// byte for CR handling (SPEC_FULL §4.1). Reads are wrapped in
// github.com/muesli/cancelreader so a blocking read can be interrupted by
// context cancellation without leaking the underlying file descriptor —
// the C1 suspension point §5 requires for follow mode.
type Segmenter struct {
	br      *bufio.Reader
	cr      cancelreader.CancelReader
	delim   Delimiter
	maxSize int
	offset  int64
}

// NewSegmenter wraps r for cancellable, bounded segmentation. Cancelling
// ctx interrupts a blocking Next call.
func NewSegmenter(ctx context.Context, r io.Reader, delim Delimiter, maxSize int) (*Segmenter, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxMessageSize
	}

	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("wrapping input reader: %w", err)
	}

	go func() {
		<-ctx.Done()
		cr.Cancel()
	}()

	return &Segmenter{
		br:      bufio.NewReader(cr),
		cr:      cr,
		delim:   delim,
		maxSize: maxSize,
	}, nil
}

// Close releases the underlying cancel reader.
func (s *Segmenter) Close() error { return s.cr.Close() }

// Next returns the next segment. It returns io.EOF once the stream is
// exhausted with no further content. A segment exceeding MaxSize is
// still returned (truncated to MaxSize bytes) alongside
// [ErrMessageTooLarge]; iteration continues normally on the next call.
func (s *Segmenter) Next() (Segment, error) {
	switch s.delim.Mode {
	case DelimLF:
		return s.scanSingleByte('\n', TerminatorLF)
	case DelimCR:
		return s.scanSingleByte('\r', TerminatorCR)
	case DelimNUL:
		return s.scanSingleByte(0, TerminatorNUL)
	case DelimCRLF:
		return s.scanCRLFExact()
	case DelimLiteral:
		return s.scanLiteral(s.delim.Literal)
	default:
		return s.scanAuto()
	}
}

// scanSingleByte is the core loop for the single-byte terminator modes
// (LF, CR, NUL): accumulate bytes until delim is seen or EOF, bounding
// accumulation at maxSize and reporting overflow once exceeded.
func (s *Segmenter) scanSingleByte(delim byte, term Terminator) (Segment, error) {
	start := s.offset

	var content []byte

	overflow := false

	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return s.finish(start, content, overflow, TerminatorNone, err)
		}

		s.offset++

		if b == delim {
			return s.finish(start, content, overflow, term, nil)
		}

		content, overflow = appendBounded(content, b, s.maxSize, overflow)
	}
}

// scanCRLFExact implements DelimCRLF: only the exact "\r\n" sequence
// terminates; an orphan CR or LF is content (SPEC_FULL §4.1).
func (s *Segmenter) scanCRLFExact() (Segment, error) {
	start := s.offset

	var content []byte

	overflow := false

	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return s.finish(start, content, overflow, TerminatorNone, err)
		}

		s.offset++

		if b != '\r' {
			content, overflow = appendBounded(content, b, s.maxSize, overflow)

			continue
		}

		next, err := s.br.Peek(1)
		if err == nil && len(next) == 1 && next[0] == '\n' {
			_, _ = s.br.ReadByte() // consume the LF
			s.offset++

			return s.finish(start, content, overflow, TerminatorCRLF, nil)
		}

		content, overflow = appendBounded(content, b, s.maxSize, overflow)
	}
}

// scanAuto implements DelimAuto (SPEC_FULL §4.1): LF is canonical; a CR
// immediately preceding an LF is discarded; a bare CR does not terminate
// and is content. The look-ahead is exactly one byte via Peek, matching
// the bounded-memory invariant of §4.1.
func (s *Segmenter) scanAuto() (Segment, error) {
	start := s.offset

	var content []byte

	overflow := false

	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return s.finish(start, content, overflow, TerminatorNone, err)
		}

		s.offset++

		if b == '\n' {
			return s.finish(start, content, overflow, TerminatorLF, nil)
		}

		if b != '\r' {
			content, overflow = appendBounded(content, b, s.maxSize, overflow)

			continue
		}

		// b == '\r': look ahead one byte to decide whether it precedes
		// an LF (discarded) or stands alone (content).
		next, peekErr := s.br.Peek(1)
		if peekErr == nil && len(next) == 1 && next[0] == '\n' {
			_, _ = s.br.ReadByte() // consume the LF
			s.offset++

			return s.finish(start, content, overflow, TerminatorLF, nil)
		}

		content, overflow = appendBounded(content, b, s.maxSize, overflow)
	}
}

// scanLiteral implements DelimLiteral: the last len(lit) bytes read are
// kept in a small rolling window and compared with lit after each byte,
// so the delimiter is still found once the content has overflowed
// maxSize and the next segment starts right after it.
func (s *Segmenter) scanLiteral(lit []byte) (Segment, error) {
	start := s.offset

	if len(lit) == 0 {
		return s.scanSingleByte('\n', TerminatorLF)
	}

	var content, tail []byte

	overflow := false

	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return s.finish(start, content, overflow, TerminatorNone, err)
		}

		s.offset++

		content, overflow = appendBounded(content, b, s.maxSize, overflow)

		tail = append(tail, b)
		if len(tail) > len(lit) {
			tail = tail[1:]
		}

		if bytesEqual(tail, lit) {
			if !overflow {
				content = content[:len(content)-len(lit)]
			}

			return s.finish(start, content, overflow, TerminatorLiteral, nil)
		}
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// appendBounded appends b to content unless already overflowing maxSize,
// in which case the byte is discarded to keep memory bounded (SPEC_FULL
// §4.1 "Memory is bounded by one buffer of size ≤ max_size").
func appendBounded(content []byte, b byte, maxSize int, overflow bool) ([]byte, bool) {
	if overflow || len(content) >= maxSize {
		return content, true
	}

	return append(content, b), false
}

// finish builds the terminal Segment/error pair for a scan loop. readErr
// is the error from the last ReadByte call (nil on a found delimiter,
// io.EOF at end of stream).
func (s *Segmenter) finish(start int64, content []byte, overflow bool, term Terminator, readErr error) (Segment, error) {
	if readErr != nil && !errors.Is(readErr, io.EOF) {
		return Segment{}, readErr
	}

	if readErr != nil && len(content) == 0 && !overflow {
		return Segment{}, io.EOF
	}

	seg := Segment{Bytes: content, Offset: start, Terminator: term}

	if overflow {
		return seg, ErrMessageTooLarge
	}

	return seg, nil
}
