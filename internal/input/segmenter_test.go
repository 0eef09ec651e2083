package input

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectSegments(t *testing.T, s *Segmenter) ([]string, []error) {
	t.Helper()

	var texts []string

	var errs []error

	for {
		seg, err := s.Next()
		if err == io.EOF {
			break
		}

		if err != nil && err != ErrMessageTooLarge {
			errs = append(errs, err)

			break
		}

		texts = append(texts, string(seg.Bytes))

		if err == ErrMessageTooLarge {
			errs = append(errs, err)
		}
	}

	return texts, errs
}

func TestSegmenterLF(t *testing.T) {
	s, err := NewSegmenter(context.Background(), strings.NewReader("a\nbb\nccc\n"), LFDelimiter(), 1024)
	require.NoError(t, err)

	texts, errs := collectSegments(t, s)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"a", "bb", "ccc"}, texts)
}

func TestSegmenterAutoDiscardsCRBeforeLF(t *testing.T) {
	s, err := NewSegmenter(context.Background(), strings.NewReader("a\r\nb\rc\n"), AutoDelimiter(), 1024)
	require.NoError(t, err)

	texts, errs := collectSegments(t, s)
	assert.Empty(t, errs)
	// "a" terminated by \r\n (CR discarded); "b\rc" terminated by LF,
	// the bare CR inside stays as content.
	assert.Equal(t, []string{"a", "b\rc"}, texts)
}

func TestSegmenterCRLFExactOrphansAreContent(t *testing.T) {
	s, err := NewSegmenter(context.Background(), strings.NewReader("a\rb\nc\r\n"), CRLFDelimiter(), 1024)
	require.NoError(t, err)

	texts, errs := collectSegments(t, s)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"a\rb\nc"}, texts)
}

func TestSegmenterMessageTooLargeResyncs(t *testing.T) {
	big := strings.Repeat("x", 10)
	input := big + "\nok\n"

	s, err := NewSegmenter(context.Background(), strings.NewReader(input), LFDelimiter(), 4)
	require.NoError(t, err)

	seg1, err1 := s.Next()
	assert.ErrorIs(t, err1, ErrMessageTooLarge)
	assert.Len(t, seg1.Bytes, 4)

	seg2, err2 := s.Next()
	require.NoError(t, err2)
	assert.Equal(t, "ok", string(seg2.Bytes))
}

func TestSegmenterEmptySegments(t *testing.T) {
	s, err := NewSegmenter(context.Background(), strings.NewReader("\n\na\n"), LFDelimiter(), 1024)
	require.NoError(t, err)

	texts, errs := collectSegments(t, s)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"", "", "a"}, texts)
}

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, CodecGzip, DetectCompression([]byte{0x1f, 0x8b, 0x08}))
	assert.Equal(t, CodecBzip2, DetectCompression([]byte("BZh9")))
	assert.Equal(t, CodecZstd, DetectCompression([]byte{0x28, 0xb5, 0x2f, 0xfd}))
	assert.Equal(t, CodecNone, DetectCompression([]byte("{\"a\":1}")))
}

func TestOpenStreamPassthrough(t *testing.T) {
	r, codec, err := OpenStream(bytes.NewBufferString("plain text"))
	require.NoError(t, err)
	assert.Equal(t, CodecNone, codec)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(data))
}
