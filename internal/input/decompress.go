package input

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Codec identifies a detected compression format (SPEC_FULL §4.2).
type Codec uint8

const (
	CodecNone Codec = iota
	CodecGzip
	CodecBzip2
	CodecXz
	CodecZstd
)

// magic bytes for each codec (SPEC_FULL §4.2): detection is by leading
// bytes, never by file extension.
var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte{0x42, 0x5a, 0x68}
	magicXz    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectCompression inspects peek's leading bytes and reports the codec,
// or [CodecNone] if the stream is uncompressed or the peek is too short
// to tell.
func DetectCompression(peek []byte) Codec {
	switch {
	case hasPrefix(peek, magicGzip):
		return CodecGzip
	case hasPrefix(peek, magicBzip2):
		return CodecBzip2
	case hasPrefix(peek, magicXz):
		return CodecXz
	case hasPrefix(peek, magicZstd):
		return CodecZstd
	default:
		return CodecNone
	}
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}

	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}

	return true
}

// DecompressError wraps a decode failure from a [Codec] with the byte
// position it occurred at, matching SPEC_FULL §7's
// InputError::Decompress(kind, position).
type DecompressError struct {
	Codec    Codec
	Position int64
	Err      error
}

func (e *DecompressError) Error() string {
	return fmt.Sprintf("decompress error at byte %d: %v", e.Position, e.Err)
}

func (e *DecompressError) Unwrap() error { return e.Err }

// OpenStream peeks r's leading bytes, detects compression, and returns a
// reader that streams decompressed (or, for [CodecNone], passed-through)
// content. Decompression never buffers the whole input (SPEC_FULL §4.2
// "Decompression is streamed; no whole-file buffering").
func OpenStream(r io.Reader) (io.Reader, Codec, error) {
	br := bufio.NewReaderSize(r, 512)

	peek, _ := br.Peek(6)
	codec := DetectCompression(peek)

	switch codec {
	case CodecGzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, codec, &DecompressError{Codec: codec, Err: err}
		}

		return gr, codec, nil

	case CodecBzip2:
		return bzip2.NewReader(br), codec, nil

	case CodecXz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, codec, &DecompressError{Codec: codec, Err: err}
		}

		return xr, codec, nil

	case CodecZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, codec, &DecompressError{Codec: codec, Err: err}
		}

		return zr.IOReadCloser(), codec, nil

	default:
		return br, CodecNone, nil
	}
}
