package input

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hlview/hl/internal/merge"
	"github.com/hlview/hl/internal/record"
)

// RotationPollInterval bounds how often the tailer re-stats its file to
// notice rotation when no fsnotify event arrives (belt-and-suspenders for
// filesystems/editors that don't emit rename events reliably).
const RotationPollInterval = 500 * time.Millisecond

// Tailer follows a single file with rotation detection: when the path
// names a different file than the open one (rename-and-recreate) or the
// file is smaller than at the previous poll (truncate), it finishes
// pending bytes, closes the handle, and reopens the path. Growth of the
// same file is not treated as rotation; the new bytes are read from the
// open handle.
type Tailer struct {
	Path        string
	Delim       Delimiter
	MaxSize     int
	ParseConfig record.Config
	SourceIndex int
	Tail        int // pre-load the last N records at startup

	watcher *fsnotify.Watcher
}

// NewTailer builds a Tailer watching path with fsnotify, grounded on the
// rotation-aware tailing pattern used across the retrieval pack's log
// shippers (DESIGN.md).
func NewTailer(path string, delim Delimiter, maxSize int, cfg record.Config, sourceIndex, tail int) (*Tailer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	_ = w.Add(path)

	return &Tailer{
		Path:        path,
		Delim:       delim,
		MaxSize:     maxSize,
		ParseConfig: cfg,
		SourceIndex: sourceIndex,
		Tail:        tail,
		watcher:     w,
	}, nil
}

// Run reads path continuously, sending parsed records to out until ctx is
// cancelled, then closes out's channel role by sending nothing further
// (the caller owns the channel and notices via ctx).
func (t *Tailer) Run(ctx context.Context, out chan<- merge.Message) {
	defer t.watcher.Close()

	f, info, err := t.openAtStart()
	if err != nil {
		select {
		case out <- merge.Message{Index: t.SourceIndex, Err: err}:
		case <-ctx.Done():
		}

		return
	}

	defer f.Close()

	seg, err := NewSegmenter(ctx, f, t.Delim, t.MaxSize)
	if err != nil {
		select {
		case out <- merge.Message{Index: t.SourceIndex, Err: err}:
		case <-ctx.Done():
		}

		return
	}

	ticker := time.NewTicker(RotationPollInterval)
	defer ticker.Stop()

	lastInfo := info

	for {
		select {
		case <-ctx.Done():
			return

		case <-t.watcher.Events:
			t.drainSegments(ctx, seg, out)

		case <-ticker.C:
			t.drainSegments(ctx, seg, out)

			rotated, newInfo := t.checkRotation(lastInfo)
			if !rotated {
				lastInfo = newInfo

				continue
			}

			lastInfo = newInfo

			seg.Close()
			f.Close()

			nf, ni, err := t.reopen()
			if err != nil {
				continue
			}

			f = nf
			lastInfo = ni

			seg, err = NewSegmenter(ctx, f, t.Delim, t.MaxSize)
			if err != nil {
				return
			}

			_ = t.watcher.Add(t.Path)
		}
	}
}

// drainSegments reads every currently-available segment from seg without
// blocking past EOF, parses each, and sends it to out.
func (t *Tailer) drainSegments(ctx context.Context, seg *Segmenter, out chan<- merge.Message) {
	for {
		s, err := seg.Next()
		if err != nil && !errors.Is(err, ErrMessageTooLarge) {
			return // EOF: caught up, wait for the next wake-up.
		}

		rec, _ := record.Parse(s.Bytes, t.ParseConfig, record.InputBadge{Name: t.Path, SourceIndex: t.SourceIndex})

		select {
		case out <- merge.Message{Index: t.SourceIndex, Rec: rec}:
		case <-ctx.Done():
			return
		}
	}
}

// checkRotation reports a rotation when the path now names a different
// file than last, or a file smaller than last.
func (t *Tailer) checkRotation(last os.FileInfo) (rotated bool, current os.FileInfo) {
	info, err := os.Stat(t.Path)
	if err != nil {
		// Prolonged EOF with no stat-able file; treated as no rotation
		// yet, the loop keeps polling until the path reappears.
		return false, last
	}

	if !os.SameFile(info, last) {
		return true, info
	}

	if info.Size() < last.Size() {
		return true, info
	}

	return false, info
}

func (t *Tailer) reopen() (*os.File, os.FileInfo, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, nil, err
	}

	return f, info, nil
}

// openAtStart opens the file and, if Tail > 0, pre-loads the last Tail
// records by seeking back from EOF (SPEC_FULL §6 --tail N).
func (t *Tailer) openAtStart() (*os.File, os.FileInfo, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, nil, err
	}

	if t.Tail > 0 {
		if off, ok := seekBackLines(f, info.Size(), t.Tail); ok {
			if _, err := f.Seek(off, io.SeekStart); err != nil {
				f.Close()

				return nil, nil, err
			}

			return f, info, nil
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()

		return nil, nil, err
	}

	return f, info, nil
}

// seekBackLines scans backward from the end of a file of the given size
// for the offset preceding the last n newline-terminated lines. This is a
// byte-oriented approximation (LF-delimited) used only to implement
// --tail's pre-load; it is independent of the configured delimiter, which
// remains authoritative for the actual segmentation that follows.
func seekBackLines(f *os.File, size int64, n int) (int64, bool) {
	const chunkSize = 64 * 1024

	var (
		pos      = size
		newlines int
		buf      = make([]byte, chunkSize)
	)

	for pos > 0 && newlines <= n {
		readSize := int64(chunkSize)
		if pos < readSize {
			readSize = pos
		}

		pos -= readSize

		nread, err := f.ReadAt(buf[:readSize], pos)
		if err != nil && nread == 0 {
			return 0, false
		}

		for i := nread - 1; i >= 0; i-- {
			if buf[i] == '\n' {
				newlines++
				if newlines > n {
					return pos + int64(i) + 1, true
				}
			}
		}
	}

	if pos == 0 {
		return 0, true
	}

	return 0, false
}
