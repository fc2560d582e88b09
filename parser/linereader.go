package parser

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const (
	initialBufSize = 64 * 1024

	// maxLineSize caps a single JSONL line. Longer lines are skipped, not
	// fatal: one runaway tool output must not hide the rest of the file.
	maxLineSize = 64 * 1024 * 1024
)

// lineReader yields the non-blank lines of a JSONL stream and tracks the byte
// offset just past the last line it consumed. With complete set, a final line
// that has no terminating newline yet is left unread, so a tailing caller
// picks it up once the writer finishes it.
type lineReader struct {
	r        *bufio.Reader
	maxLen   int // 0 means maxLineSize
	complete bool
	buf      []byte
	offset   int64
	err      error
}

func newLineReader(r io.Reader, offset int64) *lineReader {
	return &lineReader{
		r:      bufio.NewReaderSize(r, initialBufSize),
		buf:    make([]byte, 0, initialBufSize),
		offset: offset,
	}
}

// next returns the next non-blank line without its line ending. The slice is
// only valid until the following call. At EOF or on a read failure it
// returns false; Err tells the two apart.
func (lr *lineReader) next() ([]byte, bool) {
	for {
		line, err := lr.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				lr.err = err
			}
			return nil, false
		}
		if len(line) > 0 {
			return line, true
		}
	}
}

// Err returns the first read error other than EOF.
func (lr *lineReader) Err() error {
	return lr.err
}

// Offset is the byte position just past the last consumed line.
func (lr *lineReader) Offset() int64 {
	return lr.offset
}

func (lr *lineReader) limit() int {
	if lr.maxLen > 0 {
		return lr.maxLen
	}
	return maxLineSize
}

// readLine reads up to and including the next '\n'. Oversized lines are
// drained and reported as empty.
func (lr *lineReader) readLine() ([]byte, error) {
	lr.buf = lr.buf[:0]
	start := lr.offset
	skipping := false

	for {
		chunk, err := lr.r.ReadSlice('\n')
		lr.offset += int64(len(chunk))

		if !skipping {
			lr.buf = append(lr.buf, chunk...)
			if len(bytes.TrimRight(lr.buf, "\r\n")) > lr.limit() {
				skipping = true
				lr.buf = lr.buf[:0]
			}
		}

		switch {
		case err == nil:
			if skipping {
				return nil, nil
			}
			return bytes.TrimRight(lr.buf, "\r\n"), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if lr.offset == start {
				return nil, io.EOF
			}
			// Unterminated final line.
			if lr.complete {
				lr.offset = start
				return nil, io.EOF
			}
			if skipping {
				return nil, nil
			}
			return bytes.TrimRight(lr.buf, "\r\n"), nil
		default:
			lr.offset = start
			return nil, err
		}
	}
}
