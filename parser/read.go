package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTruncated is returned by ReadIncremental when the file is now shorter
// than the offset it was asked to resume from. The caller should re-read
// from the start.
var ErrTruncated = errors.New("parser: transcript truncated")

// ReadTranscript reads a whole JSONL transcript and returns its messages with
// tool results linked to their calls. A final line without a newline is
// still parsed.
func ReadTranscript(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	msgs, _, err := readMessages(newLineReader(f, 0))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LinkResults(msgs), nil
}

// ReadIncremental reads the complete lines appended to path since offset.
// It returns the new messages and the offset to resume from next time. An
// unterminated last line is left for the next call. Results are not linked;
// callers link the accumulated list so calls from earlier reads count.
func ReadIncremental(path string, offset int64) ([]Message, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, offset, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, offset, err
	}
	if info.Size() < offset {
		return nil, offset, ErrTruncated
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, err
	}

	lr := newLineReader(f, offset)
	lr.complete = true
	return readMessages(lr)
}

// ReadAll is ReadTranscript over an arbitrary reader.
func ReadAll(r io.Reader) ([]Message, error) {
	msgs, _, err := readMessages(newLineReader(r, 0))
	if err != nil {
		return nil, err
	}
	return LinkResults(msgs), nil
}

func readMessages(lr *lineReader) ([]Message, int64, error) {
	var msgs []Message
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		entry, ok := ParseEntry(line)
		if !ok {
			continue
		}
		classified, ok := Classify(entry)
		if !ok {
			continue
		}
		msgs = append(msgs, classified...)
	}
	return msgs, lr.Offset(), lr.Err()
}

// LinkResults fills in the tool name of every result that only carries a
// tool_call_id, using the most recent earlier call with that id. The slice
// is updated in place and returned.
func LinkResults(msgs []Message) []Message {
	names := make(map[string]string)
	for i, m := range msgs {
		switch m := m.(type) {
		case CallMsg:
			if m.Call.ID != "" {
				names[m.Call.ID] = m.Call.Name
			}
		case ResultMsg:
			if m.Result.Name != "" || m.Result.ToolCallID == "" {
				continue
			}
			if name, ok := names[m.Result.ToolCallID]; ok {
				m.Result.Name = name
				msgs[i] = m
			}
		}
	}
	return msgs
}
