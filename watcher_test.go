package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylesnowschwartz/tail-tools/parser"
)

func recv(t *testing.T, w *transcriptWatcher) tailUpdateMsg {
	t.Helper()
	select {
	case u := <-w.sub:
		return u
	default:
		require.FailNow(t, "no update sent")
		return tailUpdateMsg{}
	}
}

func TestWatcher_ReadAndRebuild(t *testing.T) {
	path := writeTranscript(t, "")
	w := newTranscriptWatcher(path, nil, 0, nil)

	require.NoError(t, os.WriteFile(path, []byte(sampleTranscript), 0o644))
	w.readAndRebuild()
	u := recv(t, w)
	require.Len(t, u.messages, 5)
	assert.False(t, u.at.IsZero())

	res, ok := u.messages[idxResult].(parser.ResultMsg)
	require.True(t, ok)
	assert.Equal(t, "search", res.Result.Name)

	// Nothing new: no update.
	w.readAndRebuild()
	assert.Empty(t, w.sub)
}

func TestWatcher_PartialLine(t *testing.T) {
	path := writeTranscript(t, `{"type":"human","content":"one"}`+"\n"+`{"type":"human",`)
	w := newTranscriptWatcher(path, nil, 0, nil)

	w.readAndRebuild()
	require.Len(t, recv(t, w).messages, 1)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString(`"content":"two"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	w.readAndRebuild()
	assert.Len(t, recv(t, w).messages, 2)
}

func TestWatcher_Truncated(t *testing.T) {
	path := writeTranscript(t, sampleTranscript)
	w := newTranscriptWatcher(path, nil, 0, nil)
	w.readAndRebuild()
	recv(t, w)

	require.NoError(t, os.WriteFile(path, []byte(`{"type":"human","content":"fresh"}`+"\n"), 0o644))
	w.readAndRebuild()
	u := recv(t, w)
	require.Len(t, u.messages, 1)
	assert.Equal(t, "fresh", u.messages[0].(parser.TextMsg).Text)
}

func TestWatcher_MissingFile(t *testing.T) {
	w := newTranscriptWatcher(writeTranscript(t, "")+".gone", nil, 0, nil)
	w.readAndRebuild()
	assert.Empty(t, w.sub)
	select {
	case err := <-w.errc:
		assert.ErrorIs(t, err, os.ErrNotExist)
	default:
		t.Fatal("no error reported")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := newTranscriptWatcher(writeTranscript(t, ""), nil, 0, nil)
	w.stop()
	w.stop()
}

func TestWaitForTailUpdate_Closed(t *testing.T) {
	sub := make(chan tailUpdateMsg)
	close(sub)
	assert.Nil(t, waitForTailUpdate(sub)())

	errc := make(chan error)
	close(errc)
	assert.Nil(t, waitForWatcherErr(errc)())
}
