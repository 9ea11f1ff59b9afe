package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	s, err := NewFile(path)
	require.NoError(t, err)

	_, err = s.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestFileSink_FlushMakesDataVisible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	s, err := NewFile(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Write([]byte("header\n"))
	require.NoError(t, err)
	require.NoError(t, s.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "header\n", string(data))
}

func TestFileSink_BadPath(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
}

func TestStreamSink_NonTerminalIsBuffered(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stream")
	require.NoError(t, err)
	defer f.Close()

	// A regular file is not a terminal, so the sink buffers
	s := NewStream(f)
	_, err = s.Write([]byte("buffered\n"))
	require.NoError(t, err)

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "small write should still be in the buffer")

	require.NoError(t, s.Flush())
	info, err = f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(len("buffered\n")), info.Size())
}

func TestStreamSink_CloseFlushesButKeepsStreamOpen(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stream")
	require.NoError(t, err)
	defer f.Close()

	s := NewStream(f)
	_, err = s.Write([]byte("x\n"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// The underlying stream is still usable after Close
	_, err = f.WriteString("y\n")
	assert.NoError(t, err)

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", string(data))
}
