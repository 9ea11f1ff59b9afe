// Package sink selects and wraps the destination the converted output is
// written to: a named file behind a buffered writer, or a standard stream
// whose buffering depends on whether it is an interactive terminal.
package sink

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Sink is the output destination for a conversion run. Close flushes any
// buffered data and releases the destination; for standard streams it does
// not close the underlying file descriptor.
type Sink interface {
	io.Writer
	Flush() error
	Close() error
}

// fileSink writes to a created file through a block buffer.
type fileSink struct {
	file *os.File
	buf  *bufio.Writer
}

// NewFile creates (or truncates) the named file and returns a buffered sink
// over it.
func NewFile(path string) (Sink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &fileSink{file: file, buf: bufio.NewWriter(file)}, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

func (s *fileSink) Flush() error {
	return s.buf.Flush()
}

func (s *fileSink) Close() error {
	if err := s.buf.Flush(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// streamSink writes to an open stream, optionally through a block buffer.
type streamSink struct {
	w   io.Writer
	buf *bufio.Writer
}

// NewStream wraps an already-open stream such as stdout. When the stream is
// an interactive terminal, writes go straight through so the user sees each
// line as it is produced; otherwise a block buffer cuts the syscall count.
func NewStream(f *os.File) Sink {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return &streamSink{w: f}
	}
	buf := bufio.NewWriter(f)
	return &streamSink{w: buf, buf: buf}
}

func (s *streamSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *streamSink) Flush() error {
	if s.buf != nil {
		return s.buf.Flush()
	}
	return nil
}

func (s *streamSink) Close() error {
	// The caller owns the underlying stream
	return s.Flush()
}
