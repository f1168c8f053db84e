/*
File    : yalc/mixal/emitter.go
Package : mixal
*/

package mixal

import (
	"bufio"
	"io"
	"os"
)

// Emitter accepts a stream of Instructions and is responsible for
// persisting them somewhere. codegen never touches a file handle
// directly, which is what lets its tests run against an in-memory
// Emitter instead of the filesystem.
type Emitter interface {
	Emit(Instruction)
	Close() error
}

// WriterEmitter writes each Instruction's rendered line to an
// underlying io.Writer, buffered and flushed on Close. This is the
// concrete Emitter used both by FileEmitter and directly by tests
// (over a bytes.Buffer).
type WriterEmitter struct {
	w      *bufio.Writer
	closer io.Closer
	err    error
}

// NewWriterEmitter wraps w. If w also implements io.Closer, Close will
// close it after flushing.
func NewWriterEmitter(w io.Writer) *WriterEmitter {
	closer, _ := w.(io.Closer)
	return &WriterEmitter{w: bufio.NewWriter(w), closer: closer}
}

// Emit appends one instruction line. Write errors are sticky and
// surfaced by Close rather than returned per call, treating I/O failure
// as fatal rather than something each instruction needs to check.
func (e *WriterEmitter) Emit(instr Instruction) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(instr.String())
}

// Close flushes buffered output and closes the underlying writer, if
// closeable. Any error recorded during Emit takes priority.
func (e *WriterEmitter) Close() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		return err
	}
	if e.closer != nil {
		return e.closer.Close()
	}
	return nil
}

// FileEmitter is a WriterEmitter backed by a truncated, newly-created
// file: the generator's exclusive output resource.
type FileEmitter struct {
	*WriterEmitter
}

// NewFileEmitter creates (truncating) the file at path and returns an
// Emitter writing to it.
func NewFileEmitter(path string) (*FileEmitter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileEmitter{WriterEmitter: NewWriterEmitter(f)}, nil
}
