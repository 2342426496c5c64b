package taskcore

import (
	"fmt"
	"io"
	"sync"
)

// SuccessMarker is the terminal status record.
//
// Remarks:
//   - External automation checks captured output for this exact line. It is
//     defined in a single place so the emitting and the verifying side can
//     never disagree on the literal.
const SuccessMarker = "SELF_TEST_PASS"

// FormatProgress formats a progress record for a single task iteration.
func FormatProgress(name string, iteration int) string {
	return fmt.Sprintf("[%s] iteration %d", name, iteration)
}

// FormatCompletion formats the completion record of a task.
func FormatCompletion(name string) string {
	return fmt.Sprintf("[%s] done", name)
}

// RecordWriter emits records to the output stream.
type RecordWriter interface {
	// WriteRecord writes a single record, immediately visible to any
	// concurrent reader of the stream.
	WriteRecord(record string) error
}

// LineWriter writes each record as a whole line to the underlying writer.
//
// Remarks:
//   - Each record is written with a single Write call under a lock, so records
//     from concurrent workers never interleave within a line.
//   - The underlying writer should be unbuffered, no additional flushing is
//     performed.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineWriter is an initialization of LineWriter.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// WriteRecord writes a single record followed by a newline.
func (l *LineWriter) WriteRecord(record string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := io.WriteString(l.w, record+"\n")

	return err
}
