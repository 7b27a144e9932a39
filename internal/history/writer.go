// Package history persists derived entities. Each sink is the terminal
// triple of its stream: a keyed store, a listener feeding it, and a text
// writer appending one timestamped record per event.
package history

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/yanun0323/errors"
)

const timeLayout = "2006-01-02 15:04:05"

// Writer appends timestamped records to a text log. Records are labelled
// fields joined by " , " after the timestamp.
type Writer struct {
	file  *os.File
	buf   *bufio.Writer
	clock func() time.Time
}

// NewWriter truncates or creates the log file. A non-empty header is
// written as the first line.
func NewWriter(path, header string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create output file")
	}
	w := &Writer{
		file:  file,
		buf:   bufio.NewWriter(file),
		clock: time.Now,
	}
	if header != "" {
		if _, err := w.buf.WriteString(header + "\n"); err != nil {
			file.Close()
			return nil, errors.Wrap(err, "write header")
		}
	}
	return w, nil
}

// SetClock overrides the record timestamp source.
func (w *Writer) SetClock(clock func() time.Time) {
	w.clock = clock
}

// Write appends one record: timestamp, then each field, " , " separated.
func (w *Writer) Write(fields []string) error {
	var b strings.Builder
	b.WriteString(w.clock().Format(timeLayout))
	for _, field := range fields {
		b.WriteString(" , ")
		b.WriteString(field)
	}
	b.WriteByte('\n')
	if _, err := w.buf.WriteString(b.String()); err != nil {
		return errors.Wrap(err, "append record")
	}
	return nil
}

// Close flushes and closes the log file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return errors.Wrap(err, "flush output file")
	}
	if err := w.file.Close(); err != nil {
		return errors.Wrap(err, "close output file")
	}
	return nil
}
