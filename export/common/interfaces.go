package common

import "io"

// RecordWriter consumes one record at a time. The first record written is
// the header row. Close flushes whatever the sink buffered; records written
// before a failure stay in the sink.
type RecordWriter interface {
	WriteRecord(fields []string) error
	Close() error
}

// Driver defines the interface that must be implemented by a sink package.
type Driver interface {
	// Open returns a new RecordWriter targeting the given output stream.
	Open(w io.Writer, config *ExportConfig) (RecordWriter, error)
}
