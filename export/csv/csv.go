// Package csv is the default record sink: one delimited line per record.
package csv

import (
	"bufio"
	"encoding/csv"
	"io"

	"github.com/darianmavgo/mkcsv/export"
	"github.com/darianmavgo/mkcsv/export/common"
)

func init() {
	export.Register("csv", &csvDriver{})
}

type csvDriver struct{}

func (d *csvDriver) Open(w io.Writer, config *common.ExportConfig) (common.RecordWriter, error) {
	return NewWriter(w, config), nil
}

// Writer writes records as delimited lines.
type Writer struct {
	bw *bufio.Writer
	cw *csv.Writer
}

var _ common.RecordWriter = (*Writer)(nil)

// NewWriter creates a csv record sink on w, honoring config.Delimiter.
func NewWriter(w io.Writer, config *common.ExportConfig) *Writer {
	bw := bufio.NewWriterSize(w, 65536)
	cw := csv.NewWriter(bw)
	if config != nil && config.Delimiter != 0 {
		cw.Comma = config.Delimiter
	}
	return &Writer{bw: bw, cw: cw}
}

// WriteRecord implements common.RecordWriter.
func (w *Writer) WriteRecord(fields []string) error {
	return w.cw.Write(fields)
}

// Close flushes buffered output.
func (w *Writer) Close() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return err
	}
	return w.bw.Flush()
}
