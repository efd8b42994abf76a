// Package html is a record sink that renders an HTML table, one <tr> per
// record with the header row as <th> cells.
package html

import (
	"bufio"
	"io"

	"github.com/darianmavgo/mkcsv/export"
	"github.com/darianmavgo/mkcsv/export/common"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func init() {
	export.Register("html", &htmlDriver{})
}

type htmlDriver struct{}

func (d *htmlDriver) Open(w io.Writer, config *common.ExportConfig) (common.RecordWriter, error) {
	return NewWriter(w), nil
}

// Writer streams records as table rows. Rendering goes through html.Node so
// field text is escaped for free.
type Writer struct {
	bw       *bufio.Writer
	wroteRow bool
	err      error
}

var _ common.RecordWriter = (*Writer)(nil)

// NewWriter creates an HTML table sink on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 65536)}
}

// WriteRecord implements common.RecordWriter. The first record becomes the
// header row.
func (w *Writer) WriteRecord(fields []string) error {
	if w.err != nil {
		return w.err
	}
	if !w.wroteRow {
		if _, err := w.bw.WriteString("<table>\n"); err != nil {
			w.err = err
			return err
		}
	}

	cellTag, cellAtom := "td", atom.Td
	if !w.wroteRow {
		cellTag, cellAtom = "th", atom.Th
	}
	tr := &html.Node{Type: html.ElementNode, Data: "tr", DataAtom: atom.Tr}
	for _, field := range fields {
		cell := &html.Node{Type: html.ElementNode, Data: cellTag, DataAtom: cellAtom}
		cell.AppendChild(&html.Node{Type: html.TextNode, Data: field})
		tr.AppendChild(cell)
	}

	if err := html.Render(w.bw, tr); err != nil {
		w.err = err
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	w.wroteRow = true
	return nil
}

// Close terminates the table and flushes buffered output.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.wroteRow {
		if _, err := w.bw.WriteString("</table>\n"); err != nil {
			return err
		}
	}
	return w.bw.Flush()
}
