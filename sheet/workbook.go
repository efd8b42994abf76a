package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Source is anything that can enumerate sheet names and stream the rows of
// one sheet as typed cells. Row 0 is the header.
type Source interface {
	SheetNames() []string
	Rows(name string) (RowIterator, error)
}

// RowIterator walks the rows of one sheet. Cells must be consumed before the
// next call to Next; the iterator owns any buffer it hands out.
type RowIterator interface {
	Next() bool
	Cells() ([]Cell, error)
	Close() error
}

// Workbook is an excelize-backed Source.
type Workbook struct {
	file *excelize.File
}

var _ Source = (*Workbook)(nil)
var _ io.Closer = (*Workbook)(nil)

// OpenWorkbook opens an OOXML workbook file.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// NewWorkbook reads an OOXML workbook from a stream.
func NewWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// SheetNames implements Source.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows implements Source.
func (w *Workbook) Rows(name string) (RowIterator, error) {
	rows, err := w.file.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("cannot get worksheet data from %q: %w", name, err)
	}
	return &workbookRows{wb: w, sheet: name, rows: rows}, nil
}

// Close releases the underlying workbook.
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

type workbookRows struct {
	wb    *Workbook
	sheet string
	rows  *excelize.Rows
	rowx  int // 1-based row number of the current row
}

func (r *workbookRows) Next() bool {
	if !r.rows.Next() {
		return false
	}
	r.rowx++
	return true
}

func (r *workbookRows) Cells() ([]Cell, error) {
	raw, err := r.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read row %d: %w", r.rowx, err)
	}
	cells := make([]Cell, len(raw))
	for colx, value := range raw {
		cells[colx] = r.wb.typedCell(r.sheet, value, colx+1, r.rowx)
	}
	return cells, nil
}

func (r *workbookRows) Close() error {
	return r.rows.Close()
}

// typedCell maps the raw stored value of one cell to the tagged cell model
// using the cell's declared type. col and row are 1-based.
func (w *Workbook) typedCell(sheet, raw string, col, row int) Cell {
	if raw == "" {
		return EmptyCell()
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return TextCell(raw)
	}
	ctype, err := w.file.GetCellType(sheet, axis)
	if err != nil {
		return TextCell(raw)
	}

	switch ctype {
	case excelize.CellTypeBool:
		return BooleanCell(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeError:
		return ErrorCell(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return TextCell(raw)
	case excelize.CellTypeDate:
		// The date type stores either a serial or an ISO 8601 literal.
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return DateTimeCell(f)
		}
		return TextCell(raw)
	default:
		// CellTypeNumber, CellTypeUnset and cached formula results all hold
		// whatever the producer wrote; sniff numerics, keep the rest as text.
		return CellFromRaw(raw)
	}
}
