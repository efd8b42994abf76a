package export

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/darianmavgo/mkcsv/sheet"
)

// fakeSource implements sheet.Source for engine tests.
type fakeSource struct {
	names []string
	rows  map[string][][]sheet.Cell
}

var _ sheet.Source = (*fakeSource)(nil)

func (f *fakeSource) SheetNames() []string { return f.names }

func (f *fakeSource) Rows(name string) (sheet.RowIterator, error) {
	rows, ok := f.rows[name]
	if !ok {
		return nil, fmt.Errorf("cannot get worksheet data from %q", name)
	}
	return &fakeRows{rows: rows}, nil
}

type fakeRows struct {
	rows [][]sheet.Cell
	i    int
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.rows) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Cells() ([]sheet.Cell, error) { return r.rows[r.i-1], nil }
func (r *fakeRows) Close() error                 { return nil }

// recordSink captures written records. The engine reuses its field buffer,
// so records are copied.
type recordSink struct {
	records [][]string
}

func (s *recordSink) WriteRecord(fields []string) error {
	rec := make([]string, len(fields))
	copy(rec, fields)
	s.records = append(s.records, rec)
	return nil
}

func (s *recordSink) Close() error { return nil }

func ordersSource() *fakeSource {
	return &fakeSource{
		names: []string{"Orders", "Notes"},
		rows: map[string][][]sheet.Cell{
			"Orders": {
				{sheet.TextCell("OrderDate"), sheet.TextCell("Amount"), sheet.TextCell("DueTime")},
				{sheet.DateTimeCell(40729), sheet.FloatCell(12.5), sheet.FloatCell(37145.354166666664)},
				{sheet.TextCell("n/a"), sheet.IntegerCell(7), sheet.EmptyCell()},
			},
			"Notes": {
				{sheet.TextCell("note")},
			},
		},
	}
}

func TestExportEndToEnd(t *testing.T) {
	sink := &recordSink{}
	summary, err := Export(context.Background(), ordersSource(), sink, Options{
		Sheet:          "Orders",
		DatesWhitelist: "date,time",
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := [][]string{
		{"OrderDate", "Amount", "DueTime"},
		{"2011-07-05", "12.5", "2001-09-11 08:30:00"},
		{"n/a", "7", ""},
	}
	if !reflect.DeepEqual(sink.records, want) {
		t.Errorf("records mismatch:\n got %q\nwant %q", sink.records, want)
	}
	if summary.Sheet != "Orders" || summary.Rows != 2 || summary.Columns != 3 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestExportDefaultsToFirstSheet(t *testing.T) {
	sink := &recordSink{}
	summary, err := Export(context.Background(), ordersSource(), sink, Options{
		DatesWhitelist: "none",
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if summary.Sheet != "Orders" {
		t.Errorf("expected the first sheet, got %q", summary.Sheet)
	}
	// no date processing: the serial stays numeric
	if sink.records[1][0] != "40729" {
		t.Errorf("expected raw serial, got %q", sink.records[1][0])
	}
}

func TestExportNegativeIndex(t *testing.T) {
	sink := &recordSink{}
	summary, err := Export(context.Background(), ordersSource(), sink, Options{
		Sheet:          "-1",
		DatesWhitelist: "none",
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if summary.Sheet != "Notes" {
		t.Errorf("expected the last sheet, got %q", summary.Sheet)
	}
}

func TestExportIndexOutOfRange(t *testing.T) {
	sink := &recordSink{}
	if _, err := Export(context.Background(), ordersSource(), sink, Options{Sheet: "9"}); err == nil {
		t.Fatal("expected error for an index past the last sheet")
	}
}

func TestExportListSheets(t *testing.T) {
	sink := &recordSink{}
	summary, err := Export(context.Background(), ordersSource(), sink, Options{ListSheets: true})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := [][]string{
		{"index", "sheet_name"},
		{"0", "Orders"},
		{"1", "Notes"},
	}
	if !reflect.DeepEqual(sink.records, want) {
		t.Errorf("listing mismatch:\n got %q\nwant %q", sink.records, want)
	}
	if summary.Rows != 2 {
		t.Errorf("expected 2 listed sheets, got %d", summary.Rows)
	}
}

func TestExportPadsAndTruncates(t *testing.T) {
	src := &fakeSource{
		names: []string{"S"},
		rows: map[string][][]sheet.Cell{
			"S": {
				{sheet.TextCell("a"), sheet.TextCell("b")},
				{sheet.TextCell("short")},
				{sheet.TextCell("x"), sheet.TextCell("y"), sheet.TextCell("extra")},
			},
		},
	}
	sink := &recordSink{}
	if _, err := Export(context.Background(), src, sink, Options{DatesWhitelist: "none"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := [][]string{
		{"a", "b"},
		{"short", ""},
		{"x", "y"},
	}
	if !reflect.DeepEqual(sink.records, want) {
		t.Errorf("records mismatch:\n got %q\nwant %q", sink.records, want)
	}
}

func TestExportFlexibleKeepsRowWidth(t *testing.T) {
	src := &fakeSource{
		names: []string{"S"},
		rows: map[string][][]sheet.Cell{
			"S": {
				{sheet.TextCell("a"), sheet.TextCell("b")},
				{sheet.TextCell("short")},
			},
		},
	}
	sink := &recordSink{}
	if _, err := Export(context.Background(), src, sink, Options{Flexible: true, DatesWhitelist: "none"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(sink.records[1]) != 1 {
		t.Errorf("flexible mode should keep the row's own width, got %q", sink.records[1])
	}
}

func TestExportTrim(t *testing.T) {
	src := &fakeSource{
		names: []string{"S"},
		rows: map[string][][]sheet.Cell{
			"S": {
				{sheet.TextCell(" Name ")},
				{sheet.TextCell(" a\nb ")},
			},
		},
	}
	sink := &recordSink{}
	if _, err := Export(context.Background(), src, sink, Options{Trim: true, DatesWhitelist: "none"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if sink.records[0][0] != "Name" {
		t.Errorf("header not trimmed: %q", sink.records[0][0])
	}
	if sink.records[1][0] != "a b" {
		t.Errorf("expected %q, got %q", "a b", sink.records[1][0])
	}
}

func TestExportInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordSink{}
	_, err := Export(ctx, ordersSource(), sink, Options{DatesWhitelist: "none"})
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
}
