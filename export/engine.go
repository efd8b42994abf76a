package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/darianmavgo/mkcsv/export/common"
	"github.com/darianmavgo/mkcsv/sheet"
)

var ErrInterrupted = errors.New("operation interrupted by user")
var ErrScanTimeout = errors.New("scan timed out")

// Options configures one export run.
type Options struct {
	Sheet          string        // sheet name or index; "" behaves like "0"
	ListSheets     bool          // emit the sheet listing and skip everything else
	Flexible       bool          // keep records whose width differs from the header
	Trim           bool          // trim fields and flatten embedded linebreaks
	DatesWhitelist string        // comma-separated dates whitelist specification
	ScanTimeout    time.Duration // inactivity timeout for the row scan, 0 disables
	Verbose        bool          // enable detailed logging
}

// Summary reports what an export run produced.
type Summary struct {
	Sheet   string // resolved sheet name, "" in list-sheets mode
	Rows    int    // records written, header excluded
	Columns int    // header width
}

// Export runs the streaming pipeline: resolve the sheet, classify the header
// against the dates whitelist, then transcode, assemble and write one record
// per row. Rows are fetched, converted and written one at a time; nothing is
// retained across row boundaries except the date flags and the row counter.
//
// Cancelling ctx surfaces ErrInterrupted; records already written stay in
// the sink.
func Export(ctx context.Context, src sheet.Source, sink common.RecordWriter, opts Options) (*Summary, error) {
	names := src.SheetNames()

	if opts.ListSheets {
		return listSheets(names, sink)
	}

	identifier := opts.Sheet
	if identifier == "" {
		identifier = "0"
	}
	chosen, err := sheet.Resolve(identifier, names)
	if err != nil {
		return nil, err
	}

	rows, err := src.Rows(chosen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	whitelist := ParseWhitelist(opts.DatesWhitelist)
	if opts.Verbose {
		log.Printf("[MKCSV] using dates-whitelist %q (mode %d) on sheet %q", opts.DatesWhitelist, whitelist.Mode, chosen)
	}

	wd := common.NewWatchdog(opts.ScanTimeout)
	wd.Start()
	defer wd.Stop()

	var (
		dateFlags []bool
		width     int
		count     int
		fields    []string
	)

	for rowx := 0; rows.Next(); rowx++ {
		select {
		case <-ctx.Done():
			return nil, ErrInterrupted
		case <-wd.Done():
			return nil, ErrScanTimeout
		default:
		}
		wd.Kick()

		cells, err := rows.Cells()
		if err != nil {
			return nil, fmt.Errorf("failed to scan sheet %q: %w", chosen, err)
		}

		if rowx == 0 {
			// Header row: the date flags are derived here, once, and stay
			// immutable for the rest of the stream.
			header := make([]string, len(cells))
			for i, cell := range cells {
				header[i] = cell.HeaderText()
			}
			dateFlags = whitelist.Flags(header)
			width = len(header)
			fields = make([]string, 0, width)

			if err := sink.WriteRecord(AssembleRecord(header, opts.Trim)); err != nil {
				return nil, fmt.Errorf("failed to write header record: %w", err)
			}
			continue
		}

		fields = fields[:0]
		for i, cell := range cells {
			isDate := i < len(dateFlags) && dateFlags[i]
			fields = append(fields, Transcode(cell, isDate))
		}

		if !opts.Flexible {
			for len(fields) < width {
				fields = append(fields, "")
			}
			if len(fields) > width {
				fields = fields[:width]
			}
		}

		if err := sink.WriteRecord(AssembleRecord(fields, opts.Trim)); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", rowx, err)
		}
		count++
	}

	if opts.Verbose {
		log.Printf("[MKCSV] exported %d rows from sheet %q", count, chosen)
	}
	return &Summary{Sheet: chosen, Rows: count, Columns: width}, nil
}

// listSheets emits a two-column table of sheet index and name.
func listSheets(names []string, sink common.RecordWriter) (*Summary, error) {
	if err := sink.WriteRecord([]string{"index", "sheet_name"}); err != nil {
		return nil, fmt.Errorf("failed to write sheet listing header: %w", err)
	}
	for i, name := range names {
		if err := sink.WriteRecord([]string{strconv.Itoa(i), name}); err != nil {
			return nil, fmt.Errorf("failed to write sheet listing: %w", err)
		}
	}
	return &Summary{Rows: len(names), Columns: 2}, nil
}
