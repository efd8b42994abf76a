package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/darianmavgo/mkcsv/config"
	"github.com/darianmavgo/mkcsv/export"
	_ "github.com/darianmavgo/mkcsv/export/all"
	"github.com/darianmavgo/mkcsv/export/common"
	"github.com/darianmavgo/mkcsv/sheet"
)

func usage(fs *flag.FlagSet) {
	fmt.Fprintln(fs.Output(), "Usage: mkcsv [options] <workbook.xlsx>")
	fmt.Fprintln(fs.Output(), "")
	fmt.Fprintln(fs.Output(), "Exports one sheet of an Excel workbook to CSV (or another sink).")
	fmt.Fprintln(fs.Output(), "Numeric cells in whitelisted columns are decoded as day-count date")
	fmt.Fprintln(fs.Output(), "serials: whole serials become dates, fractional ones date-times.")
	fmt.Fprintln(fs.Output(), "")
	fs.PrintDefaults()
}

func sinkDriverName(format, outputPath string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	case ".html", ".htm":
		return "html"
	}
	return "csv"
}

func parseDelimiter(s string) (rune, error) {
	if s == "\\t" {
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return runes[0], nil
}

func run(args []string) error {
	fs := flag.NewFlagSet("mkcsv", flag.ExitOnError)
	fs.Usage = func() { usage(fs) }

	sheetFlag := fs.String("sheet", "0", "name or zero-based index of the sheet to export; negative indices count from the end (-1 = last sheet)")
	fs.StringVar(sheetFlag, "s", "0", "shorthand for --sheet")
	listSheets := fs.Bool("list-sheets", false, "emit a two-column listing of sheet index and name, ignoring other options")
	flexible := fs.Bool("flexible", false, "keep records whose column count differs from the header")
	trim := fs.Bool("trim", false, "trim fields and flatten embedded linebreaks")
	whitelist := fs.String("dates-whitelist", "", "case-insensitive column name patterns for date processing; \"all\", \"none\", or a list of column indices (default "+config.DefaultDatesWhitelist+")")
	output := fs.String("output", "", "write output to this file instead of stdout")
	fs.StringVar(output, "o", "", "shorthand for --output")
	format := fs.String("format", "", "sink driver: "+strings.Join(export.Drivers(), ", ")+" (default by output extension, falling back to csv)")
	delimiter := fs.String("delimiter", "", "field delimiter for the csv sink (default \",\")")
	configPath := fs.String("config", "", "HCL config file with defaults")
	timeout := fs.Duration("timeout", 0, "abort when no row arrives for this long (0 disables)")
	verbose := fs.Bool("verbose", false, "enable detailed logging")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		usage(fs)
		return fmt.Errorf("missing input workbook")
	}
	inputPath := fs.Arg(0)

	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
	default:
		return fmt.Errorf("expecting an Excel workbook (.xlsx, .xlsm, .xltx, .xltm), got %q", inputPath)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags that were explicitly set override the config file.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["dates-whitelist"] {
		*whitelist = cfg.DatesWhitelist
	}
	if !set["trim"] {
		*trim = cfg.Trim
	}
	if !set["flexible"] {
		*flexible = cfg.Flexible
	}
	if !set["delimiter"] {
		*delimiter = cfg.Delimiter
	}

	delim, err := parseDelimiter(*delimiter)
	if err != nil {
		return err
	}

	wb, err := sheet.OpenWorkbook(inputPath)
	if err != nil {
		return err
	}
	defer wb.Close()

	var out *os.File
	if *output != "" {
		if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		out, err = os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	} else {
		out = os.Stdout
	}

	sink, err := export.Open(sinkDriverName(*format, *output), out, &common.ExportConfig{
		Delimiter: delim,
		BatchSize: cfg.BatchSize,
		Verbose:   *verbose,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, exportErr := export.Export(ctx, wb, sink, export.Options{
		Sheet:          *sheetFlag,
		ListSheets:     *listSheets,
		Flexible:       *flexible,
		Trim:           *trim,
		DatesWhitelist: *whitelist,
		ScanTimeout:    *timeout,
		Verbose:        *verbose,
	})
	// Close the sink even on failure so already-written records persist.
	closeErr := sink.Close()
	if exportErr != nil {
		return exportErr
	}
	if closeErr != nil {
		return closeErr
	}

	if !*listSheets {
		fmt.Fprintf(os.Stderr, "%d %d-column rows exported from %q\n", summary.Rows, summary.Columns, summary.Sheet)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mkcsv: %v\n", err)
		os.Exit(1)
	}
}
