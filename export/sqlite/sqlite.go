// Package sqlite is a record sink that builds a SQLite database: one TEXT
// column per header field, one row per record.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/darianmavgo/mkcsv/export"
	"github.com/darianmavgo/mkcsv/export/common"

	_ "modernc.org/sqlite"
)

func init() {
	export.Register("sqlite", &sqliteDriver{})
}

// SheetTB is the table name used when none is configured.
const SheetTB = "tb0"

type sqliteDriver struct{}

func (d *sqliteDriver) Open(w io.Writer, config *common.ExportConfig) (common.RecordWriter, error) {
	return NewWriter(w, config)
}

// Writer accumulates records into a SQLite database file. If the output is a
// regular file the database is built there directly so partial data persists
// on failure; otherwise it is built in a temp file and copied to the output
// on Close.
type Writer struct {
	out      io.Writer
	dbPath   string
	useTemp  bool
	db       *sql.DB
	mainStmt *sql.Stmt
	tx       *sql.Tx
	stmt     *sql.Stmt
	table    string
	columns  []string
	batch    int
	rowCount int
	verbose  bool
}

var _ common.RecordWriter = (*Writer)(nil)

// NewWriter opens the database that will back the sink. The schema is
// created lazily from the first record written.
func NewWriter(w io.Writer, config *common.ExportConfig) (*Writer, error) {
	sw := &Writer{
		out:     w,
		useTemp: true,
		table:   SheetTB,
		batch:   common.DefaultBatchSize,
	}
	if config != nil {
		if config.TableName != "" {
			sw.table = common.GenTableNames([]string{config.TableName})[0]
		}
		if config.BatchSize > 0 {
			sw.batch = config.BatchSize
		}
		sw.verbose = config.Verbose
	}

	// Check if the writer is a file we can use directly
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		// Ensure it's a regular file (not stdout/pipe)
		if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 && stat.Mode().IsRegular() {
			sw.dbPath = f.Name()
			sw.useTemp = false
			if sw.verbose {
				log.Printf("[MKCSV] using direct file: %s", sw.dbPath)
			}
		}
	}

	if sw.useTemp {
		tmpFile, err := os.CreateTemp("", "mkcsv-*.db")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		sw.dbPath = tmpFile.Name()
		tmpFile.Close() // Close it so sql.Open can use it
		if sw.verbose {
			log.Printf("[MKCSV] created temp file: %s", sw.dbPath)
		}
	}

	db, err := sql.Open("sqlite", sw.dbPath)
	if err != nil {
		sw.cleanupTemp()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Limit to 1 connection to avoid locking issues and improve tx.Stmt performance
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA page_size = 65536; PRAGMA cache_size = -2000;"); err != nil {
		db.Close()
		sw.cleanupTemp()
		return nil, fmt.Errorf("failed to set PRAGMAs: %w", err)
	}
	sw.db = db
	return sw, nil
}

// WriteRecord implements common.RecordWriter. The first record defines the
// table's columns; later records are inserted in batched transactions.
func (w *Writer) WriteRecord(fields []string) error {
	if w.columns == nil {
		return w.createTable(fields)
	}

	row := make([]interface{}, len(w.columns))
	for i := range w.columns {
		if i < len(fields) {
			row[i] = fields[i]
		} else {
			row[i] = "" // pad short records
		}
	}

	if _, err := w.stmt.Exec(row...); err != nil {
		return fmt.Errorf("failed to insert row into table %s: %w", w.table, err)
	}

	w.rowCount++
	if w.rowCount%w.batch == 0 {
		w.stmt.Close()
		if err := w.tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction for table %s: %w", w.table, err)
		}
		tx, err := w.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		w.tx = tx
		w.stmt = tx.Stmt(w.mainStmt)
	}
	return nil
}

func (w *Writer) createTable(header []string) error {
	w.columns = common.GenColumnNames(header)
	if w.verbose {
		log.Printf("[MKCSV] creating table %s with columns %v", w.table, w.columns)
	}

	if _, err := w.db.Exec(common.GenCreateTableSQL(w.table, w.columns)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", w.table, err)
	}

	insertSQL, err := common.GenInsertStmt(w.table, w.columns)
	if err != nil {
		return fmt.Errorf("failed to generate insert statement for table %s: %w", w.table, err)
	}
	mainStmt, err := w.db.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement for table %s: %w", w.table, err)
	}
	w.mainStmt = mainStmt

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	w.tx = tx
	w.stmt = tx.Stmt(mainStmt)
	return nil
}

// Close commits the open transaction, closes the database, and copies the
// database bytes to the output when a temp file was used.
func (w *Writer) Close() error {
	var firstErr error

	if w.stmt != nil {
		w.stmt.Close()
	}
	if w.tx != nil {
		if err := w.tx.Commit(); err != nil {
			firstErr = fmt.Errorf("failed to commit transaction for table %s: %w", w.table, err)
		}
	}
	if w.mainStmt != nil {
		w.mainStmt.Close()
	}
	if w.db != nil {
		if err := w.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
	}

	if !w.useTemp {
		return firstErr
	}
	defer w.cleanupTemp()
	if firstErr != nil {
		return firstErr // don't copy a half-built database
	}

	f, err := os.Open(w.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open temp file for reading: %w", err)
	}
	defer f.Close()

	if w.verbose {
		log.Printf("[MKCSV] copying temp database to final output")
	}
	if _, err := io.Copy(w.out, f); err != nil {
		return fmt.Errorf("failed to write to output: %w", err)
	}
	return nil
}

func (w *Writer) cleanupTemp() {
	if w.useTemp && w.dbPath != "" {
		os.Remove(w.dbPath)
	}
}
