// Package common holds the configuration and helpers shared by the record
// sink drivers.
package common

// ExportConfig stores configuration options a sink driver may consult.
// Drivers ignore fields that do not apply to them.
type ExportConfig struct {
	Delimiter rune   // Field delimiter for delimited sinks
	TableName string // Table name for database sinks
	BatchSize int    // Rows per transaction for database sinks
	Verbose   bool   // Enable detailed logging
}

// DefaultBatchSize is the number of rows a database sink inserts before
// committing a transaction, so long streams save progress periodically.
const DefaultBatchSize = 1000
