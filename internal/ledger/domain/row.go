package domain

import "time"

// Row is one completed transaction. Rows are immutable once appended;
// the ledger only ever grows.
type Row struct {
	Timestamp     time.Time
	TransactionID string
	Total         int64

	// Quantities maps SKU column name to units sold. Every SKU column
	// of the writing schema is present, zeros included.
	Quantities map[string]int64
}

// Table is a raw read of the backing store: a header row naming the
// stored columns, then data rows in append order.
type Table struct {
	Header []string
	Rows   [][]string
}
