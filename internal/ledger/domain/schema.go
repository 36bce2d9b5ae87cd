package domain

import "time"

// Fixed leading columns of every ledger generation, followed by one
// column per static SKU and the ad-hoc bundle counter. Column names are
// stable identifiers: later generations may append columns but never
// rename or remove one.
const (
	ColTimestamp     = "タイムスタンプ"
	ColTransactionID = "TransactionID"
	ColTotal         = "合計金額"

	// ColAdHoc counts custom bundles, which have no column of their own.
	ColAdHoc = "カスタムセット"
)

// TimestampLayout is how the original sheet stores timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// JST is the ledger's one and only timezone. A fixed zone keeps
// encoding and decoding identical on hosts without tzdata.
var JST = time.FixedZone("JST", 9*60*60)

// Schema is the current in-code column layout, derived from catalog
// declaration order at startup. Stored data may carry fewer, more, or
// reordered columns; readers match by name, never by position.
type Schema struct {
	Columns []string
}

func NewSchema(skuColumns []string) Schema {
	cols := make([]string, 0, len(skuColumns)+4)
	cols = append(cols, ColTimestamp, ColTransactionID, ColTotal)
	cols = append(cols, skuColumns...)
	cols = append(cols, ColAdHoc)
	return Schema{Columns: cols}
}

// SKUColumns returns the quantity-carrying columns, ad-hoc counter
// included.
func (s Schema) SKUColumns() []string {
	if len(s.Columns) <= 3 {
		return nil
	}
	return s.Columns[3:]
}

func (s Schema) Has(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}
