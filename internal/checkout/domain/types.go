package domain

import "time"

type ReceiptLine struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

// Receipt is what the operator sees after a successful checkout. The
// authoritative record is the ledger row; this is a convenience echo.
type Receipt struct {
	TransactionID string        `json:"transaction_id"`
	Timestamp     time.Time     `json:"timestamp"`
	Total         int64         `json:"total"`
	Lines         []ReceiptLine `json:"lines"`
}
