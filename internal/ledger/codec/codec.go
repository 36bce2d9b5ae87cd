package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogapp "github.com/keisys/teppan-register/internal/catalog/app"
	catalogdomain "github.com/keisys/teppan-register/internal/catalog/domain"
	"github.com/keisys/teppan-register/internal/ledger/domain"
)

// ErrSchemaMismatch means the encoded columns cannot account for the
// cart's total. The row must not be written: it would be a financial
// record that disagrees with itself.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Encode turns a cart snapshot into a ledger row. Each occurrence of a
// statically known SKU increments its own column (sets and coupons are
// not decomposed; their column is their identity). A custom bundle has
// no column, so it increments the ad-hoc counter and every base
// component's column, keeping per-item totals honest.
func Encode(cat *catalogapp.Service, items []string, bundles catalogdomain.BundleSet, schema domain.Schema, now time.Time) (domain.Row, error) {
	q := make(map[string]int64, len(schema.SKUColumns()))
	for _, col := range schema.SKUColumns() {
		q[col] = 0
	}

	var total, represented int64
	for _, name := range items {
		sku, err := cat.Resolve(name, bundles)
		if err != nil {
			return domain.Row{}, err
		}
		total += sku.Price

		switch {
		case sku.Kind == catalogdomain.KindCustom:
			q[domain.ColAdHoc]++
			represented += sku.Price
			for _, comp := range sku.Components {
				if schema.Has(comp) {
					q[comp]++
				}
			}
		case schema.Has(sku.Name):
			q[sku.Name]++
			represented += sku.Price
		}
		// A priced SKU with no landing column leaves represented
		// short and trips the check below.
	}

	if represented != total {
		return domain.Row{}, fmt.Errorf("%w: cart total %d but columns account for %d", ErrSchemaMismatch, total, represented)
	}

	return domain.Row{
		Timestamp:     now.In(domain.JST),
		TransactionID: uuid.NewString(),
		Total:         total,
		Quantities:    q,
	}, nil
}

// Values lays a row out in the schema's declared column order for an
// append to the store.
func Values(r domain.Row, schema domain.Schema) []string {
	out := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		switch col {
		case domain.ColTimestamp:
			out = append(out, r.Timestamp.Format(domain.TimestampLayout))
		case domain.ColTransactionID:
			out = append(out, r.TransactionID)
		case domain.ColTotal:
			out = append(out, strconv.FormatInt(r.Total, 10))
		default:
			out = append(out, strconv.FormatInt(r.Quantities[col], 10))
		}
	}
	return out
}

// Decode maps raw stored rows back to typed rows, by header name only.
// It degrades instead of failing: padding rows and rows with broken
// timestamps are dropped, unparseable numerics become zero, unknown
// columns are ignored and schema columns missing from the data read as
// zero. Output preserves input order.
func Decode(t domain.Table, schema domain.Schema) []domain.Row {
	idx := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		idx[strings.TrimSpace(name)] = i
	}

	rows := make([]domain.Row, 0, len(t.Rows))
	for _, raw := range t.Rows {
		if allEmpty(raw) {
			continue
		}

		ts, ok := parseTimestamp(cell(raw, idx, domain.ColTimestamp))
		if !ok {
			continue
		}

		r := domain.Row{
			Timestamp:     ts,
			TransactionID: cell(raw, idx, domain.ColTransactionID),
			Total:         parseCount(cell(raw, idx, domain.ColTotal)),
			Quantities:    make(map[string]int64, len(schema.SKUColumns())),
		}
		for _, col := range schema.SKUColumns() {
			r.Quantities[col] = parseCount(cell(raw, idx, col))
		}
		rows = append(rows, r)
	}
	return rows
}

func allEmpty(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func cell(raw []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(raw) {
		return ""
	}
	return strings.TrimSpace(raw[i])
}

var timestampLayouts = []string{
	domain.TimestampLayout,
	"2006/01/02 15:04:05",
	time.RFC3339,
}

func parseTimestamp(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, v, domain.JST); err == nil {
			return ts.In(domain.JST), true
		}
	}
	return time.Time{}, false
}

// parseCount tolerates the "12.0" the spreadsheet hands back for
// numeric cells.
func parseCount(v string) int64 {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}
