package domain

import "time"

type Summary struct {
	TotalSales       int64   `json:"total_sales"`
	TotalCost        int64   `json:"total_cost"`
	GrossProfit      int64   `json:"gross_profit"`
	TransactionCount int     `json:"transaction_count"`
	AvgTicket        float64 `json:"avg_ticket"`
}

// ItemSales is one row of the per-item ranking. Revenue is quantity
// times the canonical unit price, so coupon sales count at the regular
// set price they fold into.
type ItemSales struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

// TrendPoint is one fixed-width time bucket. Buckets with no
// transactions still appear, so charts show gaps instead of hiding
// them.
type TrendPoint struct {
	BucketStart time.Time `json:"bucket_start"`
	Count       int       `json:"count"`
	Revenue     int64     `json:"revenue"`
}

// Rule is one association rule: baskets containing the antecedent tend
// to contain the consequent.
type Rule struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
}

// Mining is the association-rule outcome. Too few transactions is a
// normal result, not an error: InsufficientData is set and NeedMore
// says how many transactions are still missing.
type Mining struct {
	Rules            []Rule `json:"rules"`
	InsufficientData bool   `json:"insufficient_data"`
	NeedMore         int    `json:"need_more,omitempty"`
}

// BundleFamily is one canonical set's utilization, coupon variants
// folded in and counted separately as Discounted.
type BundleFamily struct {
	Name       string `json:"name"`
	Total      int64  `json:"total"`
	Discounted int64  `json:"discounted"`
}

type Utilization struct {
	Families     []BundleFamily `json:"families"`
	AdHocCount   int64          `json:"ad_hoc_count"`
	TotalBundles int64          `json:"total_bundles"`

	// DiscountRate is (coupon + ad-hoc) sales over all bundle sales,
	// zero when no bundles sold at all.
	DiscountRate float64 `json:"discount_rate"`
}

type Report struct {
	Summary       Summary      `json:"summary"`
	ByRevenue     []ItemSales  `json:"by_revenue"`
	ByQuantity    []ItemSales  `json:"by_quantity"`
	BucketMinutes int          `json:"bucket_minutes"`
	Trend         []TrendPoint `json:"trend"`
	Mining        Mining       `json:"mining"`
	Utilization   Utilization  `json:"utilization"`
}

// CoPurchaseEntry is one "bought together with the target" count.
type CoPurchaseEntry struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type CoPurchase struct {
	Target  string            `json:"target"`
	Others  []CoPurchaseEntry `json:"others"`
	Baskets int               `json:"baskets"`
}
