package domain

type Kind int

const (
	// KindBase is a single item sold on its own.
	KindBase Kind = iota
	// KindSet is a fixed combination of base items at a combined price.
	KindSet
	// KindCoupon is a discounted variant of a set, sold against a coupon.
	KindCoupon
	// KindCustom is an ad-hoc bundle defined at the till for one cart.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindSet:
		return "set"
	case KindCoupon:
		return "coupon"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// SKU is one purchasable entry. Name doubles as the primary key and,
// for statically defined SKUs, as the ledger column name.
type SKU struct {
	Name  string
	Price int64 // unit price in yen
	Cost  int64 // unit cost of goods, zero when not tracked
	Kind  Kind

	// Components lists the base item names a set, coupon or custom
	// bundle decomposes into. Empty for base items.
	Components []string

	// Canonical names the set a coupon folds into for analytics.
	// Only coupons carry it.
	Canonical string
}

// BundleSet holds the custom bundles defined for one cart. It is owned
// by the cart and dies with it; nothing here is shared across tills.
type BundleSet map[string]SKU
