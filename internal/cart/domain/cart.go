package domain

import (
	"time"

	catalogdomain "github.com/keisys/teppan-register/internal/catalog/domain"
)

// Cart is one till's in-progress order. Items keeps insertion order and
// repeats a name once per unit. Bundles holds the custom bundles defined
// for this cart; clearing the cart discards them too.
type Cart struct {
	TillID    string
	Items     []string
	Bundles   catalogdomain.BundleSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line is one display row of the grouped cart view.
type Line struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

func New(tillID string, now time.Time) *Cart {
	return &Cart{
		TillID:    tillID,
		Bundles:   catalogdomain.BundleSet{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
