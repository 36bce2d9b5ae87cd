package domain

import (
	"encoding/json"
	"fmt"
	"os"
)

type skuFile struct {
	Name       string   `json:"name"`
	Price      int64    `json:"price"`
	Cost       int64    `json:"cost"`
	Kind       string   `json:"kind"`
	Components []string `json:"components,omitempty"`
	Canonical  string   `json:"canonical,omitempty"`
}

// LoadFile reads a catalog definition from a JSON file. The file is a
// flat array of SKU records; it fully replaces the built-in menu.
func LoadFile(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}

	var entries []skuFile
	if err := json.Unmarshal(raw, &entries); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog file: %w", err)
	}

	skus := make([]SKU, 0, len(entries))
	for i, e := range entries {
		kind, err := parseKind(e.Kind)
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog entry %d (%q): %w", i, e.Name, err)
		}
		skus = append(skus, SKU{
			Name:       e.Name,
			Price:      e.Price,
			Cost:       e.Cost,
			Kind:       kind,
			Components: e.Components,
			Canonical:  e.Canonical,
		})
	}

	return New(skus)
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "base":
		return KindBase, nil
	case "set":
		return KindSet, nil
	case "coupon":
		return KindCoupon, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}
