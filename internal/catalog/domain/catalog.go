package domain

import "fmt"

// Catalog is the static SKU set, validated once at load. Declaration
// order is kept: it defines ledger column order and ranking tie-breaks.
type Catalog struct {
	skus  map[string]SKU
	order []string
}

func New(skus []SKU) (Catalog, error) {
	c := Catalog{
		skus:  make(map[string]SKU, len(skus)),
		order: make([]string, 0, len(skus)),
	}

	for i, s := range skus {
		if s.Name == "" {
			return Catalog{}, fmt.Errorf("sku %d: empty name", i)
		}
		if _, dup := c.skus[s.Name]; dup {
			return Catalog{}, fmt.Errorf("sku %q: duplicate name", s.Name)
		}
		if s.Price < 0 {
			return Catalog{}, fmt.Errorf("sku %q: negative price %d", s.Name, s.Price)
		}
		if s.Cost < 0 {
			return Catalog{}, fmt.Errorf("sku %q: negative cost %d", s.Name, s.Cost)
		}
		if s.Kind == KindCustom {
			return Catalog{}, fmt.Errorf("sku %q: custom bundles cannot be declared statically", s.Name)
		}
		c.skus[s.Name] = s
		c.order = append(c.order, s.Name)
	}

	// Second pass so components and canonicals can reference entries
	// declared later in the file.
	for _, name := range c.order {
		s := c.skus[name]
		switch s.Kind {
		case KindBase:
			if len(s.Components) != 0 {
				return Catalog{}, fmt.Errorf("sku %q: base item declares components", name)
			}
		case KindSet, KindCoupon:
			if len(s.Components) == 0 {
				return Catalog{}, fmt.Errorf("sku %q: %s without components", name, s.Kind)
			}
			for _, comp := range s.Components {
				cs, ok := c.skus[comp]
				if !ok || cs.Kind != KindBase {
					return Catalog{}, fmt.Errorf("sku %q: component %q is not a base item", name, comp)
				}
			}
		}
		if s.Kind == KindCoupon {
			canon, ok := c.skus[s.Canonical]
			if !ok || canon.Kind != KindSet {
				return Catalog{}, fmt.Errorf("sku %q: canonical %q is not a set", name, s.Canonical)
			}
		} else if s.Canonical != "" {
			return Catalog{}, fmt.Errorf("sku %q: only coupons carry a canonical", name)
		}
	}

	return c, nil
}

func (c Catalog) Lookup(name string) (SKU, bool) {
	s, ok := c.skus[name]
	return s, ok
}

// Ordered returns the static SKUs in declaration order.
func (c Catalog) Ordered() []SKU {
	out := make([]SKU, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.skus[name])
	}
	return out
}

// BaseNames returns the base item names in declaration order.
func (c Catalog) BaseNames() []string {
	var out []string
	for _, name := range c.order {
		if c.skus[name].Kind == KindBase {
			out = append(out, name)
		}
	}
	return out
}

// CanonicalOf maps a coupon column to the set it counts toward.
// Non-coupon names map to themselves.
func (c Catalog) CanonicalOf(name string) string {
	if s, ok := c.skus[name]; ok && s.Kind == KindCoupon {
		return s.Canonical
	}
	return name
}
