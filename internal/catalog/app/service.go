package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/keisys/teppan-register/internal/catalog/domain"
)

var (
	ErrUnknownSKU    = errors.New("unknown sku")
	ErrInvalidBundle = errors.New("invalid bundle")
)

// Service resolves SKU names against the static catalog plus the
// caller's live custom bundles. It holds no session state itself; the
// BundleSet is owned by the cart and passed in per call.
type Service struct {
	cat domain.Catalog
}

func NewService(cat domain.Catalog) *Service {
	return &Service{cat: cat}
}

func (s *Service) Catalog() domain.Catalog {
	return s.cat
}

func (s *Service) Resolve(name string, extra domain.BundleSet) (domain.SKU, error) {
	if sku, ok := s.cat.Lookup(name); ok {
		return sku, nil
	}
	if sku, ok := extra[name]; ok {
		return sku, nil
	}
	return domain.SKU{}, fmt.Errorf("%w: %q", ErrUnknownSKU, name)
}

func (s *Service) Price(name string, extra domain.BundleSet) (int64, error) {
	sku, err := s.Resolve(name, extra)
	if err != nil {
		return 0, err
	}
	return sku.Price, nil
}

// Decompose returns the base item multiset a SKU stands for: a base
// item is its own decomposition, everything else returns its declared
// components.
func (s *Service) Decompose(name string, extra domain.BundleSet) ([]string, error) {
	sku, err := s.Resolve(name, extra)
	if err != nil {
		return nil, err
	}
	if sku.Kind == domain.KindBase {
		return []string{sku.Name}, nil
	}
	out := make([]string, len(sku.Components))
	copy(out, sku.Components)
	return out, nil
}

// DefineCustomBundle registers an ad-hoc bundle into extra. The name is
// derived from the sorted components and the price, so defining the
// same bundle twice yields the same SKU rather than a duplicate.
func (s *Service) DefineCustomBundle(extra domain.BundleSet, components []string, price int64) (domain.SKU, error) {
	if len(components) == 0 {
		return domain.SKU{}, fmt.Errorf("%w: no components", ErrInvalidBundle)
	}
	if price <= 0 {
		return domain.SKU{}, fmt.Errorf("%w: price must be positive, got %d", ErrInvalidBundle, price)
	}
	if extra == nil {
		return domain.SKU{}, fmt.Errorf("%w: no bundle set to register into", ErrInvalidBundle)
	}

	sorted := make([]string, len(components))
	copy(sorted, components)
	sort.Strings(sorted)

	for _, comp := range sorted {
		cs, ok := s.cat.Lookup(comp)
		if !ok {
			return domain.SKU{}, fmt.Errorf("%w: unknown component %q", ErrInvalidBundle, comp)
		}
		if cs.Kind != domain.KindBase {
			return domain.SKU{}, fmt.Errorf("%w: component %q is not a base item", ErrInvalidBundle, comp)
		}
	}

	name := fmt.Sprintf("カスタム(%s)¥%d", strings.Join(sorted, "+"), price)
	if existing, ok := extra[name]; ok {
		return existing, nil
	}

	sku := domain.SKU{
		Name:       name,
		Price:      price,
		Kind:       domain.KindCustom,
		Components: sorted,
	}
	extra[name] = sku
	return sku, nil
}
