package app

import (
	"maps"
	"sync"
	"time"

	catalogapp "github.com/keisys/teppan-register/internal/catalog/app"
	catalogdomain "github.com/keisys/teppan-register/internal/catalog/domain"
	"github.com/keisys/teppan-register/internal/cart/domain"
)

// Service owns the in-progress carts, one per till. All catalog
// resolution goes through the catalog service with the cart's own
// bundle set, so a custom bundle never leaks to another till.
type Service struct {
	catalog *catalogapp.Service

	mu    sync.Mutex
	carts map[string]*domain.Cart
	now   func() time.Time
}

func NewService(catalog *catalogapp.Service) *Service {
	return &Service{
		catalog: catalog,
		carts:   make(map[string]*domain.Cart),
		now:     time.Now,
	}
}

func (s *Service) GetOrCreate(tillID string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(tillID)
}

func (s *Service) getOrCreateLocked(tillID string) *domain.Cart {
	if c, ok := s.carts[tillID]; ok {
		return c
	}
	c := domain.New(tillID, s.now())
	s.carts[tillID] = c
	return c
}

// Add appends one unit of sku to the till's cart. The cart is left
// unchanged when the name does not resolve.
func (s *Service) Add(tillID, sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(tillID)
	if _, err := s.catalog.Resolve(sku, c.Bundles); err != nil {
		return err
	}
	c.Items = append(c.Items, sku)
	c.UpdatedAt = s.now()
	return nil
}

// DefineBundle registers a custom bundle scoped to this till's cart and
// returns it. The bundle is not added to the cart; Add does that.
func (s *Service) DefineBundle(tillID string, components []string, price int64) (catalogdomain.SKU, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(tillID)
	sku, err := s.catalog.DefineCustomBundle(c.Bundles, components, price)
	if err != nil {
		return catalogdomain.SKU{}, err
	}
	c.UpdatedAt = s.now()
	return sku, nil
}

// View returns the grouped display lines (first-seen order) and the
// recomputed total.
func (s *Service) View(tillID string) ([]domain.Line, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(tillID)

	var (
		lines []domain.Line
		index = make(map[string]int)
		total int64
	)
	for _, name := range c.Items {
		price, err := s.catalog.Price(name, c.Bundles)
		if err != nil {
			return nil, 0, err
		}
		total += price
		if i, ok := index[name]; ok {
			lines[i].Quantity++
			continue
		}
		index[name] = len(lines)
		lines = append(lines, domain.Line{Name: name, UnitPrice: price, Quantity: 1})
	}
	return lines, total, nil
}

// Snapshot copies the cart contents for checkout, so encoding works on
// a stable view even if buttons keep firing.
func (s *Service) Snapshot(tillID string) ([]string, catalogdomain.BundleSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(tillID)
	items := make([]string, len(c.Items))
	copy(items, c.Items)
	bundles := maps.Clone(c.Bundles)
	return items, bundles
}

// Clear empties the till's cart and discards its custom bundles.
func (s *Service) Clear(tillID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(tillID)
	c.Items = nil
	c.Bundles = catalogdomain.BundleSet{}
	c.UpdatedAt = s.now()
}
