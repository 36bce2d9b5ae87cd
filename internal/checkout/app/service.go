package app

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/keisys/teppan-register/internal/catalog/app"
	catalogdomain "github.com/keisys/teppan-register/internal/catalog/domain"
	"github.com/keisys/teppan-register/internal/checkout/domain"
	"github.com/keisys/teppan-register/internal/ledger/codec"
	ledgerdomain "github.com/keisys/teppan-register/internal/ledger/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

type CartSource interface {
	Snapshot(tillID string) ([]string, catalogdomain.BundleSet)
	Clear(tillID string)
}

type LedgerAppender interface {
	Schema() ledgerdomain.Schema
	Append(ctx context.Context, r ledgerdomain.Row) error
}

// Service runs the checkout flow: snapshot the cart, encode it into a
// ledger row, append, and only then clear the cart. Any failure leaves
// the cart as it was so the operator retries instead of re-keying the
// order.
type Service struct {
	cart    CartSource
	catalog *catalogapp.Service
	ledger  LedgerAppender

	now func() time.Time
}

func NewService(cart CartSource, catalog *catalogapp.Service, ledger LedgerAppender) *Service {
	return &Service{
		cart:    cart,
		catalog: catalog,
		ledger:  ledger,
		now:     time.Now,
	}
}

func (s *Service) Checkout(ctx context.Context, tillID string) (domain.Receipt, error) {
	items, bundles := s.cart.Snapshot(tillID)
	if len(items) == 0 {
		return domain.Receipt{}, ErrEmptyCart
	}

	row, err := codec.Encode(s.catalog, items, bundles, s.ledger.Schema(), s.now())
	if err != nil {
		return domain.Receipt{}, err
	}

	lines, err := s.receiptLines(items, bundles)
	if err != nil {
		return domain.Receipt{}, err
	}

	if err := s.ledger.Append(ctx, row); err != nil {
		return domain.Receipt{}, err
	}

	s.cart.Clear(tillID)

	return domain.Receipt{
		TransactionID: row.TransactionID,
		Timestamp:     row.Timestamp,
		Total:         row.Total,
		Lines:         lines,
	}, nil
}

func (s *Service) receiptLines(items []string, bundles catalogdomain.BundleSet) ([]domain.ReceiptLine, error) {
	var (
		lines []domain.ReceiptLine
		index = make(map[string]int)
	)
	for _, name := range items {
		price, err := s.catalog.Price(name, bundles)
		if err != nil {
			return nil, err
		}
		if i, ok := index[name]; ok {
			lines[i].Quantity++
			lines[i].LineTotal += price
			continue
		}
		index[name] = len(lines)
		lines = append(lines, domain.ReceiptLine{
			Name:      name,
			UnitPrice: price,
			Quantity:  1,
			LineTotal: price,
		})
	}
	return lines, nil
}
