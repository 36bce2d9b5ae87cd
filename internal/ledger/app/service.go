package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/keisys/teppan-register/internal/ledger/codec"
	"github.com/keisys/teppan-register/internal/ledger/domain"
)

// ErrStoreUnavailable wraps any failure of the backing store. No retry
// happens here; the caller keeps its cart and tries again.
var ErrStoreUnavailable = errors.New("ledger store unavailable")

type Service struct {
	store  Store
	schema domain.Schema
}

func NewService(store Store, schema domain.Schema) *Service {
	return &Service{store: store, schema: schema}
}

func (s *Service) Schema() domain.Schema {
	return s.schema
}

// Append writes one row in the current schema's column order.
func (s *Service) Append(ctx context.Context, r domain.Row) error {
	if err := s.store.Append(ctx, codec.Values(r, s.schema)); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Rows reads and decodes the whole ledger in append order.
func (s *Service) Rows(ctx context.Context) ([]domain.Row, error) {
	t, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return codec.Decode(t, s.schema), nil
}
