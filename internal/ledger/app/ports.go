package app

import (
	"context"

	"github.com/keisys/teppan-register/internal/ledger/domain"
)

// Store is the external tabular store the ledger lives in. Append is
// whole-row atomic; ordering of concurrent appends is the store's
// problem, not ours.
type Store interface {
	Append(ctx context.Context, values []string) error
	ReadAll(ctx context.Context) (domain.Table, error)
}
