package memory

import (
	"context"
	"sync"

	"github.com/keisys/teppan-register/internal/ledger/domain"
)

// Store keeps the ledger in memory. It backs local runs and tests; the
// data is gone when the process is.
type Store struct {
	mu     sync.Mutex
	header []string
	rows   [][]string
}

func New(header []string) *Store {
	h := make([]string, len(header))
	copy(h, header)
	return &Store{header: h}
}

func (s *Store) Append(_ context.Context, values []string) error {
	row := make([]string, len(values))
	copy(row, values)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return nil
}

func (s *Store) ReadAll(_ context.Context) (domain.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := domain.Table{
		Header: make([]string, len(s.header)),
		Rows:   make([][]string, len(s.rows)),
	}
	copy(t.Header, s.header)
	for i, r := range s.rows {
		row := make([]string, len(r))
		copy(row, r)
		t.Rows[i] = row
	}
	return t, nil
}
