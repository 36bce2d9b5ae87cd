package app

import (
	"errors"
	"testing"

	"github.com/keisys/teppan-register/internal/catalog/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cat, err := domain.New(domain.DefaultMenu())
	if err != nil {
		t.Fatalf("default menu invalid: %v", err)
	}
	return NewService(cat)
}

func TestResolveAndPrice(t *testing.T) {
	svc := newTestService(t)

	t.Run("base item", func(t *testing.T) {
		p, err := svc.Price("焼きそば", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != 500 {
			t.Fatalf("expected 500, got %d", p)
		}
	})

	t.Run("coupon set", func(t *testing.T) {
		p, err := svc.Price("【特別割引券】焼きそば&ラムネセット", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != 500 {
			t.Fatalf("expected 500, got %d", p)
		}
	})

	t.Run("unknown -> ErrUnknownSKU", func(t *testing.T) {
		_, err := svc.Price("たこ焼き", nil)
		if !errors.Is(err, ErrUnknownSKU) {
			t.Fatalf("expected ErrUnknownSKU, got %v", err)
		}
	})

	t.Run("live custom bundle resolves", func(t *testing.T) {
		extra := domain.BundleSet{}
		sku, err := svc.DefineCustomBundle(extra, []string{"フランクフルト", "缶ジュース"}, 400)
		if err != nil {
			t.Fatalf("define failed: %v", err)
		}
		p, err := svc.Price(sku.Name, extra)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != 400 {
			t.Fatalf("expected 400, got %d", p)
		}
	})
}

func TestDecompose(t *testing.T) {
	svc := newTestService(t)

	t.Run("base item is its own decomposition", func(t *testing.T) {
		got, err := svc.Decompose("ラムネ", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "ラムネ" {
			t.Fatalf("expected [ラムネ], got %v", got)
		}
	})

	t.Run("set decomposes into components", func(t *testing.T) {
		got, err := svc.Decompose("焼きそば&ラムネセット", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0] != "焼きそば" || got[1] != "ラムネ" {
			t.Fatalf("expected [焼きそば ラムネ], got %v", got)
		}
	})

	t.Run("unknown -> ErrUnknownSKU", func(t *testing.T) {
		_, err := svc.Decompose("たこ焼き", nil)
		if !errors.Is(err, ErrUnknownSKU) {
			t.Fatalf("expected ErrUnknownSKU, got %v", err)
		}
	})
}

func TestDefineCustomBundle(t *testing.T) {
	svc := newTestService(t)

	t.Run("empty components -> invalid", func(t *testing.T) {
		_, err := svc.DefineCustomBundle(domain.BundleSet{}, nil, 400)
		if !errors.Is(err, ErrInvalidBundle) {
			t.Fatalf("expected ErrInvalidBundle, got %v", err)
		}
	})

	t.Run("non-positive price -> invalid", func(t *testing.T) {
		_, err := svc.DefineCustomBundle(domain.BundleSet{}, []string{"ラムネ"}, 0)
		if !errors.Is(err, ErrInvalidBundle) {
			t.Fatalf("expected ErrInvalidBundle, got %v", err)
		}
	})

	t.Run("set component -> invalid", func(t *testing.T) {
		_, err := svc.DefineCustomBundle(domain.BundleSet{}, []string{"焼きそば&ラムネセット"}, 800)
		if !errors.Is(err, ErrInvalidBundle) {
			t.Fatalf("expected ErrInvalidBundle, got %v", err)
		}
	})

	t.Run("identical definitions collapse", func(t *testing.T) {
		extra := domain.BundleSet{}
		a, err := svc.DefineCustomBundle(extra, []string{"缶ジュース", "フランクフルト"}, 400)
		if err != nil {
			t.Fatalf("define failed: %v", err)
		}
		b, err := svc.DefineCustomBundle(extra, []string{"フランクフルト", "缶ジュース"}, 400)
		if err != nil {
			t.Fatalf("redefine failed: %v", err)
		}
		if a.Name != b.Name {
			t.Fatalf("expected same name, got %q and %q", a.Name, b.Name)
		}
		if len(extra) != 1 {
			t.Fatalf("expected 1 live bundle, got %d", len(extra))
		}
	})

	t.Run("components are sorted in the generated name", func(t *testing.T) {
		extra := domain.BundleSet{}
		sku, err := svc.DefineCustomBundle(extra, []string{"ラムネ", "フランクフルト"}, 450)
		if err != nil {
			t.Fatalf("define failed: %v", err)
		}
		if sku.Kind != domain.KindCustom {
			t.Fatalf("expected custom kind, got %v", sku.Kind)
		}
		if sku.Components[0] != "フランクフルト" || sku.Components[1] != "ラムネ" {
			t.Fatalf("components not sorted: %v", sku.Components)
		}
	})
}
