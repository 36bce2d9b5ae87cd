package app

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	catalogdomain "github.com/keisys/teppan-register/internal/catalog/domain"
	ledgerdomain "github.com/keisys/teppan-register/internal/ledger/domain"
)

type fakeSource struct {
	rows []ledgerdomain.Row
	err  error
}

func (f fakeSource) Rows(context.Context) ([]ledgerdomain.Row, error) {
	return f.rows, f.err
}

func newAnalytics(t *testing.T, rows []ledgerdomain.Row) *Service {
	t.Helper()
	cat, err := catalogdomain.New(catalogdomain.DefaultMenu())
	if err != nil {
		t.Fatalf("default menu invalid: %v", err)
	}
	return NewService(fakeSource{rows: rows}, cat)
}

func jst(hour, min int) time.Time {
	return time.Date(2026, 8, 29, hour, min, 0, 0, ledgerdomain.JST)
}

func row(ts time.Time, total int64, q map[string]int64) ledgerdomain.Row {
	if q == nil {
		q = map[string]int64{}
	}
	return ledgerdomain.Row{Timestamp: ts, TransactionID: "tx", Total: total, Quantities: q}
}

func TestReportValidation(t *testing.T) {
	svc := newAnalytics(t, nil)

	if _, err := svc.Report(context.Background(), Options{BucketMinutes: 15}); !errors.Is(err, ErrInvalidBucket) {
		t.Fatalf("expected ErrInvalidBucket, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		svc := newAnalytics(t, nil)
		rep, err := svc.Report(context.Background(), Options{})
		if err != nil {
			t.Fatalf("report failed: %v", err)
		}
		s := rep.Summary
		if s.TotalSales != 0 || s.TransactionCount != 0 || s.AvgTicket != 0 {
			t.Fatalf("expected zero summary, got %+v", s)
		}
	})

	t.Run("single transaction", func(t *testing.T) {
		svc := newAnalytics(t, []ledgerdomain.Row{
			row(jst(11, 0), 1250, map[string]int64{"焼きそば": 2, "ラムネ": 1}),
		})
		rep, err := svc.Report(context.Background(), Options{})
		if err != nil {
			t.Fatalf("report failed: %v", err)
		}
		s := rep.Summary
		if s.TotalSales != 1250 || s.TransactionCount != 1 || s.AvgTicket != 1250 {
			t.Fatalf("unexpected summary: %+v", s)
		}
		// 2 焼きそば at cost 180 plus 1 ラムネ at cost 90.
		if s.TotalCost != 450 || s.GrossProfit != 800 {
			t.Fatalf("unexpected margin: %+v", s)
		}
	})

	t.Run("set column decomposes for cost", func(t *testing.T) {
		svc := newAnalytics(t, []ledgerdomain.Row{
			row(jst(11, 0), 700, map[string]int64{"焼きそば&ラムネセット": 1}),
		})
		rep, err := svc.Report(context.Background(), Options{})
		if err != nil {
			t.Fatalf("report failed: %v", err)
		}
		// Set carries one 焼きそば (180) and one ラムネ (90).
		if rep.Summary.TotalCost != 270 {
			t.Fatalf("expected cost 270, got %d", rep.Summary.TotalCost)
		}
	})
}

func TestRankings(t *testing.T) {
	svc := newAnalytics(t, []ledgerdomain.Row{
		row(jst(11, 0), 1150, map[string]int64{"焼きそば": 1, "【特別割引券】焼きそば&ラムネセット": 1, "缶ジュース": 1}),
		row(jst(11, 5), 700, map[string]int64{"焼きそば&ラムネセット": 1}),
	})

	rep, err := svc.Report(context.Background(), Options{})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	byName := map[string]struct{ qty, rev int64 }{}
	for _, it := range rep.ByRevenue {
		byName[it.Name] = struct{ qty, rev int64 }{it.Quantity, it.Revenue}
	}

	t.Run("coupon folds into canonical set at full price", func(t *testing.T) {
		got := byName["焼きそば&ラムネセット"]
		if got.qty != 2 || got.rev != 1400 {
			t.Fatalf("expected qty 2 rev 1400, got %+v", got)
		}
	})

	t.Run("ad-hoc counter excluded from ranking", func(t *testing.T) {
		if _, ok := byName[ledgerdomain.ColAdHoc]; ok {
			t.Fatal("ad-hoc counter must not be ranked")
		}
	})

	t.Run("revenue ranking order", func(t *testing.T) {
		if rep.ByRevenue[0].Name != "焼きそば&ラムネセット" {
			t.Fatalf("expected set on top, got %s", rep.ByRevenue[0].Name)
		}
	})

	t.Run("ties keep catalog declaration order", func(t *testing.T) {
		// All zero-quantity items tie at 0; declaration order must
		// survive the stable sort.
		var zeros []string
		for _, it := range rep.ByQuantity {
			if it.Quantity == 0 {
				zeros = append(zeros, it.Name)
			}
		}
		want := []string{"焼きとうもろこし", "フランクフルト", "ラムネ", "焼きそば&缶ジュースセット"}
		if len(zeros) != len(want) {
			t.Fatalf("expected %d zero items, got %v", len(want), zeros)
		}
		for i := range want {
			if zeros[i] != want[i] {
				t.Fatalf("tie order broken: %v", zeros)
			}
		}
	})
}

func TestTrendIsDense(t *testing.T) {
	svc := newAnalytics(t, []ledgerdomain.Row{
		row(jst(10, 0), 500, map[string]int64{"焼きそば": 1}),
		row(jst(10, 50), 250, map[string]int64{"ラムネ": 1}),
	})

	rep, err := svc.Report(context.Background(), Options{BucketMinutes: 10})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if len(rep.Trend) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(rep.Trend))
	}
	if rep.Trend[0].Count != 1 || rep.Trend[0].Revenue != 500 {
		t.Fatalf("unexpected first bucket: %+v", rep.Trend[0])
	}
	for i := 1; i <= 4; i++ {
		if rep.Trend[i].Count != 0 || rep.Trend[i].Revenue != 0 {
			t.Fatalf("bucket %d should be empty: %+v", i, rep.Trend[i])
		}
	}
	if rep.Trend[5].Count != 1 || rep.Trend[5].Revenue != 250 {
		t.Fatalf("unexpected last bucket: %+v", rep.Trend[5])
	}
	if got := rep.Trend[1].BucketStart; !got.Equal(jst(10, 10)) {
		t.Fatalf("expected bucket start 10:10, got %v", got)
	}
}

func TestUtilization(t *testing.T) {
	svc := newAnalytics(t, []ledgerdomain.Row{
		row(jst(11, 0), 0, map[string]int64{"焼きそば&ラムネセット": 2}),
		row(jst(11, 5), 0, map[string]int64{"【経シス割引券】焼きそば&ラムネセット": 1, ledgerdomain.ColAdHoc: 1}),
	})

	rep, err := svc.Report(context.Background(), Options{})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	u := rep.Utilization
	if u.TotalBundles != 4 {
		t.Fatalf("expected 4 bundles, got %d", u.TotalBundles)
	}
	if u.AdHocCount != 1 {
		t.Fatalf("expected 1 ad-hoc, got %d", u.AdHocCount)
	}
	// 1 coupon + 1 ad-hoc out of 4.
	if math.Abs(u.DiscountRate-0.5) > 1e-9 {
		t.Fatalf("expected discount rate 0.5, got %f", u.DiscountRate)
	}

	found := false
	for _, fam := range u.Families {
		if fam.Name != "焼きそば&ラムネセット" {
			continue
		}
		found = true
		if fam.Total != 3 || fam.Discounted != 1 {
			t.Fatalf("unexpected family stats: %+v", fam)
		}
	}
	if !found {
		t.Fatalf("family missing: %+v", u.Families)
	}
}

func TestCoPurchase(t *testing.T) {
	svc := newAnalytics(t, []ledgerdomain.Row{
		row(jst(11, 0), 0, map[string]int64{"焼きそば": 1, "ラムネ": 2}),
		row(jst(11, 5), 0, map[string]int64{"焼きそば": 1, "缶ジュース": 1}),
		row(jst(11, 10), 0, map[string]int64{"ラムネ": 1}),
	})

	t.Run("unknown target", func(t *testing.T) {
		if _, err := svc.CoPurchase(context.Background(), "たこ焼き"); !errors.Is(err, ErrUnknownItem) {
			t.Fatalf("expected ErrUnknownItem, got %v", err)
		}
	})

	t.Run("counts companions in target baskets", func(t *testing.T) {
		got, err := svc.CoPurchase(context.Background(), "焼きそば")
		if err != nil {
			t.Fatalf("co-purchase failed: %v", err)
		}
		if got.Baskets != 2 {
			t.Fatalf("expected 2 baskets, got %d", got.Baskets)
		}
		if len(got.Others) != 2 {
			t.Fatalf("expected 2 companions, got %+v", got.Others)
		}
		if got.Others[0].Name != "ラムネ" || got.Others[0].Quantity != 2 {
			t.Fatalf("unexpected top companion: %+v", got.Others[0])
		}
	})
}
