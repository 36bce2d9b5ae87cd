package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/keisys/teppan-register/internal/analytics/domain"
	catalogdomain "github.com/keisys/teppan-register/internal/catalog/domain"
	ledgerdomain "github.com/keisys/teppan-register/internal/ledger/domain"
)

var (
	ErrInvalidBucket = errors.New("invalid trend bucket width")
	ErrUnknownItem   = errors.New("unknown analysis item")
)

// MinMiningTransactions is the smallest ledger that association mining
// will run on. Below it the result is an explicit "come back later".
const MinMiningTransactions = 11

var validBuckets = map[int]bool{10: true, 20: true, 30: true, 60: true}

type Options struct {
	BucketMinutes int     // 10, 20, 30 or 60; 0 means 30
	MinSupport    float64 // 0 means 0.05
	MinLift       float64 // 0 means 1
}

// RowSource hands over the decoded ledger, oldest first.
type RowSource interface {
	Rows(ctx context.Context) ([]ledgerdomain.Row, error)
}

// Service derives the dashboard numbers from the raw ledger. Nothing is
// cached or incremental: the same ledger content always produces the
// same report.
type Service struct {
	source RowSource
	cat    catalogdomain.Catalog
}

func NewService(source RowSource, cat catalogdomain.Catalog) *Service {
	return &Service{source: source, cat: cat}
}

func (s *Service) Report(ctx context.Context, opts Options) (domain.Report, error) {
	if opts.BucketMinutes == 0 {
		opts.BucketMinutes = 30
	}
	if !validBuckets[opts.BucketMinutes] {
		return domain.Report{}, fmt.Errorf("%w: %d minutes", ErrInvalidBucket, opts.BucketMinutes)
	}
	if opts.MinSupport == 0 {
		opts.MinSupport = 0.05
	}
	if opts.MinLift == 0 {
		opts.MinLift = 1
	}

	rows, err := s.source.Rows(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.Report{BucketMinutes: opts.BucketMinutes}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Summary = s.summary(rows)
		return nil
	})
	g.Go(func() error {
		report.ByRevenue, report.ByQuantity = s.rankings(rows)
		return nil
	})
	g.Go(func() error {
		report.Trend = s.trend(rows, opts.BucketMinutes)
		return nil
	})
	g.Go(func() error {
		report.Mining = s.mine(rows, opts.MinSupport, opts.MinLift)
		return nil
	})
	g.Go(func() error {
		report.Utilization = s.utilization(rows)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Report{}, err
	}

	return report, nil
}

// analysisColumns is the ranking/basket item set: base items plus
// canonical sets, in catalog declaration order. Coupon columns fold
// into their canonical set; the ad-hoc counter stays out because it
// names no single product (its base components are already columns).
func (s *Service) analysisColumns() []catalogdomain.SKU {
	var out []catalogdomain.SKU
	for _, sku := range s.cat.Ordered() {
		if sku.Kind == catalogdomain.KindBase || sku.Kind == catalogdomain.KindSet {
			out = append(out, sku)
		}
	}
	return out
}

// folded returns a row's quantities with coupon columns folded into
// their canonical set.
func (s *Service) folded(r ledgerdomain.Row) map[string]int64 {
	out := make(map[string]int64, len(r.Quantities))
	for col, qty := range r.Quantities {
		out[s.cat.CanonicalOf(col)] += qty
	}
	return out
}

func (s *Service) summary(rows []ledgerdomain.Row) domain.Summary {
	sum := domain.Summary{TransactionCount: len(rows)}

	// Effective base quantities: base columns plus set and coupon
	// columns decomposed through the catalog. Custom bundles already
	// carried their components into base columns at write time.
	baseQty := make(map[string]int64)
	for _, r := range rows {
		sum.TotalSales += r.Total
		for _, sku := range s.cat.Ordered() {
			qty := r.Quantities[sku.Name]
			if qty == 0 {
				continue
			}
			switch sku.Kind {
			case catalogdomain.KindBase:
				baseQty[sku.Name] += qty
			case catalogdomain.KindSet, catalogdomain.KindCoupon:
				for _, comp := range sku.Components {
					baseQty[comp] += qty
				}
			}
		}
	}

	for _, name := range s.cat.BaseNames() {
		if sku, ok := s.cat.Lookup(name); ok {
			sum.TotalCost += baseQty[name] * sku.Cost
		}
	}
	sum.GrossProfit = sum.TotalSales - sum.TotalCost

	if len(rows) > 0 {
		sum.AvgTicket = float64(sum.TotalSales) / float64(len(rows))
	}
	return sum
}

func (s *Service) rankings(rows []ledgerdomain.Row) (byRevenue, byQuantity []domain.ItemSales) {
	cols := s.analysisColumns()

	totals := make(map[string]int64, len(cols))
	for _, r := range rows {
		f := s.folded(r)
		for _, sku := range cols {
			totals[sku.Name] += f[sku.Name]
		}
	}

	items := make([]domain.ItemSales, 0, len(cols))
	for _, sku := range cols {
		qty := totals[sku.Name]
		items = append(items, domain.ItemSales{
			Name:     sku.Name,
			Quantity: qty,
			Revenue:  qty * sku.Price,
		})
	}

	byRevenue = make([]domain.ItemSales, len(items))
	byQuantity = make([]domain.ItemSales, len(items))
	copy(byRevenue, items)
	copy(byQuantity, items)

	// Stable sorts keep catalog declaration order on ties.
	sort.SliceStable(byRevenue, func(i, j int) bool { return byRevenue[i].Revenue > byRevenue[j].Revenue })
	sort.SliceStable(byQuantity, func(i, j int) bool { return byQuantity[i].Quantity > byQuantity[j].Quantity })
	return byRevenue, byQuantity
}

func (s *Service) trend(rows []ledgerdomain.Row, bucketMinutes int) []domain.TrendPoint {
	if len(rows) == 0 {
		return nil
	}

	width := time.Duration(bucketMinutes) * time.Minute

	first, last := rows[0].Timestamp, rows[0].Timestamp
	for _, r := range rows[1:] {
		if r.Timestamp.Before(first) {
			first = r.Timestamp
		}
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}

	// JST sits at a whole-hour UTC offset and widths divide an hour,
	// so Truncate lands on natural wall-clock boundaries.
	start := first.Truncate(width)
	end := last.Truncate(width)

	n := int(end.Sub(start)/width) + 1
	points := make([]domain.TrendPoint, n)
	for i := range points {
		points[i].BucketStart = start.Add(time.Duration(i) * width)
	}
	for _, r := range rows {
		i := int(r.Timestamp.Truncate(width).Sub(start) / width)
		points[i].Count++
		points[i].Revenue += r.Total
	}
	return points
}

func (s *Service) utilization(rows []ledgerdomain.Row) domain.Utilization {
	var u domain.Utilization

	couponOf := make(map[string][]string) // canonical set -> coupon columns
	for _, sku := range s.cat.Ordered() {
		if sku.Kind == catalogdomain.KindCoupon {
			couponOf[sku.Canonical] = append(couponOf[sku.Canonical], sku.Name)
		}
	}

	var discounted int64
	for _, sku := range s.cat.Ordered() {
		if sku.Kind != catalogdomain.KindSet {
			continue
		}
		fam := domain.BundleFamily{Name: sku.Name}
		for _, r := range rows {
			fam.Total += r.Quantities[sku.Name]
			for _, coupon := range couponOf[sku.Name] {
				fam.Total += r.Quantities[coupon]
				fam.Discounted += r.Quantities[coupon]
			}
		}
		discounted += fam.Discounted
		u.TotalBundles += fam.Total
		u.Families = append(u.Families, fam)
	}

	for _, r := range rows {
		u.AdHocCount += r.Quantities[ledgerdomain.ColAdHoc]
	}
	u.TotalBundles += u.AdHocCount

	if u.TotalBundles > 0 {
		u.DiscountRate = float64(discounted+u.AdHocCount) / float64(u.TotalBundles)
	}
	return u
}

// CoPurchase answers "people who bought the target also bought" for one
// analysis column, counting folded quantities in the target's baskets.
func (s *Service) CoPurchase(ctx context.Context, target string) (domain.CoPurchase, error) {
	cols := s.analysisColumns()
	found := false
	for _, sku := range cols {
		if sku.Name == target {
			found = true
			break
		}
	}
	if !found {
		return domain.CoPurchase{}, fmt.Errorf("%w: %q", ErrUnknownItem, target)
	}

	rows, err := s.source.Rows(ctx)
	if err != nil {
		return domain.CoPurchase{}, err
	}

	out := domain.CoPurchase{Target: target}
	totals := make(map[string]int64)
	for _, r := range rows {
		f := s.folded(r)
		if f[target] == 0 {
			continue
		}
		out.Baskets++
		for _, sku := range cols {
			if sku.Name == target {
				continue
			}
			totals[sku.Name] += f[sku.Name]
		}
	}

	for _, sku := range cols {
		if qty := totals[sku.Name]; qty > 0 {
			out.Others = append(out.Others, domain.CoPurchaseEntry{Name: sku.Name, Quantity: qty})
		}
	}
	sort.SliceStable(out.Others, func(i, j int) bool { return out.Others[i].Quantity > out.Others[j].Quantity })
	return out, nil
}
