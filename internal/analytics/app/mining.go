package app

import (
	"sort"

	"github.com/keisys/teppan-register/internal/analytics/domain"
	ledgerdomain "github.com/keisys/teppan-register/internal/ledger/domain"
)

// mine runs a small apriori over the basket matrix: itemsets up to size
// two, then rules in both directions from each frequent pair. Pairs are
// enumerated in catalog declaration order so the output is stable.
func (s *Service) mine(rows []ledgerdomain.Row, minSupport, minLift float64) domain.Mining {
	if len(rows) < MinMiningTransactions {
		return domain.Mining{
			InsufficientData: true,
			NeedMore:         MinMiningTransactions - len(rows),
		}
	}

	cols := s.analysisColumns()
	names := make([]string, len(cols))
	for i, sku := range cols {
		names[i] = sku.Name
	}

	baskets := make([]map[string]bool, 0, len(rows))
	for _, r := range rows {
		f := s.folded(r)
		b := make(map[string]bool, len(names))
		for _, name := range names {
			if f[name] > 0 {
				b[name] = true
			}
		}
		baskets = append(baskets, b)
	}

	n := float64(len(baskets))
	single := make(map[string]float64, len(names))
	for _, name := range names {
		count := 0
		for _, b := range baskets {
			if b[name] {
				count++
			}
		}
		single[name] = float64(count) / n
	}

	var rules []domain.Rule
	for i := 0; i < len(names); i++ {
		if single[names[i]] < minSupport {
			continue
		}
		for j := i + 1; j < len(names); j++ {
			if single[names[j]] < minSupport {
				continue
			}

			count := 0
			for _, b := range baskets {
				if b[names[i]] && b[names[j]] {
					count++
				}
			}
			support := float64(count) / n
			if support < minSupport {
				continue
			}

			rules = append(rules,
				rule(names[i], names[j], support, single),
				rule(names[j], names[i], support, single),
			)
		}
	}

	kept := rules[:0]
	for _, r := range rules {
		if r.Lift > minLift {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Lift != kept[j].Lift {
			return kept[i].Lift > kept[j].Lift
		}
		return kept[i].Support > kept[j].Support
	})
	return domain.Mining{Rules: kept}
}

func rule(antecedent, consequent string, support float64, single map[string]float64) domain.Rule {
	confidence := support / single[antecedent]
	return domain.Rule{
		Antecedent: []string{antecedent},
		Consequent: []string{consequent},
		Support:    support,
		Confidence: confidence,
		Lift:       confidence / single[consequent],
	}
}
