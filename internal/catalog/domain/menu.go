package domain

// DefaultMenu is the stall's built-in menu, used when no catalog file
// is configured. Prices and costs are yen per unit.
func DefaultMenu() []SKU {
	return []SKU{
		{Name: "焼きそば", Price: 500, Cost: 180, Kind: KindBase},
		{Name: "焼きとうもろこし", Price: 400, Cost: 150, Kind: KindBase},
		{Name: "フランクフルト", Price: 300, Cost: 110, Kind: KindBase},
		{Name: "ラムネ", Price: 250, Cost: 90, Kind: KindBase},
		{Name: "缶ジュース", Price: 150, Cost: 70, Kind: KindBase},

		{Name: "焼きそば&ラムネセット", Price: 700, Kind: KindSet,
			Components: []string{"焼きそば", "ラムネ"}},
		{Name: "焼きそば&缶ジュースセット", Price: 600, Kind: KindSet,
			Components: []string{"焼きそば", "缶ジュース"}},

		{Name: "【経シス割引券】焼きそば&ラムネセット", Price: 600, Kind: KindCoupon,
			Components: []string{"焼きそば", "ラムネ"},
			Canonical:  "焼きそば&ラムネセット"},
		{Name: "【特別割引券】焼きそば&ラムネセット", Price: 500, Kind: KindCoupon,
			Components: []string{"焼きそば", "ラムネ"},
			Canonical:  "焼きそば&ラムネセット"},
		{Name: "【PiedPiper割引券】焼きそば&缶ジュースセット", Price: 500, Kind: KindCoupon,
			Components: []string{"焼きそば", "缶ジュース"},
			Canonical:  "焼きそば&缶ジュースセット"},
	}
}
