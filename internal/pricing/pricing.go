package pricing

// Tier is one pricing bracket: documents up to MaxChars characters cost
// Price minor currency units. MaxChars <= 0 marks the unbounded catch-all.
type Tier struct {
	MaxChars int64
	Price    int64
}

// DefaultTiers returns the standard CNY pricing table, in cents.
func DefaultTiers() []Tier {
	return []Tier{
		{MaxChars: 1_000, Price: 100},
		{MaxChars: 5_000, Price: 200},
		{MaxChars: 10_000, Price: 300},
		{MaxChars: 50_000, Price: 500},
		{MaxChars: 100_000, Price: 800},
		{MaxChars: 0, Price: 1_000},
	}
}

// Calculator maps a character count to an analysis cost. Tiers must be
// sorted ascending by MaxChars with the catch-all last.
type Calculator struct {
	Tiers     []Tier
	MinCharge int64
}

// Cost returns the price of the first tier whose bound covers charCount,
// clamped to MinCharge to satisfy the payment processor's minimum
// transaction amount. Pure: same input, same output.
func (c Calculator) Cost(charCount int) int64 {
	cost := c.MinCharge
	for _, tier := range c.Tiers {
		if tier.MaxChars <= 0 || int64(charCount) <= tier.MaxChars {
			cost = tier.Price
			break
		}
	}
	if cost < c.MinCharge {
		cost = c.MinCharge
	}
	return cost
}
