package services

// UpsellDeltas are the monthly increases from adding one more line on each
// reference plan. Nil deltas are not offered.
type UpsellDeltas struct {
	Premium *float64 `json:"premium,omitempty"`
	Extra   *float64 `json:"extra,omitempty"`
}

// Available reports whether both deltas are offered.
func (d UpsellDeltas) Available() bool {
	return d.Premium != nil && d.Extra != nil
}

// Upsell computes the deltas for one more billable line. Existing lines are
// rebased at the larger count with the discount stack evaluated against the
// current roster; the current total is the sum of the current prices, so
// manual overrides feed into the delta as entered.
func (p PrimaryCarrierPricing) Upsell(lines []Line, acct Account) UpsellDeltas {
	c := p.catalog
	next := c.BillablePhoneLines(lines) + 1

	rebased := make([]float64, len(lines))
	for i, l := range lines {
		rebased[i] = c.LinePrice(lines, l, next, acct.Discount25Eligible)
	}
	existing := SumCents(rebased...)
	current := linesTotal(lines)

	delta := func(plan string) *float64 {
		added := c.ApplyDiscounts(lines, c.TierPrice(plan, next), plan, acct.Discount25Eligible)
		v := SumCents(existing, added, -current)
		return &v
	}
	return UpsellDeltas{
		Premium: delta(c.PremiumPlan),
		Extra:   delta(c.ValuePlan),
	}
}
