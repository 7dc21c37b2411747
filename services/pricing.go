// Package services implements line pricing, discounts, roster repricing,
// commission summaries and bill export for the rerate assistant.
package services

// BillablePhoneLines counts the lines that set the multi-line tier: phone
// lines that are not on the flat-rate plan.
func (c *Catalog) BillablePhoneLines(lines []Line) int {
	n := 0
	for _, l := range lines {
		if !l.DataDevice && l.Label != c.FlatRatePlan {
			n++
		}
	}
	return n
}

// BasePrice returns the pre-discount monthly price of l when count billable
// phone lines share the account.
func (c *Catalog) BasePrice(l Line, count int) float64 {
	if l.DataDevice {
		return c.DevicePrice(l.Label)
	}
	price := c.TierPrice(l.Label, count)
	if l.Label == c.FlatRatePlan && l.Hotspot {
		price += c.HotspotSurcharge
	}
	return price
}

// hasFlatRateLine reports whether any line is on the flat-rate plan.
func (c *Catalog) hasFlatRateLine(lines []Line) bool {
	for _, l := range lines {
		if l.Label == c.FlatRatePlan {
			return true
		}
	}
	return false
}

// ApplyDiscounts runs base through the discount stack. The family discount
// applies to every line not on the flat-rate plan when lines contains a
// flat-rate line; the account discount applies after it when discount25 is
// set. Each stage rounds to cents, and so does an undiscounted base.
func (c *Catalog) ApplyDiscounts(lines []Line, base float64, label string, discount25 bool) float64 {
	price := base
	if label != c.FlatRatePlan && c.hasFlatRateLine(lines) {
		price = applyRate(price, c.FamilyDiscount)
	}
	if discount25 {
		price = applyRate(price, c.AccountDiscount)
	}
	return nonNegative(RoundCents(price))
}

// LinePrice prices l at count billable lines with lines as discount context.
func (c *Catalog) LinePrice(lines []Line, l Line, count int, discount25 bool) float64 {
	return c.ApplyDiscounts(lines, c.BasePrice(l, count), l.Label, discount25)
}
