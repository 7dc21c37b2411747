package services

import "fmt"

// CommissionLine is one row of a commission summary.
type CommissionLine struct {
	Item   CommissionItem `json:"item"`
	Label  string         `json:"label"`
	Count  int            `json:"count"`
	Rate   float64        `json:"rate"`
	Amount float64        `json:"amount"`

	// Monthly is the customer-facing monthly change for the row, when known.
	// MonthlyMax is set when the change is a range.
	Monthly    *float64 `json:"monthly,omitempty"`
	MonthlyMax *float64 `json:"monthly_max,omitempty"`
}

// CommissionSummary is the commission view of a bill under one regime.
type CommissionSummary struct {
	Regime string           `json:"regime"`
	Items  []CommissionLine `json:"items"`
	Total  float64          `json:"total"`
}

func (c *Catalog) commissionLine(item CommissionItem, label string, count int, kicker bool) CommissionLine {
	rate := c.Commission(item, kicker)
	return CommissionLine{
		Item:   item,
		Label:  label,
		Count:  count,
		Rate:   rate,
		Amount: SumCents(float64(count) * rate),
	}
}

func (c *Catalog) deviceRange() (lo, hi float64) {
	for i, d := range c.Devices {
		if i == 0 || d.Price < lo {
			lo = d.Price
		}
		if d.Price > hi {
			hi = d.Price
		}
	}
	return lo, hi
}

func floatPtr(v float64) *float64 { return &v }

// LiveCommission lists the four fixed opportunities with the monthly change
// each would add. The total is the fixed potential total, not the row sum.
func (p PrimaryCarrierPricing) LiveCommission(b Bill) CommissionSummary {
	c := p.catalog
	kicker := b.Account.KickerUnlocked
	deltas := p.Upsell(b.Lines, b.Account)

	premium := c.commissionLine(ItemPremiumLine, fmt.Sprintf("Add one more line (%s)", c.PremiumPlan), 1, kicker)
	premium.Monthly = deltas.Premium
	extra := c.commissionLine(ItemExtraLine, fmt.Sprintf("Add one more line (%s)", c.ValuePlan), 1, kicker)
	extra.Monthly = deltas.Extra
	device := c.commissionLine(ItemDataDevice, "Add tablet or wearable", 1, kicker)
	lo, hi := c.deviceRange()
	device.Monthly = floatPtr(lo)
	if hi != lo {
		device.MonthlyMax = floatPtr(hi)
	}
	internet := c.commissionLine(ItemInternet, "Add High Speed Internet", 1, kicker)
	internet.Monthly = floatPtr(c.Internet.For(b.Account.AIAEligible))

	return CommissionSummary{
		Regime: RegimePrimary,
		Items:  []CommissionLine{premium, extra, device, internet},
		Total:  c.Totals.Live.For(kicker),
	}
}

// ExportCommission lists the line opportunities whose delta is offered plus
// internet. The total is fixed and drops to the partial figure when either
// delta is missing.
func (p PrimaryCarrierPricing) ExportCommission(b Bill, deltas UpsellDeltas) CommissionSummary {
	c := p.catalog
	kicker := b.Account.KickerUnlocked
	items := make([]CommissionLine, 0, 3)

	if deltas.Premium != nil {
		row := c.commissionLine(ItemPremiumLine, fmt.Sprintf("Add one more line (%s)", c.PremiumPlan), 1, kicker)
		row.Monthly = deltas.Premium
		items = append(items, row)
	}
	if deltas.Extra != nil {
		row := c.commissionLine(ItemExtraLine, fmt.Sprintf("Add one more line (%s)", c.ValuePlan), 1, kicker)
		row.Monthly = deltas.Extra
		items = append(items, row)
	}
	internet := c.commissionLine(ItemInternet, "Add High Speed Internet", 1, kicker)
	internet.Monthly = floatPtr(c.Internet.For(b.Account.AIAEligible))
	items = append(items, internet)

	total := c.Totals.ExportPartial.For(kicker)
	if deltas.Available() {
		total = c.Totals.ExportBothDeltas.For(kicker)
	}
	return CommissionSummary{Regime: RegimePrimary, Items: items, Total: total}
}

type pitchCounts struct {
	premium, extra, devices int
	pro1, pro4, htp, turbo  int
}

func (c *Catalog) countPitches(lines []Line) pitchCounts {
	var n pitchCounts
	for _, l := range lines {
		switch l.SuggestedReplacement {
		case c.PremiumPlan:
			n.premium++
		case c.ValuePlan:
			n.extra++
		}
		if l.DataDevice && c.IsDevice(l.Label) {
			n.devices++
		}
		if l.AddOnPro1 {
			n.pro1++
		}
		if l.AddOnPro4 {
			n.pro4++
		}
		if l.AddOnHTP {
			n.htp++
		}
		if l.AddOnTurbo {
			n.turbo++
		}
	}
	return n
}

func summarize(regime string, rows []CommissionLine) CommissionSummary {
	s := CommissionSummary{Regime: regime, Items: make([]CommissionLine, 0, len(rows))}
	amounts := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.Count == 0 {
			continue
		}
		s.Items = append(s.Items, r)
		amounts = append(amounts, r.Amount)
	}
	s.Total = SumCents(amounts...)
	return s
}

func (c *Catalog) addOnRows(n pitchCounts, kicker bool) []CommissionLine {
	return []CommissionLine{
		c.commissionLine(ItemPro1, "Pro 1", n.pro1, kicker),
		c.commissionLine(ItemPro4, "Pro 4", n.pro4, kicker),
		c.commissionLine(ItemHTP, "HTP", n.htp, kicker),
		c.commissionLine(ItemTurbo, "Turbo", n.turbo, kicker),
	}
}

// LiveCommission counts pitched replacements, data devices and add-ons.
// Internet counts only when the customer was pitched internet air. Rows with
// a zero count are omitted.
func (o OtherCarrierPricing) LiveCommission(b Bill) CommissionSummary {
	c := o.catalog
	kicker := b.Account.KickerUnlocked
	n := c.countPitches(b.Lines)

	internet := 0
	if b.Account.InternetAir {
		internet = 1
	}
	rows := []CommissionLine{
		c.commissionLine(ItemPremiumLine, c.PremiumPlan, n.premium, kicker),
		c.commissionLine(ItemExtraLine, c.ValuePlan, n.extra, kicker),
		c.commissionLine(ItemDataDevice, "Tablet / Wearable", n.devices, kicker),
		c.commissionLine(ItemInternet, "High Speed Internet", internet, kicker),
	}
	return summarize(RegimeOther, append(rows, c.addOnRows(n, kicker)...))
}

// ExportCommission is the exported figure: pitched replacements, internet
// assumed sold, and add-ons. Data devices are not part of it.
func (o OtherCarrierPricing) ExportCommission(b Bill, _ UpsellDeltas) CommissionSummary {
	c := o.catalog
	kicker := b.Account.KickerUnlocked
	n := c.countPitches(b.Lines)

	rows := []CommissionLine{
		c.commissionLine(ItemPremiumLine, c.PremiumPlan, n.premium, kicker),
		c.commissionLine(ItemExtraLine, c.ValuePlan, n.extra, kicker),
		c.commissionLine(ItemInternet, "High Speed Internet", 1, kicker),
	}
	return summarize(RegimeOther, append(rows, c.addOnRows(n, kicker)...))
}
