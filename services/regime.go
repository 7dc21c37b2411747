package services

// Regime is the pricing and commission policy for a carrier class. The
// primary carrier is repriced from the rate table; other carriers keep
// manual prices and earn commission on pitched replacements.
type Regime interface {
	Name() string
	Reprice(lines []Line, acct Account) []Line
	Upsell(lines []Line, acct Account) UpsellDeltas
	LiveCommission(b Bill) CommissionSummary
	ExportCommission(b Bill, deltas UpsellDeltas) CommissionSummary
}

const (
	RegimePrimary = "primary"
	RegimeOther   = "other"
	RegimeUnset   = "unset"
)

// PrimaryCarrierPricing reprices every line from the rate table.
type PrimaryCarrierPricing struct {
	catalog *Catalog
}

func (PrimaryCarrierPricing) Name() string { return RegimePrimary }

func (p PrimaryCarrierPricing) Reprice(lines []Line, acct Account) []Line {
	c := p.catalog
	out := cloneLines(lines)
	count := c.BillablePhoneLines(out)
	for i := range out {
		out[i].PricePerMonth = c.LinePrice(out, out[i], count, acct.Discount25Eligible)
	}
	return out
}

// OtherCarrierPricing leaves prices as entered.
type OtherCarrierPricing struct {
	catalog *Catalog
}

func (OtherCarrierPricing) Name() string { return RegimeOther }

func (OtherCarrierPricing) Reprice(lines []Line, _ Account) []Line {
	return cloneLines(lines)
}

func (OtherCarrierPricing) Upsell([]Line, Account) UpsellDeltas {
	return UpsellDeltas{}
}

// UnsetCarrierPricing applies before a carrier is chosen: no repricing, no
// deltas and no commission.
type UnsetCarrierPricing struct{}

func (UnsetCarrierPricing) Name() string { return RegimeUnset }

func (UnsetCarrierPricing) Reprice(lines []Line, _ Account) []Line {
	return cloneLines(lines)
}

func (UnsetCarrierPricing) Upsell([]Line, Account) UpsellDeltas {
	return UpsellDeltas{}
}

func (UnsetCarrierPricing) LiveCommission(Bill) CommissionSummary {
	return CommissionSummary{Regime: RegimeUnset, Items: []CommissionLine{}}
}

func (UnsetCarrierPricing) ExportCommission(Bill, UpsellDeltas) CommissionSummary {
	return CommissionSummary{Regime: RegimeUnset, Items: []CommissionLine{}}
}
