package services

// Quote is the read-only set of figures shown next to a bill.
type Quote struct {
	Regime          string            `json:"regime"`
	MonthlyTotal    float64           `json:"monthly_total"`
	BillableLines   int               `json:"billable_lines"`
	UpsellAvailable bool              `json:"upsell_available"`
	Upsell          UpsellDeltas      `json:"upsell"`
	Commission      CommissionSummary `json:"commission"`
	InternetMonthly float64           `json:"internet_monthly"`
	Advisories      []Advisory        `json:"advisories"`
}

// UpsellDeltas returns the one-more-line deltas for b under its regime.
func (e *Engine) UpsellDeltas(b Bill) UpsellDeltas {
	return e.RegimeFor(b.Account.Carrier).Upsell(b.Lines, b.Account)
}

// LiveCommission returns the commission panel for b.
func (e *Engine) LiveCommission(b Bill) CommissionSummary {
	return e.RegimeFor(b.Account.Carrier).LiveCommission(b)
}

// Quote computes the figures for b without changing it.
func (e *Engine) Quote(b Bill) Quote {
	r := e.RegimeFor(b.Account.Carrier)
	deltas := r.Upsell(b.Lines, b.Account)
	return Quote{
		Regime:          r.Name(),
		MonthlyTotal:    b.Total(),
		BillableLines:   e.catalog.BillablePhoneLines(b.Lines),
		UpsellAvailable: deltas.Available(),
		Upsell:          deltas,
		Commission:      r.LiveCommission(b),
		InternetMonthly: e.catalog.Internet.For(b.Account.AIAEligible),
		Advisories:      e.Advisories(b),
	}
}
