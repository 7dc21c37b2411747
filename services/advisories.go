package services

// AdvisoryKind classifies a display-only notice.
type AdvisoryKind string

const (
	AdvisoryReseller          AdvisoryKind = "reseller_byod"
	AdvisoryQualityMetrics    AdvisoryKind = "quality_metrics"
	AdvisorySignatureDiscount AdvisoryKind = "signature_discount"
)

const (
	resellerMessage = "This customer's current carrier is a reseller! When porting the numbers over " +
		"to AT&T service you must do as as a 'Bring-Your-Own-Device' port, then upgrade the devices " +
		"after the line is successfully ported over!"
	qualityMessage   = "This rate plan will negatively impact the store's quality metrics."
	signatureMessage = "If this customer qualifies for a signature discount, we can offer them better " +
		"service at the same price."
)

// Advisory is a notice for the sales rep. LineID is empty for account-wide
// notices.
type Advisory struct {
	Kind    AdvisoryKind `json:"kind"`
	LineID  string       `json:"line_id,omitempty"`
	Message string       `json:"message"`
}

// Advisories derives the notices for b. They never affect pricing.
func (e *Engine) Advisories(b Bill) []Advisory {
	c := e.catalog
	out := []Advisory{}
	if b.Account.Carrier.IsReseller() {
		out = append(out, Advisory{Kind: AdvisoryReseller, Message: resellerMessage})
	}
	if !b.Account.Carrier.IsPrimary() {
		return out
	}

	flatRate := c.hasFlatRateLine(b.Lines)
	for _, l := range b.Lines {
		if l.DataDevice || l.Label == "" {
			continue
		}
		switch l.Label {
		case c.FlatRatePlan, c.PremiumPlan:
		case c.ValuePlan:
			if !flatRate {
				out = append(out, Advisory{Kind: AdvisorySignatureDiscount, LineID: l.ID, Message: signatureMessage})
			}
		default:
			out = append(out, Advisory{Kind: AdvisoryQualityMetrics, LineID: l.ID, Message: qualityMessage})
		}
	}
	return out
}

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PlanOptions lists the plans offered on acct. The flat-rate plan is hidden
// when the account discount applies.
func (c *Catalog) PlanOptions(acct Account) []Option {
	out := []Option{{Value: "", Label: "Select plan..."}}
	for _, name := range c.PlanNames() {
		if acct.Discount25Eligible && name == c.FlatRatePlan {
			continue
		}
		out = append(out, Option{Value: name, Label: name})
	}
	return out
}

// DeviceOptions lists the data device classes.
func (c *Catalog) DeviceOptions() []Option {
	out := []Option{{Value: "", Label: "Select type..."}}
	for _, name := range c.DeviceNames() {
		out = append(out, Option{Value: name, Label: name})
	}
	return out
}

// ReplacementOptions lists the plans a rep can pitch to another carrier's
// customer.
func (c *Catalog) ReplacementOptions() []Option {
	out := []Option{{Value: "", Label: "No suggestion"}}
	for _, name := range c.PlanNames() {
		out = append(out, Option{Value: name, Label: name})
	}
	return out
}

// CarrierOptions lists the selectable carriers.
func CarrierOptions() []Option {
	out := []Option{{Value: "", Label: "Select carrier..."}}
	for _, c := range carriers {
		out = append(out, Option{Value: string(c), Label: string(c)})
	}
	return out
}
