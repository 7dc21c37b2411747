package services

// Engine prices bills against one catalog. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	catalog *Catalog
	primary PrimaryCarrierPricing
	other   OtherCarrierPricing
}

// NewEngine returns an engine for c. A nil catalog uses the built-in table.
func NewEngine(c *Catalog) *Engine {
	if c == nil {
		c = DefaultCatalog()
	}
	return &Engine{
		catalog: c,
		primary: PrimaryCarrierPricing{catalog: c},
		other:   OtherCarrierPricing{catalog: c},
	}
}

// Catalog returns the engine's reference tables.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// RegimeFor selects the regime for a carrier.
func (e *Engine) RegimeFor(c Carrier) Regime {
	switch {
	case c.IsPrimary():
		return e.primary
	case c.IsSet():
		return e.other
	default:
		return UnsetCarrierPricing{}
	}
}

// RepriceRoster recomputes every line price from the rate table when the
// account is on the primary carrier. Other carriers get an unchanged copy.
func (e *Engine) RepriceRoster(lines []Line, acct Account) []Line {
	return e.RegimeFor(acct.Carrier).Reprice(lines, acct)
}

// Reprice returns a copy of b with its roster repriced.
func (e *Engine) Reprice(b Bill) Bill {
	return e.reprice(b.clone())
}

func (e *Engine) reprice(b Bill) Bill {
	b.Lines = e.RepriceRoster(b.Lines, b.Account)
	return b
}

// AddLine appends an empty line. It is rejected once the bill holds MaxLines.
func (e *Engine) AddLine(b Bill) (Bill, bool) {
	if len(b.Lines) >= MaxLines {
		return b, false
	}
	nb := b.clone()
	nb.Lines = append(nb.Lines, NewLine())
	return e.reprice(nb), true
}

// RemoveLine drops the line with the given id. The last remaining line
// cannot be removed.
func (e *Engine) RemoveLine(b Bill, id string) (Bill, bool) {
	i := b.lineIndex(id)
	if i < 0 || len(b.Lines) <= 1 {
		return b, false
	}
	nb := b
	nb.Lines = make([]Line, 0, len(b.Lines)-1)
	nb.Lines = append(nb.Lines, b.Lines[:i]...)
	nb.Lines = append(nb.Lines, b.Lines[i+1:]...)
	return e.reprice(nb), true
}

func (e *Engine) updateLine(b Bill, id string, reprice bool, fn func(*Line)) (Bill, bool) {
	i := b.lineIndex(id)
	if i < 0 {
		return b, false
	}
	nb := b.clone()
	fn(&nb.Lines[i])
	if reprice {
		nb = e.reprice(nb)
	}
	return nb, true
}

// SetLinePlan sets the plan (or device class, for data devices) of a line.
func (e *Engine) SetLinePlan(b Bill, id, label string) (Bill, bool) {
	return e.updateLine(b, id, true, func(l *Line) { l.Label = label })
}

// SetDataDevice switches a line between phone and data device. The label is
// cleared because plans and device classes do not overlap.
func (e *Engine) SetDataDevice(b Bill, id string, on bool) (Bill, bool) {
	return e.updateLine(b, id, true, func(l *Line) {
		l.DataDevice = on
		l.Label = ""
	})
}

// SetHotspot toggles the hotspot surcharge of a line.
func (e *Engine) SetHotspot(b Bill, id string, on bool) (Bill, bool) {
	return e.updateLine(b, id, true, func(l *Line) { l.Hotspot = on })
}

// SetDiscount25 toggles the account discount and reprices.
func (e *Engine) SetDiscount25(b Bill, on bool) (Bill, bool) {
	nb := b.clone()
	nb.Account.Discount25Eligible = on
	return e.reprice(nb), true
}

// SetCarrier changes the carrier. Moving onto the primary carrier reprices
// from the rate table; other carriers keep the prices as they are.
func (e *Engine) SetCarrier(b Bill, c Carrier) (Bill, bool) {
	if !c.Valid() {
		return b, false
	}
	nb := b.clone()
	nb.Account.Carrier = c
	return e.reprice(nb), true
}

// SetLinePrice overrides a line price by hand. The override is rounded to
// cents, floored at zero, and kept until the next structural change.
func (e *Engine) SetLinePrice(b Bill, id string, price float64) (Bill, bool) {
	return e.updateLine(b, id, false, func(l *Line) {
		l.PricePerMonth = nonNegative(RoundCents(price))
	})
}

// LineDetails are the display and pitch fields of a line. Nil fields are
// left unchanged.
type LineDetails struct {
	CustomerName         *string `json:"customer_name,omitempty"`
	SuggestedReplacement *string `json:"suggested_replacement,omitempty"`
	DeviceLabel          *string `json:"device_label,omitempty"`
	AddOnPro1            *bool   `json:"add_on_pro1,omitempty"`
	AddOnPro4            *bool   `json:"add_on_pro4,omitempty"`
	AddOnHTP             *bool   `json:"add_on_htp,omitempty"`
	AddOnTurbo           *bool   `json:"add_on_turbo,omitempty"`
}

// UpdateLineDetails applies d to a line without repricing. DeviceLabel only
// applies to data devices outside the primary regime, where device classes
// are recorded for commission but not priced.
func (e *Engine) UpdateLineDetails(b Bill, id string, d LineDetails) (Bill, bool) {
	primary := b.Account.Carrier.IsPrimary()
	return e.updateLine(b, id, false, func(l *Line) {
		if d.CustomerName != nil {
			l.CustomerName = *d.CustomerName
		}
		if d.SuggestedReplacement != nil {
			l.SuggestedReplacement = *d.SuggestedReplacement
		}
		if d.DeviceLabel != nil && l.DataDevice && !primary {
			l.Label = *d.DeviceLabel
		}
		if d.AddOnPro1 != nil {
			l.AddOnPro1 = *d.AddOnPro1
		}
		if d.AddOnPro4 != nil {
			l.AddOnPro4 = *d.AddOnPro4
		}
		if d.AddOnHTP != nil {
			l.AddOnHTP = *d.AddOnHTP
		}
		if d.AddOnTurbo != nil {
			l.AddOnTurbo = *d.AddOnTurbo
		}
	})
}

// AccountUpdate holds the account fields that never affect pricing. Nil
// fields are left unchanged.
type AccountUpdate struct {
	AIAEligible    *bool          `json:"aia_eligible,omitempty"`
	Senior55       *bool          `json:"senior55,omitempty"`
	KickerUnlocked *bool          `json:"kicker_unlocked,omitempty"`
	InternetAir    *bool          `json:"internet_air,omitempty"`
	Holder         *AccountHolder `json:"holder,omitempty"`
	SalesRepName   *string        `json:"sales_rep_name,omitempty"`
	SalesRepNotes  *string        `json:"sales_rep_notes,omitempty"`
}

// UpdateAccount applies u without repricing.
func (e *Engine) UpdateAccount(b Bill, u AccountUpdate) (Bill, bool) {
	nb := b.clone()
	if u.AIAEligible != nil {
		nb.Account.AIAEligible = *u.AIAEligible
	}
	if u.Senior55 != nil {
		nb.Account.Senior55 = *u.Senior55
	}
	if u.KickerUnlocked != nil {
		nb.Account.KickerUnlocked = *u.KickerUnlocked
	}
	if u.InternetAir != nil {
		nb.Account.InternetAir = *u.InternetAir
	}
	if u.Holder != nil {
		nb.Holder = *u.Holder
	}
	if u.SalesRepName != nil {
		nb.SalesRepName = *u.SalesRepName
	}
	if u.SalesRepNotes != nil {
		nb.SalesRepNotes = *u.SalesRepNotes
	}
	return nb, true
}
