package services

import "github.com/google/uuid"

// MaxLines is the largest number of lines a bill may hold.
const MaxLines = 10

// Carrier is the customer's current carrier.
type Carrier string

const (
	CarrierUnset            Carrier = ""
	CarrierATT              Carrier = "AT&T"
	CarrierConsumerCellular Carrier = "Consumer Cellular"
	CarrierCricket          Carrier = "Cricket"
	CarrierOther            Carrier = "Other"
	CarrierSpectrum         Carrier = "Spectrum"
	CarrierTMobile          Carrier = "T Mobile"
	CarrierVerizon          Carrier = "Verizon"
)

var carriers = []Carrier{
	CarrierATT,
	CarrierConsumerCellular,
	CarrierCricket,
	CarrierOther,
	CarrierSpectrum,
	CarrierTMobile,
	CarrierVerizon,
}

// IsPrimary reports whether c is the carrier whose rate plans the store sells.
func (c Carrier) IsPrimary() bool { return c == CarrierATT }

// IsSet reports whether a carrier has been chosen.
func (c Carrier) IsSet() bool { return c != CarrierUnset }

// IsReseller reports whether c resells another network, which requires a
// bring-your-own-device port.
func (c Carrier) IsReseller() bool {
	return c == CarrierCricket || c == CarrierConsumerCellular
}

// Valid reports whether c is unset or one of the known carriers.
func (c Carrier) Valid() bool {
	if c == CarrierUnset {
		return true
	}
	for _, k := range carriers {
		if c == k {
			return true
		}
	}
	return false
}

// Line is one phone or data-device line on the bill.
type Line struct {
	ID                   string  `json:"id" validate:"required"`
	CustomerName         string  `json:"customer_name"`
	Label                string  `json:"label"`
	PricePerMonth        float64 `json:"price_per_month" validate:"gte=0"`
	Hotspot              bool    `json:"hotspot"`
	DataDevice           bool    `json:"data_device"`
	SuggestedReplacement string  `json:"suggested_replacement"`
	AddOnPro1            bool    `json:"add_on_pro1"`
	AddOnPro4            bool    `json:"add_on_pro4"`
	AddOnHTP             bool    `json:"add_on_htp"`
	AddOnTurbo           bool    `json:"add_on_turbo"`
}

// NewLine returns an empty line with a fresh identifier.
func NewLine() Line {
	return Line{ID: uuid.NewString()}
}

// Account holds the account-wide flags.
type Account struct {
	Carrier            Carrier `json:"carrier" validate:"carrier"`
	AIAEligible        bool    `json:"aia_eligible"`
	Discount25Eligible bool    `json:"discount25_eligible"`
	Senior55           bool    `json:"senior55"`
	KickerUnlocked     bool    `json:"kicker_unlocked"`
	InternetAir        bool    `json:"internet_air"`
}

// AccountHolder is the display-only contact block.
type AccountHolder struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Employer string `json:"employer"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// Bill is the working document: account flags plus the ordered line roster.
type Bill struct {
	Account       Account       `json:"account"`
	Holder        AccountHolder `json:"holder"`
	SalesRepName  string        `json:"sales_rep_name"`
	SalesRepNotes string        `json:"sales_rep_notes"`
	Lines         []Line        `json:"lines" validate:"min=1,max=10,unique=ID,dive"`
}

// NewBill returns a bill with no carrier and one empty line.
func NewBill() Bill {
	return Bill{Lines: []Line{NewLine()}}
}

// clone returns a copy of b that shares no line storage with it.
func (b Bill) clone() Bill {
	b.Lines = cloneLines(b.Lines)
	return b
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// lineIndex returns the position of the line with the given id, or -1.
func (b Bill) lineIndex(id string) int {
	for i, l := range b.Lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Total returns the sum of the current line prices.
func (b Bill) Total() float64 {
	return linesTotal(b.Lines)
}

func linesTotal(lines []Line) float64 {
	prices := make([]float64, len(lines))
	for i, l := range lines {
		prices[i] = l.PricePerMonth
	}
	return SumCents(prices...)
}
