package services

import (
	"fmt"
	"strings"
	"time"
)

// Add-on names as printed on exports.
const (
	AddOnPro1  = "Pro 1"
	AddOnPro4  = "Pro 4"
	AddOnHTP   = "HTP"
	AddOnTurbo = "Turbo"
)

// ExportTitle is the heading of every exported summary.
const ExportTitle = "Rerate Assistant - Summary"

// PitchedAddOn is one add-on flagged on one line.
type PitchedAddOn struct {
	LineIndex int    `json:"line_index"`
	AddOn     string `json:"add_on"`
}

// lineAddOns returns the add-ons flagged on l in print order.
func lineAddOns(l Line) []string {
	var out []string
	if l.AddOnPro1 {
		out = append(out, AddOnPro1)
	}
	if l.AddOnPro4 {
		out = append(out, AddOnPro4)
	}
	if l.AddOnHTP {
		out = append(out, AddOnHTP)
	}
	if l.AddOnTurbo {
		out = append(out, AddOnTurbo)
	}
	return out
}

// PitchedAddOns lists every flagged add-on, line by line.
func PitchedAddOns(b Bill) []PitchedAddOn {
	out := []PitchedAddOn{}
	for i, l := range b.Lines {
		for _, a := range lineAddOns(l) {
			out = append(out, PitchedAddOn{LineIndex: i, AddOn: a})
		}
	}
	return out
}

// Outcome records whether an opportunity was sold and, if not, why.
type Outcome struct {
	Sold       bool   `json:"sold"`
	Objections string `json:"objections"`
}

// AddOnOutcome is the outcome of one pitched add-on.
type AddOnOutcome struct {
	LineIndex  int    `json:"line_index"`
	AddOn      string `json:"add_on"`
	Sold       bool   `json:"sold"`
	Objections string `json:"objections"`
}

// ExportInput is everything the rep supplies when exporting a bill.
type ExportInput struct {
	Bill            Bill           `json:"bill"`
	LineOutcomes    []Outcome      `json:"line_outcomes"`
	InternetOutcome *Outcome       `json:"internet_outcome,omitempty"`
	AddOnOutcomes   []AddOnOutcome `json:"add_on_outcomes"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// ExportRow is one line as printed on the summary.
type ExportRow struct {
	Number        int
	CustomerName  string
	PlanOrSuggest string
	AddOns        string
	PricePerMonth float64
}

// OutcomeRow is one printed outcome.
type OutcomeRow struct {
	Label      string
	Sold       bool
	Objections string
}

// Status returns "Sold" or "Not sold".
func (o OutcomeRow) Status() string {
	if o.Sold {
		return "Sold"
	}
	return "Not sold"
}

// ExportData holds all data needed to render an exported summary.
type ExportData struct {
	Title         string
	GeneratedAt   time.Time
	SalesRepName  string
	SalesRepNotes string
	Holder        AccountHolder
	Account       Account

	Rows         []ExportRow
	MonthlyTotal float64

	// LineOutcomes is empty unless one outcome per line was supplied.
	LineOutcomes    []OutcomeRow
	InternetOutcome *OutcomeRow
	AddOnOutcomes   []OutcomeRow

	Upsell          UpsellDeltas
	Commission      CommissionSummary
	InternetMonthly float64
}

const emptyField = "-"

func orDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return emptyField
	}
	return s
}

func lineDescription(i int, l Line) string {
	return fmt.Sprintf("Line %d: %s", i+1, orDash(l.CustomerName))
}

// BuildExportData assembles the printable view of in. Prices are taken from
// the bill as they stand.
func (e *Engine) BuildExportData(in ExportInput) ExportData {
	b := in.Bill
	r := e.RegimeFor(b.Account.Carrier)
	deltas := r.Upsell(b.Lines, b.Account)

	generated := in.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	data := ExportData{
		Title:           ExportTitle,
		GeneratedAt:     generated,
		SalesRepName:    strings.TrimSpace(b.SalesRepName),
		SalesRepNotes:   strings.TrimSpace(b.SalesRepNotes),
		Holder:          b.Holder,
		Account:         b.Account,
		Rows:            make([]ExportRow, 0, len(b.Lines)),
		MonthlyTotal:    b.Total(),
		Upsell:          deltas,
		Commission:      r.ExportCommission(b, deltas),
		InternetMonthly: e.catalog.Internet.For(b.Account.AIAEligible),
	}

	for i, l := range b.Lines {
		data.Rows = append(data.Rows, ExportRow{
			Number:        i + 1,
			CustomerName:  orDash(l.CustomerName),
			PlanOrSuggest: orDash(planOrSuggest(b.Account.Carrier, l)),
			AddOns:        orDash(strings.Join(lineAddOns(l), ", ")),
			PricePerMonth: l.PricePerMonth,
		})
	}

	if len(in.LineOutcomes) > 0 && len(in.LineOutcomes) == len(b.Lines) {
		for i, o := range in.LineOutcomes {
			data.LineOutcomes = append(data.LineOutcomes, OutcomeRow{
				Label:      lineDescription(i, b.Lines[i]),
				Sold:       o.Sold,
				Objections: strings.TrimSpace(o.Objections),
			})
		}
		if in.InternetOutcome != nil {
			data.InternetOutcome = &OutcomeRow{
				Label:      "High Speed Internet",
				Sold:       in.InternetOutcome.Sold,
				Objections: strings.TrimSpace(in.InternetOutcome.Objections),
			}
		}
		for _, o := range in.AddOnOutcomes {
			if o.LineIndex < 0 || o.LineIndex >= len(b.Lines) {
				continue
			}
			data.AddOnOutcomes = append(data.AddOnOutcomes, OutcomeRow{
				Label:      lineDescription(o.LineIndex, b.Lines[o.LineIndex]) + " - " + o.AddOn,
				Sold:       o.Sold,
				Objections: strings.TrimSpace(o.Objections),
			})
		}
	}
	return data
}

func planOrSuggest(c Carrier, l Line) string {
	if c.IsPrimary() {
		return l.Label
	}
	if l.SuggestedReplacement != "" {
		return "Suggest: " + l.SuggestedReplacement
	}
	return ""
}

// ExportFilename returns the download name for an export generated at t,
// dated in UTC.
func ExportFilename(ext string, t time.Time) string {
	return fmt.Sprintf("rerate-assistant-%s.%s", t.UTC().Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}
