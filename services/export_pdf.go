package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// wrapWidth is the number of characters that fit on one body line.
const wrapWidth = 95

var (
	bodyText  = props.Text{Size: 10, Align: align.Left}
	mutedText = props.Text{Size: 9, Align: align.Left, Color: &props.Color{Red: 80, Green: 80, Blue: 80}}
)

// GeneratePDF renders the bill summary with maroto/v2 and returns the PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(18).
		WithTopMargin(18).
		WithRightMargin(18).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addAccountHolder(m, data.Holder)
	addBillInfo(m, data.Account)
	addLines(m, data)
	addOutcomes(m, data)
	addOpportunities(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addText adds one full-width body line.
func addText(m core.Maroto, s string, style props.Text) {
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(s, style)),
		),
	)
}

// addWrapped adds s as consecutive body lines of at most wrapWidth characters.
func addWrapped(m core.Maroto, s string, style props.Text) {
	for _, l := range wrapText(s, wrapWidth) {
		addText(m, l, style)
	}
}

func addSectionTitle(m core.Maroto, title string) {
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
	)
}

func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
	addText(m, "Generated: "+data.GeneratedAt.Format("Jan 2, 2006 3:04 PM"), mutedText)
	if data.SalesRepName != "" {
		addText(m, "Sales rep: "+data.SalesRepName, bodyText)
	}
	if data.SalesRepNotes != "" {
		addText(m, "Notes:", bodyText)
		addWrapped(m, data.SalesRepNotes, bodyText)
	}
}

func addAccountHolder(m core.Maroto, h AccountHolder) {
	addSectionTitle(m, "Account holder")
	name := strings.TrimSpace(h.Name)
	if name == "" {
		name = "(not provided)"
	}
	addText(m, name, bodyText)
	if s := strings.TrimSpace(h.Phone); s != "" {
		addText(m, s, bodyText)
	}
	if s := strings.TrimSpace(h.Employer); s != "" {
		addText(m, "Employer / Job title: "+s, bodyText)
	}
	if s := strings.TrimSpace(h.Email); s != "" {
		addText(m, s, bodyText)
	}
	if s := strings.TrimSpace(h.Address); s != "" {
		addWrapped(m, s, bodyText)
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func addBillInfo(m core.Maroto, a Account) {
	addSectionTitle(m, "Bill information")
	carrier := string(a.Carrier)
	if carrier == "" {
		carrier = "(not selected)"
	}
	addText(m, "Carrier: "+carrier, bodyText)
	addText(m, "AIA Eligible: "+yesNo(a.AIAEligible), bodyText)
	if a.Carrier.IsPrimary() {
		addText(m, "25% Discount Eligible: "+yesNo(a.Discount25Eligible), bodyText)
		addText(m, "55+: "+yesNo(a.Senior55), bodyText)
	}
	addText(m, "Kicker Unlocked: "+yesNo(a.KickerUnlocked), bodyText)
}

// addLines adds the phone line table, the monthly total and the tax note.
func addLines(m core.Maroto, data ExportData) {
	addSectionTitle(m, "Phone lines")

	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerRight := headerText
	headerRight.Align = align.Right
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(headerCell),
			col.New(3).Add(text.New("Customer", headerText)).WithStyle(headerCell),
			col.New(3).Add(text.New("Plan", headerText)).WithStyle(headerCell),
			col.New(3).Add(text.New("Add-ons", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Price / mo", headerRight)).WithStyle(headerCell),
		),
	)

	cellText := props.Text{Size: 8, Align: align.Left}
	cellRight := cellText
	cellRight.Align = align.Right
	stripe := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}

	for i, r := range data.Rows {
		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Number), cellText)),
			col.New(3).Add(text.New(r.CustomerName, cellText)),
			col.New(3).Add(text.New(r.PlanOrSuggest, cellText)),
			col.New(3).Add(text.New(r.AddOns, cellText)),
			col.New(2).Add(text.New(FormatUSD(r.PricePerMonth)+"/mo", cellRight)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(stripe)
			}
		}
		m.AddRows(row.New(7).Add(cols...))
	}

	m.AddRows(row.New(3))
	addText(m, "Estimated monthly total (lines): "+FormatUSD(data.MonthlyTotal),
		props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left})
	addText(m, "All prices are shown before taxes.", mutedText)
}

func addOutcome(m core.Maroto, o OutcomeRow) {
	addText(m, o.Label+" - "+o.Status(), bodyText)
	if !o.Sold && o.Objections != "" {
		addWrapped(m, "Objections: "+o.Objections, mutedText)
	}
}

// addOutcomes prints outcomes only when one was recorded for every line.
func addOutcomes(m core.Maroto, data ExportData) {
	if len(data.LineOutcomes) == 0 {
		return
	}
	addSectionTitle(m, "Line outcomes (did you sell each line?)")
	for _, o := range data.LineOutcomes {
		addOutcome(m, o)
	}
	if data.InternetOutcome != nil {
		addOutcome(m, *data.InternetOutcome)
	}
	if len(data.AddOnOutcomes) > 0 {
		addSectionTitle(m, "Add-on outcomes (did you sell each add-on?)")
		for _, o := range data.AddOnOutcomes {
			addOutcome(m, o)
		}
	}
}

func addOpportunities(m core.Maroto, data ExportData) {
	addSectionTitle(m, "Opportunities / Commission")
	addText(m, "Estimated total: "+FormatUSD(data.MonthlyTotal), bodyText)

	for _, line := range commissionText(data.Commission) {
		addText(m, line, bodyText)
	}
}

// commissionText renders a commission summary as printable lines.
func commissionText(s CommissionSummary) []string {
	var out []string
	switch s.Regime {
	case RegimePrimary:
		for _, it := range s.Items {
			monthly := ""
			if it.Monthly != nil {
				monthly = ": " + FormatSignedUSD(*it.Monthly) + "/mo"
			}
			out = append(out, fmt.Sprintf("%s%s - Commission: %s", it.Label, monthly, FormatCommission(it.Rate)))
		}
		out = append(out, "Total potential commission: "+FormatCommission(s.Total))
	case RegimeOther:
		for _, it := range s.Items {
			label := it.Label
			if it.Item != ItemInternet {
				label = fmt.Sprintf("%s (%d)", it.Label, it.Count)
			}
			out = append(out, fmt.Sprintf("%s: %s", label, FormatCommission(it.Amount)))
		}
		out = append(out, "Total commission: "+FormatCommission(s.Total))
	}
	return out
}

// wrapText splits s on whitespace into lines of at most width characters.
// Words longer than width are hard-split.
func wrapText(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		var cur strings.Builder
		for _, w := range words {
			for len(w) > width {
				if cur.Len() > 0 {
					lines = append(lines, cur.String())
					cur.Reset()
				}
				lines = append(lines, w[:width])
				w = w[width:]
			}
			if cur.Len() > 0 && cur.Len()+1+len(w) > width {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(w)
		}
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
		}
	}
	return lines
}
