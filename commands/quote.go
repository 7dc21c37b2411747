// Package commands holds the CLI subcommands attached to the PocketBase root command.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rerate/handlers"
	"rerate/services"
)

// NewQuoteCommand returns the "quote" command, which prices a bill file
// and optionally writes the summary documents.
func NewQuoteCommand(engine *services.Engine, logger zerolog.Logger) *cobra.Command {
	var (
		billPath string
		reprice  bool
		pdfPath  string
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a bill file and print its quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := readBill(billPath)
			if err != nil {
				return err
			}
			if reprice {
				b = engine.Reprice(b)
			}

			if err := printQuote(cmd.OutOrStdout(), b, engine.Quote(b)); err != nil {
				return err
			}

			if pdfPath == "" && xlsxPath == "" {
				return nil
			}
			data := engine.BuildExportData(services.ExportInput{Bill: b, GeneratedAt: time.Now()})
			if pdfPath != "" {
				if err := writeExport(pdfPath, data, services.GeneratePDF); err != nil {
					return err
				}
				logger.Info().Str("path", pdfPath).Msg("wrote pdf summary")
			}
			if xlsxPath != "" {
				if err := writeExport(xlsxPath, data, services.GenerateExcel); err != nil {
					return err
				}
				logger.Info().Str("path", xlsxPath).Msg("wrote excel summary")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&billPath, "bill", "", "path to the bill JSON file")
	cmd.Flags().BoolVar(&reprice, "reprice", false, "reprice every line from the rate table first")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the PDF summary to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the Excel summary to this path")
	_ = cmd.MarkFlagRequired("bill")

	return cmd
}

func readBill(path string) (services.Bill, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return services.Bill{}, fmt.Errorf("read bill: %w", err)
	}
	var b services.Bill
	if err := json.Unmarshal(raw, &b); err != nil {
		return services.Bill{}, fmt.Errorf("decode bill %s: %w", path, err)
	}
	if err := handlers.NewValidator().Struct(&b); err != nil {
		return services.Bill{}, fmt.Errorf("invalid bill %s: %w", path, err)
	}
	return b, nil
}

func writeExport(path string, data services.ExportData, generate func(services.ExportData) ([]byte, error)) error {
	out, err := generate(data)
	if err != nil {
		return fmt.Errorf("generate %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printQuote(w io.Writer, b services.Bill, q services.Quote) error {
	carrier := string(b.Account.Carrier)
	if carrier == "" {
		carrier = "-"
	}
	fmt.Fprintf(w, "Carrier: %s (%s)\n\n", carrier, q.Regime)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCustomer\tPlan\tPrice")
	for i, l := range b.Lines {
		label := l.Label
		if l.DataDevice && label == "" {
			label = "Data device"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, orDash(l.CustomerName), orDash(label), services.FormatUSD(l.PricePerMonth))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nMonthly total: %s\n", services.FormatUSD(q.MonthlyTotal))

	if q.Upsell.Premium != nil {
		fmt.Fprintf(w, "One more Premium line: %s/mo\n", services.FormatSignedUSD(*q.Upsell.Premium))
	}
	if q.Upsell.Extra != nil {
		fmt.Fprintf(w, "One more Extra line: %s/mo\n", services.FormatSignedUSD(*q.Upsell.Extra))
	}

	if len(q.Commission.Items) > 0 {
		fmt.Fprintln(w, "\nCommission:")
		for _, it := range q.Commission.Items {
			switch {
			case it.Monthly != nil && it.MonthlyMax != nil:
				fmt.Fprintf(w, "  %s: %s-%s/mo - %s\n", it.Label, services.FormatSignedUSD(*it.Monthly),
					services.FormatUSD(*it.MonthlyMax), services.FormatCommission(it.Amount))
			case it.Monthly != nil:
				fmt.Fprintf(w, "  %s: %s/mo - %s\n", it.Label, services.FormatSignedUSD(*it.Monthly), services.FormatCommission(it.Amount))
			default:
				fmt.Fprintf(w, "  %s (%d): %s\n", it.Label, it.Count, services.FormatCommission(it.Amount))
			}
		}
		fmt.Fprintf(w, "  Total: %s\n", services.FormatCommission(q.Commission.Total))
	}

	for _, a := range q.Advisories {
		fmt.Fprintf(w, "\nNote: %s\n", a.Message)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
