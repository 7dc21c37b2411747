package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rerate/services"
	"rerate/testhelpers"
)

func writeBill(t *testing.T, b services.Bill) string {
	t.Helper()
	raw, err := json.Marshal(b)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "bill.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func runQuote(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewQuoteCommand(services.NewEngine(nil), zerolog.Nop())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCommand_Reprice(t *testing.T) {
	b := testhelpers.NewTestBill(services.CarrierATT, "FirstNet", "Premium")
	b.Lines[0].CustomerName = "Alex"

	out, err := runQuote(t, "--bill", writeBill(t, b), "--reprice")
	require.NoError(t, err)

	testhelpers.AssertBodyContains(t, out,
		"Carrier: AT&T (primary)",
		"Alex", "FirstNet", "$42.99", "$64.49",
		"Monthly total: $107.48",
		"One more Premium line: +$49.49/mo",
		"Add one more line (Premium): +$49.49/mo - $15",
		"Add tablet or wearable: +$10.00-$20.00/mo - $3",
		"Total: $43",
	)
}

func TestQuoteCommand_AsEntered(t *testing.T) {
	b := testhelpers.NewTestBill(services.CarrierCricket, "Starter")
	b.Lines[0].PricePerMonth = 70
	b.Lines[0].SuggestedReplacement = "Premium"

	out, err := runQuote(t, "--bill", writeBill(t, b))
	require.NoError(t, err)
	testhelpers.AssertBodyContains(t, out,
		"Carrier: Cricket (other)",
		"Monthly total: $70.00",
		"Premium (1): $15",
		"Bring-Your-Own-Device",
	)
	assert.NotContains(t, out, "One more")
}

func TestQuoteCommand_WritesExports(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "summary.pdf")
	xlsx := filepath.Join(dir, "summary.xlsx")
	b := testhelpers.NewTestBill(services.CarrierATT, "Premium")

	_, err := runQuote(t, "--bill", writeBill(t, b), "--reprice", "--pdf", pdf, "--xlsx", xlsx)
	require.NoError(t, err)

	raw, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(raw[:5]))
	raw, err = os.ReadFile(xlsx)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(raw[:2]))
}

func TestQuoteCommand_Errors(t *testing.T) {
	_, err := runQuote(t)
	require.Error(t, err, "--bill is required")

	_, err = runQuote(t, "--bill", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read bill")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = runQuote(t, "--bill", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode bill")

	_, err = runQuote(t, "--bill", writeBill(t, testhelpers.NewTestBill("Sprint", "Premium")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bill")
}
