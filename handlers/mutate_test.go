package handlers

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rerate/services"
	"rerate/testhelpers"
)

func mutate(t *testing.T, h *Rerate, req MutateRequest) MutateResponse {
	t.Helper()
	rec := serve(t, h.HandleMutate, http.MethodPost, "/api/rerate/bills/mutate", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp MutateResponse
	testhelpers.DecodeJSON(t, rec, &resp)
	return resp
}

func TestHandleMutate_AddLine(t *testing.T) {
	h, m := newTestRerate(t)
	b := testhelpers.NewPricedBill(services.CarrierATT, "Premium")

	resp := mutate(t, h, MutateRequest{Op: OpAddLine, Bill: b})
	assert.True(t, resp.Applied)
	require.Len(t, resp.Bill.Lines, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MutationTotal.WithLabelValues(OpAddLine, "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RepriceTotal))
}

func TestHandleMutate_CountsReprices(t *testing.T) {
	h, m := newTestRerate(t)
	b := testhelpers.NewPricedBill(services.CarrierATT, "Premium", "Extra")
	price := 40.0

	mutate(t, h, MutateRequest{Op: OpSetPlan, Bill: b, LineID: b.Lines[1].ID, Label: "Starter"})
	mutate(t, h, MutateRequest{Op: OpSetCarrier, Bill: b, Carrier: services.CarrierVerizon})
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RepriceTotal))

	// price overrides, detail edits and rejected mutations leave prices alone
	mutate(t, h, MutateRequest{Op: OpSetPrice, Bill: b, LineID: b.Lines[0].ID, Price: &price})
	mutate(t, h, MutateRequest{Op: OpUpdateAccount, Bill: b, Account: &services.AccountUpdate{}})
	mutate(t, h, MutateRequest{Op: OpRemoveLine, Bill: b, LineID: "missing"})
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RepriceTotal))
}

func TestHandleMutate_RejectedReturnsBillUnchanged(t *testing.T) {
	h, m := newTestRerate(t)
	b := testhelpers.NewPricedBill(services.CarrierATT, "Premium")

	resp := mutate(t, h, MutateRequest{Op: OpRemoveLine, Bill: b, LineID: b.Lines[0].ID})
	assert.False(t, resp.Applied)
	assert.Equal(t, b.Lines, resp.Bill.Lines)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MutationTotal.WithLabelValues(OpRemoveLine, "rejected")))

	resp = mutate(t, h, MutateRequest{Op: OpSetPlan, Bill: b, LineID: "missing", Label: "Extra"})
	assert.False(t, resp.Applied)
}

func TestHandleMutate_SetCarrierReprices(t *testing.T) {
	h, _ := newTestRerate(t)
	b := testhelpers.NewTestBill(services.CarrierUnset, "FirstNet", "Premium")

	resp := mutate(t, h, MutateRequest{Op: OpSetCarrier, Bill: b, Carrier: services.CarrierATT})
	assert.True(t, resp.Applied)
	assert.Equal(t, services.CarrierATT, resp.Bill.Account.Carrier)
	assert.InDelta(t, 107.48, resp.Quote.MonthlyTotal, cents)
	assert.Equal(t, services.RegimePrimary, resp.Quote.Regime)

	resp = mutate(t, h, MutateRequest{Op: OpSetCarrier, Bill: b, Carrier: "Sprint"})
	assert.False(t, resp.Applied)
}

func TestHandleMutate_LineAndAccountFields(t *testing.T) {
	h, _ := newTestRerate(t)
	b := testhelpers.NewPricedBill(services.CarrierATT, "Premium", "Extra")
	id := b.Lines[1].ID

	price := 55.555
	resp := mutate(t, h, MutateRequest{Op: OpSetPrice, Bill: b, LineID: id, Price: &price})
	assert.True(t, resp.Applied)
	assert.InDelta(t, 55.56, resp.Bill.Lines[1].PricePerMonth, cents)

	name := "Jordan"
	pro4 := true
	resp = mutate(t, h, MutateRequest{Op: OpUpdateLine, Bill: b, LineID: id, Line: &services.LineDetails{CustomerName: &name, AddOnPro4: &pro4}})
	assert.True(t, resp.Applied)
	assert.Equal(t, "Jordan", resp.Bill.Lines[1].CustomerName)
	assert.True(t, resp.Bill.Lines[1].AddOnPro4)

	kicker := true
	rep := "Sam"
	resp = mutate(t, h, MutateRequest{Op: OpUpdateAccount, Bill: b, Account: &services.AccountUpdate{KickerUnlocked: &kicker, SalesRepName: &rep}})
	assert.True(t, resp.Applied)
	assert.True(t, resp.Bill.Account.KickerUnlocked)
	assert.Equal(t, "Sam", resp.Bill.SalesRepName)
	assert.Equal(t, 85.0, resp.Quote.Commission.Total)
}

func TestHandleMutate_Toggles(t *testing.T) {
	h, _ := newTestRerate(t)
	b := testhelpers.NewPricedBill(services.CarrierATT, "FirstNet", "Premium")

	resp := mutate(t, h, MutateRequest{Op: OpSetHotspot, Bill: b, LineID: b.Lines[0].ID, On: true})
	assert.True(t, resp.Applied)
	assert.InDelta(t, 47.99, resp.Bill.Lines[0].PricePerMonth, cents)

	resp = mutate(t, h, MutateRequest{Op: OpSetDataDevice, Bill: b, LineID: b.Lines[1].ID, On: true})
	assert.True(t, resp.Applied)
	assert.True(t, resp.Bill.Lines[1].DataDevice)
	assert.Empty(t, resp.Bill.Lines[1].Label)

	resp = mutate(t, h, MutateRequest{Op: OpSetDiscount25, Bill: b, On: true})
	assert.True(t, resp.Applied)
	assert.True(t, resp.Bill.Account.Discount25Eligible)
}

func TestHandleMutate_BadRequests(t *testing.T) {
	b := testhelpers.NewPricedBill(services.CarrierATT, "Premium")
	duplicate := testhelpers.NewPricedBill(services.CarrierATT, "Premium", "Extra")
	duplicate.Lines[1].ID = duplicate.Lines[0].ID
	tests := []struct {
		name string
		req  MutateRequest
	}{
		{"missing op", MutateRequest{Bill: b}},
		{"unknown op", MutateRequest{Op: "merge_lines", Bill: b}},
		{"set_price without price", MutateRequest{Op: OpSetPrice, Bill: b, LineID: b.Lines[0].ID}},
		{"update_line without fields", MutateRequest{Op: OpUpdateLine, Bill: b, LineID: b.Lines[0].ID}},
		{"update_account without fields", MutateRequest{Op: OpUpdateAccount, Bill: b}},
		{"duplicate line ids", MutateRequest{Op: OpRemoveLine, Bill: duplicate, LineID: duplicate.Lines[0].ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRerate(t)
			rec := serve(t, h.HandleMutate, http.MethodPost, "/api/rerate/bills/mutate", tt.req)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorBody
			testhelpers.DecodeJSON(t, rec, &resp)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		})
	}
}
