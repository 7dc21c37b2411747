package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rerate/services"
	"rerate/testhelpers"
)

const cents = 0.001

func TestHandleReference(t *testing.T) {
	h, _ := newTestRerate(t)
	rec := serve(t, h.HandleReference, http.MethodGet, "/api/rerate/reference", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReferenceResponse
	testhelpers.DecodeJSON(t, rec, &resp)
	assert.Equal(t, services.MaxLines, resp.MaxLines)
	assert.Len(t, resp.PlanOptions, 7)
	assert.Len(t, resp.Discount25PlanOptions, 6)
	assert.Len(t, resp.CarrierOptions, 8)
	assert.Len(t, resp.DeviceOptions, 3)
	require.NotNil(t, resp.Catalog)
	assert.Equal(t, "FirstNet", resp.Catalog.FlatRatePlan)
	assert.Equal(t, 0.75, resp.Catalog.FamilyDiscount)
}

func TestHandleNewBill(t *testing.T) {
	h, m := newTestRerate(t)
	rec := serve(t, h.HandleNewBill, http.MethodPost, "/api/rerate/bills", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BillResponse
	testhelpers.DecodeJSON(t, rec, &resp)
	require.Len(t, resp.Bill.Lines, 1)
	assert.NotEmpty(t, resp.Bill.Lines[0].ID)
	assert.Equal(t, services.RegimeUnset, resp.Quote.Regime)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteTotal))
}

func TestHandleReprice(t *testing.T) {
	h, m := newTestRerate(t)
	b := testhelpers.NewTestBill(services.CarrierATT, "FirstNet", "Premium")

	rec := serve(t, h.HandleReprice, http.MethodPost, "/api/rerate/bills/reprice", b)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BillResponse
	testhelpers.DecodeJSON(t, rec, &resp)
	require.Len(t, resp.Bill.Lines, 2)
	assert.Equal(t, b.Lines[0].ID, resp.Bill.Lines[0].ID)
	assert.InDelta(t, 42.99, resp.Bill.Lines[0].PricePerMonth, cents)
	assert.InDelta(t, 64.49, resp.Bill.Lines[1].PricePerMonth, cents)
	assert.InDelta(t, 107.48, resp.Quote.MonthlyTotal, cents)
	require.NotNil(t, resp.Quote.Upsell.Premium)
	assert.InDelta(t, 49.49, *resp.Quote.Upsell.Premium, cents)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RepriceTotal))
}

func TestHandleReprice_Rejects(t *testing.T) {
	tooMany := testhelpers.NewTestBill(services.CarrierATT)
	for i := 0; i <= services.MaxLines; i++ {
		tooMany.Lines = append(tooMany.Lines, services.NewLine())
	}
	negative := testhelpers.NewTestBill(services.CarrierVerizon, "Starter")
	negative.Lines[0].PricePerMonth = -1
	duplicate := testhelpers.NewTestBill(services.CarrierATT, "Premium", "Extra")
	duplicate.Lines[1].ID = duplicate.Lines[0].ID
	unnamed := testhelpers.NewTestBill(services.CarrierATT, "Premium")
	unnamed.Lines[0].ID = ""

	tests := []struct {
		name string
		body any
		code string
	}{
		{"malformed json", `{"lines": [`, "INVALID_REQUEST"},
		{"unknown carrier", testhelpers.NewTestBill("Sprint", "Premium"), "VALIDATION_ERROR"},
		{"too many lines", tooMany, "VALIDATION_ERROR"},
		{"negative price", negative, "VALIDATION_ERROR"},
		{"no lines", testhelpers.NewTestBill(services.CarrierATT), "VALIDATION_ERROR"},
		{"empty line list", `{"account": {"carrier": "AT&T"}, "lines": []}`, "VALIDATION_ERROR"},
		{"duplicate line ids", duplicate, "VALIDATION_ERROR"},
		{"line without id", unnamed, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestRerate(t)
			rec := serve(t, h.HandleReprice, http.MethodPost, "/api/rerate/bills/reprice", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorBody
			testhelpers.DecodeJSON(t, rec, &resp)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
			assert.Zero(t, testutil.ToFloat64(m.RepriceTotal))
		})
	}
}

func TestHandleQuote_UsesEnteredPrices(t *testing.T) {
	h, m := newTestRerate(t)
	b := testhelpers.NewTestBill(services.CarrierVerizon, "Starter", "Tablet")
	b.Lines[0].PricePerMonth = 70
	b.Lines[1].PricePerMonth = 12.5

	rec := serve(t, h.HandleQuote, http.MethodPost, "/api/rerate/bills/quote", b)
	require.Equal(t, http.StatusOK, rec.Code)

	var q services.Quote
	testhelpers.DecodeJSON(t, rec, &q)
	assert.Equal(t, services.RegimeOther, q.Regime)
	assert.InDelta(t, 82.5, q.MonthlyTotal, cents)
	assert.False(t, q.UpsellAvailable)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteTotal))
}

func TestValidationMessages(t *testing.T) {
	v := NewValidator()
	duplicate := testhelpers.NewTestBill(services.CarrierATT, "Premium", "Extra")
	duplicate.Lines[1].ID = duplicate.Lines[0].ID

	tests := []struct {
		name string
		bill services.Bill
		want string
	}{
		{"no lines", testhelpers.NewTestBill(services.CarrierATT), "Bill.Lines: at least 1 required"},
		{"duplicate ids", duplicate, "Bill.Lines: duplicate ID"},
		{"unknown carrier", testhelpers.NewTestBill("Sprint", "Premium"), `Bill.Account.Carrier: unknown carrier "Sprint"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.bill)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.want, validationMessage(verrs[0]))
		})
	}

	assert.NoError(t, v.Struct(testhelpers.NewTestBill(services.CarrierATT, "Premium")))
}

func TestJSONBodyMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/rerate/bills/quote", nil)
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())
	require.NoError(t, JSONBodyMiddleware(e))
	assert.Equal(t, "application/json", e.Request.Header.Get("Content-Type"))

	req = httptest.NewRequest(http.MethodPost, "/api/rerate/bills/quote", nil)
	req.Header.Set("Content-Type", "text/plain")
	e = newTestRequestEvent(nil, req, httptest.NewRecorder())
	require.NoError(t, JSONBodyMiddleware(e))
	assert.Equal(t, "text/plain", e.Request.Header.Get("Content-Type"))
}
