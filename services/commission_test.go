package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(s CommissionSummary) []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = it.Label
	}
	return out
}

func TestLiveCommission_Primary(t *testing.T) {
	e := NewEngine(nil)
	b := e.reprice(billOn(CarrierATT, planLine("Premium")))

	for _, tt := range []struct {
		kicker, aia  bool
		total        float64
		rates        []float64
		internetCost float64
	}{
		{false, false, 43, []float64{15, 10, 3, 15}, 60},
		{true, true, 85, []float64{30, 20, 5, 30}, 47},
	} {
		b.Account.KickerUnlocked = tt.kicker
		b.Account.AIAEligible = tt.aia

		s := e.LiveCommission(b)
		assert.Equal(t, RegimePrimary, s.Regime)
		assert.Equal(t, tt.total, s.Total)
		require.Len(t, s.Items, 4)
		assert.Equal(t, []string{
			"Add one more line (Premium)",
			"Add one more line (Extra)",
			"Add tablet or wearable",
			"Add High Speed Internet",
		}, labels(s))
		for i, it := range s.Items {
			assert.Equal(t, tt.rates[i], it.Rate)
			assert.Equal(t, 1, it.Count)
		}
		assert.InDelta(t, 65.99, *s.Items[0].Monthly, cents)
		assert.InDelta(t, 55.99, *s.Items[1].Monthly, cents)
		assert.Equal(t, 10.0, *s.Items[2].Monthly)
		assert.Equal(t, 20.0, *s.Items[2].MonthlyMax)
		assert.Equal(t, tt.internetCost, *s.Items[3].Monthly)
	}
}

func TestExportCommission_Primary(t *testing.T) {
	e := NewEngine(nil)
	r := e.RegimeFor(CarrierATT)
	b := e.reprice(billOn(CarrierATT, planLine("Premium")))
	b.Account.KickerUnlocked = true

	both := r.ExportCommission(b, e.UpsellDeltas(b))
	assert.Equal(t, 80.0, both.Total)
	assert.Equal(t, []string{"Add one more line (Premium)", "Add one more line (Extra)", "Add High Speed Internet"}, labels(both))

	v := 12.0
	partial := r.ExportCommission(b, UpsellDeltas{Premium: &v})
	assert.Equal(t, 65.0, partial.Total)
	assert.Equal(t, []string{"Add one more line (Premium)", "Add High Speed Internet"}, labels(partial))

	b.Account.KickerUnlocked = false
	assert.Equal(t, 40.0, r.ExportCommission(b, e.UpsellDeltas(b)).Total)
	assert.Equal(t, 35.0, r.ExportCommission(b, UpsellDeltas{}).Total)
}

func pitchedBill() Bill {
	l1 := planLine("")
	l1.SuggestedReplacement = "Premium"
	l1.AddOnPro1 = true
	l1.AddOnHTP = true
	l2 := planLine("")
	l2.SuggestedReplacement = "Premium"
	l2.AddOnTurbo = true
	l3 := planLine("")
	l3.SuggestedReplacement = "Extra"
	l4 := deviceLine("Tablet")
	l5 := deviceLine("")
	return billOn(CarrierVerizon, l1, l2, l3, l4, l5)
}

func TestLiveCommission_Other(t *testing.T) {
	e := NewEngine(nil)
	b := pitchedBill()

	s := e.LiveCommission(b)
	assert.Equal(t, RegimeOther, s.Regime)
	assert.Equal(t, []string{"Premium", "Extra", "Tablet / Wearable", "Pro 1", "HTP", "Turbo"}, labels(s))
	// 2*15 + 10 + 3 + 3 + 5 + 2
	assert.Equal(t, 53.0, s.Total)
	assert.Equal(t, 2, s.Items[0].Count)
	assert.Equal(t, 30.0, s.Items[0].Amount)

	b.Account.InternetAir = true
	b.Account.KickerUnlocked = true
	s = e.LiveCommission(b)
	assert.Contains(t, labels(s), "High Speed Internet")
	// 2*30 + 20 + 5 + 30 + 3 + 5 + 2
	assert.Equal(t, 125.0, s.Total)
}

func TestExportCommission_Other(t *testing.T) {
	e := NewEngine(nil)
	b := pitchedBill()
	r := e.RegimeFor(b.Account.Carrier)

	s := r.ExportCommission(b, UpsellDeltas{})
	assert.Equal(t, []string{"Premium", "Extra", "High Speed Internet", "Pro 1", "HTP", "Turbo"}, labels(s))
	// Internet is assumed sold and data devices are left out: 30 + 10 + 15 + 3 + 5 + 2
	assert.Equal(t, 65.0, s.Total)
}

func TestCommission_EmptyOtherRoster(t *testing.T) {
	e := NewEngine(nil)
	b := billOn(CarrierSpectrum, planLine(""))

	live := e.LiveCommission(b)
	assert.Empty(t, live.Items)
	assert.Zero(t, live.Total)

	exp := e.RegimeFor(CarrierSpectrum).ExportCommission(b, UpsellDeltas{})
	assert.Equal(t, []string{"High Speed Internet"}, labels(exp))
	assert.Equal(t, 15.0, exp.Total)
}

func TestCommission_Unset(t *testing.T) {
	e := NewEngine(nil)
	b := NewBill()
	s := e.LiveCommission(b)
	assert.Equal(t, RegimeUnset, s.Regime)
	assert.Empty(t, s.Items)
	assert.Zero(t, s.Total)
}
