package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"rerate/services"
)

// ReferenceResponse carries the rate table and the picker option lists.
type ReferenceResponse struct {
	Catalog               *services.Catalog `json:"catalog"`
	MaxLines              int               `json:"max_lines"`
	PlanOptions           []services.Option `json:"plan_options"`
	Discount25PlanOptions []services.Option `json:"discount25_plan_options"`
	DeviceOptions         []services.Option `json:"device_options"`
	ReplacementOptions    []services.Option `json:"replacement_options"`
	CarrierOptions        []services.Option `json:"carrier_options"`
}

// BillResponse is a bill with its computed figures.
type BillResponse struct {
	Bill  services.Bill  `json:"bill"`
	Quote services.Quote `json:"quote"`
}

// HandleReference returns the reference tables.
func (h *Rerate) HandleReference(e *core.RequestEvent) error {
	c := h.Engine.Catalog()
	return e.JSON(http.StatusOK, ReferenceResponse{
		Catalog:               c,
		MaxLines:              services.MaxLines,
		PlanOptions:           c.PlanOptions(services.Account{}),
		Discount25PlanOptions: c.PlanOptions(services.Account{Discount25Eligible: true}),
		DeviceOptions:         c.DeviceOptions(),
		ReplacementOptions:    c.ReplacementOptions(),
		CarrierOptions:        services.CarrierOptions(),
	})
}

// HandleNewBill returns a fresh bill with one empty line.
func (h *Rerate) HandleNewBill(e *core.RequestEvent) error {
	b := services.NewBill()
	return e.JSON(http.StatusCreated, h.respond(b))
}

// HandleReprice reprices the posted bill.
func (h *Rerate) HandleReprice(e *core.RequestEvent) error {
	var b services.Bill
	if err := h.decode(e, &b); err != nil {
		return h.badRequest(e, err)
	}
	b = h.Engine.Reprice(b)
	h.Metrics.Repriced()
	return e.JSON(http.StatusOK, h.respond(b))
}

// HandleQuote computes the figures for the posted bill as entered.
func (h *Rerate) HandleQuote(e *core.RequestEvent) error {
	var b services.Bill
	if err := h.decode(e, &b); err != nil {
		return h.badRequest(e, err)
	}
	h.Metrics.Quoted()
	return e.JSON(http.StatusOK, h.Engine.Quote(b))
}

func (h *Rerate) respond(b services.Bill) BillResponse {
	h.Metrics.Quoted()
	return BillResponse{Bill: b, Quote: h.Engine.Quote(b)}
}
