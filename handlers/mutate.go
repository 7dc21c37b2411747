package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"rerate/services"
)

// Mutation operations accepted by HandleMutate.
const (
	OpAddLine       = "add_line"
	OpRemoveLine    = "remove_line"
	OpSetPlan       = "set_plan"
	OpSetDataDevice = "set_data_device"
	OpSetHotspot    = "set_hotspot"
	OpSetDiscount25 = "set_discount25"
	OpSetCarrier    = "set_carrier"
	OpSetPrice      = "set_price"
	OpUpdateLine    = "update_line"
	OpUpdateAccount = "update_account"
)

// repricingOps are the operations after which the engine reprices the roster.
var repricingOps = map[string]bool{
	OpAddLine:       true,
	OpRemoveLine:    true,
	OpSetPlan:       true,
	OpSetDataDevice: true,
	OpSetHotspot:    true,
	OpSetDiscount25: true,
	OpSetCarrier:    true,
}

// MutateRequest applies one operation to a bill. Only the fields the
// operation reads need to be set.
type MutateRequest struct {
	Op      string                  `json:"op" validate:"required,oneof=add_line remove_line set_plan set_data_device set_hotspot set_discount25 set_carrier set_price update_line update_account"`
	Bill    services.Bill           `json:"bill"`
	LineID  string                  `json:"line_id"`
	Label   string                  `json:"label"`
	On      bool                    `json:"on"`
	Carrier services.Carrier        `json:"carrier"`
	Price   *float64                `json:"price" validate:"required_if=Op set_price"`
	Line    *services.LineDetails   `json:"line" validate:"required_if=Op update_line"`
	Account *services.AccountUpdate `json:"account" validate:"required_if=Op update_account"`
}

// MutateResponse is the resulting bill. Applied is false when the engine
// rejected the operation and Bill is unchanged.
type MutateResponse struct {
	Bill    services.Bill  `json:"bill"`
	Applied bool           `json:"applied"`
	Quote   services.Quote `json:"quote"`
}

// HandleMutate applies a single bill mutation.
func (h *Rerate) HandleMutate(e *core.RequestEvent) error {
	var req MutateRequest
	if err := h.decode(e, &req); err != nil {
		return h.badRequest(e, err)
	}

	b, applied := h.apply(req)
	h.Metrics.Mutation(req.Op, applied)
	if applied && repricingOps[req.Op] {
		h.Metrics.Repriced()
	}
	if !applied {
		h.Logger.Info().Str("op", req.Op).Str("line_id", req.LineID).Msg("mutation rejected")
	}

	resp := h.respond(b)
	return e.JSON(http.StatusOK, MutateResponse{Bill: resp.Bill, Applied: applied, Quote: resp.Quote})
}

func (h *Rerate) apply(req MutateRequest) (services.Bill, bool) {
	eng := h.Engine
	b := req.Bill
	switch req.Op {
	case OpAddLine:
		return eng.AddLine(b)
	case OpRemoveLine:
		return eng.RemoveLine(b, req.LineID)
	case OpSetPlan:
		return eng.SetLinePlan(b, req.LineID, req.Label)
	case OpSetDataDevice:
		return eng.SetDataDevice(b, req.LineID, req.On)
	case OpSetHotspot:
		return eng.SetHotspot(b, req.LineID, req.On)
	case OpSetDiscount25:
		return eng.SetDiscount25(b, req.On)
	case OpSetCarrier:
		return eng.SetCarrier(b, req.Carrier)
	case OpSetPrice:
		return eng.SetLinePrice(b, req.LineID, *req.Price)
	case OpUpdateLine:
		return eng.UpdateLineDetails(b, req.LineID, *req.Line)
	case OpUpdateAccount:
		return eng.UpdateAccount(b, *req.Account)
	}
	return b, false
}
