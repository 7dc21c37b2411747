package handlers

import (
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// RegisterRoutes mounts the rerate API under /api/rerate. With requireAuth
// set, every route needs a signed-in PocketBase record.
func RegisterRoutes(se *core.ServeEvent, h *Rerate, requireAuth bool) {
	g := se.Router.Group("/api/rerate")
	g.BindFunc(JSONBodyMiddleware)
	if requireAuth {
		g.Bind(apis.RequireAuth())
	}

	g.GET("/reference", h.HandleReference)

	// ── Bills ────────────────────────────────────────────────
	g.POST("/bills", h.HandleNewBill)
	g.POST("/bills/reprice", h.HandleReprice)
	g.POST("/bills/quote", h.HandleQuote)
	g.POST("/bills/mutate", h.HandleMutate)

	// ── Export ───────────────────────────────────────────────
	g.POST("/export/pdf", h.HandleExportPDF)
	g.POST("/export/excel", h.HandleExportExcel)
}
