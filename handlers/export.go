package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"rerate/services"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// HandleExportExcel returns the summary of the posted bill as an Excel file.
func (h *Rerate) HandleExportExcel(e *core.RequestEvent) error {
	return h.export(e, "xlsx", contentTypeXLSX, services.GenerateExcel)
}

// HandleExportPDF returns the summary of the posted bill as a PDF file.
func (h *Rerate) HandleExportPDF(e *core.RequestEvent) error {
	return h.export(e, "pdf", contentTypePDF, services.GeneratePDF)
}

func (h *Rerate) export(e *core.RequestEvent, format, contentType string, generate func(services.ExportData) ([]byte, error)) error {
	var in services.ExportInput
	if err := h.decode(e, &in); err != nil {
		return h.badRequest(e, err)
	}

	data := h.Engine.BuildExportData(in)
	out, err := generate(data)
	h.Metrics.Export(format, err)
	if err != nil {
		h.Logger.Error().Err(err).Str("format", format).Int("lines", len(data.Rows)).Msg("export failed")
		return errorResponse(e, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to generate "+format+" file", nil)
	}

	filename := services.ExportFilename(format, data.GeneratedAt)
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err = e.Response.Write(out)
	return err
}
